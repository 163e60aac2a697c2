package repositories

import (
	"errors"

	"guzo_backend/internal/models"

	"gorm.io/gorm"
)

var ErrOfferingNotFound = errors.New("offering not found")

// Ключи сортировки каталога.
const (
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortRating    = "rating"
	SortNewest    = "newest"
	SortPopular   = "popular"
)

// OfferingSearchCriteria — фильтры страницы Explore. Пустое значение = фильтр выключен.
type OfferingSearchCriteria struct {
	Category   string
	City       string
	Region     string
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
	MinGuests  int
	Language   string
	Difficulty string
	Search     string
	Sort       string
	Page       int
	PageSize   int
}

// CategorySummary — агрегат по категории для фильтров на фронте.
type CategorySummary struct {
	Category  string  `json:"category"`
	Count     int64   `json:"count"`
	AvgPrice  float64 `json:"avgPrice"`
	AvgRating float64 `json:"avgRating"`
}

// LocationSummary — агрегат по городу/региону.
type LocationSummary struct {
	City     string  `json:"city"`
	Region   string  `json:"region"`
	Count    int64   `json:"count"`
	AvgPrice float64 `json:"avgPrice"`
}

type OfferingRepository interface {
	Create(db *gorm.DB, offering *models.CulturalOffering) error
	FindByID(db *gorm.DB, id string) (*models.CulturalOffering, error)
	FindVisibleByID(db *gorm.DB, id string) (*models.CulturalOffering, error)
	Update(db *gorm.DB, offering *models.CulturalOffering) error
	Delete(db *gorm.DB, id string) error
	FindByHost(db *gorm.DB, hostID string, page, pageSize int) ([]models.CulturalOffering, int64, error)
	Search(db *gorm.DB, criteria OfferingSearchCriteria) ([]models.CulturalOffering, int64, error)
	FindFeatured(db *gorm.DB, limit int) ([]models.CulturalOffering, error)
	AggregateCategories(db *gorm.DB) ([]CategorySummary, error)
	AggregateLocations(db *gorm.DB) ([]LocationSummary, error)
	IncrementBookingCount(db *gorm.DB, id string) error
	SetApproval(db *gorm.DB, id string, approved bool) error
	FindPendingApproval(db *gorm.DB, page, pageSize int) ([]models.CulturalOffering, int64, error)
}

type OfferingRepositoryImpl struct{}

func NewOfferingRepository() OfferingRepository {
	return &OfferingRepositoryImpl{}
}

func (r *OfferingRepositoryImpl) Create(db *gorm.DB, offering *models.CulturalOffering) error {
	return db.Create(offering).Error
}

func (r *OfferingRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.CulturalOffering, error) {
	var offering models.CulturalOffering
	err := db.Preload("Host").Preload("Host.HostProfile").First(&offering, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferingNotFound
		}
		return nil, err
	}
	return &offering, nil
}

// FindVisibleByID возвращает оффер только если он активен и прошел модерацию.
func (r *OfferingRepositoryImpl) FindVisibleByID(db *gorm.DB, id string) (*models.CulturalOffering, error) {
	var offering models.CulturalOffering
	err := db.Preload("Host").Preload("Host.HostProfile").
		Where("is_active = ? AND is_approved = ?", true, true).
		First(&offering, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferingNotFound
		}
		return nil, err
	}
	return &offering, nil
}

func (r *OfferingRepositoryImpl) Update(db *gorm.DB, offering *models.CulturalOffering) error {
	result := db.Save(offering)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOfferingNotFound
	}
	return nil
}

func (r *OfferingRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.CulturalOffering{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOfferingNotFound
	}
	return nil
}

func (r *OfferingRepositoryImpl) FindByHost(db *gorm.DB, hostID string, page, pageSize int) ([]models.CulturalOffering, int64, error) {
	var offerings []models.CulturalOffering
	query := db.Model(&models.CulturalOffering{}).Where("host_id = ?", hostID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&offerings).Error

	return offerings, total, err
}

// orderClause маппит ключ сортировки в ORDER BY. Неизвестный ключ падает
// в дефолт: лучший рейтинг, при равном — более бронируемые.
func orderClause(sort string) string {
	switch sort {
	case SortPriceLow:
		return "price_amount ASC"
	case SortPriceHigh:
		return "price_amount DESC"
	case SortRating:
		return "rating_average DESC, rating_count DESC"
	case SortNewest:
		return "created_at DESC"
	case SortPopular:
		return "booking_count DESC, rating_average DESC"
	default:
		return "rating_average DESC, booking_count DESC"
	}
}

// likeOp возвращает регистронезависимый LIKE для текущего диалекта.
// В mysql обычный LIKE нечувствителен к регистру на стандартных коллациях.
func likeOp(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "ILIKE"
	}
	return "LIKE"
}

// jsonTextCast приводит JSON-колонку к тексту для LIKE-поиска по ней.
func jsonTextCast(db *gorm.DB) func(column string) string {
	if db.Dialector.Name() == "postgres" {
		return func(column string) string { return column + "::text" }
	}
	return func(column string) string { return "CAST(" + column + " AS CHAR)" }
}

func (r *OfferingRepositoryImpl) Search(db *gorm.DB, criteria OfferingSearchCriteria) ([]models.CulturalOffering, int64, error) {
	var offerings []models.CulturalOffering

	like := likeOp(db)
	jsonText := jsonTextCast(db)

	// Каталог показывает только живые и одобренные офферы, без исключений.
	query := db.Model(&models.CulturalOffering{}).
		Where("is_active = ? AND is_approved = ?", true, true)

	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.City != "" {
		query = query.Where("city "+like+" ?", "%"+criteria.City+"%")
	}
	if criteria.Region != "" {
		query = query.Where("region "+like+" ?", "%"+criteria.Region+"%")
	}
	if criteria.MinPrice != nil {
		query = query.Where("price_amount >= ?", *criteria.MinPrice)
	}
	if criteria.MaxPrice != nil {
		query = query.Where("price_amount <= ?", *criteria.MaxPrice)
	}
	if criteria.MinRating != nil {
		query = query.Where("rating_average >= ?", *criteria.MinRating)
	}
	if criteria.MinGuests > 0 {
		query = query.Where("max_guests >= ?", criteria.MinGuests)
	}
	if criteria.Difficulty != "" {
		query = query.Where("difficulty = ?", criteria.Difficulty)
	}
	if criteria.Language != "" {
		// languages хранится как JSON-массив строк, ищем точное вхождение кода.
		query = query.Where(jsonText("languages")+" LIKE ?", `%"`+criteria.Language+`"%`)
	}
	if criteria.Search != "" {
		search := "%" + criteria.Search + "%"
		query = query.Where(
			"title "+like+" ? OR description "+like+" ? OR city "+like+" ? OR region "+like+" ? OR "+jsonText("tags")+" "+like+" ?",
			search, search, search, search, search,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Host").Preload("Host.HostProfile").
		Order(orderClause(criteria.Sort)).
		Limit(criteria.PageSize).Offset((criteria.Page - 1) * criteria.PageSize).
		Find(&offerings).Error

	return offerings, total, err
}

func (r *OfferingRepositoryImpl) FindFeatured(db *gorm.DB, limit int) ([]models.CulturalOffering, error) {
	var offerings []models.CulturalOffering
	err := db.Preload("Host").Preload("Host.HostProfile").
		Where("is_active = ? AND is_approved = ?", true, true).
		Order("rating_average DESC, booking_count DESC").
		Limit(limit).
		Find(&offerings).Error
	return offerings, err
}

func (r *OfferingRepositoryImpl) AggregateCategories(db *gorm.DB) ([]CategorySummary, error) {
	var summaries []CategorySummary
	err := db.Model(&models.CulturalOffering{}).
		Select("category, COUNT(*) AS count, AVG(price_amount) AS avg_price, AVG(rating_average) AS avg_rating").
		Where("is_active = ? AND is_approved = ?", true, true).
		Group("category").
		Order("count DESC").
		Scan(&summaries).Error
	return summaries, err
}

func (r *OfferingRepositoryImpl) AggregateLocations(db *gorm.DB) ([]LocationSummary, error) {
	var summaries []LocationSummary
	err := db.Model(&models.CulturalOffering{}).
		Select("city, region, COUNT(*) AS count, AVG(price_amount) AS avg_price").
		Where("is_active = ? AND is_approved = ?", true, true).
		Group("city, region").
		Order("count DESC").
		Scan(&summaries).Error
	return summaries, err
}

// IncrementBookingCount вызывается только внутри транзакции завершения брони.
func (r *OfferingRepositoryImpl) IncrementBookingCount(db *gorm.DB, id string) error {
	result := db.Model(&models.CulturalOffering{}).
		Where("id = ?", id).
		UpdateColumn("booking_count", gorm.Expr("booking_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOfferingNotFound
	}
	return nil
}

func (r *OfferingRepositoryImpl) SetApproval(db *gorm.DB, id string, approved bool) error {
	result := db.Model(&models.CulturalOffering{}).
		Where("id = ?", id).
		UpdateColumn("is_approved", approved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOfferingNotFound
	}
	return nil
}

func (r *OfferingRepositoryImpl) FindPendingApproval(db *gorm.DB, page, pageSize int) ([]models.CulturalOffering, int64, error) {
	var offerings []models.CulturalOffering
	query := db.Model(&models.CulturalOffering{}).Where("is_approved = ?", false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Host").
		Order("created_at ASC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&offerings).Error

	return offerings, total, err
}
