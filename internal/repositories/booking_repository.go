package repositories

import (
	"errors"
	"time"

	"guzo_backend/internal/models"

	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingFilter struct {
	Status   models.BookingStatus
	Page     int
	PageSize int
}

type BookingRepository interface {
	Create(db *gorm.DB, booking *models.Booking) error
	FindByID(db *gorm.DB, id string) (*models.Booking, error)
	FindByTourist(db *gorm.DB, touristID string, filter BookingFilter) ([]models.Booking, int64, error)
	FindByHost(db *gorm.DB, hostID string, filter BookingFilter) ([]models.Booking, int64, error)
	Update(db *gorm.DB, booking *models.Booking) error
	SumGuestsOnDate(db *gorm.DB, offeringID string, date time.Time, timeSlot string) (int64, error)
}

type BookingRepositoryImpl struct{}

func NewBookingRepository() BookingRepository {
	return &BookingRepositoryImpl{}
}

func (r *BookingRepositoryImpl) Create(db *gorm.DB, booking *models.Booking) error {
	return db.Create(booking).Error
}

func (r *BookingRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Booking, error) {
	var booking models.Booking
	err := db.Preload("Offering").Preload("Tourist").Preload("Host").Preload("Payment").
		First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) FindByTourist(db *gorm.DB, touristID string, filter BookingFilter) ([]models.Booking, int64, error) {
	return r.findByParty(db, "tourist_id", touristID, filter)
}

func (r *BookingRepositoryImpl) FindByHost(db *gorm.DB, hostID string, filter BookingFilter) ([]models.Booking, int64, error) {
	return r.findByParty(db, "host_id", hostID, filter)
}

func (r *BookingRepositoryImpl) findByParty(db *gorm.DB, column, id string, filter BookingFilter) ([]models.Booking, int64, error) {
	var bookings []models.Booking
	query := db.Model(&models.Booking{}).Where(column+" = ?", id)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Offering").Preload("Payment").
		Order("created_at DESC").
		Limit(filter.PageSize).Offset((filter.Page - 1) * filter.PageSize).
		Find(&bookings).Error

	return bookings, total, err
}

func (r *BookingRepositoryImpl) Update(db *gorm.DB, booking *models.Booking) error {
	result := db.Save(booking)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// SumGuestsOnDate суммирует гостей живых броней (pending + confirmed)
// на дату/слот. Сервис сравнивает сумму с max_guests оффера перед
// созданием новой брони.
func (r *BookingRepositoryImpl) SumGuestsOnDate(db *gorm.DB, offeringID string, date time.Time, timeSlot string) (int64, error) {
	var total int64
	err := db.Model(&models.Booking{}).
		Select("COALESCE(SUM(guests), 0)").
		Where("offering_id = ? AND date = ? AND time_slot = ?", offeringID, date, timeSlot).
		Where("status IN ?", []models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Scan(&total).Error
	return total, err
}
