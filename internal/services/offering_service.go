package services

import (
	"encoding/json"
	"errors"

	"guzo_backend/internal/i18n"
	"guzo_backend/internal/models"
	"guzo_backend/internal/repositories"
	"guzo_backend/internal/services/dto"
	"guzo_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OfferingService interface {
	Create(db *gorm.DB, hostID string, req *dto.CreateOfferingRequest) (*dto.OfferingDTO, error)
	GetByID(db *gorm.DB, id string, loc *i18n.Localizer) (*dto.OfferingDTO, error)
	GetVisibleByID(db *gorm.DB, id string, loc *i18n.Localizer) (*dto.OfferingDTO, error)
	Update(db *gorm.DB, hostID, id string, req *dto.UpdateOfferingRequest) (*dto.OfferingDTO, error)
	Delete(db *gorm.DB, hostID, id string) error
	ListByHost(db *gorm.DB, hostID string, page, pageSize int) (*models.PaginatedResponse, error)

	// Admin operations
	Approve(db *gorm.DB, id string, approved bool) error
	ListPendingApproval(db *gorm.DB, page, pageSize int) (*models.PaginatedResponse, error)
}

type offeringService struct {
	offeringRepo repositories.OfferingRepository
}

func NewOfferingService(offeringRepo repositories.OfferingRepository) OfferingService {
	return &offeringService{offeringRepo: offeringRepo}
}

func (s *offeringService) Create(db *gorm.DB, hostID string, req *dto.CreateOfferingRequest) (*dto.OfferingDTO, error) {
	currency := req.PriceCurrency
	if currency == "" {
		currency = i18n.BaseCurrency
	}

	offering := &models.CulturalOffering{
		HostID:        hostID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Difficulty:    req.Difficulty,
		PriceAmount:   req.PriceAmount,
		PriceCurrency: currency,
		City:          req.City,
		Region:        req.Region,
		Lat:           req.Latitude,
		Lng:           req.Longitude,
		Images:        mustJSON(req.Images),
		Languages:     mustJSON(req.Languages),
		Tags:          mustJSON(req.Tags),
		MaxGuests:     req.MaxGuests,
		DurationHours: req.DurationHours,
		IsActive:      true,
		IsApproved:    false,
	}

	if err := s.offeringRepo.Create(db, offering); err != nil {
		return nil, err
	}

	d := buildOfferingDTO(offering, nil)
	return &d, nil
}

func (s *offeringService) GetByID(db *gorm.DB, id string, loc *i18n.Localizer) (*dto.OfferingDTO, error) {
	offering, err := s.offeringRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrOfferingNotFound) {
			return nil, apperrors.ErrOfferingNotFound
		}
		return nil, err
	}
	d := buildOfferingDTO(offering, loc)
	return &d, nil
}

func (s *offeringService) GetVisibleByID(db *gorm.DB, id string, loc *i18n.Localizer) (*dto.OfferingDTO, error) {
	offering, err := s.offeringRepo.FindVisibleByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrOfferingNotFound) {
			return nil, apperrors.ErrOfferingNotFound
		}
		return nil, err
	}
	d := buildOfferingDTO(offering, loc)
	return &d, nil
}

func (s *offeringService) Update(db *gorm.DB, hostID, id string, req *dto.UpdateOfferingRequest) (*dto.OfferingDTO, error) {
	offering, err := s.offeringRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrOfferingNotFound) {
			return nil, apperrors.ErrOfferingNotFound
		}
		return nil, err
	}

	if offering.HostID != hostID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Title != nil {
		offering.Title = *req.Title
	}
	if req.Description != nil {
		offering.Description = *req.Description
	}
	if req.Category != nil {
		offering.Category = *req.Category
	}
	if req.Difficulty != nil {
		offering.Difficulty = *req.Difficulty
	}
	if req.PriceAmount != nil {
		offering.PriceAmount = *req.PriceAmount
	}
	if req.City != nil {
		offering.City = *req.City
	}
	if req.Region != nil {
		offering.Region = *req.Region
	}
	if req.Latitude != nil {
		offering.Lat = *req.Latitude
	}
	if req.Longitude != nil {
		offering.Lng = *req.Longitude
	}
	if req.Images != nil {
		offering.Images = mustJSON(*req.Images)
	}
	if req.Languages != nil {
		offering.Languages = mustJSON(*req.Languages)
	}
	if req.Tags != nil {
		offering.Tags = mustJSON(*req.Tags)
	}
	if req.MaxGuests != nil {
		offering.MaxGuests = *req.MaxGuests
	}
	if req.DurationHours != nil {
		offering.DurationHours = *req.DurationHours
	}
	if req.IsActive != nil {
		offering.IsActive = *req.IsActive
	}

	if err := s.offeringRepo.Update(db, offering); err != nil {
		return nil, err
	}

	d := buildOfferingDTO(offering, nil)
	return &d, nil
}

func (s *offeringService) Delete(db *gorm.DB, hostID, id string) error {
	offering, err := s.offeringRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrOfferingNotFound) {
			return apperrors.ErrOfferingNotFound
		}
		return err
	}

	if offering.HostID != hostID {
		return apperrors.ErrInsufficientPermissions
	}

	return s.offeringRepo.Delete(db, id)
}

func (s *offeringService) ListByHost(db *gorm.DB, hostID string, page, pageSize int) (*models.PaginatedResponse, error) {
	offerings, total, err := s.offeringRepo.FindByHost(db, hostID, page, pageSize)
	if err != nil {
		return nil, err
	}

	dtos := make([]dto.OfferingDTO, 0, len(offerings))
	for i := range offerings {
		dtos = append(dtos, buildOfferingDTO(&offerings[i], nil))
	}

	return &models.PaginatedResponse{
		Data:       dtos,
		Pagination: models.NewPagination(page, pageSize, total),
	}, nil
}

func (s *offeringService) Approve(db *gorm.DB, id string, approved bool) error {
	err := s.offeringRepo.SetApproval(db, id, approved)
	if errors.Is(err, repositories.ErrOfferingNotFound) {
		return apperrors.ErrOfferingNotFound
	}
	return err
}

func (s *offeringService) ListPendingApproval(db *gorm.DB, page, pageSize int) (*models.PaginatedResponse, error) {
	offerings, total, err := s.offeringRepo.FindPendingApproval(db, page, pageSize)
	if err != nil {
		return nil, err
	}

	dtos := make([]dto.OfferingDTO, 0, len(offerings))
	for i := range offerings {
		dtos = append(dtos, buildOfferingDTO(&offerings[i], nil))
	}

	return &models.PaginatedResponse{
		Data:       dtos,
		Pagination: models.NewPagination(page, pageSize, total),
	}, nil
}

// buildOfferingDTO собирает карточку оффера. С локализатором цена
// дополнительно конвертируется и форматируется в валюте запроса.
func buildOfferingDTO(o *models.CulturalOffering, loc *i18n.Localizer) dto.OfferingDTO {
	d := dto.OfferingDTO{
		ID:            o.ID,
		HostID:        o.HostID,
		Title:         o.Title,
		Description:   o.Description,
		Category:      o.Category,
		Difficulty:    o.Difficulty,
		PriceAmount:   o.PriceAmount,
		PriceCurrency: o.PriceCurrency,
		City:          o.City,
		Region:        o.Region,
		Latitude:      o.Lat,
		Longitude:     o.Lng,
		MainImage:     o.MainImage(),
		Languages:     o.LanguageList(),
		MaxGuests:     o.MaxGuests,
		DurationHours: o.DurationHours,
		RatingAverage: o.RatingAverage,
		RatingCount:   o.RatingCount,
		BookingCount:  o.BookingCount,
		IsActive:      o.IsActive,
		IsApproved:    o.IsApproved,
		CreatedAt:     o.CreatedAt,
	}

	if len(o.Images) > 0 {
		var images []models.OfferingImage
		if err := json.Unmarshal(o.Images, &images); err == nil {
			d.Images = images
		}
	}
	if len(o.Tags) > 0 {
		var tags []string
		if err := json.Unmarshal(o.Tags, &tags); err == nil {
			d.Tags = tags
		}
	}

	// Денормализация рейтинга хоста в карточку каталога.
	if o.Host != nil {
		if o.Host.HostProfile != nil {
			d.HostName = o.Host.HostProfile.DisplayName
			d.HostRating = o.Host.HostProfile.RatingAverage
			d.HostExperience = o.Host.HostProfile.YearsExperience
			d.HostVerified = o.Host.HostProfile.IsVerified
		} else {
			d.HostName = o.Host.FirstName + " " + o.Host.LastName
		}
	}

	if loc != nil {
		d.PriceAmount = loc.Convert(o.PriceAmount)
		d.PriceCurrency = loc.Currency
		d.DisplayPrice = loc.FormatPrice(o.PriceAmount)
	}

	return d
}

// mustJSON сериализует значение в JSON-колонку. На вход идут уже
// провалидированные структуры, ошибка здесь невозможна.
func mustJSON(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}
