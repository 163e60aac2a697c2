package services

import (
	"context"

	"guzo_backend/internal/cache"
	"guzo_backend/internal/i18n"
	"guzo_backend/internal/models"
	"guzo_backend/internal/repositories"
	"guzo_backend/internal/services/dto"

	"gorm.io/gorm"
)

const (
	defaultExploreLimit = 12
	maxExploreLimit     = 50
	featuredLimit       = 8

	cacheKeyCategories = "explore:categories"
	cacheKeyLocations  = "explore:locations"
	cacheKeyFeatured   = "explore:featured"
)

type ExploreService interface {
	Search(ctx context.Context, db *gorm.DB, req *dto.ExploreRequest, loc *i18n.Localizer) (*models.PaginatedResponse, error)
	Featured(ctx context.Context, db *gorm.DB, loc *i18n.Localizer) ([]dto.OfferingDTO, error)
	Meta(ctx context.Context, db *gorm.DB) (*dto.ExploreMetaResponse, error)
	InvalidateMeta(ctx context.Context)
}

type exploreService struct {
	offeringRepo repositories.OfferingRepository
	cache        *cache.Cache
}

func NewExploreService(offeringRepo repositories.OfferingRepository, c *cache.Cache) ExploreService {
	return &exploreService{
		offeringRepo: offeringRepo,
		cache:        c,
	}
}

func (s *exploreService) Search(ctx context.Context, db *gorm.DB, req *dto.ExploreRequest, loc *i18n.Localizer) (*models.PaginatedResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultExploreLimit
	}
	if limit > maxExploreLimit {
		limit = maxExploreLimit
	}

	criteria := repositories.OfferingSearchCriteria{
		Category:   req.Category,
		City:       req.City,
		Region:     req.Region,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		MinRating:  req.MinRating,
		MinGuests:  req.MinGuests,
		Language:   req.Language,
		Difficulty: req.Difficulty,
		Search:     req.Search,
		Sort:       req.Sort,
		Page:       page,
		PageSize:   limit,
	}

	offerings, total, err := s.offeringRepo.Search(db, criteria)
	if err != nil {
		return nil, err
	}

	dtos := make([]dto.OfferingDTO, 0, len(offerings))
	for i := range offerings {
		dtos = append(dtos, buildOfferingDTO(&offerings[i], loc))
	}

	return &models.PaginatedResponse{
		Data:       dtos,
		Pagination: models.NewPagination(page, limit, total),
	}, nil
}

// Featured кэширует сырые записи, а не DTO: цены в DTO зависят от
// локали запроса.
func (s *exploreService) Featured(ctx context.Context, db *gorm.DB, loc *i18n.Localizer) ([]dto.OfferingDTO, error) {
	var offerings []models.CulturalOffering
	if !s.cache.Get(ctx, cacheKeyFeatured, &offerings) {
		var err error
		offerings, err = s.offeringRepo.FindFeatured(db, featuredLimit)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, cacheKeyFeatured, offerings)
	}

	dtos := make([]dto.OfferingDTO, 0, len(offerings))
	for i := range offerings {
		dtos = append(dtos, buildOfferingDTO(&offerings[i], loc))
	}
	return dtos, nil
}

// Meta отдает агрегаты для панели фильтров, с кэшем в Redis.
// Агрегаты не зависят от локали, кэшируем один вариант.
func (s *exploreService) Meta(ctx context.Context, db *gorm.DB) (*dto.ExploreMetaResponse, error) {
	var meta dto.ExploreMetaResponse
	if s.cache.Get(ctx, cacheKeyCategories, &meta.Categories) &&
		s.cache.Get(ctx, cacheKeyLocations, &meta.Locations) {
		return &meta, nil
	}

	categories, err := s.offeringRepo.AggregateCategories(db)
	if err != nil {
		return nil, err
	}
	locations, err := s.offeringRepo.AggregateLocations(db)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cacheKeyCategories, categories)
	s.cache.Set(ctx, cacheKeyLocations, locations)

	meta.Categories = categories
	meta.Locations = locations
	return &meta, nil
}

// InvalidateMeta сбрасывает кэш агрегатов после изменения офферов.
func (s *exploreService) InvalidateMeta(ctx context.Context) {
	s.cache.Invalidate(ctx, cacheKeyCategories, cacheKeyLocations, cacheKeyFeatured)
}
