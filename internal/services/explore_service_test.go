package services

import (
	"context"
	"testing"

	"guzo_backend/internal/models"
	"guzo_backend/internal/repositories"
	"guzo_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingOfferingRepo запоминает, с чем его вызвали.
type recordingOfferingRepo struct {
	stubOfferingRepo

	lastCriteria   repositories.OfferingSearchCriteria
	featuredLimit  int
	aggregateCalls int
}

func (r *recordingOfferingRepo) Search(_ *gorm.DB, c repositories.OfferingSearchCriteria) ([]models.CulturalOffering, int64, error) {
	r.lastCriteria = c
	return []models.CulturalOffering{*testOffering()}, 1, nil
}

func (r *recordingOfferingRepo) FindFeatured(_ *gorm.DB, limit int) ([]models.CulturalOffering, error) {
	r.featuredLimit = limit
	return []models.CulturalOffering{*testOffering()}, nil
}

func (r *recordingOfferingRepo) AggregateCategories(_ *gorm.DB) ([]repositories.CategorySummary, error) {
	r.aggregateCalls++
	return []repositories.CategorySummary{{Category: "food", Count: 3, AvgPrice: 1200}}, nil
}

func (r *recordingOfferingRepo) AggregateLocations(_ *gorm.DB) ([]repositories.LocationSummary, error) {
	r.aggregateCalls++
	return []repositories.LocationSummary{{City: "Addis Ababa", Region: "Addis Ababa", Count: 5}}, nil
}

func TestExploreSearch_DefaultsAndClamps(t *testing.T) {
	repo := &recordingOfferingRepo{}
	svc := NewExploreService(repo, nil)

	_, err := svc.Search(context.Background(), nil, &dto.ExploreRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastCriteria.Page)
	assert.Equal(t, defaultExploreLimit, repo.lastCriteria.PageSize)

	_, err = svc.Search(context.Background(), nil, &dto.ExploreRequest{Limit: 100, Page: 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.lastCriteria.Page)
	assert.Equal(t, maxExploreLimit, repo.lastCriteria.PageSize)
}

func TestExploreSearch_PassesFilters(t *testing.T) {
	repo := &recordingOfferingRepo{}
	svc := NewExploreService(repo, nil)

	minPrice := 500.0
	req := &dto.ExploreRequest{
		Category: "food",
		City:     "Addis Ababa",
		MinPrice: &minPrice,
		Language: "am",
		Sort:     repositories.SortPriceLow,
	}

	result, err := svc.Search(context.Background(), nil, req, nil)
	require.NoError(t, err)

	assert.Equal(t, "food", repo.lastCriteria.Category)
	assert.Equal(t, "Addis Ababa", repo.lastCriteria.City)
	require.NotNil(t, repo.lastCriteria.MinPrice)
	assert.Equal(t, 500.0, *repo.lastCriteria.MinPrice)
	assert.Equal(t, "am", repo.lastCriteria.Language)
	assert.Equal(t, repositories.SortPriceLow, repo.lastCriteria.Sort)
	assert.Equal(t, int64(1), result.Pagination.Total)
}

func TestExploreFeatured_UsesFixedLimit(t *testing.T) {
	repo := &recordingOfferingRepo{}
	svc := NewExploreService(repo, nil)

	dtos, err := svc.Featured(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, featuredLimit, repo.featuredLimit)
	require.Len(t, dtos, 1)
	assert.Equal(t, "Coffee ceremony in Addis", dtos[0].Title)
}

func TestExploreMeta_WorksWithoutCache(t *testing.T) {
	repo := &recordingOfferingRepo{}
	svc := NewExploreService(repo, nil)

	meta, err := svc.Meta(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, meta.Categories, 1)
	require.Len(t, meta.Locations, 1)
	assert.Equal(t, "food", meta.Categories[0].Category)
	assert.Equal(t, int64(5), meta.Locations[0].Count)
	assert.Equal(t, 2, repo.aggregateCalls)

	// InvalidateMeta без Redis - просто no-op
	svc.InvalidateMeta(context.Background())
}
