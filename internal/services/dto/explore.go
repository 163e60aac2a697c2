package dto

import "guzo_backend/internal/repositories"

// ExploreRequest - query-параметры страницы каталога
type ExploreRequest struct {
	Category   string   `form:"category"`
	City       string   `form:"city"`
	Region     string   `form:"region"`
	MinPrice   *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice   *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	MinRating  *float64 `form:"minRating" binding:"omitempty,gte=0,lte=5"`
	MinGuests  int      `form:"minGuests" binding:"omitempty,min=1"`
	Language   string   `form:"language"`
	Difficulty string   `form:"difficulty" validate:"omitempty,is-difficulty"`
	Search     string   `form:"search"`
	Sort       string   `form:"sort" validate:"omitempty,is-sort-key"`
	Page       int      `form:"page" binding:"omitempty,min=1"`
	Limit      int      `form:"limit" binding:"omitempty,min=1,max=50"`
}

// ExploreMetaResponse - агрегаты для панели фильтров
type ExploreMetaResponse struct {
	Categories []repositories.CategorySummary `json:"categories"`
	Locations  []repositories.LocationSummary `json:"locations"`
}
