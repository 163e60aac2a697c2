package models

import (
	"time"
)

type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PaginatedResponse - единый блок пагинации для списковых эндпоинтов.
// Pages == ceil(Total/Limit); HasNext/HasPrev вычисляются от Current.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// NewPagination считает производные поля пагинации.
func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Current: page,
		Pages:   pages,
		Total:   total,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}
