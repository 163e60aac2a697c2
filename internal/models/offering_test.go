package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestMainImage(t *testing.T) {
	o := &CulturalOffering{}
	assert.Equal(t, "", o.MainImage(), "no images -> empty url")

	o.Images = datatypes.JSON(`[{"url":"a.jpg"},{"url":"b.jpg","is_main":true}]`)
	assert.Equal(t, "b.jpg", o.MainImage(), "image flagged main wins")

	o.Images = datatypes.JSON(`[{"url":"a.jpg"},{"url":"b.jpg"}]`)
	assert.Equal(t, "a.jpg", o.MainImage(), "falls back to first image")
}

func TestIsBookable(t *testing.T) {
	o := &CulturalOffering{IsActive: true, IsApproved: true}
	assert.True(t, o.IsBookable())

	o.IsApproved = false
	assert.False(t, o.IsBookable())

	o.IsApproved = true
	o.IsActive = false
	assert.False(t, o.IsBookable())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(1, 2, 3)
	assert.Equal(t, 1, p.Current)
	assert.Equal(t, 2, p.Pages)
	assert.Equal(t, int64(3), p.Total)
	assert.True(t, p.HasNext)
	assert.False(t, p.HasPrev)

	p = NewPagination(2, 2, 3)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = NewPagination(1, 10, 0)
	assert.Equal(t, 0, p.Pages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}
