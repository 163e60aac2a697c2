package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		sort string
		want string
	}{
		{SortPriceLow, "price_amount ASC"},
		{SortPriceHigh, "price_amount DESC"},
		{SortRating, "rating_average DESC, rating_count DESC"},
		{SortNewest, "created_at DESC"},
		{SortPopular, "booking_count DESC, rating_average DESC"},
		{"", "rating_average DESC, booking_count DESC"},
		{"garbage", "rating_average DESC, booking_count DESC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, orderClause(tt.sort), "sort=%q", tt.sort)
	}
}
