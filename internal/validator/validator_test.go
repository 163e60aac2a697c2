package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exploreQuery struct {
	Page      int     `form:"page" json:"page" validate:"omitempty,min=1"`
	Limit     int     `form:"limit" json:"limit" validate:"omitempty,min=1,max=50"`
	MinRating float64 `form:"minRating" json:"minRating" validate:"omitempty,gte=0,lte=5"`
	Sort      string  `form:"sort" json:"sort" validate:"omitempty,is-sort-key"`
	Currency  string  `form:"currency" json:"currency" validate:"omitempty,is-currency"`
}

func TestValidateExploreQuery(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&exploreQuery{Page: 1, Limit: 50, Sort: "price_low", Currency: "ETB"}))
	assert.NoError(t, v.Validate(&exploreQuery{}), "all fields optional")

	err := v.Validate(&exploreQuery{Limit: 51})
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "limit", "error keyed by form/json field name")

	err = v.Validate(&exploreQuery{Sort: "cheapest"})
	require.Error(t, err)
	vErr = err.(*ValidationError)
	assert.Contains(t, vErr.Errors["sort"], "price_low")

	err = v.Validate(&exploreQuery{MinRating: 5.5})
	require.Error(t, err)

	err = v.Validate(&exploreQuery{Currency: "KZT"})
	require.Error(t, err)
}

type registerBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,is-user-role"`
}

func TestValidateRegisterBody(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&registerBody{Email: "a@b.et", Password: "secret123", Role: "tourist"}))

	err := v.Validate(&registerBody{Email: "not-an-email", Password: "short", Role: "wizard"})
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Len(t, vErr.Errors, 3)
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "Must be a valid user role (tourist or host)", vErr.Errors["role"])
}
