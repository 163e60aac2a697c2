package dto

import (
	"time"

	"guzo_backend/internal/models"
)

// CreateOfferingRequest - создание предложения хостом
type CreateOfferingRequest struct {
	Title         string                 `json:"title" binding:"required,min=3,max=200"`
	Description   string                 `json:"description" binding:"required,min=10"`
	Category      string                 `json:"category" binding:"required"`
	Difficulty    string                 `json:"difficulty" binding:"required" validate:"is-difficulty"`
	PriceAmount   float64                `json:"priceAmount" binding:"required,gt=0"`
	PriceCurrency string                 `json:"priceCurrency,omitempty" validate:"omitempty,is-currency"`
	City          string                 `json:"city" binding:"required"`
	Region        string                 `json:"region" binding:"required"`
	Latitude      float64                `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude     float64                `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Images        []models.OfferingImage `json:"images,omitempty"`
	Languages     []string               `json:"languages" binding:"required,min=1"`
	Tags          []string               `json:"tags,omitempty"`
	MaxGuests     int                    `json:"maxGuests" binding:"required,min=1"`
	DurationHours float64                `json:"durationHours" binding:"required,gt=0"`
}

// UpdateOfferingRequest - частичное обновление, nil поля не трогаем
type UpdateOfferingRequest struct {
	Title         *string                 `json:"title,omitempty" binding:"omitempty,min=3,max=200"`
	Description   *string                 `json:"description,omitempty" binding:"omitempty,min=10"`
	Category      *string                 `json:"category,omitempty"`
	Difficulty    *string                 `json:"difficulty,omitempty" validate:"omitempty,is-difficulty"`
	PriceAmount   *float64                `json:"priceAmount,omitempty" binding:"omitempty,gt=0"`
	City          *string                 `json:"city,omitempty"`
	Region        *string                 `json:"region,omitempty"`
	Latitude      *float64                `json:"latitude,omitempty" binding:"omitempty,gte=-90,lte=90"`
	Longitude     *float64                `json:"longitude,omitempty" binding:"omitempty,gte=-180,lte=180"`
	Images        *[]models.OfferingImage `json:"images,omitempty"`
	Languages     *[]string               `json:"languages,omitempty"`
	Tags          *[]string               `json:"tags,omitempty"`
	MaxGuests     *int                    `json:"maxGuests,omitempty" binding:"omitempty,min=1"`
	DurationHours *float64                `json:"durationHours,omitempty" binding:"omitempty,gt=0"`
	IsActive      *bool                   `json:"isActive,omitempty"`
}

// OfferingDTO - карточка предложения для каталога и деталки.
// Цена дублируется в валюте запроса, displayPrice уже отформатирован.
type OfferingDTO struct {
	ID             string                 `json:"id"`
	HostID         string                 `json:"hostId"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Category       string                 `json:"category"`
	Difficulty     string                 `json:"difficulty"`
	PriceAmount    float64                `json:"priceAmount"`
	PriceCurrency  string                 `json:"priceCurrency"`
	DisplayPrice   string                 `json:"displayPrice"`
	City           string                 `json:"city"`
	Region         string                 `json:"region"`
	Latitude       float64                `json:"latitude,omitempty"`
	Longitude      float64                `json:"longitude,omitempty"`
	MainImage      string                 `json:"mainImage,omitempty"`
	Images         []models.OfferingImage `json:"images,omitempty"`
	Languages      []string               `json:"languages"`
	Tags           []string               `json:"tags,omitempty"`
	MaxGuests      int                    `json:"maxGuests"`
	DurationHours  float64                `json:"durationHours"`
	RatingAverage  float64                `json:"ratingAverage"`
	RatingCount    int                    `json:"ratingCount"`
	BookingCount   int                    `json:"bookingCount"`
	IsActive       bool                   `json:"isActive"`
	IsApproved     bool                   `json:"isApproved"`
	HostName       string                 `json:"hostName,omitempty"`
	HostRating     float64                `json:"hostRating,omitempty"`
	HostExperience int                    `json:"hostExperience,omitempty"`
	HostVerified   bool                   `json:"hostVerified"`
	CreatedAt      time.Time              `json:"createdAt"`
}
