package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// OfferingImage - элемент JSON-колонки images. Ровно одно изображение
// помечается IsMain; mainImage в ответах /explore берет его, иначе первое.
type OfferingImage struct {
	URL    string `json:"url"`
	IsMain bool   `json:"is_main"`
}

// CulturalOffering - бронируемая культурная активность ("тур").
// Видимость наружу: только IsActive && IsApproved.
type CulturalOffering struct {
	BaseModel
	HostID      string `gorm:"not null;index" json:"host_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"index" json:"category"`
	Difficulty  string `gorm:"type:varchar(20)" json:"difficulty"` // easy, moderate, challenging

	PriceAmount   float64 `gorm:"not null" json:"price_amount"`
	PriceCurrency string  `gorm:"type:varchar(3);default:'ETB'" json:"price_currency"`

	City   string  `gorm:"index" json:"city"`
	Region string  `gorm:"index" json:"region"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`

	Images    datatypes.JSON `json:"images"`
	Languages datatypes.JSON `json:"languages"`
	Tags      datatypes.JSON `json:"tags"`

	MaxGuests     int     `gorm:"default:1" json:"max_guests"`
	DurationHours float64 `json:"duration_hours"`

	RatingAverage float64 `gorm:"default:0" json:"rating_average"`
	RatingCount   int     `gorm:"default:0" json:"rating_count"`
	BookingCount  int     `gorm:"default:0" json:"booking_count"`

	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsApproved bool `gorm:"default:false" json:"is_approved"`

	// Relations
	Host *User `gorm:"foreignKey:HostID" json:"-"`
}

// MainImage возвращает URL изображения с флагом main, иначе первого.
func (o *CulturalOffering) MainImage() string {
	var images []OfferingImage
	if len(o.Images) == 0 {
		return ""
	}
	if err := json.Unmarshal(o.Images, &images); err != nil || len(images) == 0 {
		return ""
	}
	for _, img := range images {
		if img.IsMain {
			return img.URL
		}
	}
	return images[0].URL
}

// LanguageList декодирует JSON-колонку languages.
func (o *CulturalOffering) LanguageList() []string {
	var langs []string
	if len(o.Languages) == 0 {
		return nil
	}
	if err := json.Unmarshal(o.Languages, &langs); err != nil {
		return nil
	}
	return langs
}

// IsBookable: предложение видно и может приниматься к бронированию.
func (o *CulturalOffering) IsBookable() bool {
	return o.IsActive && o.IsApproved
}
