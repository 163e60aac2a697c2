package models

import (
	"time"

	"gorm.io/datatypes"
)

// Booking связывает туриста, хозяина и предложение.
// TotalAmount всегда вычисляется на сервере: price * guests.
type Booking struct {
	BaseModel
	TouristID  string `gorm:"not null;index" json:"tourist_id"`
	HostID     string `gorm:"not null;index" json:"host_id"`
	OfferingID string `gorm:"not null;index" json:"offering_id"`

	Date     time.Time `gorm:"not null" json:"date"`
	TimeSlot string    `json:"time_slot"`

	Guests       int            `gorm:"not null" json:"guests"`
	GuestDetails datatypes.JSON `json:"guest_details"`

	ContactName  string `gorm:"not null" json:"contact_name"`
	ContactEmail string `gorm:"not null" json:"contact_email"`
	ContactPhone string `json:"contact_phone"`

	TotalAmount float64 `gorm:"not null" json:"total_amount"`
	Currency    string  `gorm:"type:varchar(3);default:'ETB'" json:"currency"`

	Status          BookingStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	HostResponse    string        `json:"host_response"`
	RejectionReason string        `json:"rejection_reason"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	// Relations
	Offering *CulturalOffering `gorm:"foreignKey:OfferingID" json:"offering,omitempty"`
	Tourist  *User             `gorm:"foreignKey:TouristID" json:"-"`
	Host     *User             `gorm:"foreignKey:HostID" json:"-"`
	Payment  *Payment          `gorm:"foreignKey:BookingID" json:"payment,omitempty"`
}

// GuestDetail - элемент JSON-колонки guest_details.
type GuestDetail struct {
	Name string `json:"name"`
	Age  int    `json:"age,omitempty"`
}
