package models

import "time"

type User struct {
	BaseModel
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	Role              UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status            UserStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Phone             string     `json:"phone"`
	Country           string     `json:"country"`
	IsVerified        bool       `gorm:"default:false" json:"is_verified"`
	VerificationToken string     `json:"-"`
	ResetToken        string     `json:"-"`
	ResetTokenExp     *time.Time `json:"-"`

	// Relations
	HostProfile   *HostProfile   `gorm:"foreignKey:UserID" json:"host_profile,omitempty"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}

// HostProfile хранит публичные данные хозяина предложения.
// RatingAverage/RatingCount денормализуются в результаты /explore.
type HostProfile struct {
	BaseModel
	UserID          string  `gorm:"not null;uniqueIndex" json:"user_id"`
	DisplayName     string  `gorm:"not null" json:"display_name"`
	Bio             string  `json:"bio"`
	City            string  `json:"city"`
	YearsExperience int     `gorm:"default:0" json:"years_experience"`
	RatingAverage   float64 `gorm:"default:0" json:"rating_average"`
	RatingCount     int     `gorm:"default:0" json:"rating_count"`
	IsVerified      bool    `gorm:"default:false" json:"is_verified"`
}
