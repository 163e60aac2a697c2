package dto

import (
	"time"

	"guzo_backend/internal/models"
)

// UserDTO - публичное представление пользователя
type UserDTO struct {
	ID         string            `json:"id"`
	Email      string            `json:"email"`
	Role       models.UserRole   `json:"role"`
	Status     models.UserStatus `json:"status"`
	FirstName  string            `json:"firstName"`
	LastName   string            `json:"lastName"`
	Phone      string            `json:"phone,omitempty"`
	Country    string            `json:"country,omitempty"`
	IsVerified bool              `json:"isVerified"`
	Host       *HostProfileDTO   `json:"host,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// HostProfileDTO - публичная карточка хоста
type HostProfileDTO struct {
	DisplayName     string  `json:"displayName"`
	Bio             string  `json:"bio,omitempty"`
	City            string  `json:"city"`
	YearsExperience int     `json:"yearsExperience"`
	RatingAverage   float64 `json:"ratingAverage"`
	RatingCount     int     `json:"ratingCount"`
	IsVerified      bool    `json:"isVerified"`
}

// UpdateProfileRequest - частичное обновление профиля
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Country   *string `json:"country,omitempty"`
}

// UpdateHostProfileRequest - обновление карточки хоста
type UpdateHostProfileRequest struct {
	DisplayName     *string `json:"displayName,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	City            *string `json:"city,omitempty"`
	YearsExperience *int    `json:"yearsExperience,omitempty" binding:"omitempty,gte=0"`
}

// ChangePasswordRequest - смена пароля залогиненным пользователем
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ListUsersRequest - админский листинг пользователей
type ListUsersRequest struct {
	Role     string `form:"role" validate:"omitempty,is-user-role"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// NewUserDTO конвертирует модель в DTO, скрывая служебные поля.
func NewUserDTO(user *models.User) UserDTO {
	d := UserDTO{
		ID:         user.ID,
		Email:      user.Email,
		Role:       user.Role,
		Status:     user.Status,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Phone:      user.Phone,
		Country:    user.Country,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
	if user.HostProfile != nil {
		d.Host = &HostProfileDTO{
			DisplayName:     user.HostProfile.DisplayName,
			Bio:             user.HostProfile.Bio,
			City:            user.HostProfile.City,
			YearsExperience: user.HostProfile.YearsExperience,
			RatingAverage:   user.HostProfile.RatingAverage,
			RatingCount:     user.HostProfile.RatingCount,
			IsVerified:      user.HostProfile.IsVerified,
		}
	}
	return d
}
