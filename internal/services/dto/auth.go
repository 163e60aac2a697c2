package dto

import (
	"guzo_backend/internal/models"
)

// RegisterRequest - запрос регистрации
type RegisterRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     models.UserRole `json:"role" binding:"required" validate:"is-user-role"`

	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone,omitempty"`
	Country   string `json:"country,omitempty"`

	// Поля для хоста
	DisplayName string `json:"displayName,omitempty" binding:"required_if=Role host"`
	City        string `json:"city,omitempty" binding:"required_if=Role host"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest - запрос обновления токена
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest - запрос выхода
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// VerifyEmailRequest - запрос подтверждения email
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// ResendVerificationRequest - повторная отправка письма верификации
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetRequest - запрос сброса пароля
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirm - подтверждение сброса пароля
type PasswordResetConfirm struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// AuthResponse - ответ с токенами
type AuthResponse struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	User         UserDTO `json:"user"`
}
