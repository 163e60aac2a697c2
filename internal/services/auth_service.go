package services

import (
	"errors"
	"time"

	"guzo_backend/internal/auth"
	"guzo_backend/internal/email"
	"guzo_backend/internal/logger"
	"guzo_backend/internal/models"
	"guzo_backend/internal/repositories"
	"guzo_backend/internal/services/dto"
	"guzo_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	VerifyEmail(db *gorm.DB, token string) error
	ResendVerification(db *gorm.DB, email string) error
	RequestPasswordReset(db *gorm.DB, email string) error
	ConfirmPasswordReset(db *gorm.DB, token, newPassword string) error
}

type authService struct {
	userRepo repositories.UserRepository
	email    email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, emailProvider email.Provider) AuthService {
	return &authService{
		userRepo: userRepo,
		email:    emailProvider,
	}
}

func (s *authService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Role != models.UserRoleTourist && req.Role != models.UserRoleHost {
		return nil, apperrors.ErrInvalidUserRole
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:             req.Email,
		PasswordHash:      hash,
		Role:              req.Role,
		Status:            models.UserStatusPending,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		Country:           req.Country,
		VerificationToken: uuid.NewString(),
	}

	// Юзер, хост-профиль и refresh-токен создаются одной транзакцией.
	var resp *dto.AuthResponse
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			if errors.Is(err, repositories.ErrUserAlreadyExists) {
				return apperrors.ErrEmailAlreadyExists
			}
			return err
		}

		if req.Role == models.UserRoleHost {
			profile := &models.HostProfile{
				UserID:      user.ID,
				DisplayName: req.DisplayName,
				City:        req.City,
			}
			if err := s.userRepo.CreateHostProfile(tx, profile); err != nil {
				return err
			}
			user.HostProfile = profile
		}

		tokens, err := s.issueTokens(tx, user)
		if err != nil {
			return err
		}
		resp = tokens
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Письмо шлём вне транзакции, падение SMTP не должно откатывать регистрацию.
	if s.email != nil {
		if err := s.email.SendVerification(user.Email, user.VerificationToken); err != nil {
			logger.Warn("failed to send verification email", "email", user.Email, "error", err)
		}
	}

	return resp, nil
}

func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrUserSuspended
	}

	return s.issueTokens(db, user)
}

func (s *authService) RefreshToken(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(db, refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if stored.ExpiresAt.Before(time.Now()) {
		_ = s.userRepo.DeleteRefreshToken(db, refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrUserSuspended
	}

	// Ротация: старый токен гасим, взамен выдаём новый.
	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(db, user)
}

func (s *authService) Logout(db *gorm.DB, refreshToken string) error {
	err := s.userRepo.DeleteRefreshToken(db, refreshToken)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}
	return nil
}

func (s *authService) VerifyEmail(db *gorm.DB, token string) error {
	user, err := s.userRepo.FindByVerificationToken(db, token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}
	return s.userRepo.VerifyUser(db, user.ID)
}

// ResendVerification выдает свежий токен. Ответ одинаковый для
// несуществующих и уже верифицированных аккаунтов.
func (s *authService) ResendVerification(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if user.IsVerified {
		return nil
	}

	token := uuid.NewString()
	if err := s.userRepo.SetVerificationToken(db, user.ID, token); err != nil {
		return err
	}

	if s.email != nil {
		if err := s.email.SendVerification(user.Email, token); err != nil {
			logger.Warn("failed to send verification email", "email", user.Email, "error", err)
		}
	}
	return nil
}

func (s *authService) RequestPasswordReset(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		// Не раскрываем, существует ли аккаунт.
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return err
	}

	exp := time.Now().Add(1 * time.Hour)
	user.ResetToken = uuid.NewString()
	user.ResetTokenExp = &exp

	if err := s.userRepo.Update(db, user); err != nil {
		return err
	}

	if s.email != nil {
		data := email.TemplateData{
			"Name":    user.FirstName,
			"Subject": "Password reset",
			"Body":    "Use this token to reset your password: " + user.ResetToken,
		}
		if err := s.email.SendTemplate([]string{user.Email}, "Password reset", "notification", data); err != nil {
			logger.Warn("failed to send reset email", "email", user.Email, "error", err)
		}
	}

	return nil
}

func (s *authService) ConfirmPasswordReset(db *gorm.DB, token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(db, token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetTokenExp = nil

	if err := s.userRepo.Update(db, user); err != nil {
		return err
	}

	// После смены пароля все сессии закрываются.
	return s.userRepo.DeleteUserRefreshTokens(db, user.ID)
}

func (s *authService) issueTokens(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.userRepo.CreateRefreshToken(db, refresh); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		User:         dto.NewUserDTO(user),
	}, nil
}
