package repositories

import (
	"errors"
	"time"

	"guzo_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrHostProfileNotFound = errors.New("host profile not found")
)

type UserRepository interface {
	// User operations
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error
	UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error
	VerifyUser(db *gorm.DB, userID string) error
	SetVerificationToken(db *gorm.DB, userID, token string) error
	FindByVerificationToken(db *gorm.DB, token string) (*models.User, error)
	FindByResetToken(db *gorm.DB, token string) (*models.User, error)

	// RefreshToken operations
	CreateRefreshToken(db *gorm.DB, token *models.RefreshToken) error
	FindRefreshToken(db *gorm.DB, token string) (*models.RefreshToken, error)
	DeleteRefreshToken(db *gorm.DB, token string) error
	DeleteUserRefreshTokens(db *gorm.DB, userID string) error
	CleanExpiredRefreshTokens(db *gorm.DB) (int64, error)

	// HostProfile operations
	CreateHostProfile(db *gorm.DB, profile *models.HostProfile) error
	FindHostProfile(db *gorm.DB, userID string) (*models.HostProfile, error)
	UpdateHostProfile(db *gorm.DB, profile *models.HostProfile) error

	// Admin operations
	FindAll(db *gorm.DB, criteria UserFilter) ([]models.User, int64, error)
}

type UserRepositoryImpl struct{}

type UserFilter struct {
	Role       models.UserRole
	Status     models.UserStatus
	IsVerified *bool
	Search     string
	Page       int
	PageSize   int
}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("HostProfile").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Preload("HostProfile").First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	result := db.Model(user).Updates(map[string]interface{}{
		"email":              user.Email,
		"first_name":         user.FirstName,
		"last_name":          user.LastName,
		"phone":              user.Phone,
		"country":            user.Country,
		"password_hash":      user.PasswordHash,
		"status":             user.Status,
		"is_verified":        user.IsVerified,
		"verification_token": user.VerificationToken,
		"reset_token":        user.ResetToken,
		"reset_token_exp":    user.ResetTokenExp,
		"updated_at":         time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// VerifyUser помечает email подтвержденным и гасит одноразовый токен.
func (r *UserRepositoryImpl) VerifyUser(db *gorm.DB, userID string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_verified":        true,
		"status":             models.UserStatusActive,
		"verification_token": "",
		"updated_at":         time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) SetVerificationToken(db *gorm.DB, userID, token string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"verification_token": token,
		"updated_at":         time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindByVerificationToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	err := db.Where("verification_token = ? AND verification_token != ''", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByResetToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	err := db.Where("reset_token = ? AND reset_token_exp > ?", token, time.Now()).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RefreshToken operations

func (r *UserRepositoryImpl) CreateRefreshToken(db *gorm.DB, token *models.RefreshToken) error {
	return db.Create(token).Error
}

func (r *UserRepositoryImpl) FindRefreshToken(db *gorm.DB, token string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	err := db.Where("token = ?", token).First(&refreshToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &refreshToken, nil
}

func (r *UserRepositoryImpl) DeleteRefreshToken(db *gorm.DB, token string) error {
	result := db.Where("token = ?", token).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) DeleteUserRefreshTokens(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}

func (r *UserRepositoryImpl) CleanExpiredRefreshTokens(db *gorm.DB) (int64, error) {
	result := db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

// HostProfile operations

func (r *UserRepositoryImpl) CreateHostProfile(db *gorm.DB, profile *models.HostProfile) error {
	return db.Create(profile).Error
}

func (r *UserRepositoryImpl) FindHostProfile(db *gorm.DB, userID string) (*models.HostProfile, error) {
	var profile models.HostProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHostProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *UserRepositoryImpl) UpdateHostProfile(db *gorm.DB, profile *models.HostProfile) error {
	result := db.Model(profile).Updates(map[string]interface{}{
		"display_name":     profile.DisplayName,
		"bio":              profile.Bio,
		"city":             profile.City,
		"years_experience": profile.YearsExperience,
		"is_verified":      profile.IsVerified,
		"updated_at":       time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHostProfileNotFound
	}
	return nil
}

// Admin operations

func (r *UserRepositoryImpl) FindAll(db *gorm.DB, criteria UserFilter) ([]models.User, int64, error) {
	var users []models.User
	query := db.Model(&models.User{})

	if criteria.Role != "" {
		query = query.Where("role = ?", criteria.Role)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.IsVerified != nil {
		query = query.Where("is_verified = ?", *criteria.IsVerified)
	}
	if criteria.Search != "" {
		search := "%" + criteria.Search + "%"
		query = query.Where("email "+likeOp(db)+" ?", search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Preload("HostProfile").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error

	return users, total, err
}
