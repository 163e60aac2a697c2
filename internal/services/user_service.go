package services

import (
	"errors"

	"guzo_backend/internal/auth"
	"guzo_backend/internal/models"
	"guzo_backend/internal/repositories"
	"guzo_backend/internal/services/dto"
	"guzo_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.UserDTO, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error)
	UpdateHostProfile(db *gorm.DB, userID string, req *dto.UpdateHostProfileRequest) (*dto.UserDTO, error)
	ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error

	// Admin operations
	ListUsers(db *gorm.DB, req *dto.ListUsersRequest) (*models.PaginatedResponse, error)
	SetUserStatus(db *gorm.DB, userID string, status models.UserStatus) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(db *gorm.DB, userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, err
	}

	d := dto.NewUserDTO(user)
	return &d, nil
}

func (s *userService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Country != nil {
		user.Country = *req.Country
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, err
	}

	d := dto.NewUserDTO(user)
	return &d, nil
}

func (s *userService) UpdateHostProfile(db *gorm.DB, userID string, req *dto.UpdateHostProfileRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, err
	}

	if user.Role != models.UserRoleHost {
		return nil, apperrors.ErrInsufficientPermissions
	}

	profile, err := s.userRepo.FindHostProfile(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrHostProfileNotFound) {
			return nil, apperrors.NewNotFoundError("user", "Host profile not found")
		}
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.YearsExperience != nil {
		profile.YearsExperience = *req.YearsExperience
	}

	if err := s.userRepo.UpdateHostProfile(db, profile); err != nil {
		return nil, err
	}

	user.HostProfile = profile
	d := dto.NewUserDTO(user)
	return &d, nil
}

func (s *userService) ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user", "User not found")
		}
		return err
	}

	if !auth.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	if err := s.userRepo.Update(db, user); err != nil {
		return err
	}

	return s.userRepo.DeleteUserRefreshTokens(db, userID)
}

func (s *userService) ListUsers(db *gorm.DB, req *dto.ListUsersRequest) (*models.PaginatedResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	users, total, err := s.userRepo.FindAll(db, repositories.UserFilter{
		Role:     models.UserRole(req.Role),
		Status:   models.UserStatus(req.Status),
		Search:   req.Search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, dto.NewUserDTO(&users[i]))
	}

	return &models.PaginatedResponse{
		Data:       dtos,
		Pagination: models.NewPagination(page, pageSize, total),
	}, nil
}

func (s *userService) SetUserStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	err := s.userRepo.UpdateStatus(db, userID, status)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.NewNotFoundError("user", "User not found")
	}
	return err
}
