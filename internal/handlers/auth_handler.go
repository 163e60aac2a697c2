package handlers

import (
	"guzo_backend/internal/middleware"
	"guzo_backend/internal/services"
	"guzo_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	userService services.UserService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, userService services.UserService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		userService: userService,
	}
}

// RegisterRoutes регистрирует все маршруты для аутентификации
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.RefreshToken)
		auth.POST("/logout", h.Logout)
		auth.POST("/verify-email", h.VerifyEmail)
		auth.POST("/resend-verification", h.ResendVerification)
		auth.POST("/request-password-reset", h.RequestPasswordReset)
		auth.POST("/reset-password", h.ResetPassword)
		auth.GET("/me", middleware.AuthMiddleware(), h.Me)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.Register(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "Registration successful. Please check your email to verify your account.", response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.Login(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", response)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.RefreshToken(db, req.RefreshToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", response)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.Logout(db, req.RefreshToken); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Logged out", nil)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.VerifyEmail(db, req.Token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Email verified", nil)
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.RequestPasswordReset(db, req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Ответ одинаковый вне зависимости от существования аккаунта.
	h.RespondOK(c, "If the account exists, a reset email has been sent", nil)
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req dto.ResendVerificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.ResendVerification(db, req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "If the account exists, a verification email has been sent", nil)
}

// Me возвращает профиль текущего пользователя по access-токену.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	user, err := h.userService.GetProfile(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", user)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.PasswordResetConfirm
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.ConfirmPasswordReset(db, req.Token, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Password updated", nil)
}
