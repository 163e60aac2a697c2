package handlers

import (
	"guzo_backend/internal/middleware"
	"guzo_backend/internal/models"
	"guzo_backend/internal/services"
	"guzo_backend/internal/services/dto"
	"guzo_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", h.GetMe)
		users.PATCH("/me", h.UpdateMe)
		users.PATCH("/me/host", h.UpdateHostProfile)
		users.POST("/me/password", h.ChangePassword)
	}

	admin := rg.Group("/admin/users")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("", h.ListUsers)
		admin.PATCH("/:id/status", h.SetUserStatus)
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	profile, err := h.userService.GetProfile(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", profile)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	profile, err := h.userService.UpdateProfile(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Profile updated", profile)
}

func (h *UserHandler) UpdateHostProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateHostProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	profile, err := h.userService.UpdateHostProfile(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Host profile updated", profile)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.userService.ChangePassword(db, userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Password changed", nil)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var req dto.ListUsersRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	db := h.GetDB(c)

	result, err := h.userService.ListUsers(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", result)
}

func (h *UserHandler) SetUserStatus(c *gin.Context) {
	var req struct {
		Status models.UserStatus `json:"status" binding:"required,oneof=pending active suspended"`
	}
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	userID := c.Param("id")
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing user id"))
		return
	}

	db := h.GetDB(c)

	if err := h.userService.SetUserStatus(db, userID, req.Status); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "User status updated", nil)
}
