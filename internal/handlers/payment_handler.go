package handlers

import (
	"guzo_backend/internal/middleware"
	"guzo_backend/internal/models"
	"guzo_backend/internal/services"
	"guzo_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Callback шлюза аутентифицируется подписью, не JWT.
	rg.POST("/payments/callback", h.Callback)

	payments := rg.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.POST("", h.Initiate)
		payments.GET("/my", h.ListMy)
		payments.GET("/:id", h.Get)
		payments.POST("/:id/cancel", h.Cancel)
		payments.GET("/booking/:bookingId", h.GetByBooking)
		// Возврат доступен админу и хосту брони, сервис проверяет роль.
		payments.POST("/:id/refund", middleware.RequireRoles(models.UserRoleHost, models.UserRoleAdmin), h.Refund)
	}
}

func (h *PaymentHandler) Initiate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.InitiatePaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	loc := h.GetLocalizer(c)

	payment, err := h.paymentService.Initiate(db, userID, &req, loc)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "Payment initiated", payment)
}

func (h *PaymentHandler) Callback(c *gin.Context) {
	var req dto.PaymentCallbackRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	payment, err := h.paymentService.HandleCallback(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Callback processed", payment)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	loc := h.GetLocalizer(c)

	payment, err := h.paymentService.GetByID(db, userID, h.GetRole(c), c.Param("id"), loc)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", payment)
}

func (h *PaymentHandler) GetByBooking(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	loc := h.GetLocalizer(c)

	payment, err := h.paymentService.GetByBooking(db, userID, h.GetRole(c), c.Param("bookingId"), loc)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", payment)
}

func (h *PaymentHandler) ListMy(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	db := h.GetDB(c)
	loc := h.GetLocalizer(c)

	result, err := h.paymentService.ListForUser(db, userID, page, pageSize, loc)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", result)
}

func (h *PaymentHandler) Cancel(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	payment, err := h.paymentService.Cancel(db, userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Payment cancelled", payment)
}

func (h *PaymentHandler) Refund(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RefundRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	payment, err := h.paymentService.Refund(db, userID, h.GetRole(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Refund recorded", payment)
}
