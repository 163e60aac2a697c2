package handlers

import (
	"guzo_backend/internal/middleware"
	"guzo_backend/internal/models"
	"guzo_backend/internal/services"
	"guzo_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	*BaseHandler
	bookingService services.BookingService
}

func NewBookingHandler(base *BaseHandler, bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		BaseHandler:    base,
		bookingService: bookingService,
	}
}

func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware())
	{
		bookings.POST("", middleware.RequireRoles(models.UserRoleTourist), h.Create)
		bookings.GET("/my", h.ListMy)
		bookings.GET("/:id", h.Get)
		bookings.POST("/:id/cancel", h.Cancel)
	}

	host := rg.Group("/host/bookings")
	host.Use(middleware.AuthMiddleware())
	host.Use(middleware.RequireRoles(models.UserRoleHost, models.UserRoleAdmin))
	{
		host.GET("", h.ListForHost)
		host.POST("/:id/decision", h.Decide)
		host.POST("/:id/complete", h.Complete)
	}
}

func (h *BookingHandler) Create(c *gin.Context) {
	touristID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	loc := h.GetLocalizer(c)

	booking, err := h.bookingService.Create(db, touristID, &req, loc)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "Booking request sent", booking)
}

func (h *BookingHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	loc := h.GetLocalizer(c)

	booking, err := h.bookingService.GetByID(db, userID, h.GetRole(c), c.Param("id"), loc)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", booking)
}

func (h *BookingHandler) ListMy(c *gin.Context) {
	touristID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ListBookingsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	db := h.GetDB(c)
	loc := h.GetLocalizer(c)

	result, err := h.bookingService.ListForTourist(db, touristID, &req, loc)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", result)
}

func (h *BookingHandler) ListForHost(c *gin.Context) {
	hostID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ListBookingsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	db := h.GetDB(c)
	loc := h.GetLocalizer(c)

	result, err := h.bookingService.ListForHost(db, hostID, &req, loc)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", result)
}

func (h *BookingHandler) Decide(c *gin.Context) {
	hostID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.HostDecisionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	booking, err := h.bookingService.HostDecision(db, hostID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Decision recorded", booking)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	touristID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	booking, err := h.bookingService.Cancel(db, touristID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Booking cancelled", booking)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	booking, err := h.bookingService.Complete(db, userID, h.GetRole(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "Booking completed", booking)
}
