package handlers

import (
	"guzo_backend/internal/middleware"
	"guzo_backend/internal/models"
	"guzo_backend/internal/services"
	"guzo_backend/internal/services/dto"
	"guzo_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type OfferingHandler struct {
	*BaseHandler
	offeringService services.OfferingService
	exploreService  services.ExploreService
}

func NewOfferingHandler(base *BaseHandler, offeringService services.OfferingService, exploreService services.ExploreService) *OfferingHandler {
	return &OfferingHandler{
		BaseHandler:     base,
		offeringService: offeringService,
		exploreService:  exploreService,
	}
}

func (h *OfferingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Публичная деталка: видны только активные и одобренные офферы.
	rg.GET("/offerings/:id", h.GetOffering)

	host := rg.Group("/host/offerings")
	host.Use(middleware.AuthMiddleware())
	host.Use(middleware.RequireRoles(models.UserRoleHost))
	{
		host.GET("", h.ListMine)
		host.POST("", h.Create)
		host.GET("/:id", h.GetMine)
		host.PATCH("/:id", h.Update)
		host.DELETE("/:id", h.Delete)
	}

	admin := rg.Group("/admin/offerings")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/pending", h.ListPending)
		admin.PATCH("/:id/approval", h.SetApproval)
	}
}

func (h *OfferingHandler) GetOffering(c *gin.Context) {
	db := h.GetDB(c)
	loc := h.GetLocalizer(c)

	offering, err := h.offeringService.GetVisibleByID(db, c.Param("id"), loc)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", offering)
}

func (h *OfferingHandler) Create(c *gin.Context) {
	hostID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOfferingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	offering, err := h.offeringService.Create(db, hostID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.exploreService.InvalidateMeta(c.Request.Context())
	h.RespondCreated(c, "Offering created, pending approval", offering)
}

func (h *OfferingHandler) GetMine(c *gin.Context) {
	hostID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	offering, err := h.offeringService.GetByID(db, c.Param("id"), nil)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if offering.HostID != hostID {
		h.HandleServiceError(c, apperrors.ErrInsufficientPermissions)
		return
	}

	h.RespondOK(c, "", offering)
}

func (h *OfferingHandler) ListMine(c *gin.Context) {
	hostID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	db := h.GetDB(c)

	result, err := h.offeringService.ListByHost(db, hostID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", result)
}

func (h *OfferingHandler) Update(c *gin.Context) {
	hostID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateOfferingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	offering, err := h.offeringService.Update(db, hostID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.exploreService.InvalidateMeta(c.Request.Context())
	h.RespondOK(c, "Offering updated", offering)
}

func (h *OfferingHandler) Delete(c *gin.Context) {
	hostID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.offeringService.Delete(db, hostID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.exploreService.InvalidateMeta(c.Request.Context())
	h.RespondOK(c, "Offering deleted", nil)
}

func (h *OfferingHandler) ListPending(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	db := h.GetDB(c)

	result, err := h.offeringService.ListPendingApproval(db, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", result)
}

func (h *OfferingHandler) SetApproval(c *gin.Context) {
	var req struct {
		Approved bool `json:"approved"`
	}
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.offeringService.Approve(db, c.Param("id"), req.Approved); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.exploreService.InvalidateMeta(c.Request.Context())
	h.RespondOK(c, "Approval updated", nil)
}
