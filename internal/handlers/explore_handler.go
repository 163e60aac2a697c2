package handlers

import (
	"guzo_backend/internal/services"
	"guzo_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ExploreHandler обслуживает публичный каталог: поиск, featured,
// агрегаты для панели фильтров. Авторизация не требуется.
type ExploreHandler struct {
	*BaseHandler
	exploreService  services.ExploreService
	offeringService services.OfferingService
}

func NewExploreHandler(base *BaseHandler, exploreService services.ExploreService, offeringService services.OfferingService) *ExploreHandler {
	return &ExploreHandler{
		BaseHandler:     base,
		exploreService:  exploreService,
		offeringService: offeringService,
	}
}

func (h *ExploreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	explore := rg.Group("/explore")
	{
		explore.GET("", h.Search)
		explore.GET("/featured", h.Featured)
		explore.GET("/meta", h.Meta)
		explore.GET("/categories", h.Categories)
		explore.GET("/locations", h.Locations)
		explore.GET("/:id", h.GetByID)
	}
}

func (h *ExploreHandler) Search(c *gin.Context) {
	var req dto.ExploreRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	db := h.GetDB(c)
	loc := h.GetLocalizer(c)

	result, err := h.exploreService.Search(c.Request.Context(), db, &req, loc)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", result)
}

func (h *ExploreHandler) Featured(c *gin.Context) {
	db := h.GetDB(c)
	loc := h.GetLocalizer(c)

	result, err := h.exploreService.Featured(c.Request.Context(), db, loc)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", result)
}

func (h *ExploreHandler) Meta(c *gin.Context) {
	db := h.GetDB(c)

	result, err := h.exploreService.Meta(c.Request.Context(), db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", result)
}

func (h *ExploreHandler) Categories(c *gin.Context) {
	db := h.GetDB(c)

	result, err := h.exploreService.Meta(c.Request.Context(), db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", result.Categories)
}

func (h *ExploreHandler) Locations(c *gin.Context) {
	db := h.GetDB(c)

	result, err := h.exploreService.Meta(c.Request.Context(), db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", result.Locations)
}

// GetByID отдает карточку предложения. Скрытые и неодобренные - 404.
func (h *ExploreHandler) GetByID(c *gin.Context) {
	db := h.GetDB(c)
	loc := h.GetLocalizer(c)

	result, err := h.offeringService.GetVisibleByID(db, c.Param("id"), loc)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, "", result)
}
