package routes

import (
	"guzo_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.ExploreHandler.RegisterRoutes(api)
		appHandlers.OfferingHandler.RegisterRoutes(api)
		appHandlers.BookingHandler.RegisterRoutes(api)
		appHandlers.PaymentHandler.RegisterRoutes(api)
	}
}
