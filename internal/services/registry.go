package services

import (
	"guzo_backend/internal/cache"
	"guzo_backend/internal/config"
	"guzo_backend/internal/email"
	"guzo_backend/internal/i18n"
	"guzo_backend/internal/repositories"
	"guzo_backend/internal/services/gateway"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService     AuthService
	UserService     UserService
	OfferingService OfferingService
	ExploreService  ExploreService
	BookingService  BookingService
	PaymentService  PaymentService
	EmailService    email.Provider

	Bundle    *i18n.Bundle
	Formatter *i18n.CurrencyFormatter
}

// NewServiceContainer собирает граф зависимостей сервисного слоя.
func NewServiceContainer(
	cfg *config.Config,
	emailProvider email.Provider,
	c *cache.Cache,
) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	offeringRepo := repositories.NewOfferingRepository()
	bookingRepo := repositories.NewBookingRepository()
	paymentRepo := repositories.NewPaymentRepository()

	bundle := i18n.NewBundle()
	formatter := i18n.NewCurrencyFormatter()
	gw := gateway.NewChapaService(cfg)

	return &ServiceContainer{
		AuthService:     NewAuthService(userRepo, emailProvider),
		UserService:     NewUserService(userRepo),
		OfferingService: NewOfferingService(offeringRepo),
		ExploreService:  NewExploreService(offeringRepo, c),
		BookingService:  NewBookingService(bookingRepo, offeringRepo, emailProvider),
		PaymentService:  NewPaymentService(paymentRepo, bookingRepo, gw, formatter),
		EmailService:    emailProvider,

		Bundle:    bundle,
		Formatter: formatter,
	}
}
