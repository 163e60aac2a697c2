package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	UserHandler     *UserHandler
	OfferingHandler *OfferingHandler
	ExploreHandler  *ExploreHandler
	BookingHandler  *BookingHandler
	PaymentHandler  *PaymentHandler
}
