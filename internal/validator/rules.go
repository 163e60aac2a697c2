package validator

import (
	"log"

	"guzo_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {

	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Если правило не удалось зарегистрировать, приложение
			// не должно запускаться, так как это критическая ошибка.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// Правила, основанные на statuses.go
	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-booking-status", validateBookingStatus)
	mustRegister("is-payment-status", validatePaymentStatus)

	// Другие доменные правила
	mustRegister("is-difficulty", validateDifficulty)
	mustRegister("is-currency", validateCurrency)
	mustRegister("is-sort-key", validateSortKey)
}

// --- Функции валидации ---

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые обрабатывает 'required'
	}
	switch models.UserRole(value) {
	case models.UserRoleTourist, models.UserRoleHost, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.BookingStatus(value) {
	case models.BookingStatusPending, models.BookingStatusConfirmed,
		models.BookingStatusCompleted, models.BookingStatusCancelled,
		models.BookingStatusRejected:
		return true
	default:
		return false
	}
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PaymentStatus(value) {
	case models.PaymentStatusPending, models.PaymentStatusProcessing,
		models.PaymentStatusCompleted, models.PaymentStatusFailed,
		models.PaymentStatusCancelled, models.PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

func validateDifficulty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case "easy", "moderate", "challenging":
		return true
	default:
		return false
	}
}

func validateCurrency(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case "ETB", "USD", "EUR", "GBP":
		return true
	default:
		return false
	}
}

func validateSortKey(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case "price_low", "price_high", "rating", "newest", "popular":
		return true
	default:
		return false
	}
}
