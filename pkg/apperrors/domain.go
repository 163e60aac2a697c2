package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidTransition - фабрика для запрещённых переходов статуса (409).
// Возвращается guard-функциями из models/statuses.go, когда обработчик
// пытается перевести бронирование или платёж в недостижимый статус.
func ErrInvalidTransition(domain, message string) *AppError {
	return New(CodeInvalidTransition, domain, message, http.StatusConflict)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (Для частых, статичных ошибок)
// =========================================================================

// ErrInvalidUserRole - используется, когда операция не предусмотрена для роли пользователя.
var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

// ErrInsufficientPermissions - используется, когда не-админ пытается выполнить админ-действие.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Auth & User Status ---

// ErrWeakPassword - пароль слишком слабый.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

// ErrEmailAlreadyExists - email уже используется.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - неверный или просроченный токен (refresh, verify, reset).
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrUserSuspended - аккаунт временно заблокирован.
var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

// ErrUserNotVerified - email не подтвержден.
var ErrUserNotVerified = New(
	CodeForbidden,
	"auth",
	"Please verify your email address",
	http.StatusForbidden,
)

// --- Offerings ---

// ErrOfferingNotFound - предложение не найдено или скрыто.
var ErrOfferingNotFound = New(
	CodeNotFound,
	"offering",
	"Offering not found",
	http.StatusNotFound,
)

// ErrOfferingNotBookable - предложение выключено или не одобрено модерацией.
var ErrOfferingNotBookable = New(
	CodeInvalidOperation,
	"offering",
	"Offering is not available for booking",
	http.StatusBadRequest,
)

// ErrTooManyGuests - гостей больше, чем вмещает предложение.
var ErrTooManyGuests = New(
	CodeValidationFailed,
	"booking",
	"Guest count exceeds the offering capacity",
	http.StatusBadRequest,
)

// --- Bookings ---

// ErrDateFullyBooked - вместимость на дату/слот уже выбрана живыми бронями.
var ErrDateFullyBooked = New(
	CodeConflict,
	"booking",
	"The offering is fully booked for this date",
	http.StatusConflict,
)

// ErrBookingNotFound - бронирование не найдено.
var ErrBookingNotFound = New(
	CodeNotFound,
	"booking",
	"Booking not found",
	http.StatusNotFound,
)

// ErrRejectionReasonRequired - отклонение без указания причины.
var ErrRejectionReasonRequired = New(
	CodeValidationFailed,
	"booking",
	"Rejection reason is required",
	http.StatusBadRequest,
)

// ErrNotBookingParticipant - пользователь не турист и не хозяин этого бронирования.
var ErrNotBookingParticipant = New(
	CodeForbidden,
	"booking",
	"You are not a participant of this booking",
	http.StatusForbidden,
)

// --- Payments ---

// ErrPaymentNotFound - платёж не найден.
var ErrPaymentNotFound = New(
	CodeNotFound,
	"payment",
	"Payment not found",
	http.StatusNotFound,
)

// ErrPaymentAlreadyExists - у бронирования уже есть платёж.
var ErrPaymentAlreadyExists = New(
	CodeAlreadyExists,
	"payment",
	"Payment already exists for this booking",
	http.StatusConflict,
)

// ErrUnsupportedCurrency - валюта вне таблицы курсов.
var ErrUnsupportedCurrency = New(
	CodeValidationFailed,
	"payment",
	"Unsupported currency",
	http.StatusBadRequest,
)

// ErrGatewayError - общая ошибка интеграции с платёжным шлюзом (напр. неверная подпись).
var ErrGatewayError = New(
	CodeExternalServiceError,
	"payment",
	"Payment provider error",
	http.StatusServiceUnavailable,
)
