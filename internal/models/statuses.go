package models

import (
	"fmt"

	"guzo_backend/pkg/apperrors"
)

type UserStatus string
type UserRole string
type BookingStatus string
type PaymentStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleTourist UserRole = "tourist"
	UserRoleHost    UserRole = "host"
	UserRoleAdmin   UserRole = "admin"

	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRejected  BookingStatus = "rejected"

	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusCancelled  PaymentStatus = "cancelled"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// bookingTransitions описывает допустимые переходы статуса бронирования.
// pending -> confirmed | rejected; confirmed -> completed | cancelled.
// Остальные статусы терминальные.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusRejected},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
}

// paymentTransitions: pending -> processing | cancelled; processing ->
// completed | failed | cancelled; completed -> refunded. Отмена из
// pending нужна брошенным платежам, у которых сессия шлюза так и не
// открылась.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:    {PaymentStatusProcessing, PaymentStatusCancelled},
	PaymentStatusProcessing: {PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled},
	PaymentStatusCompleted:  {PaymentStatusRefunded},
}

// CanTransition проверяет, достижим ли статус next из текущего.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition возвращает next или типизированную ошибку 409,
// если переход запрещен (например completed -> pending).
func (s BookingStatus) Transition(next BookingStatus) (BookingStatus, error) {
	if !s.CanTransition(next) {
		return s, apperrors.ErrInvalidTransition(
			"booking",
			fmt.Sprintf("Cannot transition booking from '%s' to '%s'", s, next),
		)
	}
	return next, nil
}

// IsTerminal сообщает, что из статуса нет исходящих переходов.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s PaymentStatus) Transition(next PaymentStatus) (PaymentStatus, error) {
	if !s.CanTransition(next) {
		return s, apperrors.ErrInvalidTransition(
			"payment",
			fmt.Sprintf("Cannot transition payment from '%s' to '%s'", s, next),
		)
	}
	return next, nil
}

func (s PaymentStatus) IsTerminal() bool {
	return len(paymentTransitions[s]) == 0
}
