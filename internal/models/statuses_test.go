package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guzo_backend/pkg/apperrors"
)

func TestBookingStatusTransitions(t *testing.T) {
	// Разрешенные переходы
	allowed := []struct {
		from, to BookingStatus
	}{
		{BookingStatusPending, BookingStatusConfirmed},
		{BookingStatusPending, BookingStatusRejected},
		{BookingStatusConfirmed, BookingStatusCompleted},
		{BookingStatusConfirmed, BookingStatusCancelled},
	}
	for _, tc := range allowed {
		next, err := tc.from.Transition(tc.to)
		assert.NoError(t, err, "%s -> %s should be allowed", tc.from, tc.to)
		assert.Equal(t, tc.to, next)
	}

	// Запрещенные переходы
	denied := []struct {
		from, to BookingStatus
	}{
		{BookingStatusPending, BookingStatusCompleted},
		{BookingStatusConfirmed, BookingStatusRejected},
		{BookingStatusCompleted, BookingStatusPending},
		{BookingStatusCancelled, BookingStatusConfirmed},
		{BookingStatusRejected, BookingStatusConfirmed},
	}
	for _, tc := range denied {
		got, err := tc.from.Transition(tc.to)
		require.Error(t, err, "%s -> %s must be rejected", tc.from, tc.to)
		assert.Equal(t, tc.from, got, "status must stay unchanged on rejected transition")

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok, "transition error must be an AppError")
		assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)
		assert.Equal(t, 409, appErr.HTTPCode)
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusConfirmed.IsTerminal())
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.True(t, BookingStatusRejected.IsTerminal())
}

func TestPaymentStatusTransitions(t *testing.T) {
	assert.True(t, PaymentStatusPending.CanTransition(PaymentStatusProcessing))
	assert.True(t, PaymentStatusProcessing.CanTransition(PaymentStatusCompleted))
	assert.True(t, PaymentStatusProcessing.CanTransition(PaymentStatusFailed))
	assert.True(t, PaymentStatusCompleted.CanTransition(PaymentStatusRefunded))

	assert.False(t, PaymentStatusPending.CanTransition(PaymentStatusCompleted))
	assert.False(t, PaymentStatusCompleted.CanTransition(PaymentStatusPending))
	assert.False(t, PaymentStatusRefunded.CanTransition(PaymentStatusCompleted))
	assert.False(t, PaymentStatusFailed.CanTransition(PaymentStatusProcessing))
}

func TestPaymentStampStatus(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	p := &Payment{Status: PaymentStatusPending}

	require.NoError(t, p.StampStatus(PaymentStatusProcessing, now))
	assert.Nil(t, p.CompletedAt)

	require.NoError(t, p.StampStatus(PaymentStatusCompleted, now))
	require.NotNil(t, p.CompletedAt)
	assert.Equal(t, now, *p.CompletedAt)

	// Таймстемп ставится только при первом входе в статус
	later := now.Add(time.Hour)
	require.NoError(t, p.StampStatus(PaymentStatusRefunded, later))
	assert.Equal(t, now, *p.CompletedAt)
	require.NotNil(t, p.RefundedAt)
	assert.Equal(t, later, *p.RefundedAt)

	// Из refunded выхода нет
	err := p.StampStatus(PaymentStatusPending, later)
	assert.Error(t, err)
	assert.Equal(t, PaymentStatusRefunded, p.Status)
}

func TestFormatPaymentCode(t *testing.T) {
	day := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "PAY2503070001", FormatPaymentCode(day, 1))
	assert.Equal(t, "PAY2503070042", FormatPaymentCode(day, 42))
	assert.Equal(t, "PAY2503071234", FormatPaymentCode(day, 1234))
}
