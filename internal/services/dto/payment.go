package dto

import (
	"time"

	"guzo_backend/internal/models"
)

// InitiatePaymentRequest - старт оплаты по подтвержденной брони
type InitiatePaymentRequest struct {
	BookingID string `json:"bookingId" binding:"required,uuid"`
	Currency  string `json:"currency,omitempty" validate:"omitempty,is-currency"`
}

// PaymentCallbackRequest - нотификация от шлюза (ResultURL)
type PaymentCallbackRequest struct {
	Code      string `form:"code" json:"code" binding:"required"`
	Status    string `form:"status" json:"status" binding:"required,oneof=success failed"`
	Reference string `form:"reference" json:"reference,omitempty"`
	Signature string `form:"signature" json:"signature" binding:"required"`
}

// RefundRequest - возврат по завершенному платежу (админ)
type RefundRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PaymentDTO - представление платежа в ответах
type PaymentDTO struct {
	ID               string               `json:"id"`
	BookingID        string               `json:"bookingId"`
	Code             string               `json:"code"`
	Amount           float64              `json:"amount"`
	Currency         string               `json:"currency"`
	DisplayAmount    string               `json:"displayAmount,omitempty"`
	OriginalAmount   float64              `json:"originalAmount,omitempty"`
	OriginalCurrency string               `json:"originalCurrency,omitempty"`
	ExchangeRate     float64              `json:"exchangeRate,omitempty"`
	Gateway          string               `json:"gateway"`
	Status           models.PaymentStatus `json:"status"`
	PaymentURL       string               `json:"paymentUrl,omitempty"`
	CompletedAt      *time.Time           `json:"completedAt,omitempty"`
	FailedAt         *time.Time           `json:"failedAt,omitempty"`
	RefundedAt       *time.Time           `json:"refundedAt,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
}
