package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Payment - один платёж на бронирование. Code имеет вид
// PAY<YYMMDD><4-значный номер>, номер выдается атомарным счетчиком
// PaymentCounter (по одной строке на календарный день).
type Payment struct {
	BaseModel
	BookingID string `gorm:"not null;uniqueIndex" json:"booking_id"`
	UserID    string `gorm:"not null;index" json:"user_id"`

	Code string `gorm:"uniqueIndex;not null" json:"code"`

	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"type:varchar(3);default:'ETB'" json:"currency"`

	OriginalAmount   float64 `json:"original_amount"`
	OriginalCurrency string  `gorm:"type:varchar(3)" json:"original_currency"`
	ExchangeRate     float64 `gorm:"default:1" json:"exchange_rate"`

	Gateway string `gorm:"type:varchar(30)" json:"gateway"`

	Status PaymentStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	// Таймстемпы ставятся один раз, при первом входе в статус.
	CompletedAt *time.Time `json:"completed_at"`
	FailedAt    *time.Time `json:"failed_at"`
	RefundedAt  *time.Time `json:"refunded_at"`

	Refund datatypes.JSON `json:"refund,omitempty"`
}

// RefundRecord пишется в JSON-колонку refund при переходе в refunded.
type RefundRecord struct {
	Amount     float64   `json:"amount"`
	Reason     string    `json:"reason"`
	RefundedAt time.Time `json:"refunded_at"`
}

// PaymentCounter - атомарный посуточный счетчик для генерации кодов.
// Day хранится как YYMMDD; Seq инкрементируется одним UPDATE.
type PaymentCounter struct {
	Day string `gorm:"primaryKey;type:varchar(6)"`
	Seq int    `gorm:"not null;default:0"`
}

// StampStatus переводит платёж в next через guard и ставит
// соответствующий таймстемп, если он ещё не установлен.
func (p *Payment) StampStatus(next PaymentStatus, now time.Time) error {
	status, err := p.Status.Transition(next)
	if err != nil {
		return err
	}
	p.Status = status

	switch next {
	case PaymentStatusCompleted:
		if p.CompletedAt == nil {
			p.CompletedAt = &now
		}
	case PaymentStatusFailed:
		if p.FailedAt == nil {
			p.FailedAt = &now
		}
	case PaymentStatusRefunded:
		if p.RefundedAt == nil {
			p.RefundedAt = &now
		}
	}
	return nil
}

// FormatPaymentCode собирает человекочитаемый код платежа.
func FormatPaymentCode(day time.Time, seq int) string {
	return fmt.Sprintf("PAY%s%04d", day.Format("060102"), seq)
}
