package services

import (
	"encoding/json"
	"testing"
	"time"

	"guzo_backend/internal/i18n"
	"guzo_backend/internal/models"
	"guzo_backend/internal/repositories"
	"guzo_backend/internal/services/dto"
	"guzo_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubPaymentRepo struct {
	payments map[string]*models.Payment
	seq      int
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{payments: make(map[string]*models.Payment)}
}

func (r *stubPaymentRepo) Create(_ *gorm.DB, p *models.Payment) error {
	for _, existing := range r.payments {
		if existing.BookingID == p.BookingID &&
			existing.Status != models.PaymentStatusCancelled && existing.Status != models.PaymentStatusFailed {
			return repositories.ErrPaymentExists
		}
	}
	if p.ID == "" {
		p.ID = "pay-1"
	}
	r.payments[p.ID] = p
	return nil
}

func (r *stubPaymentRepo) FindByID(_ *gorm.DB, id string) (*models.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, repositories.ErrPaymentNotFound
	}
	return p, nil
}

func (r *stubPaymentRepo) FindByBookingID(_ *gorm.DB, bookingID string) (*models.Payment, error) {
	for _, p := range r.payments {
		if p.BookingID == bookingID {
			return p, nil
		}
	}
	return nil, repositories.ErrPaymentNotFound
}

func (r *stubPaymentRepo) FindByCode(_ *gorm.DB, code string) (*models.Payment, error) {
	for _, p := range r.payments {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, repositories.ErrPaymentNotFound
}

func (r *stubPaymentRepo) FindByUser(_ *gorm.DB, userID string, page, pageSize int) ([]models.Payment, int64, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubPaymentRepo) Update(_ *gorm.DB, p *models.Payment) error {
	r.payments[p.ID] = p
	return nil
}

func (r *stubPaymentRepo) NextSequence(_ *gorm.DB, day time.Time) (int, error) {
	r.seq++
	return r.seq, nil
}

// stubGateway принимает фиксированную подпись "valid".
type stubGateway struct{}

func (g *stubGateway) GeneratePaymentURL(code string, amount float64, currency, description, email string) (string, error) {
	return "https://pay.example/" + code, nil
}

func (g *stubGateway) VerifyResultSignature(amount float64, code, receivedSig string) bool {
	return receivedSig == "valid"
}

func paymentFixture(status models.PaymentStatus) *models.Payment {
	p := &models.Payment{
		BookingID: "bk-1",
		UserID:    "tourist-1",
		Code:      "PAY2609010001",
		Amount:    4500,
		Currency:  "ETB",
		Gateway:   "chapa",
		Status:    status,
	}
	p.ID = "pay-1"
	return p
}

func newPaymentServiceForTest(payments *stubPaymentRepo, bookings *stubBookingRepo) PaymentService {
	return NewPaymentService(payments, bookings, &stubGateway{}, i18n.NewCurrencyFormatter())
}

func TestInitiate_CreatesCodedPaymentWithURL(t *testing.T) {
	bookings := newStubBookingRepo()
	booking := &models.Booking{
		TouristID:    "tourist-1",
		Status:       models.BookingStatusConfirmed,
		TotalAmount:  4500,
		Currency:     "ETB",
		ContactEmail: "abebe@example.com",
	}
	booking.ID = "bk-1"
	bookings.bookings["bk-1"] = booking

	payments := newStubPaymentRepo()
	svc := newPaymentServiceForTest(payments, bookings)
	svc.(*paymentService).transact = func(db *gorm.DB, fn func(tx *gorm.DB) error) error {
		return fn(db)
	}

	result, err := svc.Initiate(nil, "tourist-1", &dto.InitiatePaymentRequest{BookingID: "bk-1"}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.FormatPaymentCode(time.Now(), 1), result.Code)
	assert.Equal(t, models.PaymentStatusProcessing, result.Status)
	assert.Equal(t, "https://pay.example/"+result.Code, result.PaymentURL)
	assert.Equal(t, 4500.0, result.Amount)

	// Второй платёж по той же брони не создается
	_, err = svc.Initiate(nil, "tourist-1", &dto.InitiatePaymentRequest{BookingID: "bk-1"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrPaymentAlreadyExists)
}

func TestInitiate_RequiresPayableBooking(t *testing.T) {
	bookings := newStubBookingRepo()
	booking := &models.Booking{TouristID: "tourist-1", Status: models.BookingStatusRejected, TotalAmount: 4500}
	booking.ID = "bk-1"
	bookings.bookings["bk-1"] = booking

	svc := newPaymentServiceForTest(newStubPaymentRepo(), bookings)

	_, err := svc.Initiate(nil, "tourist-1", &dto.InitiatePaymentRequest{BookingID: "bk-1"}, nil)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestInitiate_OnlyTouristCanPay(t *testing.T) {
	bookings := newStubBookingRepo()
	booking := &models.Booking{TouristID: "tourist-1", Status: models.BookingStatusConfirmed, TotalAmount: 4500}
	booking.ID = "bk-1"
	bookings.bookings["bk-1"] = booking

	svc := newPaymentServiceForTest(newStubPaymentRepo(), bookings)

	_, err := svc.Initiate(nil, "someone-else", &dto.InitiatePaymentRequest{BookingID: "bk-1"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrNotBookingParticipant)
}

func TestInitiate_UnsupportedCurrency(t *testing.T) {
	bookings := newStubBookingRepo()
	booking := &models.Booking{TouristID: "tourist-1", Status: models.BookingStatusConfirmed, TotalAmount: 4500}
	booking.ID = "bk-1"
	bookings.bookings["bk-1"] = booking

	svc := newPaymentServiceForTest(newStubPaymentRepo(), bookings)

	_, err := svc.Initiate(nil, "tourist-1", &dto.InitiatePaymentRequest{BookingID: "bk-1", Currency: "JPY"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrency)
}

func TestCallback_SuccessCompletesPayment(t *testing.T) {
	payments := newStubPaymentRepo()
	payments.payments["pay-1"] = paymentFixture(models.PaymentStatusProcessing)

	svc := newPaymentServiceForTest(payments, newStubBookingRepo())

	result, err := svc.HandleCallback(nil, &dto.PaymentCallbackRequest{
		Code:      "PAY2609010001",
		Status:    "success",
		Signature: "valid",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusCompleted, result.Status)
	assert.NotNil(t, result.CompletedAt)
}

func TestCallback_FailureMarksFailed(t *testing.T) {
	payments := newStubPaymentRepo()
	payments.payments["pay-1"] = paymentFixture(models.PaymentStatusProcessing)

	svc := newPaymentServiceForTest(payments, newStubBookingRepo())

	result, err := svc.HandleCallback(nil, &dto.PaymentCallbackRequest{
		Code:      "PAY2609010001",
		Status:    "failed",
		Signature: "valid",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusFailed, result.Status)
	assert.NotNil(t, result.FailedAt)
}

func TestCallback_InvalidSignatureRejected(t *testing.T) {
	payments := newStubPaymentRepo()
	payments.payments["pay-1"] = paymentFixture(models.PaymentStatusProcessing)

	svc := newPaymentServiceForTest(payments, newStubBookingRepo())

	_, err := svc.HandleCallback(nil, &dto.PaymentCallbackRequest{
		Code:      "PAY2609010001",
		Status:    "success",
		Signature: "forged",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.HTTPCode)

	// Статус платежа не изменился
	assert.Equal(t, models.PaymentStatusProcessing, payments.payments["pay-1"].Status)
}

func TestCallback_DuplicateNotificationRejected(t *testing.T) {
	payments := newStubPaymentRepo()
	completed := paymentFixture(models.PaymentStatusCompleted)
	now := time.Now()
	completed.CompletedAt = &now
	payments.payments["pay-1"] = completed

	svc := newPaymentServiceForTest(payments, newStubBookingRepo())

	_, err := svc.HandleCallback(nil, &dto.PaymentCallbackRequest{
		Code:      "PAY2609010001",
		Status:    "success",
		Signature: "valid",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)
}

func TestRefund_WritesRecordAndStamps(t *testing.T) {
	payments := newStubPaymentRepo()
	completed := paymentFixture(models.PaymentStatusCompleted)
	now := time.Now()
	completed.CompletedAt = &now
	payments.payments["pay-1"] = completed

	svc := newPaymentServiceForTest(payments, newStubBookingRepo())

	result, err := svc.Refund(nil, "admin-1", models.UserRoleAdmin, "pay-1", &dto.RefundRequest{Reason: "offering cancelled"})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusRefunded, result.Status)
	assert.NotNil(t, result.RefundedAt)

	var record models.RefundRecord
	require.NoError(t, json.Unmarshal(completed.Refund, &record))
	assert.Equal(t, "offering cancelled", record.Reason)
	assert.Equal(t, 4500.0, record.Amount)
}

func TestRefund_HostMustOwnBooking(t *testing.T) {
	payments := newStubPaymentRepo()
	completed := paymentFixture(models.PaymentStatusCompleted)
	now := time.Now()
	completed.CompletedAt = &now
	payments.payments["pay-1"] = completed

	bookings := newStubBookingRepo()
	booking := &models.Booking{TouristID: "tourist-1", HostID: "host-1", Status: models.BookingStatusConfirmed}
	booking.ID = "bk-1"
	bookings.bookings["bk-1"] = booking

	svc := newPaymentServiceForTest(payments, bookings)

	_, err := svc.Refund(nil, "host-2", models.UserRoleHost, "pay-1", &dto.RefundRequest{Reason: "dispute"})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	result, err := svc.Refund(nil, "host-1", models.UserRoleHost, "pay-1", &dto.RefundRequest{Reason: "dispute"})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, result.Status)
}

func TestRefund_OnlyFromCompleted(t *testing.T) {
	payments := newStubPaymentRepo()
	payments.payments["pay-1"] = paymentFixture(models.PaymentStatusProcessing)

	svc := newPaymentServiceForTest(payments, newStubBookingRepo())

	_, err := svc.Refund(nil, "admin-1", models.UserRoleAdmin, "pay-1", &dto.RefundRequest{Reason: "nope"})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestCancel_OnlyOwner(t *testing.T) {
	payments := newStubPaymentRepo()
	payments.payments["pay-1"] = paymentFixture(models.PaymentStatusProcessing)

	svc := newPaymentServiceForTest(payments, newStubBookingRepo())

	_, err := svc.Cancel(nil, "someone-else", "pay-1")
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	result, err := svc.Cancel(nil, "tourist-1", "pay-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCancelled, result.Status)
}
