package services

import (
	"encoding/json"
	"errors"
	"time"

	"guzo_backend/internal/i18n"
	"guzo_backend/internal/models"
	"guzo_backend/internal/repositories"
	"guzo_backend/internal/services/dto"
	"guzo_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const gatewayName = "chapa"

// PaymentGateway - контракт платежного шлюза. Реализация в gateway/.
type PaymentGateway interface {
	GeneratePaymentURL(code string, amount float64, currency, description, email string) (string, error)
	VerifyResultSignature(amount float64, code, receivedSig string) bool
}

type PaymentService interface {
	Initiate(db *gorm.DB, userID string, req *dto.InitiatePaymentRequest, loc *i18n.Localizer) (*dto.PaymentDTO, error)
	HandleCallback(db *gorm.DB, req *dto.PaymentCallbackRequest) (*dto.PaymentDTO, error)
	GetByID(db *gorm.DB, userID string, role models.UserRole, paymentID string, loc *i18n.Localizer) (*dto.PaymentDTO, error)
	GetByBooking(db *gorm.DB, userID string, role models.UserRole, bookingID string, loc *i18n.Localizer) (*dto.PaymentDTO, error)
	ListForUser(db *gorm.DB, userID string, page, pageSize int, loc *i18n.Localizer) (*models.PaginatedResponse, error)
	Cancel(db *gorm.DB, userID, paymentID string) (*dto.PaymentDTO, error)
	Refund(db *gorm.DB, userID string, role models.UserRole, paymentID string, req *dto.RefundRequest) (*dto.PaymentDTO, error)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	bookingRepo repositories.BookingRepository
	gateway     PaymentGateway
	formatter   *i18n.CurrencyFormatter

	// transact оборачивает выдачу кода и вставку платежа; в тестах
	// подменяется на прямой вызов.
	transact func(db *gorm.DB, fn func(tx *gorm.DB) error) error
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	bookingRepo repositories.BookingRepository,
	gw PaymentGateway,
	formatter *i18n.CurrencyFormatter,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		gateway:     gw,
		formatter:   formatter,
		transact: func(db *gorm.DB, fn func(tx *gorm.DB) error) error {
			return db.Transaction(fn)
		},
	}
}

// Initiate создает платёж по подтвержденной брони. Код PAYYYMMDDNNNN
// берется из атомарного посуточного счетчика, выдача кода и вставка
// платежа идут одной транзакцией.
func (s *paymentService) Initiate(db *gorm.DB, userID string, req *dto.InitiatePaymentRequest, loc *i18n.Localizer) (*dto.PaymentDTO, error) {
	booking, err := s.bookingRepo.FindByID(db, req.BookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	if booking.TouristID != userID {
		return nil, apperrors.ErrNotBookingParticipant
	}
	if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusConfirmed {
		return nil, apperrors.NewBadRequestError("Payment is only possible for pending or confirmed bookings")
	}

	currency := req.Currency
	if currency == "" {
		currency = i18n.BaseCurrency
	}
	if !s.formatter.IsSupported(currency) {
		return nil, apperrors.ErrUnsupportedCurrency
	}

	amount := booking.TotalAmount
	rate := 1.0
	if currency != i18n.BaseCurrency {
		rate, err = s.formatter.Rate(currency)
		if err != nil {
			return nil, apperrors.ErrUnsupportedCurrency
		}
		amount, err = s.formatter.Convert(booking.TotalAmount, currency)
		if err != nil {
			return nil, apperrors.ErrUnsupportedCurrency
		}
	}

	now := time.Now()
	payment := &models.Payment{
		BookingID:        booking.ID,
		UserID:           userID,
		Amount:           amount,
		Currency:         currency,
		OriginalAmount:   booking.TotalAmount,
		OriginalCurrency: booking.Currency,
		ExchangeRate:     rate,
		Gateway:          gatewayName,
		Status:           models.PaymentStatusPending,
	}

	err = s.transact(db, func(tx *gorm.DB) error {
		seq, err := s.paymentRepo.NextSequence(tx, now)
		if err != nil {
			return err
		}
		payment.Code = models.FormatPaymentCode(now, seq)

		if err := s.paymentRepo.Create(tx, payment); err != nil {
			if errors.Is(err, repositories.ErrPaymentExists) {
				return apperrors.ErrPaymentAlreadyExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	description := "Booking " + booking.ID
	if booking.Offering != nil {
		description = booking.Offering.Title
	}
	paymentURL, err := s.gateway.GeneratePaymentURL(payment.Code, payment.Amount, payment.Currency, description, booking.ContactEmail)
	if err != nil {
		return nil, apperrors.ErrGatewayError
	}

	// Сессия шлюза открыта - платёж уходит в processing.
	if err := payment.StampStatus(models.PaymentStatusProcessing, time.Now()); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Update(db, payment); err != nil {
		return nil, err
	}

	d := buildPaymentDTO(payment, loc)
	d.PaymentURL = paymentURL
	return &d, nil
}

// HandleCallback обрабатывает нотификацию шлюза. Подпись проверяется
// до любых изменений; повторная нотификация по терминальному платежу
// отбивается guard'ом переходов.
func (s *paymentService) HandleCallback(db *gorm.DB, req *dto.PaymentCallbackRequest) (*dto.PaymentDTO, error) {
	payment, err := s.paymentRepo.FindByCode(db, req.Code)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, err
	}

	if !s.gateway.VerifyResultSignature(payment.Amount, payment.Code, req.Signature) {
		return nil, apperrors.NewUnauthorizedError("Invalid gateway signature")
	}

	next := models.PaymentStatusCompleted
	if req.Status == "failed" {
		next = models.PaymentStatusFailed
	}

	if err := payment.StampStatus(next, time.Now()); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Update(db, payment); err != nil {
		return nil, err
	}

	d := buildPaymentDTO(payment, nil)
	return &d, nil
}

func (s *paymentService) GetByID(db *gorm.DB, userID string, role models.UserRole, paymentID string, loc *i18n.Localizer) (*dto.PaymentDTO, error) {
	payment, err := s.paymentRepo.FindByID(db, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, err
	}

	if payment.UserID != userID && role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	d := buildPaymentDTO(payment, loc)
	return &d, nil
}

func (s *paymentService) GetByBooking(db *gorm.DB, userID string, role models.UserRole, bookingID string, loc *i18n.Localizer) (*dto.PaymentDTO, error) {
	booking, err := s.bookingRepo.FindByID(db, bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	if booking.TouristID != userID && booking.HostID != userID && role != models.UserRoleAdmin {
		return nil, apperrors.ErrNotBookingParticipant
	}

	payment, err := s.paymentRepo.FindByBookingID(db, bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, err
	}

	d := buildPaymentDTO(payment, loc)
	return &d, nil
}

func (s *paymentService) ListForUser(db *gorm.DB, userID string, page, pageSize int, loc *i18n.Localizer) (*models.PaginatedResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	payments, total, err := s.paymentRepo.FindByUser(db, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	dtos := make([]dto.PaymentDTO, 0, len(payments))
	for i := range payments {
		dtos = append(dtos, buildPaymentDTO(&payments[i], loc))
	}

	return &models.PaginatedResponse{
		Data:       dtos,
		Pagination: models.NewPagination(page, pageSize, total),
	}, nil
}

func (s *paymentService) Cancel(db *gorm.DB, userID, paymentID string) (*dto.PaymentDTO, error) {
	payment, err := s.paymentRepo.FindByID(db, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, err
	}

	if payment.UserID != userID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if err := payment.StampStatus(models.PaymentStatusCancelled, time.Now()); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Update(db, payment); err != nil {
		return nil, err
	}

	d := buildPaymentDTO(payment, nil)
	return &d, nil
}

// Refund доступен админу и хосту брони, по которой прошел платёж.
func (s *paymentService) Refund(db *gorm.DB, userID string, role models.UserRole, paymentID string, req *dto.RefundRequest) (*dto.PaymentDTO, error) {
	payment, err := s.paymentRepo.FindByID(db, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, err
	}

	if role != models.UserRoleAdmin {
		booking, err := s.bookingRepo.FindByID(db, payment.BookingID)
		if err != nil {
			return nil, err
		}
		if booking.HostID != userID {
			return nil, apperrors.ErrInsufficientPermissions
		}
	}

	now := time.Now()
	if err := payment.StampStatus(models.PaymentStatusRefunded, now); err != nil {
		return nil, err
	}

	record := models.RefundRecord{
		Amount:     payment.Amount,
		Reason:     req.Reason,
		RefundedAt: now,
	}
	raw, _ := json.Marshal(record)
	payment.Refund = raw

	if err := s.paymentRepo.Update(db, payment); err != nil {
		return nil, err
	}

	d := buildPaymentDTO(payment, nil)
	return &d, nil
}

func buildPaymentDTO(p *models.Payment, loc *i18n.Localizer) dto.PaymentDTO {
	d := dto.PaymentDTO{
		ID:               p.ID,
		BookingID:        p.BookingID,
		Code:             p.Code,
		Amount:           p.Amount,
		Currency:         p.Currency,
		OriginalAmount:   p.OriginalAmount,
		OriginalCurrency: p.OriginalCurrency,
		ExchangeRate:     p.ExchangeRate,
		Gateway:          p.Gateway,
		Status:           p.Status,
		CompletedAt:      p.CompletedAt,
		FailedAt:         p.FailedAt,
		RefundedAt:       p.RefundedAt,
		CreatedAt:        p.CreatedAt,
	}

	if loc != nil {
		d.DisplayAmount = loc.FormatPrice(p.OriginalAmount)
	}

	return d
}
