package services

import (
	"encoding/json"
	"errors"
	"time"

	"guzo_backend/internal/email"
	"guzo_backend/internal/i18n"
	"guzo_backend/internal/logger"
	"guzo_backend/internal/models"
	"guzo_backend/internal/repositories"
	"guzo_backend/internal/services/dto"
	"guzo_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const bookingDateLayout = "2006-01-02"

type BookingService interface {
	Create(db *gorm.DB, touristID string, req *dto.CreateBookingRequest, loc *i18n.Localizer) (*dto.BookingDTO, error)
	GetByID(db *gorm.DB, userID string, role models.UserRole, bookingID string, loc *i18n.Localizer) (*dto.BookingDTO, error)
	ListForTourist(db *gorm.DB, touristID string, req *dto.ListBookingsRequest, loc *i18n.Localizer) (*models.PaginatedResponse, error)
	ListForHost(db *gorm.DB, hostID string, req *dto.ListBookingsRequest, loc *i18n.Localizer) (*models.PaginatedResponse, error)
	HostDecision(db *gorm.DB, hostID, bookingID string, req *dto.HostDecisionRequest) (*dto.BookingDTO, error)
	Cancel(db *gorm.DB, userID, bookingID string) (*dto.BookingDTO, error)
	Complete(db *gorm.DB, userID string, role models.UserRole, bookingID string) (*dto.BookingDTO, error)
}

type bookingService struct {
	bookingRepo  repositories.BookingRepository
	offeringRepo repositories.OfferingRepository
	email        email.Provider

	// transact оборачивает многошаговые записи; в тестах подменяется
	// на прямой вызов, чтобы обойтись без живой БД.
	transact func(db *gorm.DB, fn func(tx *gorm.DB) error) error
}

func NewBookingService(
	bookingRepo repositories.BookingRepository,
	offeringRepo repositories.OfferingRepository,
	emailProvider email.Provider,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		offeringRepo: offeringRepo,
		email:        emailProvider,
		transact: func(db *gorm.DB, fn func(tx *gorm.DB) error) error {
			return db.Transaction(fn)
		},
	}
}

func (s *bookingService) Create(db *gorm.DB, touristID string, req *dto.CreateBookingRequest, loc *i18n.Localizer) (*dto.BookingDTO, error) {
	offering, err := s.offeringRepo.FindVisibleByID(db, req.OfferingID)
	if err != nil {
		if errors.Is(err, repositories.ErrOfferingNotFound) {
			return nil, apperrors.ErrOfferingNotFound
		}
		return nil, err
	}

	if !offering.IsBookable() {
		return nil, apperrors.ErrOfferingNotBookable
	}
	if offering.HostID == touristID {
		return nil, apperrors.NewBadRequestError("You cannot book your own offering")
	}
	if req.Guests > offering.MaxGuests {
		return nil, apperrors.ErrTooManyGuests
	}

	date, err := time.Parse(bookingDateLayout, req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid booking date")
	}
	if date.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, apperrors.NewBadRequestError("Booking date must be in the future")
	}

	// Вместимость общая на дату/слот: учитываем гостей живых броней.
	booked, err := s.bookingRepo.SumGuestsOnDate(db, offering.ID, date, req.TimeSlot)
	if err != nil {
		return nil, err
	}
	if booked+int64(req.Guests) > int64(offering.MaxGuests) {
		return nil, apperrors.ErrDateFullyBooked
	}

	var details []byte
	if len(req.GuestDetails) > 0 {
		details, _ = json.Marshal(req.GuestDetails)
	}

	// Сумма всегда серверная: цена оффера * гости, в базовой валюте.
	booking := &models.Booking{
		TouristID:    touristID,
		HostID:       offering.HostID,
		OfferingID:   offering.ID,
		Date:         date,
		TimeSlot:     req.TimeSlot,
		Guests:       req.Guests,
		GuestDetails: details,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		TotalAmount:  offering.PriceAmount * float64(req.Guests),
		Currency:     offering.PriceCurrency,
		Status:       models.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(db, booking); err != nil {
		return nil, err
	}

	booking.Offering = offering
	s.notifyTourist(booking, "pending", "")

	d := buildBookingDTO(booking, loc)
	return &d, nil
}

func (s *bookingService) GetByID(db *gorm.DB, userID string, role models.UserRole, bookingID string, loc *i18n.Localizer) (*dto.BookingDTO, error) {
	booking, err := s.findParticipantBooking(db, userID, role, bookingID)
	if err != nil {
		return nil, err
	}

	d := buildBookingDTO(booking, loc)
	return &d, nil
}

func (s *bookingService) ListForTourist(db *gorm.DB, touristID string, req *dto.ListBookingsRequest, loc *i18n.Localizer) (*models.PaginatedResponse, error) {
	filter := normalizeBookingFilter(req)
	bookings, total, err := s.bookingRepo.FindByTourist(db, touristID, filter)
	if err != nil {
		return nil, err
	}
	return paginateBookings(bookings, total, filter, loc), nil
}

func (s *bookingService) ListForHost(db *gorm.DB, hostID string, req *dto.ListBookingsRequest, loc *i18n.Localizer) (*models.PaginatedResponse, error) {
	filter := normalizeBookingFilter(req)
	bookings, total, err := s.bookingRepo.FindByHost(db, hostID, filter)
	if err != nil {
		return nil, err
	}
	return paginateBookings(bookings, total, filter, loc), nil
}

// HostDecision обрабатывает confirm/reject хостом pending-брони.
// Отказ без причины не принимается.
func (s *bookingService) HostDecision(db *gorm.DB, hostID, bookingID string, req *dto.HostDecisionRequest) (*dto.BookingDTO, error) {
	booking, err := s.bookingRepo.FindByID(db, bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	if booking.HostID != hostID {
		return nil, apperrors.ErrNotBookingParticipant
	}

	now := time.Now()
	switch req.Action {
	case "confirm":
		next, err := booking.Status.Transition(models.BookingStatusConfirmed)
		if err != nil {
			return nil, err
		}
		booking.Status = next
		booking.HostResponse = req.Response
		booking.ConfirmedAt = &now

	case "reject":
		if req.Reason == "" {
			return nil, apperrors.ErrRejectionReasonRequired
		}
		next, err := booking.Status.Transition(models.BookingStatusRejected)
		if err != nil {
			return nil, err
		}
		booking.Status = next
		booking.HostResponse = req.Response
		booking.RejectionReason = req.Reason

	default:
		return nil, apperrors.NewBadRequestError("Unknown action: " + req.Action)
	}

	if err := s.bookingRepo.Update(db, booking); err != nil {
		return nil, err
	}

	s.notifyTourist(booking, string(booking.Status), booking.RejectionReason)

	d := buildBookingDTO(booking, nil)
	return &d, nil
}

// Cancel доступен обеим сторонам брони: туристу и хосту.
func (s *bookingService) Cancel(db *gorm.DB, userID, bookingID string) (*dto.BookingDTO, error) {
	booking, err := s.bookingRepo.FindByID(db, bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	if booking.TouristID != userID && booking.HostID != userID {
		return nil, apperrors.ErrNotBookingParticipant
	}

	next, err := booking.Status.Transition(models.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking.Status = next
	booking.CancelledAt = &now

	if err := s.bookingRepo.Update(db, booking); err != nil {
		return nil, err
	}

	d := buildBookingDTO(booking, nil)
	return &d, nil
}

// Complete переводит бронь в completed и инкрементит booking_count
// оффера. Обе записи идут одной транзакцией: либо и статус, и счетчик,
// либо ничего.
func (s *bookingService) Complete(db *gorm.DB, userID string, role models.UserRole, bookingID string) (*dto.BookingDTO, error) {
	booking, err := s.bookingRepo.FindByID(db, bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	if booking.HostID != userID && role != models.UserRoleAdmin {
		return nil, apperrors.ErrNotBookingParticipant
	}

	next, err := booking.Status.Transition(models.BookingStatusCompleted)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking.Status = next
	booking.CompletedAt = &now

	err = s.transact(db, func(tx *gorm.DB) error {
		if err := s.bookingRepo.Update(tx, booking); err != nil {
			return err
		}
		return s.offeringRepo.IncrementBookingCount(tx, booking.OfferingID)
	})
	if err != nil {
		return nil, err
	}

	s.notifyTourist(booking, string(booking.Status), "")

	d := buildBookingDTO(booking, nil)
	return &d, nil
}

// findParticipantBooking достает бронь и проверяет, что userID - ее
// турист или хост. Админ видит все.
func (s *bookingService) findParticipantBooking(db *gorm.DB, userID string, role models.UserRole, bookingID string) (*models.Booking, error) {
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

	return booking, nil
}

func (s *bookingService) notifyTourist(booking *models.Booking, status, note string) {
	if s.email == nil {
		return
	}
	title := ""
	if booking.Offering != nil {
		title = booking.Offering.Title
	}
	if err := s.email.SendBookingStatus(booking.ContactEmail, title, status, note); err != nil {
		logger.Warn("failed to send booking status email",
			"booking_id", booking.ID, "status", status, "error", err)
	}
}

func normalizeBookingFilter(req *dto.ListBookingsRequest) repositories.BookingFilter {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	return repositories.BookingFilter{
		Status:   models.BookingStatus(req.Status),
		Page:     page,
		PageSize: pageSize,
	}
}

func paginateBookings(bookings []models.Booking, total int64, filter repositories.BookingFilter, loc *i18n.Localizer) *models.PaginatedResponse {
	dtos := make([]dto.BookingDTO, 0, len(bookings))
	for i := range bookings {
		dtos = append(dtos, buildBookingDTO(&bookings[i], loc))
	}
	return &models.PaginatedResponse{
		Data:       dtos,
		Pagination: models.NewPagination(filter.Page, filter.PageSize, total),
	}
}

func buildBookingDTO(b *models.Booking, loc *i18n.Localizer) dto.BookingDTO {
	d := dto.BookingDTO{
		ID:              b.ID,
		OfferingID:      b.OfferingID,
		TouristID:       b.TouristID,
		HostID:          b.HostID,
		Date:            b.Date.Format(bookingDateLayout),
		TimeSlot:        b.TimeSlot,
		Guests:          b.Guests,
		ContactName:     b.ContactName,
		ContactEmail:    b.ContactEmail,
		ContactPhone:    b.ContactPhone,
		TotalAmount:     b.TotalAmount,
		Currency:        b.Currency,
		Status:          b.Status,
		HostResponse:    b.HostResponse,
		RejectionReason: b.RejectionReason,
		ConfirmedAt:     b.ConfirmedAt,
		CompletedAt:     b.CompletedAt,
		CancelledAt:     b.CancelledAt,
		CreatedAt:       b.CreatedAt,
	}

	if len(b.GuestDetails) > 0 {
		var details []models.GuestDetail
		if err := json.Unmarshal(b.GuestDetails, &details); err == nil {
			d.GuestDetails = details
		}
	}

	if b.Offering != nil {
		d.OfferingTitle = b.Offering.Title
		d.OfferingImage = b.Offering.MainImage()
	}

	if b.Payment != nil {
		p := buildPaymentDTO(b.Payment, loc)
		d.Payment = &p
	}

	if loc != nil {
		d.DisplayAmount = loc.FormatPrice(b.TotalAmount)
	}

	return d
}
