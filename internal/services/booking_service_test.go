package services

import (
	"encoding/json"
	"testing"
	"time"

	"guzo_backend/internal/models"
	"guzo_backend/internal/repositories"
	"guzo_backend/internal/services/dto"
	"guzo_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// stubBookingRepo держит брони в памяти, db игнорируется.
type stubBookingRepo struct {
	bookings map[string]*models.Booking
	created  *models.Booking
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *stubBookingRepo) Create(_ *gorm.DB, b *models.Booking) error {
	if b.ID == "" {
		b.ID = "bk-1"
	}
	r.bookings[b.ID] = b
	r.created = b
	return nil
}

func (r *stubBookingRepo) FindByID(_ *gorm.DB, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, repositories.ErrBookingNotFound
	}
	return b, nil
}

func (r *stubBookingRepo) FindByTourist(_ *gorm.DB, touristID string, f repositories.BookingFilter) ([]models.Booking, int64, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.TouristID == touristID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubBookingRepo) FindByHost(_ *gorm.DB, hostID string, f repositories.BookingFilter) ([]models.Booking, int64, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.HostID == hostID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubBookingRepo) Update(_ *gorm.DB, b *models.Booking) error {
	r.bookings[b.ID] = b
	return nil
}

func (r *stubBookingRepo) SumGuestsOnDate(_ *gorm.DB, offeringID string, date time.Time, timeSlot string) (int64, error) {
	var total int64
	for _, b := range r.bookings {
		if b.OfferingID != offeringID || !b.Date.Equal(date) || b.TimeSlot != timeSlot {
			continue
		}
		if b.Status == models.BookingStatusPending || b.Status == models.BookingStatusConfirmed {
			total += int64(b.Guests)
		}
	}
	return total, nil
}

// stubOfferingRepo отдает один оффер и считает инкременты счетчика.
type stubOfferingRepo struct {
	offering   *models.CulturalOffering
	increments int
}

func (r *stubOfferingRepo) Create(_ *gorm.DB, o *models.CulturalOffering) error { return nil }
func (r *stubOfferingRepo) FindByID(_ *gorm.DB, id string) (*models.CulturalOffering, error) {
	if r.offering == nil || r.offering.ID != id {
		return nil, repositories.ErrOfferingNotFound
	}
	return r.offering, nil
}
func (r *stubOfferingRepo) FindVisibleByID(db *gorm.DB, id string) (*models.CulturalOffering, error) {
	o, err := r.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	if !o.IsActive || !o.IsApproved {
		return nil, repositories.ErrOfferingNotFound
	}
	return o, nil
}
func (r *stubOfferingRepo) Update(_ *gorm.DB, o *models.CulturalOffering) error { return nil }
func (r *stubOfferingRepo) Delete(_ *gorm.DB, id string) error                  { return nil }
func (r *stubOfferingRepo) FindByHost(_ *gorm.DB, hostID string, page, pageSize int) ([]models.CulturalOffering, int64, error) {
	return nil, 0, nil
}
func (r *stubOfferingRepo) Search(_ *gorm.DB, c repositories.OfferingSearchCriteria) ([]models.CulturalOffering, int64, error) {
	return nil, 0, nil
}
func (r *stubOfferingRepo) FindFeatured(_ *gorm.DB, limit int) ([]models.CulturalOffering, error) {
	return nil, nil
}
func (r *stubOfferingRepo) AggregateCategories(_ *gorm.DB) ([]repositories.CategorySummary, error) {
	return nil, nil
}
func (r *stubOfferingRepo) AggregateLocations(_ *gorm.DB) ([]repositories.LocationSummary, error) {
	return nil, nil
}
func (r *stubOfferingRepo) IncrementBookingCount(_ *gorm.DB, id string) error {
	r.increments++
	return nil
}
func (r *stubOfferingRepo) SetApproval(_ *gorm.DB, id string, approved bool) error { return nil }
func (r *stubOfferingRepo) FindPendingApproval(_ *gorm.DB, page, pageSize int) ([]models.CulturalOffering, int64, error) {
	return nil, 0, nil
}

func testOffering() *models.CulturalOffering {
	langs, _ := json.Marshal([]string{"en", "am"})
	o := &models.CulturalOffering{
		HostID:        "host-1",
		Title:         "Coffee ceremony in Addis",
		Category:      "food",
		PriceAmount:   1500,
		PriceCurrency: "ETB",
		City:          "Addis Ababa",
		Region:        "Addis Ababa",
		Languages:     datatypes.JSON(langs),
		MaxGuests:     4,
		IsActive:      true,
		IsApproved:    true,
	}
	o.ID = "off-1"
	return o
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format(bookingDateLayout)
}

func TestBookingCreate_ComputesTotalServerSide(t *testing.T) {
	bookings := newStubBookingRepo()
	offerings := &stubOfferingRepo{offering: testOffering()}
	svc := NewBookingService(bookings, offerings, nil)

	req := &dto.CreateBookingRequest{
		OfferingID:   "off-1",
		Date:         futureDate(),
		TimeSlot:     "morning",
		Guests:       3,
		ContactName:  "Abebe",
		ContactEmail: "abebe@example.com",
	}

	result, err := svc.Create(nil, "tourist-1", req, nil)
	require.NoError(t, err)

	// 1500 * 3, клиентская сумма не принимается вообще
	assert.Equal(t, 4500.0, result.TotalAmount)
	assert.Equal(t, "ETB", result.Currency)
	assert.Equal(t, models.BookingStatusPending, result.Status)
	assert.Equal(t, "host-1", bookings.created.HostID)
}

func TestBookingCreate_RejectsTooManyGuests(t *testing.T) {
	offerings := &stubOfferingRepo{offering: testOffering()}
	svc := NewBookingService(newStubBookingRepo(), offerings, nil)

	req := &dto.CreateBookingRequest{
		OfferingID:   "off-1",
		Date:         futureDate(),
		Guests:       5, // max_guests = 4
		ContactName:  "Abebe",
		ContactEmail: "abebe@example.com",
	}

	_, err := svc.Create(nil, "tourist-1", req, nil)
	assert.ErrorIs(t, err, apperrors.ErrTooManyGuests)
}

func TestBookingCreate_RejectsWhenDateFull(t *testing.T) {
	bookings := newStubBookingRepo()
	offerings := &stubOfferingRepo{offering: testOffering()}
	svc := NewBookingService(bookings, offerings, nil)

	date := futureDate()
	parsed, _ := time.Parse(bookingDateLayout, date)
	existing := &models.Booking{
		OfferingID: "off-1",
		TouristID:  "tourist-2",
		Date:       parsed,
		TimeSlot:   "morning",
		Guests:     3,
		Status:     models.BookingStatusConfirmed,
	}
	existing.ID = "bk-0"
	bookings.bookings["bk-0"] = existing

	req := &dto.CreateBookingRequest{
		OfferingID:   "off-1",
		Date:         date,
		TimeSlot:     "morning",
		Guests:       2, // 3 занято, max_guests = 4
		ContactName:  "Abebe",
		ContactEmail: "abebe@example.com",
	}

	_, err := svc.Create(nil, "tourist-1", req, nil)
	assert.ErrorIs(t, err, apperrors.ErrDateFullyBooked)

	// Одно оставшееся место еще можно забронировать
	req.Guests = 1
	_, err = svc.Create(nil, "tourist-1", req, nil)
	require.NoError(t, err)

	// Другой слот той же даты занятость не делит
	req.Guests = 4
	req.TimeSlot = "evening"
	_, err = svc.Create(nil, "tourist-1", req, nil)
	require.NoError(t, err)
}

func TestBookingCreate_RejectsOwnOffering(t *testing.T) {
	offerings := &stubOfferingRepo{offering: testOffering()}
	svc := NewBookingService(newStubBookingRepo(), offerings, nil)

	req := &dto.CreateBookingRequest{
		OfferingID:   "off-1",
		Date:         futureDate(),
		Guests:       1,
		ContactName:  "Host",
		ContactEmail: "host@example.com",
	}

	_, err := svc.Create(nil, "host-1", req, nil)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestBookingCreate_HiddenOfferingNotBookable(t *testing.T) {
	o := testOffering()
	o.IsApproved = false
	offerings := &stubOfferingRepo{offering: o}
	svc := NewBookingService(newStubBookingRepo(), offerings, nil)

	req := &dto.CreateBookingRequest{
		OfferingID:   "off-1",
		Date:         futureDate(),
		Guests:       1,
		ContactName:  "Abebe",
		ContactEmail: "abebe@example.com",
	}

	_, err := svc.Create(nil, "tourist-1", req, nil)
	assert.ErrorIs(t, err, apperrors.ErrOfferingNotFound)
}

func TestHostDecision_ConfirmSetsTimestamp(t *testing.T) {
	bookings := newStubBookingRepo()
	booking := &models.Booking{
		TouristID: "tourist-1",
		HostID:    "host-1",
		Status:    models.BookingStatusPending,
	}
	booking.ID = "bk-1"
	bookings.bookings["bk-1"] = booking

	svc := NewBookingService(bookings, &stubOfferingRepo{}, nil)

	result, err := svc.HostDecision(nil, "host-1", "bk-1", &dto.HostDecisionRequest{
		Action:   "confirm",
		Response: "See you there",
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusConfirmed, result.Status)
	assert.NotNil(t, result.ConfirmedAt)
	assert.Equal(t, "See you there", result.HostResponse)
}

func TestHostDecision_RejectRequiresReason(t *testing.T) {
	bookings := newStubBookingRepo()
	booking := &models.Booking{HostID: "host-1", Status: models.BookingStatusPending}
	booking.ID = "bk-1"
	bookings.bookings["bk-1"] = booking

	svc := NewBookingService(bookings, &stubOfferingRepo{}, nil)

	_, err := svc.HostDecision(nil, "host-1", "bk-1", &dto.HostDecisionRequest{Action: "reject"})
	assert.ErrorIs(t, err, apperrors.ErrRejectionReasonRequired)

	// Бронь не тронута
	assert.Equal(t, models.BookingStatusPending, booking.Status)
}

func TestHostDecision_CannotRejectConfirmed(t *testing.T) {
	bookings := newStubBookingRepo()
	booking := &models.Booking{HostID: "host-1", Status: models.BookingStatusConfirmed}
	booking.ID = "bk-1"
	bookings.bookings["bk-1"] = booking

	svc := NewBookingService(bookings, &stubOfferingRepo{}, nil)

	_, err := svc.HostDecision(nil, "host-1", "bk-1", &dto.HostDecisionRequest{
		Action: "reject",
		Reason: "changed my mind",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestHostDecision_ForeignHostDenied(t *testing.T) {
	bookings := newStubBookingRepo()
	booking := &models.Booking{HostID: "host-1", Status: models.BookingStatusPending}
	booking.ID = "bk-1"
	bookings.bookings["bk-1"] = booking

	svc := NewBookingService(bookings, &stubOfferingRepo{}, nil)

	_, err := svc.HostDecision(nil, "host-2", "bk-1", &dto.HostDecisionRequest{Action: "confirm"})
	assert.ErrorIs(t, err, apperrors.ErrNotBookingParticipant)
}

func TestCancel_OnlyFromConfirmed(t *testing.T) {
	bookings := newStubBookingRepo()
	booking := &models.Booking{TouristID: "tourist-1", Status: models.BookingStatusCompleted}
	booking.ID = "bk-1"
	bookings.bookings["bk-1"] = booking

	svc := NewBookingService(bookings, &stubOfferingRepo{}, nil)

	_, err := svc.Cancel(nil, "tourist-1", "bk-1")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)
}

func TestComplete_RejectsPendingBooking(t *testing.T) {
	bookings := newStubBookingRepo()
	booking := &models.Booking{HostID: "host-1", Status: models.BookingStatusPending}
	booking.ID = "bk-1"
	bookings.bookings["bk-1"] = booking

	offerings := &stubOfferingRepo{}
	svc := NewBookingService(bookings, offerings, nil)

	_, err := svc.Complete(nil, "host-1", models.UserRoleHost, "bk-1")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
	// Транзакция не стартовала, счетчик не тронут
	assert.Equal(t, 0, offerings.increments)
}

func TestComplete_IncrementsBookingCountOnce(t *testing.T) {
	bookings := newStubBookingRepo()
	booking := &models.Booking{
		HostID:     "host-1",
		OfferingID: "off-1",
		Status:     models.BookingStatusConfirmed,
	}
	booking.ID = "bk-1"
	bookings.bookings["bk-1"] = booking

	offerings := &stubOfferingRepo{offering: testOffering()}
	svc := NewBookingService(bookings, offerings, nil)
	svc.(*bookingService).transact = func(db *gorm.DB, fn func(tx *gorm.DB) error) error {
		return fn(db)
	}

	result, err := svc.Complete(nil, "host-1", models.UserRoleHost, "bk-1")
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusCompleted, result.Status)
	assert.NotNil(t, result.CompletedAt)
	assert.Equal(t, 1, offerings.increments)

	// Повторный complete отбивается guard'ом, счетчик не растет
	_, err = svc.Complete(nil, "host-1", models.UserRoleHost, "bk-1")
	require.Error(t, err)
	assert.Equal(t, 1, offerings.increments)
}
