package repositories

import (
	"errors"
	"time"

	"guzo_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrPaymentExists   = errors.New("payment already exists for booking")
)

type PaymentRepository interface {
	Create(db *gorm.DB, payment *models.Payment) error
	FindByID(db *gorm.DB, id string) (*models.Payment, error)
	FindByBookingID(db *gorm.DB, bookingID string) (*models.Payment, error)
	FindByCode(db *gorm.DB, code string) (*models.Payment, error)
	FindByUser(db *gorm.DB, userID string, page, pageSize int) ([]models.Payment, int64, error)
	Update(db *gorm.DB, payment *models.Payment) error
	NextSequence(db *gorm.DB, day time.Time) (int, error)
}

type PaymentRepositoryImpl struct{}

func NewPaymentRepository() PaymentRepository {
	return &PaymentRepositoryImpl{}
}

func (r *PaymentRepositoryImpl) Create(db *gorm.DB, payment *models.Payment) error {
	// Отмененные и проваленные платежи не блокируют повторную оплату.
	var existing models.Payment
	err := db.Where("booking_id = ?", payment.BookingID).
		Where("status NOT IN ?", []models.PaymentStatus{models.PaymentStatusCancelled, models.PaymentStatusFailed}).
		First(&existing).Error
	if err == nil {
		return ErrPaymentExists
	}

	return db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Payment, error) {
	var payment models.Payment
	err := db.First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByBookingID(db *gorm.DB, bookingID string) (*models.Payment, error) {
	var payment models.Payment
	err := db.First(&payment, "booking_id = ?", bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByCode(db *gorm.DB, code string) (*models.Payment, error) {
	var payment models.Payment
	err := db.First(&payment, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByUser(db *gorm.DB, userID string, page, pageSize int) ([]models.Payment, int64, error) {
	var payments []models.Payment
	query := db.Model(&models.Payment{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&payments).Error

	return payments, total, err
}

func (r *PaymentRepositoryImpl) Update(db *gorm.DB, payment *models.Payment) error {
	result := db.Save(payment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// NextSequence атомарно выдает следующий номер платежа за день.
// Атомарный upsert убирает гонку двух параллельных платежей за один
// код; форма upsert'а своя для каждого диалекта.
func (r *PaymentRepositoryImpl) NextSequence(db *gorm.DB, day time.Time) (int, error) {
	key := day.Format("060102")
	var seq int

	if db.Dialector.Name() == "mysql" {
		// LAST_INSERT_ID(expr) запоминает выданное значение и для
		// вставки, и для обновления.
		err := db.Exec(`
			INSERT INTO payment_counters (day, seq)
			VALUES (?, LAST_INSERT_ID(1))
			ON DUPLICATE KEY UPDATE seq = LAST_INSERT_ID(seq + 1)`,
			key,
		).Error
		if err != nil {
			return 0, err
		}
		if err := db.Raw(`SELECT LAST_INSERT_ID()`).Scan(&seq).Error; err != nil {
			return 0, err
		}
		return seq, nil
	}

	err := db.Raw(`
		INSERT INTO payment_counters (day, seq)
		VALUES (?, 1)
		ON CONFLICT (day) DO UPDATE SET seq = payment_counters.seq + 1
		RETURNING seq`,
		key,
	).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}
