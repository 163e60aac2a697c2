package workers

import (
	"context"
	"time"

	"guzo_backend/internal/logger"

	"gorm.io/gorm"
)

// TokenWorker чистит протухшие refresh-токены и гасит verification-токены
// давно не подтвержденных аккаунтов.
type TokenWorker struct {
	db *gorm.DB
}

func NewTokenWorker(db *gorm.DB) *TokenWorker {
	return &TokenWorker{db: db}
}

// Start запускает фоновые задачи очистки токенов
func (w *TokenWorker) Start(ctx context.Context) {
	go w.cleanExpiredRefreshTokens(ctx)
	go w.cleanStaleVerificationTokens(ctx)
}

func (w *TokenWorker) cleanExpiredRefreshTokens(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("token", "refresh cleanup stopped", nil)
			return
		case <-ticker.C:
			result := w.db.Exec(`
				DELETE FROM refresh_tokens
				WHERE expires_at < NOW()
			`)
			if result.Error != nil {
				logger.Error("Error cleaning expired refresh tokens", "error", result.Error)
			} else if result.RowsAffected > 0 {
				logger.Info("Cleaned expired refresh tokens", "worker", "token", "count", result.RowsAffected)
			}
		}
	}
}

// cleanStaleVerificationTokens гасит verification-токены аккаунтов,
// не подтвержденных за 7 дней. Аккаунт остается, письмо можно
// перезапросить.
func (w *TokenWorker) cleanStaleVerificationTokens(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("token", "verification cleanup stopped", nil)
			return
		case <-ticker.C:
			cutoff := time.Now().AddDate(0, 0, -7)
			result := w.db.Exec(`
				UPDATE users
				SET verification_token = '', updated_at = NOW()
				WHERE is_verified = false
				AND verification_token != ''
				AND created_at < ?
			`, cutoff)
			if result.Error != nil {
				logger.Error("Error cleaning stale verification tokens", "error", result.Error)
			} else if result.RowsAffected > 0 {
				logger.Info("Expired stale verification tokens", "worker", "token", "count", result.RowsAffected)
			}
		}
	}
}
