package repository

import (
	"context"

	"telegram-birthday-app/internal/domain/model"
)

// UserRepository is the single persistence port of the system: one row per
// Telegram account, keyed by the external Telegram user id.
type UserRepository interface {
	// Create inserts a new user row. When a row with the same Telegram id
	// already exists it returns domain.ErrAlreadyExists and leaves the stored
	// identity fields untouched (the upsert is create-if-absent, not merge).
	Create(ctx context.Context, tx Tx, u *model.User) error
	// FindByTelegramID returns domain.ErrNotFound on a miss.
	FindByTelegramID(ctx context.Context, tx Tx, tgID int64) (*model.User, error)
	// UpdateBirthdate overwrites the stored birthdate. Returns
	// domain.ErrNotFound when no row exists for tgID.
	UpdateBirthdate(ctx context.Context, tx Tx, tgID int64, birthdate model.Date) error
	CountUsers(ctx context.Context, tx Tx) (int, error)
}
