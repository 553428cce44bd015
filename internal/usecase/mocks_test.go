package usecase_test

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"telegram-birthday-app/internal/domain"
	"telegram-birthday-app/internal/domain/model"
	"telegram-birthday-app/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// mockTxManager runs the callback without a real transaction; repositories
// accept a nil tx as the non-transactional path.
type mockTxManager struct{}

func (mockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}

// memUserRepo is an in-memory UserRepository with optional error hooks to
// exercise failure paths.
type memUserRepo struct {
	mu    sync.Mutex
	users map[int64]*model.User

	CreateErr error
	FindErr   error
	UpdateErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]*model.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, _ repository.Tx, u *model.User) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.TelegramID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *u
	m.users[u.TelegramID] = &cp
	return nil
}

func (m *memUserRepo) FindByTelegramID(ctx context.Context, _ repository.Tx, tgID int64) (*model.User, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[tgID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) UpdateBirthdate(ctx context.Context, _ repository.Tx, tgID int64, birthdate model.Date) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[tgID]
	if !ok {
		return domain.ErrNotFound
	}
	bd := birthdate
	u.Birthdate = &bd
	return nil
}

func (m *memUserRepo) CountUsers(ctx context.Context, _ repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}
