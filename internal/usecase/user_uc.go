package usecase

import (
	"context"
	"errors"

	"telegram-birthday-app/internal/domain"
	"telegram-birthday-app/internal/domain/model"
	"telegram-birthday-app/internal/domain/ports/repository"
	"telegram-birthday-app/internal/infra/logging"
	"telegram-birthday-app/internal/infra/metrics"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

// NewUserParams carries the identity fields a caller may submit when
// registering a user. Optional fields stay nil when the platform did not
// provide them.
type NewUserParams struct {
	TelegramID int64
	FirstName  string
	LastName   *string
	Username   *string
	Photo      *string
}

// UserUseCase exposes the user operations used by the web API and the bot.
type UserUseCase interface {
	// CreateOrGet registers the user or returns the existing row unchanged.
	// Identity fields of an existing row are never rewritten.
	CreateOrGet(ctx context.Context, p NewUserParams) (*model.User, bool, error)
	GetByTelegramID(ctx context.Context, tgID int64) (*model.User, error)
	// SetBirthdate overwrites the stored birthdate and returns the updated row.
	SetBirthdate(ctx context.Context, tgID int64, birthdate model.Date) (*model.User, error)
	Count(ctx context.Context) (int, error)
}

type userUC struct {
	users repository.UserRepository
	tm    repository.TransactionManager
	log   *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, tm repository.TransactionManager, logger *zerolog.Logger) *userUC {
	return &userUC{
		users: users,
		tm:    tm,
		log:   logger,
	}
}

func (u *userUC) CreateOrGet(ctx context.Context, p NewUserParams) (*model.User, bool, error) {
	defer logging.TraceDuration(u.log, "UserUC.CreateOrGet")()

	nu, err := model.NewUser(p.TelegramID, p.FirstName, p.LastName, p.Username, p.Photo)
	if err != nil {
		return nil, false, err
	}

	var (
		user    *model.User
		created bool
	)
	// The insert itself is race-free (ON CONFLICT DO NOTHING); the transaction
	// keeps the conflict-branch fetch consistent with the insert attempt.
	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		err := u.users.Create(ctx, tx, nu)
		if err == nil {
			user, created = nu, true
			return nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return err
		}
		existing, err := u.users.FindByTelegramID(ctx, tx, p.TelegramID)
		if err != nil {
			return err
		}
		user, created = existing, false
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		metrics.IncUsersRegistered()
		logging.With(ctx, u.log).Info().Int64("tg_id", user.TelegramID).Msg("user created")
	}
	return user, created, nil
}

func (u *userUC) GetByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.GetByTelegramID")()
	return u.users.FindByTelegramID(ctx, repository.NoTX, tgID)
}

func (u *userUC) SetBirthdate(ctx context.Context, tgID int64, birthdate model.Date) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.SetBirthdate")()

	var user *model.User
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := u.users.UpdateBirthdate(ctx, tx, tgID, birthdate); err != nil {
			return err
		}
		updated, err := u.users.FindByTelegramID(ctx, tx, tgID)
		if err != nil {
			return err
		}
		user = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUC) Count(ctx context.Context) (int, error) {
	defer logging.TraceDuration(u.log, "UserUC.Count")()
	return u.users.CountUsers(ctx, repository.NoTX)
}
