package usecase

import (
	"context"
	"time"

	"telegram-birthday-app/internal/domain/model"
	"telegram-birthday-app/internal/domain/ports/repository"
	"telegram-birthday-app/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ ProfileUseCase = (*profileUC)(nil)

// ProfileView is the read-only composite the Mini App renders: stored user
// fields plus the countdown to the next birthday. TimeLeft is 0 when the
// birthdate is unset; the unset-vs-set distinction stays on User.Birthdate and
// is only flattened to a sentinel at the presentation boundary.
type ProfileView struct {
	User     *model.User
	TimeLeft int64
}

type ProfileUseCase interface {
	// GetProfile returns domain.ErrNotFound for an unknown id.
	GetProfile(ctx context.Context, tgID int64) (*ProfileView, error)
}

type profileUC struct {
	users repository.UserRepository
	log   *zerolog.Logger
	now   func() time.Time
}

func NewProfileUseCase(users repository.UserRepository, logger *zerolog.Logger) *profileUC {
	return &profileUC{
		users: users,
		log:   logger,
		now:   time.Now,
	}
}

func (p *profileUC) GetProfile(ctx context.Context, tgID int64) (*ProfileView, error) {
	defer logging.TraceDuration(p.log, "ProfileUC.GetProfile")()

	user, err := p.users.FindByTelegramID(ctx, repository.NoTX, tgID)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{User: user}
	if user.Birthdate != nil {
		view.TimeLeft = model.MinutesUntilNextBirthday(*user.Birthdate, p.now())
	}
	return view, nil
}
