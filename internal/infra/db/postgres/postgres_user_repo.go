package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-birthday-app/internal/domain"
	"telegram-birthday-app/internal/domain/model"
	"telegram-birthday-app/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*PostgresUserRepo)(nil)

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

// Create inserts the row or reports ErrAlreadyExists. ON CONFLICT DO NOTHING
// keeps concurrent identical upserts race-free: the loser sees zero affected
// rows instead of a unique-violation error.
func (r *PostgresUserRepo) Create(ctx context.Context, tx repository.Tx, u *model.User) error {
	const q = `
INSERT INTO users (user_id, first_name, last_name, username, photo)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (user_id) DO NOTHING;
`
	exec, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	tag, err := exec.Exec(ctx, q, u.TelegramID, u.FirstName, u.LastName, u.Username, u.Photo)
	if err != nil {
		return fmt.Errorf("create user %d: %w", u.TelegramID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyExists
	}
	return nil
}

func (r *PostgresUserRepo) FindByTelegramID(ctx context.Context, tx repository.Tx, tgID int64) (*model.User, error) {
	const q = `
SELECT user_id, first_name, last_name, username, photo, birthdate
  FROM users WHERE user_id=$1;
`
	exec, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}

	var (
		u         model.User
		birthdate *time.Time
	)
	row := exec.QueryRow(ctx, q, tgID)
	if err := row.Scan(&u.TelegramID, &u.FirstName, &u.LastName, &u.Username, &u.Photo, &birthdate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user %d: %w", tgID, err)
	}
	if birthdate != nil {
		d := model.DateOf(*birthdate)
		u.Birthdate = &d
	}
	return &u, nil
}

func (r *PostgresUserRepo) UpdateBirthdate(ctx context.Context, tx repository.Tx, tgID int64, birthdate model.Date) error {
	const q = `UPDATE users SET birthdate=$2 WHERE user_id=$1;`

	exec, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	tag, err := exec.Exec(ctx, q, tgID, birthdate.Midnight(time.UTC))
	if err != nil {
		return fmt.Errorf("update birthdate for user %d: %w", tgID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	exec, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
