//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"telegram-birthday-app/internal/domain"
	"telegram-birthday-app/internal/domain/model"
	"telegram-birthday-app/internal/domain/ports/repository"
)

func strPtr(s string) *string { return &s }

func TestPostgresUserRepo_CreateIsIdempotentPerID(t *testing.T) {
	truncateUsers(t)
	ctx := context.Background()
	repo := NewPostgresUserRepo(testPool)

	first, err := model.NewUser(100, "Ada", strPtr("Lovelace"), strPtr("ada"), strPtr("https://t.me/photo/ada.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, repository.NoTX, first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Second create with different identity fields must not merge.
	second, _ := model.NewUser(100, "Impostor", nil, strPtr("someone_else"), nil)
	if err := repo.Create(ctx, repository.NoTX, second); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	stored, err := repo.FindByTelegramID(ctx, repository.NoTX, 100)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.FirstName != "Ada" || stored.Username == nil || *stored.Username != "ada" {
		t.Errorf("identity fields were rewritten: %+v", stored)
	}
	if stored.Photo == nil || *stored.Photo != "https://t.me/photo/ada.jpg" {
		t.Errorf("photo url did not round-trip: %v", stored.Photo)
	}
	if stored.Birthdate != nil {
		t.Errorf("fresh user must have no birthdate, got %v", stored.Birthdate)
	}
}

func TestPostgresUserRepo_FindMissing(t *testing.T) {
	truncateUsers(t)
	repo := NewPostgresUserRepo(testPool)

	_, err := repo.FindByTelegramID(context.Background(), repository.NoTX, 999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresUserRepo_UpdateBirthdate(t *testing.T) {
	truncateUsers(t)
	ctx := context.Background()
	repo := NewPostgresUserRepo(testPool)

	u, _ := model.NewUser(200, "Grace", nil, nil, nil)
	if err := repo.Create(ctx, repository.NoTX, u); err != nil {
		t.Fatal(err)
	}

	bd := model.NewDate(1906, time.December, 9)
	if err := repo.UpdateBirthdate(ctx, repository.NoTX, 200, bd); err != nil {
		t.Fatalf("update birthdate: %v", err)
	}

	stored, err := repo.FindByTelegramID(ctx, repository.NoTX, 200)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Birthdate == nil || *stored.Birthdate != bd {
		t.Errorf("birthdate = %v, want %v", stored.Birthdate, bd)
	}

	// Overwrite, no history kept.
	bd2 := model.NewDate(1907, time.January, 1)
	if err := repo.UpdateBirthdate(ctx, repository.NoTX, 200, bd2); err != nil {
		t.Fatal(err)
	}
	stored, _ = repo.FindByTelegramID(ctx, repository.NoTX, 200)
	if stored.Birthdate == nil || *stored.Birthdate != bd2 {
		t.Errorf("birthdate = %v, want %v", stored.Birthdate, bd2)
	}

	if err := repo.UpdateBirthdate(ctx, repository.NoTX, 999, bd); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}
}

func TestPostgresUserRepo_CountUsers(t *testing.T) {
	truncateUsers(t)
	ctx := context.Background()
	repo := NewPostgresUserRepo(testPool)

	for _, id := range []int64{1, 2, 3} {
		u, _ := model.NewUser(id, "User", nil, nil, nil)
		if err := repo.Create(ctx, repository.NoTX, u); err != nil {
			t.Fatal(err)
		}
	}
	n, err := repo.CountUsers(ctx, repository.NoTX)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}
