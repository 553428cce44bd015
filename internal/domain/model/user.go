package model

import (
	"telegram-birthday-app/internal/domain"
)

// User is a domain entity representing a Telegram account in our system.
// TelegramID doubles as the primary key; there is no internal surrogate id.
// Optional profile fields are pointers so that "never supplied" survives the
// round trip through JSON and the database untouched.
type User struct {
	TelegramID int64
	FirstName  string
	LastName   *string
	Username   *string
	Photo      *string
	Birthdate  *Date
}

func NewUser(tgID int64, firstName string, lastName, username, photo *string) (*User, error) {
	if tgID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if firstName == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		TelegramID: tgID,
		FirstName:  firstName,
		LastName:   lastName,
		Username:   username,
		Photo:      photo,
	}, nil
}
