package model_test

import (
	"testing"
	"time"

	"telegram-birthday-app/internal/domain/model"
)

func TestMinutesUntilNextBirthday(t *testing.T) {
	tests := []struct {
		name  string
		birth model.Date
		now   time.Time
		want  int64
	}{
		{
			name:  "exactly midnight of the birthday is zero, not next year",
			birth: model.NewDate(1990, time.July, 4),
			now:   time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "one hour before midnight",
			birth: model.NewDate(1990, time.July, 4),
			now:   time.Date(2024, time.July, 3, 23, 0, 0, 0, time.UTC),
			want:  60,
		},
		{
			name:  "year rollover one minute before new year's day",
			birth: model.NewDate(2000, time.January, 1),
			now:   time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "birthday passed this year rolls to next year",
			birth: model.NewDate(1985, time.March, 10),
			now:   time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
			// 2025-03-10 00:00 is 364 days away (2024 is a leap year but Feb 29 already passed).
			want: 364 * 24 * 60,
		},
		{
			name:  "partial minutes truncate toward zero",
			birth: model.NewDate(1990, time.July, 4),
			now:   time.Date(2024, time.July, 3, 23, 0, 30, 0, time.UTC),
			want:  59,
		},
		{
			name:  "one second after midnight rolls a full year minus a second",
			birth: model.NewDate(1990, time.July, 4),
			now:   time.Date(2023, time.July, 4, 0, 0, 1, 0, time.UTC),
			// Next candidate is 2024-07-04 00:00 (366 days, leap year), minus one second truncated.
			want: 366*24*60 - 1,
		},
		{
			name:  "leap day birthday in a non-leap year observes March 1",
			birth: model.NewDate(1996, time.February, 29),
			now:   time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
			want:  24 * 60,
		},
		{
			name:  "leap day birthday targets Feb 29 when next year is leap",
			birth: model.NewDate(1996, time.February, 29),
			now:   time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "leap day already passed in a non-leap year rolls to next March 1",
			birth: model.NewDate(1996, time.February, 29),
			now:   time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC),
			// Candidate 2025-03-01 is in the past; 2026 is non-leap so next is 2026-03-01.
			want: 364 * 24 * 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.MinutesUntilNextBirthday(tt.birth, tt.now)
			if got != tt.want {
				t.Errorf("MinutesUntilNextBirthday(%v, %v) = %d, want %d", tt.birth, tt.now, got, tt.want)
			}
		})
	}
}

func TestMinutesUntilNextBirthdayUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	birth := model.NewDate(1990, time.July, 4)
	now := time.Date(2024, time.July, 3, 23, 0, 0, 0, loc)

	if got := model.MinutesUntilNextBirthday(birth, now); got != 60 {
		t.Errorf("expected midnight in now's zone to be 60 minutes away, got %d", got)
	}
}
