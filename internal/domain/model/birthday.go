package model

import "time"

// MinutesUntilNextBirthday returns the number of whole minutes from now until
// the next occurrence of the birthday's month/day, at 00:00:00 in now's
// location. The comparison is strict: at exactly midnight of the birthday the
// result is 0, not a full year. The division truncates, so partial minutes are
// always rounded down.
//
// February 29 in a non-leap target year normalizes to March 1 (time.Date
// semantics); that is the deliberate policy for leap-day birthdays.
func MinutesUntilNextBirthday(birth Date, now time.Time) int64 {
	next := time.Date(now.Year(), birth.Month, birth.Day, 0, 0, 0, 0, now.Location())
	if next.Before(now) {
		next = time.Date(now.Year()+1, birth.Month, birth.Day, 0, 0, 0, 0, now.Location())
	}
	return int64(next.Sub(now) / time.Minute)
}
