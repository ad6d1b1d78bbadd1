package util

import (
	"strings"
	"time"
)

// LocalDateTime is a time value that accepts the wire formats the organizer
// clients send: a full local timestamp or a bare calendar date.
type LocalDateTime struct {
	time.Time
}

const (
	layoutDateTime = "2006-01-02T15:04:05"
	layoutDate     = "2006-01-02"
)

func ToTimePtr(ldt *LocalDateTime) *time.Time {
	if ldt == nil || ldt.IsZero() {
		return nil
	}
	t := ldt.Time
	return &t
}

func (ldt *LocalDateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.ParseInLocation(layoutDateTime, s, time.Local)
	if err != nil {
		t, err = time.ParseInLocation(layoutDate, s, time.Local)
		if err != nil {
			return err
		}
	}
	ldt.Time = t
	return nil
}

func (ldt LocalDateTime) MarshalJSON() ([]byte, error) {
	if ldt.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + ldt.Format(layoutDateTime) + `"`), nil
}

func (ldt LocalDateTime) Equal(other LocalDateTime) bool {
	return ldt.Time.Equal(other.Time)
}

// SameCalendarDay reports whether two times fall on the same local date.
// Both values are rebased into the local zone first: the same instant can
// arrive represented in different zones (driver rebasing, UTC catalog
// dates) and must still compare equal.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.In(time.Local).Date()
	by, bm, bd := b.In(time.Local).Date()
	return ay == by && am == bm && ad == bd
}

// DayKey formats a time as its local calendar date, used as a bucket key.
func DayKey(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}
