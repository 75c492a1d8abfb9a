// Package reminder holds the reminder model and the date handling shared by
// the scheduler, the interpreter and every storage driver.
package reminder

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Layout is the only format the system writes to When.
const Layout = "02/01/2006 15:04"

// DefaultText is used when a reminder is created without any text.
const DefaultText = "Recordatorio"

// ErrInvalidWhen is returned for a When value that matches no accepted format.
var ErrInvalidWhen = errors.New("invalid reminder time")

// Repeat is the repetition policy of a reminder.
type Repeat string

const (
	RepeatNone  Repeat = ""
	RepeatDaily Repeat = "daily"
)

// ParseRepeat accepts "", "none", "null" and "daily" in any case.
func ParseRepeat(s string) (Repeat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "null":
		return RepeatNone, nil
	case "daily", "diario", "diariamente":
		return RepeatDaily, nil
	}
	return RepeatNone, fmt.Errorf("unknown repeat %q (available: daily)", s)
}

// MarshalJSON writes RepeatNone as null.
func (r Repeat) MarshalJSON() ([]byte, error) {
	if r == RepeatNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(r))
}

func (r *Repeat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = RepeatNone
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = Repeat(s)
	return nil
}

// Reminder is one persisted reminder record.
type Reminder struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	When     string `json:"when"`
	Repeat   Repeat `json:"repeat"`
	Notified bool   `json:"notified"`
}

// New returns a pending reminder with a fresh ID.
func New(text, when string, repeat Repeat) *Reminder {
	text = strings.TrimSpace(text)
	if text == "" {
		text = DefaultText
	}

	return &Reminder{
		ID:     uuid.NewString(),
		Text:   text,
		When:   strings.TrimSpace(when),
		Repeat: repeat,
	}
}

// Daily reports whether the reminder repeats every day.
func (r *Reminder) Daily() bool {
	return r.Repeat == RepeatDaily
}

// DueAt returns the instant the reminder becomes due. A time-only value is
// anchored to the day of now without rolling over, so a legacy "HH:MM"
// record still fires once its time has passed today.
func (r *Reminder) DueAt(now time.Time) (time.Time, error) {
	return parse(r.When, now, false)
}

// ShouldTrigger reports whether the reminder is pending and its due time has
// been reached.
func (r *Reminder) ShouldTrigger(now time.Time) bool {
	if r.Notified {
		return false
	}

	due, err := r.DueAt(now)
	if err != nil {
		return false
	}
	return !now.Before(due)
}

// Reschedule moves a daily reminder to its next occurrence strictly after
// now and marks it pending again. It returns false for any other reminder.
func (r *Reminder) Reschedule(now time.Time) bool {
	if !r.Daily() {
		return false
	}

	due, err := r.DueAt(now)
	if err != nil {
		return false
	}

	for !due.After(now) {
		due = due.AddDate(0, 0, 1)
	}

	r.When = due.In(now.Location()).Format(Layout)
	r.Notified = false
	return true
}

// ParseWhen parses "DD/MM/YYYY HH:MM", "HH:MM" and ISO-8601 values. A
// time-only value resolves to today, or tomorrow when it has already passed.
func ParseWhen(s string, now time.Time) (time.Time, error) {
	return parse(s, now, true)
}

// Resolve normalises any accepted When value to Layout.
func Resolve(s string, now time.Time) (string, error) {
	t, err := ParseWhen(s, now)
	if err != nil {
		return "", err
	}
	return t.In(now.Location()).Format(Layout), nil
}

// ValidateWhen checks a value typed into an add or edit form: a full date and
// time or a bare HH:MM.
func ValidateWhen(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("%w: empty", ErrInvalidWhen)
	}

	if strings.Contains(s, "/") {
		if _, err := time.Parse(dateLayout, s); err != nil {
			return fmt.Errorf("%w: %q, expected DD/MM/YYYY HH:MM", ErrInvalidWhen, s)
		}
		return nil
	}

	if _, _, err := splitClock(s); err != nil {
		return fmt.Errorf("%w: %q, expected HH:MM", ErrInvalidWhen, s)
	}
	return nil
}

// dateLayout accepts single digit days and months the way users type them.
const dateLayout = "2/1/2006 15:04"

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parse(s string, now time.Time, rollover bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	loc := now.Location()

	switch {
	case strings.Contains(s, "/") && strings.Contains(s, " "):
		t, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWhen, s)
		}
		return t, nil

	case strings.Contains(s, "T"):
		for _, layout := range isoLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				// Offsets in the input are kept as an instant; the wall
				// clock is always read in loc.
				return t.In(loc), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWhen, s)

	case strings.Contains(s, ":") && !strings.Contains(s, "/"):
		h, m, err := splitClock(s)
		if err != nil {
			return time.Time{}, err
		}
		t := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, loc)
		if rollover && t.Before(now) {
			t = t.AddDate(0, 0, 1)
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWhen, s)
}

func splitClock(s string) (int, int, error) {
	hs, ms, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidWhen, s)
	}

	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("%w: hour in %q", ErrInvalidWhen, s)
	}
	m, err := strconv.Atoi(strings.TrimSpace(ms))
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("%w: minute in %q", ErrInvalidWhen, s)
	}
	return h, m, nil
}
