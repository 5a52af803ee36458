package datemath

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ErrInvalidDueDate is returned for strings that are not a recognizable due date.
var ErrInvalidDueDate = errors.New("invalid due date")

var (
	usDateRe  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoDateRe = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)

	clockLayouts = []string{"15:04", "15:04:05", "3:04PM", "3:04 PM", "3PM", "3 PM"}
)

// DueDate is a calendar date with an optional time of day. A date without a
// time is a different value from the same date at 00:00.
type DueDate struct {
	date    time.Time
	hasTime bool
	hour    int
	minute  int
}

// NewDueDate returns a date-only DueDate.
func NewDueDate(year int, month time.Month, day int) DueDate {
	return DueDate{date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// WithTime returns a copy of d carrying the given time of day.
func (d DueDate) WithTime(hour, minute int) DueDate {
	d.hasTime = true
	d.hour = hour
	d.minute = minute
	return d
}

// IsZero reports whether no due date is set.
func (d DueDate) IsZero() bool { return d.date.IsZero() }

// HasTime reports whether a time of day is set.
func (d DueDate) HasTime() bool { return d.hasTime }

// DateString returns "YYYY-MM-DD", or "" when unset.
func (d DueDate) DateString() string {
	if d.IsZero() {
		return ""
	}
	return d.date.Format(DateLayout)
}

// ClockString returns "HH:MM", or "" when no time is set.
func (d DueDate) ClockString() string {
	if d.IsZero() || !d.hasTime {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", d.hour, d.minute)
}

// String renders "YYYY-MM-DD,HH:MM", or "YYYY-MM-DD" when there is no time.
func (d DueDate) String() string {
	if d.IsZero() {
		return ""
	}
	if !d.hasTime {
		return d.DateString()
	}
	return d.DateString() + "," + d.ClockString()
}

// In returns the instant the due date starts in loc. Date-only values start
// at midnight.
func (d DueDate) In(loc *time.Location) time.Time {
	return time.Date(d.date.Year(), d.date.Month(), d.date.Day(), d.hour, d.minute, 0, 0, loc)
}

func (d DueDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *DueDate) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*d = DueDate{}
		return nil
	}
	parsed, err := ParseDueDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDueDate accepts "MM/DD/YYYY,HH:MM" as produced by the assistant model
// and the normalized "YYYY-MM-DD,HH:MM". The time part may be missing or
// empty ("12/25/2024," or "12/25/2024"). An empty string is the zero value.
func ParseDueDate(s string) (DueDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DueDate{}, nil
	}

	datePart, clockPart, _ := strings.Cut(s, ",")
	d, err := parseDate(strings.TrimSpace(datePart))
	if err != nil {
		return DueDate{}, err
	}
	return applyClock(d, clockPart, s)
}

// ParseStored rebuilds a DueDate from its storage columns.
func ParseStored(date, clock string) (DueDate, error) {
	if date == "" {
		return DueDate{}, nil
	}
	return ParseDueDate(date + "," + clock)
}

// ResolveDueDate is ParseDueDate with a fallback for relative date phrases
// ("tomorrow", "next friday,09:00") resolved against base.
func (p *Parser) ResolveDueDate(s string, base time.Time) (DueDate, error) {
	d, err := ParseDueDate(s)
	if err == nil {
		return d, nil
	}

	datePart, clockPart, _ := strings.Cut(strings.TrimSpace(s), ",")
	day, relErr := p.Parse(datePart, base)
	if relErr != nil {
		return DueDate{}, err
	}
	return applyClock(NewDueDate(day.Year(), day.Month(), day.Day()), clockPart, s)
}

func parseDate(s string) (DueDate, error) {
	var year, month, day int
	switch {
	case usDateRe.MatchString(s):
		m := usDateRe.FindStringSubmatch(s)
		month, _ = strconv.Atoi(m[1])
		day, _ = strconv.Atoi(m[2])
		year, _ = strconv.Atoi(m[3])
	case isoDateRe.MatchString(s):
		m := isoDateRe.FindStringSubmatch(s)
		year, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		day, _ = strconv.Atoi(m[3])
	default:
		return DueDate{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
	}

	d := NewDueDate(year, time.Month(month), day)
	if d.date.Year() != year || int(d.date.Month()) != month || d.date.Day() != day {
		return DueDate{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidDueDate, s)
	}
	return d, nil
}

func applyClock(d DueDate, clock, original string) (DueDate, error) {
	clock = strings.ToUpper(strings.TrimSpace(clock))
	if clock == "" {
		return d, nil
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, clock); err == nil {
			return d.WithTime(t.Hour(), t.Minute()), nil
		}
	}
	return DueDate{}, fmt.Errorf("%w: bad time in %q", ErrInvalidDueDate, original)
}
