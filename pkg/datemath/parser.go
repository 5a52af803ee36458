package datemath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnrecognized is returned when a phrase is not a known relative date.
var ErrUnrecognized = errors.New("unrecognized relative date")

var (
	inDurationRe = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)

	weekdays = map[string]time.Weekday{
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
		"sunday":    time.Sunday,
	}
)

// Parser converts relative date phrases to absolute dates in one timezone.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "America/Chicago"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Parse converts a relative phrase to midnight of the resolved day.
// The baseTime is used as the reference point (usually time.Now()).
func (p *Parser) Parse(relative string, baseTime time.Time) (time.Time, error) {
	relative = strings.Join(strings.Fields(strings.ToLower(relative)), " ")

	switch relative {
	case "today", "tonight":
		return p.startOfDay(baseTime), nil
	case "tomorrow":
		return p.startOfDay(baseTime.AddDate(0, 0, 1)), nil
	case "yesterday":
		return p.startOfDay(baseTime.AddDate(0, 0, -1)), nil
	}

	if strings.HasPrefix(relative, "in ") {
		return p.parseInDuration(relative, baseTime)
	}

	if strings.HasPrefix(relative, "next ") {
		return p.parseWeekday(strings.TrimPrefix(relative, "next "), baseTime, true)
	}

	if _, ok := weekdays[strings.TrimPrefix(relative, "this ")]; ok {
		return p.parseWeekday(strings.TrimPrefix(relative, "this "), baseTime, false)
	}

	return baseTime, fmt.Errorf("%w: %q", ErrUnrecognized, relative)
}

// parseInDuration handles patterns like "in 3 days", "in 2 weeks", "in 1 month".
func (p *Parser) parseInDuration(relative string, baseTime time.Time) (time.Time, error) {
	matches := inDurationRe.FindStringSubmatch(relative)
	if len(matches) != 3 {
		return baseTime, fmt.Errorf("invalid duration format: %q", relative)
	}

	amount, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch {
	case strings.HasPrefix(unit, "day"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(unit, "week"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount*7)), nil
	default:
		return p.startOfDay(baseTime.AddDate(0, amount, 0)), nil
	}
}

// parseWeekday resolves a weekday name to its next occurrence. With strict
// set, today never matches ("next wednesday" on a Wednesday is a week out).
func (p *Parser) parseWeekday(dayName string, baseTime time.Time, strict bool) (time.Time, error) {
	targetWeekday, ok := weekdays[dayName]
	if !ok {
		return baseTime, fmt.Errorf("unknown weekday: %q", dayName)
	}

	base := baseTime.In(p.location)
	daysUntil := int(targetWeekday - base.Weekday())
	if daysUntil < 0 || (strict && daysUntil == 0) {
		daysUntil += 7
	}

	return p.startOfDay(base.AddDate(0, 0, daysUntil)), nil
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}
