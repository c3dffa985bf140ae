package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GillesH-web/Pythagore/internal/config"
)

// ErrInvalidDate matches every *InvalidDateError through errors.Is.
var ErrInvalidDate = errors.New(config.ErrDateParse)

// InvalidDateError reports a birth date string that cannot be read as a calendar date.
type InvalidDateError struct {
	Value string // The raw input.
	Err   error  // The last parse error, if any.
}

func (e *InvalidDateError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %q", config.ErrInvalidBirthDate, e.Value)
	}
	return fmt.Sprintf("%s: %q: %v", config.ErrInvalidBirthDate, e.Value, e.Err)
}

func (e *InvalidDateError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInvalidDate) hold for any InvalidDateError.
func (e *InvalidDateError) Is(target error) bool { return target == ErrInvalidDate }

// BirthDate is a plain calendar date with no time-of-day or zone.
type BirthDate struct {
	Year  int
	Month int
	Day   int
}

// dateLayouts lists the accepted input forms, most common first.
var dateLayouts = []string{
	config.DateFormatFullDash,
	config.DateFormatFullBasic,
	config.DateFormatRFC3339,
	config.DateFormatFullT,
}

// ParseBirthDate reads an ISO-8601 style date. Only layouts carrying a full
// year are accepted; anything else returns an *InvalidDateError.
func ParseBirthDate(value string) (BirthDate, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return BirthDate{}, &InvalidDateError{Value: value}
	}

	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, trimmed)
		if err == nil {
			return DateOf(t), nil
		}
		lastErr = err
	}
	return BirthDate{}, &InvalidDateError{Value: value, Err: lastErr}
}

// DateOf keeps the calendar fields of t in its own location.
func DateOf(t time.Time) BirthDate {
	y, m, d := t.Date()
	return BirthDate{Year: y, Month: int(m), Day: d}
}

// Time returns midnight of the date in loc (UTC when loc is nil).
func (d BirthDate) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// String formats the date as YYYY-MM-DD.
func (d BirthDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// LifePathNumber sums every digit of DDMMYYYY and reduces the total.
func (d BirthDate) LifePathNumber() int {
	digits := fmt.Sprintf("%02d%02d%04d", d.Day, d.Month, d.Year)
	sum := 0
	for _, c := range digits {
		if c >= '0' && c <= '9' {
			sum += int(c - '0')
		}
	}
	return ReduceToSingleDigit(sum)
}

// LifePathNumber parses birthDate and returns its life path number.
func LifePathNumber(birthDate string) (int, error) {
	d, err := ParseBirthDate(birthDate)
	if err != nil {
		return 0, err
	}
	return d.LifePathNumber(), nil
}
