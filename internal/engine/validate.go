package engine

import (
	"regexp"
	"strings"

	"github.com/GillesH-web/Pythagore/internal/config"
)

// Violations maps a form field to the translation key of its problem.
type Violations map[string]string

// Empty reports whether no field failed.
func (v Violations) Empty() bool { return len(v) == 0 }

// namePattern accepts Latin letters (accented included), spaces, hyphens and apostrophes.
var namePattern = regexp.MustCompile(`^[a-zA-ZÀ-ÖØ-öø-ÿ\s'-]+$`)

// ValidateInput applies the form rules that the engine itself does not enforce:
// first given name and surname are required, names hold letters only, and the
// birth date parses, lies strictly before clock.Now() and is not before MinBirthYear.
func ValidateInput(in Input, clock Clock) Violations {
	v := Violations{}

	required := map[string]string{
		config.FieldFirstName1: in.FirstName1,
		config.FieldLastName:   in.LastName,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			v[field] = config.TKeyErrRequired
		}
	}

	names := map[string]string{
		config.FieldFirstName1: in.FirstName1,
		config.FieldFirstName2: in.FirstName2,
		config.FieldFirstName3: in.FirstName3,
		config.FieldLastName:   in.LastName,
		config.FieldLastName2:  in.LastName2,
		config.FieldLastName3:  in.LastName3,
	}
	for field, value := range names {
		value = strings.TrimSpace(value)
		if value != "" && !namePattern.MatchString(value) {
			v[field] = config.TKeyErrNameChars
		}
	}

	if key := validateDate(in.BirthDate, clock); key != "" {
		v[config.FieldBirthDate] = key
	}
	return v
}

func validateDate(value string, clock Clock) string {
	if strings.TrimSpace(value) == "" {
		return config.TKeyErrRequired
	}
	d, err := ParseBirthDate(value)
	if err != nil {
		return config.TKeyErrDateFormat
	}
	now := clock.Now()
	if !d.Time(now.Location()).Before(now) {
		return config.TKeyErrDateFuture
	}
	if d.Year < config.MinBirthYear {
		return config.TKeyErrDateTooOld
	}
	return ""
}
