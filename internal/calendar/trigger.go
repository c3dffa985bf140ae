package calendar

import (
	"errors"
	"fmt"

	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/emersion/go-ical"
)

var (
	ErrReminderValue = errors.New("reminder value must not be negative")
	ErrReminderUnit  = errors.New("unknown reminder unit")
	ErrReminderDir   = errors.New("unknown reminder direction")
	ErrReminder      = errors.New("invalid ISO-8601 reminder trigger")
)

// Trigger builds the ISO-8601 duration of an alarm firing value units
// before or after the event start, e.g. (1, "d", "before") -> "-P1D".
func Trigger(value int, unit, direction string) (string, error) {
	if value < 0 {
		return "", ErrReminderValue
	}

	sign := config.ISOPeriodPrefix
	switch direction {
	case config.DirBefore:
		sign = config.ISONegativePrefix
	case config.DirAfter:
	default:
		return "", fmt.Errorf("%w: %q", ErrReminderDir, direction)
	}

	switch unit {
	case config.UnitDays:
		return fmt.Sprintf("%s%d%s", sign, value, config.ISODay), nil
	case config.UnitHours:
		return fmt.Sprintf("%s%s%d%s", sign, config.ISOTimePrefix, value, config.ISOHour), nil
	case config.UnitMinutes:
		return fmt.Sprintf("%s%s%d%s", sign, config.ISOTimePrefix, value, config.ISOMinute), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrReminderUnit, unit)
	}
}

// ValidateTrigger checks that s is a duration an iCalendar client accepts.
// The empty string is valid and disables alarms.
func ValidateTrigger(s string) error {
	if s == "" {
		return nil
	}
	prop := ical.NewProp(config.PropTrigger)
	prop.SetValueType(ical.ValueDuration)
	prop.Value = s
	if _, err := prop.Duration(); err != nil {
		return fmt.Errorf("%w %q: %v", ErrReminder, s, err)
	}
	return nil
}
