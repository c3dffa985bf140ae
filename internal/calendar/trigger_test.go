package calendar_test

import (
	"testing"

	"github.com/GillesH-web/Pythagore/internal/calendar"
	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrigger(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		unit    string
		dir     string
		want    string
		wantErr error
	}{
		{"2 days before", 2, config.UnitDays, config.DirBefore, "-P2D", nil},
		{"1 day after", 1, config.UnitDays, config.DirAfter, "P1D", nil},
		{"3 hours before", 3, config.UnitHours, config.DirBefore, "-PT3H", nil},
		{"30 minutes after", 30, config.UnitMinutes, config.DirAfter, "PT30M", nil},
		{"at start", 0, config.UnitMinutes, config.DirBefore, "-PT0M", nil},
		{"negative value", -1, config.UnitDays, config.DirBefore, "", calendar.ErrReminderValue},
		{"unknown unit", 1, "w", config.DirBefore, "", calendar.ErrReminderUnit},
		{"unknown direction", 1, config.UnitDays, "during", "", calendar.ErrReminderDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calendar.Trigger(tt.value, tt.unit, tt.dir)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, calendar.ValidateTrigger(got), "built triggers must be valid durations")
		})
	}
}

func TestValidateTrigger(t *testing.T) {
	assert.NoError(t, calendar.ValidateTrigger(""), "empty disables alarms")
	assert.NoError(t, calendar.ValidateTrigger("-P1D"))
	assert.NoError(t, calendar.ValidateTrigger("PT15M"))

	err := calendar.ValidateTrigger("tomorrow")
	assert.ErrorIs(t, err, calendar.ErrReminder)
}
