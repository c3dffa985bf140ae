package calendar_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/GillesH-web/Pythagore/internal/calendar"
	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/GillesH-web/Pythagore/internal/engine"
	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// Mocks & Helpers
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

var fixedTime = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func johnSmith(t *testing.T) calendar.Entry {
	t.Helper()
	in := engine.Input{FirstName1: "John", LastName: "Smith", BirthDate: "1995-06-15"}
	report, err := engine.Calculate(in, engine.Options{})
	require.NoError(t, err)
	date, err := engine.ParseBirthDate(in.BirthDate)
	require.NoError(t, err)
	return calendar.Entry{Name: in.FullName(), Date: date, Report: report}
}

func decodeEvents(t *testing.T, data []byte) []ical.Event {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err, "generated ICS must be parseable")
	return cal.Events()
}

// -----------------------------------------------------------------------------
// Generate
// -----------------------------------------------------------------------------

func TestGenerate_OneEventPerPhase(t *testing.T) {
	gen := &calendar.Generator{Clock: MockClock{CurrentTime: fixedTime}}

	data, count, err := gen.Generate(context.Background(), []calendar.Entry{johnSmith(t)})
	require.NoError(t, err)
	assert.Equal(t, 7, count, "3 cycles + 4 realizations")

	events := decodeEvents(t, data)
	require.Len(t, events, 7)

	ics := string(data)
	assert.Contains(t, ics, "PRODID:"+config.ICalProdid)
	assert.Contains(t, ics, "SUMMARY:Cycle 1 (6) - John Smith", "cycle 1 is driven by the month")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:19950615", "the first cycle starts at birth")
	assert.Contains(t, ics, "DTSTAMP:20250615T100000Z")
	assert.Contains(t, ics, "CATEGORIES:"+config.CategoryRealization)
	assert.NotContains(t, ics, "BEGIN:VALARM", "no reminder configured")
}

func TestGenerate_EventDatesFollowAgeBands(t *testing.T) {
	entry := johnSmith(t)
	gen := &calendar.Generator{Clock: MockClock{CurrentTime: fixedTime}}

	data, _, err := gen.Generate(context.Background(), []calendar.Entry{entry})
	require.NoError(t, err)

	starts := make(map[string]time.Time)
	for _, ev := range decodeEvents(t, data) {
		uid, err := ev.Props.Text(config.PropUID)
		require.NoError(t, err)
		start, err := ev.DateTimeStart(time.UTC)
		require.NoError(t, err)
		starts[uid] = start
	}

	for _, p := range append(entry.Report.Cycles.All(), entry.Report.Realizations.All()...) {
		uid := calendar.UID(entry.Name, entry.Date, p)
		require.Contains(t, starts, uid, "missing event for %s", p.Label)
		assert.Equal(t, 1995+p.FromAge, starts[uid].Year(), p.Label)
		assert.Equal(t, time.June, starts[uid].Month())
		assert.Equal(t, 15, starts[uid].Day())
	}
}

func TestGenerate_WithReminder(t *testing.T) {
	gen := &calendar.Generator{
		Clock:    MockClock{CurrentTime: fixedTime},
		Reminder: "-P1D",
	}

	data, _, err := gen.Generate(context.Background(), []calendar.Entry{johnSmith(t)})
	require.NoError(t, err)

	ics := string(data)
	assert.Equal(t, 7, strings.Count(ics, "BEGIN:VALARM"))
	assert.Contains(t, ics, "TRIGGER:-P1D")
	assert.Contains(t, ics, "ACTION:"+config.ICalAction)
}

func TestGenerate_FormatHooks(t *testing.T) {
	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: fixedTime},
		FormatSummary: func(p engine.Phase, name string) string {
			return "[" + p.Label + "] " + name
		},
		FormatDescription: func(p engine.Phase) string {
			return "from " + p.AgeRange
		},
	}

	data, _, err := gen.Generate(context.Background(), []calendar.Entry{johnSmith(t)})
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "SUMMARY:[Réalisation 4] John Smith")
	assert.Contains(t, ics, "DESCRIPTION:from ")
}

func TestGenerate_EmptyReturnsStub(t *testing.T) {
	gen := &calendar.Generator{Clock: MockClock{CurrentTime: fixedTime}}

	tests := []struct {
		name    string
		entries []calendar.Entry
	}{
		{"no entries", nil},
		{"entry without report", []calendar.Entry{{Name: "Nobody"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, count, err := gen.Generate(context.Background(), tt.entries)
			require.NoError(t, err)
			assert.Equal(t, 0, count)
			assert.Equal(t, config.StubVCalendar, string(data))
		})
	}
}

func TestGenerate_FallbackName(t *testing.T) {
	entry := johnSmith(t)
	entry.Name = ""
	gen := &calendar.Generator{Clock: MockClock{CurrentTime: fixedTime}}

	data, _, err := gen.Generate(context.Background(), []calendar.Entry{entry})
	require.NoError(t, err)
	assert.Contains(t, string(data), "- "+config.FallbackName)
}

func TestGenerate_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &calendar.Generator{Clock: MockClock{CurrentTime: fixedTime}}
	_, _, err := gen.Generate(ctx, []calendar.Entry{johnSmith(t)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	gen := &calendar.Generator{Clock: MockClock{CurrentTime: fixedTime}}

	require.NoError(t, gen.Write(context.Background(), &buf, []calendar.Entry{johnSmith(t)}))
	assert.True(t, strings.HasPrefix(buf.String(), "BEGIN:VCALENDAR"))
}

// -----------------------------------------------------------------------------
// UID & Dates
// -----------------------------------------------------------------------------

func TestUID_Deterministic(t *testing.T) {
	entry := johnSmith(t)
	c1 := entry.Report.Cycles.Cycle1
	r1 := entry.Report.Realizations.Realization1

	assert.Equal(t, calendar.UID(entry.Name, entry.Date, c1), calendar.UID(entry.Name, entry.Date, c1))
	assert.NotEqual(t, calendar.UID(entry.Name, entry.Date, c1), calendar.UID(entry.Name, entry.Date, r1))
	assert.NotEqual(t, calendar.UID("Jane Smith", entry.Date, c1), calendar.UID(entry.Name, entry.Date, c1))
	assert.True(t, strings.HasSuffix(calendar.UID(entry.Name, entry.Date, c1), "@"+config.ICalDomain))
}

func TestPhaseStart(t *testing.T) {
	leap := engine.BirthDate{Year: 2000, Month: 2, Day: 29}

	assert.Equal(t, time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC),
		calendar.PhaseStart(leap, engine.Phase{FromAge: 0}))
	assert.Equal(t, time.Date(2004, 2, 29, 0, 0, 0, 0, time.UTC),
		calendar.PhaseStart(leap, engine.Phase{FromAge: 4}))
	assert.Equal(t, time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC),
		calendar.PhaseStart(leap, engine.Phase{FromAge: 27}), "Feb 29 rolls over in common years")
}
