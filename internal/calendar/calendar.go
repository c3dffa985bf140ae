// Package calendar exports the start of every cycle and realization of a
// numerology report as iCalendar all-day events.
package calendar

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/GillesH-web/Pythagore/internal/engine"
	"github.com/emersion/go-ical"
)

// Entry is one person and the report computed for them.
type Entry struct {
	Name   string
	Date   engine.BirthDate
	Report *engine.Report
}

// Generator builds VCALENDAR documents.
type Generator struct {
	Clock engine.Clock

	// Reminder is an ISO-8601 duration (e.g. "-P1D"). Empty means no VALARM.
	Reminder string

	// FormatSummary lets callers inject localized event titles.
	FormatSummary func(p engine.Phase, name string) string

	// FormatDescription lets callers inject localized event descriptions.
	FormatDescription func(p engine.Phase) string
}

// Generate encodes one event per phase start for every entry.
// It returns the ICS data and the number of events written.
// When no event is produced, a minimal valid VCALENDAR is returned.
func (g *Generator) Generate(ctx context.Context, entries []Entry) ([]byte, int, error) {
	start := time.Now()

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(g.now().UTC())

	people := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		if e.Report == nil {
			continue
		}
		people++

		for _, ev := range g.events(e) {
			ev.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, ev.Component)
		}
	}

	count := len(cal.Children)
	defer g.logSuccess(people, count, start)

	if count == 0 {
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), count, nil
}

// Write generates the calendar for entries and copies it to w.
func (g *Generator) Write(ctx context.Context, w io.Writer, entries []Entry) error {
	data, _, err := g.Generate(ctx, entries)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (g *Generator) now() time.Time {
	if g.Clock == nil {
		return engine.RealClock{}.Now()
	}
	return g.Clock.Now()
}

func (g *Generator) events(e Entry) []*ical.Event {
	name := e.Name
	if name == "" {
		name = config.FallbackName
	}

	var events []*ical.Event
	for _, p := range e.Report.Cycles.All() {
		events = append(events, g.newEvent(name, e.Date, p, config.CategoryCycle))
	}
	for _, p := range e.Report.Realizations.All() {
		events = append(events, g.newEvent(name, e.Date, p, config.CategoryRealization))
	}
	return events
}

func (g *Generator) newEvent(name string, date engine.BirthDate, p engine.Phase, category string) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, UID(name, date, p))

	summary := fmt.Sprintf(config.FallbackSummary, p.Label, p.Value, name)
	if g.FormatSummary != nil {
		summary = g.FormatSummary(p, name)
	}
	event.Props.SetText(config.PropSummary, summary)

	description := p.AgeRange
	if g.FormatDescription != nil {
		description = g.FormatDescription(p)
	}
	event.Props.SetText(config.PropDescription, description)
	event.Props.SetText(config.PropCategories, category)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(PhaseStart(date, p))
	event.Props.Set(dtStartProp)

	if g.Reminder != "" {
		addAlarm(event, g.Reminder, summary)
	}
	return event
}

// PhaseStart is the day a phase begins: the birthday at which the person
// reaches p.FromAge. A Feb 29 birthday rolls over to Mar 1 in common years.
func PhaseStart(date engine.BirthDate, p engine.Phase) time.Time {
	return date.Time(time.UTC).AddDate(p.FromAge, 0, 0)
}

// UID is stable across exports of the same person and phase.
func UID(name string, date engine.BirthDate, p engine.Phase) string {
	input := config.UIDSalt + fmt.Sprintf(config.FormatHashInput, name, date.String(), p.Label)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), p.FromAge, config.ICalDomain)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

func (g *Generator) logSuccess(people, events int, start time.Time) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompCalendar,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyFound, people),
			slog.Int(config.LogKeyEvents, events),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
}
