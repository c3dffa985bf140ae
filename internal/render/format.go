package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/GillesH-web/Pythagore/internal/calendar"
	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/GillesH-web/Pythagore/internal/engine"
	"github.com/GillesH-web/Pythagore/internal/locale"
	"gopkg.in/yaml.v3"
)

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%s: %w", config.ErrEncode, err)
	}
	return nil
}

// YAML writes v as a YAML document.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%s: %w", config.ErrEncode, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrEncode, err)
	}
	return nil
}

// Writer renders documents in any supported format.
type Writer struct {
	Translator *locale.Translator
	Calendar   *calendar.Generator
}

// NewWriter returns a Writer whose calendar events are titled in tr's language.
func NewWriter(tr *locale.Translator, clock engine.Clock, reminder string) *Writer {
	return &Writer{
		Translator: tr,
		Calendar:   NewCalendar(tr, clock, reminder),
	}
}

// NewCalendar returns a calendar generator with localized event texts.
func NewCalendar(tr *locale.Translator, clock engine.Clock, reminder string) *calendar.Generator {
	return &calendar.Generator{
		Clock:    clock,
		Reminder: reminder,
		FormatSummary: func(p engine.Phase, name string) string {
			return tr.Format(config.TKeyEvtPhaseStart, map[string]any{
				"Label": PhaseLabel(tr, p),
				"Value": p.Value,
				"Name":  name,
			})
		},
		FormatDescription: func(p engine.Phase) string {
			return tr.Format(config.TKeyEvtDescription, map[string]any{"AgeRange": p.AgeRange})
		},
	}
}

// Write renders docs to w. A single document is written as an object in
// JSON and YAML; several are written as a list.
func (wr *Writer) Write(ctx context.Context, w io.Writer, format string, docs ...Document) error {
	var err error
	switch format {
	case config.FormatText:
		for i, doc := range docs {
			if i > 0 {
				if _, err = io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if err = Text(w, doc, wr.Translator); err != nil {
				return err
			}
		}
	case config.FormatJSON:
		err = JSON(w, single(docs))
	case config.FormatYAML:
		err = YAML(w, single(docs))
	case config.FormatICS:
		err = wr.Calendar.Write(ctx, w, Entries(docs))
	default:
		return fmt.Errorf("%s: %q", config.ErrFormatUnknown, format)
	}
	if err != nil {
		return err
	}

	slog.Debug(config.MsgDocWritten,
		config.LogKeyComponent, config.CompRender,
		config.LogKeyFormat, format,
		config.LogKeyCount, len(docs),
	)
	return nil
}

// Entries converts documents to calendar entries. Documents whose birth
// date does not parse are dropped.
func Entries(docs []Document) []calendar.Entry {
	entries := make([]calendar.Entry, 0, len(docs))
	for _, doc := range docs {
		date, err := engine.ParseBirthDate(doc.Person.BirthDate)
		if err != nil {
			continue
		}
		entries = append(entries, calendar.Entry{
			Name:   doc.Person.FullName(),
			Date:   date,
			Report: doc.Report,
		})
	}
	return entries
}

// PhaseLabel translates the label of a cycle or realization.
// Labels of any other shape are returned unchanged.
func PhaseLabel(tr *locale.Translator, p engine.Phase) string {
	var n int
	if _, err := fmt.Sscanf(p.Label, config.LabelCycle, &n); err == nil {
		return tr.Format(config.TKeyCycle, map[string]any{"Number": n})
	}
	if _, err := fmt.Sscanf(p.Label, config.LabelRealization, &n); err == nil {
		return tr.Format(config.TKeyRealization, map[string]any{"Number": n})
	}
	return p.Label
}

func single(docs []Document) any {
	if len(docs) == 1 {
		return docs[0]
	}
	return docs
}
