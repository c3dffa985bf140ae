// Package render turns computed reports into documents: a styled terminal
// report, JSON, YAML or an iCalendar feed.
package render

import (
	"fmt"
	"time"

	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/GillesH-web/Pythagore/internal/engine"
)

// Document is a report together with who it was computed for.
type Document struct {
	Person      engine.Input   `json:"person" yaml:"person"`
	Variant     string         `json:"variant" yaml:"variant"`
	Report      *engine.Report `json:"report" yaml:"report"`
	GeneratedAt time.Time      `json:"generatedAt" yaml:"generatedAt"`
}

// NewDocument computes the report for in and stamps it with clock.
func NewDocument(in engine.Input, opts engine.Options, clock engine.Clock) (Document, error) {
	report, err := engine.Calculate(in, opts)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", config.ErrCalculation, err)
	}

	variant := opts.Variant.Name
	if variant == "" {
		variant = config.VariantFirstNames
	}

	return Document{
		Person:      in,
		Variant:     variant,
		Report:      report,
		GeneratedAt: clock.Now(),
	}, nil
}
