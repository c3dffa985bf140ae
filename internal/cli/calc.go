package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/GillesH-web/Pythagore/internal/engine"
	"github.com/GillesH-web/Pythagore/internal/locale"
	"github.com/GillesH-web/Pythagore/internal/render"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// personFlags is the form of a single person.
type personFlags struct {
	input      engine.Input
	noValidate bool
}

func (p *personFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&p.input.FirstName1, config.FlagFirstName1, "", config.FlagDescFirstName1)
	fs.StringVar(&p.input.FirstName2, config.FlagFirstName2, "", config.FlagDescFirstName2)
	fs.StringVar(&p.input.FirstName3, config.FlagFirstName3, "", config.FlagDescFirstName3)
	fs.StringVar(&p.input.LastName, config.FlagLastName, "", config.FlagDescLastName)
	fs.StringVar(&p.input.LastName2, config.FlagLastName2, "", config.FlagDescLastName2)
	fs.StringVar(&p.input.LastName3, config.FlagLastName3, "", config.FlagDescLastName3)
	fs.StringVar(&p.input.BirthDate, config.FlagBirthDate, "", config.FlagDescBirthDate)
	fs.BoolVar(&p.noValidate, config.FlagNoValidate, false, config.FlagDescNoValidate)
}

// registerReportFlags adds the flags shared by every report-producing command.
// Their values are read back through the settings.
func registerReportFlags(fs *pflag.FlagSet) {
	fs.String(config.FlagVariant, config.VariantFirstNames, config.FlagDescVariant)
	fs.Bool(config.FlagTraits, config.DefaultTraits, config.FlagDescTraits)
	fs.String(config.FlagLang, config.DefaultLanguage, config.FlagDescLang)
}

// validate checks the form and renders violations in the user's language.
func (p *personFlags) validate(a *App, tr *locale.Translator) error {
	if p.noValidate {
		return nil
	}
	violations := engine.ValidateInput(p.input, a.Clock)
	if violations.Empty() {
		return nil
	}
	return invalidInput(tr.Violations(violations))
}

// invalidInput lists field messages in a stable order.
func invalidInput(details map[string]string) error {
	fields := slices.Sorted(maps.Keys(details))
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+details[field])
	}
	return fmt.Errorf("%s: %s", config.ErrInvalidInput, strings.Join(parts, "; "))
}

// options translates the settings into engine options.
func (a *App) options() (engine.Options, error) {
	variant, err := engine.ParseVariant(a.settings.Variant)
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{Variant: variant, IncludeTraits: a.settings.Traits}, nil
}

func (a *App) calcCommand() *cobra.Command {
	var (
		person personFlags
		out    string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the report of one person",
		Long: `Compute the numerology report of one person from their names and birth date.

Examples:
  pythagore calc --first-name Jean --last-name Dupont --birth-date 1995-06-15
  pythagore calc --first-name John --last-name Smith --last-name-2 Doe \
      --birth-date 1980-02-29 --variant last-names --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			tr, err := locale.New(a.settings.Language)
			if err != nil {
				return err
			}
			if err := person.validate(a, tr); err != nil {
				return err
			}
			opts, err := a.options()
			if err != nil {
				return err
			}

			doc, err := render.NewDocument(person.input, opts, a.Clock)
			if err != nil {
				return err
			}

			w, closeOut, err := output(cmd, out)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeOut(); cerr != nil && err == nil {
					err = fmt.Errorf("%s: %w", config.ErrOutputFile, cerr)
				}
			}()

			writer := render.NewWriter(tr, a.Clock, a.settings.Calendar.Reminder)
			return writer.Write(cmd.Context(), w, a.settings.Format, doc)
		},
	}

	person.register(cmd.Flags())
	registerReportFlags(cmd.Flags())
	cmd.Flags().String(config.FlagFormat, config.DefaultFormat, config.FlagDescFormat)
	cmd.Flags().StringVarP(&out, config.FlagOut, "o", "", config.FlagDescOut)
	return cmd
}
