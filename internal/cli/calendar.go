package cli

import (
	"fmt"
	"path/filepath"

	"github.com/GillesH-web/Pythagore/internal/calendar"
	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/GillesH-web/Pythagore/internal/locale"
	"github.com/GillesH-web/Pythagore/internal/render"
	"github.com/spf13/cobra"
)

// reminderFlags builds the alarm trigger either from an ISO-8601 duration
// or from a value, a unit and a direction.
type reminderFlags struct {
	value     int
	unit      string
	direction string
}

func (r *reminderFlags) register(cmd *cobra.Command) {
	cmd.Flags().String(config.FlagReminder, "", config.FlagDescReminder)
	cmd.Flags().IntVar(&r.value, config.FlagRemind, 0, config.FlagDescRemind)
	cmd.Flags().StringVar(&r.unit, config.FlagRemindUnit, config.UnitDays, config.FlagDescRemindUnit)
	cmd.Flags().StringVar(&r.direction, config.FlagRemindDir, config.DirBefore, config.FlagDescRemindDir)
}

// trigger returns the alarm trigger to use, or "" for none.
func (r *reminderFlags) trigger(cmd *cobra.Command, fallback string) (string, error) {
	if !cmd.Flags().Changed(config.FlagRemind) {
		if err := calendar.ValidateTrigger(fallback); err != nil {
			return "", err
		}
		return fallback, nil
	}
	return calendar.Trigger(r.value, r.unit, r.direction)
}

func (a *App) calendarCommand() *cobra.Command {
	var (
		person   personFlags
		reminder reminderFlags
		out      string
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Export the cycles and realizations of one person as iCalendar",
		Long: `Export one event per life cycle and realization, dated on the birthday
at which the phase begins. An optional alarm is attached to every event.
An --out path without extension gets ".ics".

Examples:
  pythagore calendar --first-name Jean --last-name Dupont --birth-date 1995-06-15 -o jean.ics
  pythagore calendar ... --remind 2 --remind-unit d --remind-dir before
  pythagore calendar ... --reminder -PT12H`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			tr, err := locale.New(a.settings.Language)
			if err != nil {
				return err
			}
			if err := person.validate(a, tr); err != nil {
				return err
			}
			trigger, err := reminder.trigger(cmd, a.settings.Calendar.Reminder)
			if err != nil {
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

			if out != "" && filepath.Ext(out) == "" {
				out += config.ExtICS
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

			return render.NewWriter(tr, a.Clock, trigger).Write(cmd.Context(), w, config.FormatICS, doc)
		},
	}

	person.register(cmd.Flags())
	registerReportFlags(cmd.Flags())
	reminder.register(cmd)
	cmd.Flags().StringVarP(&out, config.FlagOut, "o", "", config.FlagDescOut)
	return cmd
}
