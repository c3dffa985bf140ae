package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/GillesH-web/Pythagore/internal/contacts"
	"github.com/GillesH-web/Pythagore/internal/engine"
	"github.com/GillesH-web/Pythagore/internal/locale"
	"github.com/GillesH-web/Pythagore/internal/render"
	"github.com/spf13/cobra"
)

func (a *App) batchCommand() *cobra.Command {
	var (
		reminder reminderFlags
		out      string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Compute the reports of every contact of an address book",
		Long: `Batch reads a vCard address book, from a local file or a CardDAV/WebDAV
collection, and computes the report of every contact that has a given
name, a family name and a full birth date. A malformed card stops the
import; the contacts read before it are still reported, with a warning.

The password of --user is read from the OS keyring; store it first with
'pythagore credentials set'.

Examples:
  pythagore batch --vcf contacts.vcf --format json
  pythagore batch --url https://dav.example.com/addressbooks/me/ --user me --format ics -o phases.ics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()
			c := a.settings.Contacts

			src, err := contacts.NewSource(c.Path, c.URL, c.User)
			if err != nil {
				return err
			}
			tr, err := locale.New(a.settings.Language)
			if err != nil {
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

			people, importErr := a.Importer.Import(ctx, src)
			if importErr != nil && !errors.Is(importErr, contacts.ErrTruncated) {
				return importErr
			}

			docs, skipped := a.documents(people, opts)

			w, closeOut, err := output(cmd, out)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeOut(); cerr != nil && err == nil {
					err = fmt.Errorf("%s: %w", config.ErrOutputFile, cerr)
				}
			}()

			if err := render.NewWriter(tr, a.Clock, trigger).Write(ctx, w, a.settings.Format, docs...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), config.MsgBatchSummary, len(docs), skipped)
			if importErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), config.MsgBatchPartial, importErr)
			}
			return nil
		},
	}

	registerReportFlags(cmd.Flags())
	reminder.register(cmd)
	cmd.Flags().String(config.FlagFormat, config.DefaultFormat, config.FlagDescFormat)
	cmd.Flags().String(config.FlagVCF, "", config.FlagDescVCF)
	cmd.Flags().String(config.FlagURL, "", config.FlagDescURL)
	cmd.Flags().String(config.FlagUser, "", config.FlagDescUser)
	cmd.Flags().StringVarP(&out, config.FlagOut, "o", "", config.FlagDescOut)
	return cmd
}

// documents computes the report of every person whose names pass validation.
func (a *App) documents(people []contacts.Person, opts engine.Options) ([]render.Document, int) {
	docs := make([]render.Document, 0, len(people))
	skipped := 0

	for _, p := range people {
		if violations := engine.ValidateInput(p.Input, a.Clock); !violations.Empty() {
			slog.Warn(config.MsgSkippedInput,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyName, p.Name(),
				config.LogKeyValue, violations,
			)
			skipped++
			continue
		}

		report := engine.CalculateFor(p.Date, p.Input.NameSet(), opts)
		docs = append(docs, render.Document{
			Person:      p.Input,
			Variant:     opts.Variant.Name,
			Report:      report,
			GeneratedAt: a.Clock.Now(),
		})
		slog.Debug(config.MsgBatchItem,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyName, p.Name(),
			config.LogKeyLifePath, report.LifePathNumber,
		)
	}
	return docs, skipped
}
