// Package cli implements the pythagore command line: single reports,
// batch reports from address books, calendar export, the HTTP API and
// configuration management.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/GillesH-web/Pythagore/internal/contacts"
	"github.com/GillesH-web/Pythagore/internal/engine"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps flag names to the settings keys they override.
var flagKeys = map[string]string{
	config.FlagDebug:    config.KeyDebug,
	config.FlagLang:     config.KeyLanguage,
	config.FlagVariant:  config.KeyVariant,
	config.FlagTraits:   config.KeyTraits,
	config.FlagFormat:   config.KeyFormat,
	config.FlagPort:     config.KeyServerPort,
	config.FlagReminder: config.KeyCalendarReminder,
	config.FlagVCF:      config.KeyContactsPath,
	config.FlagURL:      config.KeyContactsURL,
	config.FlagUser:     config.KeyContactsUser,
}

// App holds the collaborators shared by every command.
type App struct {
	Viper    *viper.Viper
	Clock    engine.Clock
	Importer *contacts.Importer

	// SetupLogging installs the process logger once flags are parsed.
	// Nil keeps the current default logger.
	SetupLogging func(debug bool) io.Closer

	cfgFile   string
	settings  config.Settings
	logCloser io.Closer
}

// NewApp returns an App wired to the real clock, the OS keyring and the network.
func NewApp() *App {
	return &App{
		Viper:    viper.New(),
		Clock:    engine.RealClock{},
		Importer: contacts.NewImporter(),
	}
}

// Execute runs the command line with args.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// Close releases the log file opened by SetupLogging.
func (a *App) Close() error {
	if a.logCloser == nil {
		return nil
	}
	return a.logCloser.Close()
}

// RootCommand builds a fresh command tree bound to a.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   config.CommandName,
		Short: "Pythagorean numerology reports",
		Long: `Pythagore computes Pythagorean numerology reports: life path, inclusion
grid, expression number, life cycles, realizations and the health,
feelings and heredity analyses.

Reports are printed as a styled text report, JSON or YAML, or exported as
an iCalendar feed of phase transitions.`,
		Version:       config.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, config.FlagConfig, "", config.FlagDescConfig)
	root.PersistentFlags().Bool(config.FlagDebug, false, config.FlagDescDebug)

	root.AddCommand(
		a.calcCommand(),
		a.batchCommand(),
		a.calendarCommand(),
		a.serveCommand(),
		a.configCommand(),
		a.credentialsCommand(),
		a.versionCommand(),
	)
	return root
}

// initConfig layers flags, environment and the config file over the
// defaults, then decodes and validates the result.
func (a *App) initConfig(cmd *cobra.Command) error {
	v := a.Viper
	config.SetDefaults(v)
	config.BindEnv(v)

	// Only the flags of the running command are bound: several commands
	// share a flag name and viper keeps one flag per key.
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = v.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return fmt.Errorf("%s: %w", config.ErrConfigRead, bindErr)
	}

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName(config.ConfigFileName)
		v.SetConfigType(config.ConfigFileType)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("%s: %w", config.ErrConfigRead, err)
		}
	}

	if a.SetupLogging != nil && a.logCloser == nil {
		a.logCloser = a.SetupLogging(v.GetBool(config.KeyDebug))
	}
	if used := v.ConfigFileUsed(); used != "" {
		slog.Debug(config.MsgConfigUsed,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyPath, used,
		)
	}

	settings, err := config.Load(v)
	if err != nil {
		return err
	}
	a.settings = settings
	return nil
}

// configDir is $XDG_CONFIG_HOME/pythagore or its platform equivalent.
func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrHomeDir, err)
	}
	return filepath.Join(base, config.ConfigDirName), nil
}

// output returns the file at path, or the command's stdout when path is empty.
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", config.ErrOutputFile, err)
	}
	return f, f.Close, nil
}
