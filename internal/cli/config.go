package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configHeader = `# Pythagore configuration file
#
# Configuration hierarchy (highest to lowest priority):
#   1. CLI flags
#   2. Environment variables (PYTHAGORE_*, e.g. PYTHAGORE_SERVER_PORT)
#   3. This config file
#   4. Built-in defaults
#
# Contact passwords are never stored here: use 'pythagore credentials set'.

`

func (a *App) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage Pythagore configuration",
		Long: `Manage Pythagore configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (PYTHAGORE_*)
3. Config file (~/.config/pythagore/config.yaml)
4. Defaults`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if used := a.Viper.ConfigFileUsed(); used != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), config.MsgConfigFile, used)
			} else {
				fmt.Fprint(cmd.ErrOrStderr(), config.MsgConfigNone)
			}

			data, err := yaml.Marshal(a.settings)
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrEncode, err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long:  `Create a configuration file holding every default, at --config or ~/.config/pythagore/config.yaml.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.cfgFile
			if path == "" {
				dir, err := configDir()
				if err != nil {
					return err
				}
				path = filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileType)
			}

			if err := writeDefaultConfig(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), config.MsgConfigCreated, path)
			return nil
		},
	}
	// The file does not exist yet; reading it would fail.
	initCmd.PersistentPreRunE = func(*cobra.Command, []string) error { return nil }

	cmd.AddCommand(show, initCmd)
	return cmd
}

// writeDefaultConfig creates path with the built-in defaults.
// An existing file is never overwritten.
func writeDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %s", config.ErrConfigExists, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", config.ErrConfigWrite, err)
	}

	data, err := yaml.Marshal(config.Defaults())
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrEncode, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrConfigWrite, err)
	}
	if err := os.WriteFile(path, append([]byte(configHeader), data...), config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrConfigWrite, err)
	}
	return nil
}
