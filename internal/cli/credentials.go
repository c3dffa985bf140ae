package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/GillesH-web/Pythagore/internal/contacts"
	"github.com/spf13/cobra"
)

func (a *App) credentialsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage address book passwords in the OS keyring",
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Store the password of --user, read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user := a.settings.Contacts.User
			if user == "" {
				return errors.New(config.ErrUserRequired)
			}

			fmt.Fprint(cmd.ErrOrStderr(), config.MsgPassPrompt)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			if !scanner.Scan() {
				err := scanner.Err()
				if err == nil {
					err = io.ErrUnexpectedEOF
				}
				return fmt.Errorf("%s: %w", config.ErrPassword, err)
			}
			fmt.Fprintln(cmd.ErrOrStderr())

			return contacts.SaveCredentials(user, strings.TrimRight(scanner.Text(), "\r"))
		},
	}

	del := &cobra.Command{
		Use:   "delete",
		Short: "Remove the stored password of --user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user := a.settings.Contacts.User
			if user == "" {
				return errors.New(config.ErrUserRequired)
			}
			if err := contacts.DeleteCredentials(user); err != nil {
				return err
			}
			fmt.Fprint(cmd.ErrOrStderr(), config.MsgPassRemoved)
			return nil
		},
	}

	cmd.PersistentFlags().String(config.FlagUser, "", config.FlagDescUser)
	cmd.AddCommand(set, del)
	return cmd
}
