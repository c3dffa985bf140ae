package contacts

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/GillesH-web/Pythagore/internal/config"
	"github.com/zalando/go-keyring"
)

// Credentials returns the password stored for user in the OS keyring.
// A missing entry is not an error and yields an empty password.
func Credentials(user string) (string, error) {
	pass, err := keyring.Get(config.KeyringService, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrKeyringGet, err)
	}
	return pass, nil
}

// SaveCredentials stores pass for user in the OS keyring.
func SaveCredentials(user, pass string) error {
	if err := keyring.Set(config.KeyringService, user, pass); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringSet, err)
	}
	slog.Info(config.MsgPassStored,
		config.LogKeyComponent, config.CompContacts,
		config.LogKeyUser, user,
	)
	return nil
}

// DeleteCredentials removes the stored password of user, if any.
func DeleteCredentials(user string) error {
	err := keyring.Delete(config.KeyringService, user)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%s: %w", config.ErrKeyringDelete, err)
	}
	return nil
}
