// Package keyring keeps connection secrets in the OS credential store so they
// never have to appear in flags, config files or shell history.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
)

// Account names one stored secret under the application's service entry.
type Account string

const (
	// Database holds the PostgreSQL connection string, password included.
	Database Account = constants.DefaultKeyringUser
	// Redis holds the Redis URL used by the derived-result cache.
	Redis Account = constants.DefaultKeyringUser + "-redis"
)

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Get returns the secret stored for account.
func Get(account Account) (string, error) {
	secret, err := keyring.Get(constants.AppName, string(account))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// Set stores secret for account, replacing any previous value.
func Set(account Account, secret string) error {
	if secret == "" {
		return errors.New("secret cannot be empty")
	}
	if err := keyring.Set(constants.AppName, string(account), secret); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", account, err)
	}
	return nil
}

// Delete removes the secret for account.
func Delete(account Account) error {
	err := keyring.Delete(constants.AppName, string(account))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s from keyring: %w", account, err)
	}
	return nil
}

// Lookup returns the stored secret, or fallback when nothing usable is stored.
// An unavailable keyring is treated like an empty one.
func Lookup(account Account, fallback string) string {
	secret, err := Get(account)
	if err != nil {
		return fallback
	}
	return secret
}

// IsAvailable makes a best-effort probe of the OS keyring.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
