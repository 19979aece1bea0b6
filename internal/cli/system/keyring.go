package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/keyring"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show the stored connection string with its password masked."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove a connection string from the OS keyring."`
	Status KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
}

func account(redis bool) keyring.Account {
	if redis {
		return keyring.Redis
	}
	return keyring.Database
}

// KeyringSetCmd stores the PostgreSQL connection string, or the Redis URL with --redis.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string or Redis URL."`
	Redis            bool   `help:"Store a Redis URL for the result cache instead."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if cmd.Redis {
		u, err := url.Parse(cmd.ConnectionString)
		if err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
			return errors.New("redis URL must start with redis:// or rediss://")
		}
	} else {
		if !postgres.IsConnString(cmd.ConnectionString) {
			return errors.New("connection string must be a valid PostgreSQL connection string")
		}
		if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			// The keyring is the one place a password is allowed.
			ctx.Println("⚠️  Connection string contains a password. It is stored as-is in the encrypted OS keyring.")
		}
	}

	if err := keyring.Set(account(cmd.Redis), cmd.ConnectionString); err != nil {
		return err
	}
	ctx.Println("✓ Connection string stored successfully in OS keyring")
	return nil
}

type KeyringGetCmd struct {
	Redis bool `help:"Show the Redis URL instead."`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	secret, err := keyring.Get(account(cmd.Redis))
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring. Use 'diary keyring set' to store one")
	}
	if err != nil {
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}
	ctx.Println(maskPassword(secret))
	return nil
}

type KeyringDeleteCmd struct {
	Redis bool `help:"Delete the Redis URL instead."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.Delete(account(cmd.Redis))
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring")
	}
	if err != nil {
		return err
	}
	ctx.Println("✓ Connection string deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")
	for _, acct := range []keyring.Account{keyring.Database, keyring.Redis} {
		if _, err := keyring.Get(acct); err == nil {
			ctx.Printf("✓ %s is stored in keyring\n", acct)
		} else {
			ctx.Printf("ℹ No %s stored in keyring\n", acct)
		}
	}
	return nil
}

// maskPassword hides the password of a URL or key=value DSN.
func maskPassword(connStr string) string {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" && u.User != nil {
		if _, set := u.User.Password(); set {
			u.User = url.UserPassword(u.User.Username(), "****")
			// UserInfo.String percent-encodes the asterisks.
			return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
		}
		return connStr
	}

	if !strings.Contains(connStr, "password=") {
		return connStr
	}
	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(part, "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}
