package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/backup"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cache"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/insights"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/logger"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage"
)

type Context struct {
	Store    storage.Provider
	Cache    cache.Cache
	Timezone string
	Profile  string
	// ConfigDir holds logs, backups and the serve lockfile.
	ConfigDir string
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
	// Out receives command output; nil means stdout.
	Out io.Writer
	// Ctx is cancelled on interrupt; nil means context.Background.
	Ctx context.Context

	svc *insights.Service
}

// Service returns the insights service over Store, creating it on first use.
func (c *Context) Service() (*insights.Service, error) {
	if c.svc != nil {
		return c.svc, nil
	}
	opts := []insights.Option{insights.WithTimezone(c.Timezone)}
	if c.Cache != nil {
		opts = append(opts, insights.WithCache(c.Cache))
	}
	if c.Profile != "" {
		opts = append(opts, insights.WithProfile(c.Profile))
	}
	if c.Now != nil {
		opts = append(opts, insights.WithClock(c.Now))
	}
	svc, err := insights.New(c.Store, opts...)
	if err != nil {
		return nil, err
	}
	c.svc = svc
	return svc, nil
}

// Context returns the command's cancellation context.
func (c *Context) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Writer(), args...)
}

// PrintJSON writes v as indented JSON.
func (c *Context) PrintJSON(v any) error {
	enc := json.NewEncoder(c.Writer())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return nil
}

// IsSQLite reports whether Store is file backed and so can be backed up.
func (c *Context) IsSQLite() bool {
	return c.Store != nil && c.Store.GetConfigPath() != "postgresql"
}

// PerformAutomaticBackup creates a backup and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveDay maps "", "today" and "yesterday" relative to the service clock and
// passes anything else through for validation.
func ResolveDay(svc *insights.Service, day string) string {
	switch day {
	case "", "today":
		return svc.Today().Format(constants.DateFormat)
	case "yesterday":
		return svc.Today().AddDate(0, 0, -1).Format(constants.DateFormat)
	default:
		return day
	}
}
