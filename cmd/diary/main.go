package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cache"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli/backups"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli/data"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli/entries"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli/folders"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli/settings"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli/stats"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli/system"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
	clierrors "github.com/Harshit-code-tech/personal-diary-sub001/internal/errors"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/keyring"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/logger"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage/postgres"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage/sqlite"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	DB       string `name:"db" help:"SQLite database path or PostgreSQL connection string. PostgreSQL passwords must come from the keyring, DIARY_DB_CONNECTION, PGPASSWORD or .pgpass." env:"DIARY_DB" default:"${default_db}"`
	Debug    bool   `help:"Enable debug logging to stderr." env:"DIARY_DEBUG"`
	RedisURL string `name:"redis-url" help:"Cache computed streaks in Redis instead of memory." env:"DIARY_REDIS_URL"`
	Timezone string `help:"Override the timezone setting for this run." env:"DIARY_TIMEZONE"`
	Profile  string `help:"Cache namespace when several diaries share one Redis." env:"DIARY_PROFILE" default:"${default_profile}"`

	Init        system.InitCmd       `cmd:"" help:"Initialize diary storage."`
	Migrate     system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor      system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui         system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve       system.ServeCmd      `cmd:"" help:"Serve the JSON API and run background jobs."`
	Entry       entries.EntryCmd     `cmd:"" help:"Write and manage entries."`
	Folder      folders.FolderCmd    `cmd:"" help:"Organise folders."`
	Streak      stats.StreakCmd      `cmd:"" help:"Show the current and longest writing streak."`
	Calendar    stats.CalendarCmd    `cmd:"" help:"Show the calendar heat-map."`
	Consistency stats.ConsistencyCmd `cmd:"" help:"Show the share of days with an entry."`
	Mood        stats.MoodCmd        `cmd:"" help:"Summarise recorded moods."`
	Backup      struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Export   data.ExportCmd       `cmd:"" help:"Export entries and folders as JSON."`
	Import   data.ImportCmd       `cmd:"" help:"Import a JSON export."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage credentials in the OS keyring."`
	Dump     system.DebugCmd      `cmd:"" help:"Dump raw records for troubleshooting."`
}

// Commands that open the store themselves, or never need it.
var selfLoading = []string{"init", "doctor", "keyring"}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, clierrors.Formatf("failed to load .env: %v", err))
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal journal with writing streaks and nested folders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":         constants.Version,
			"default_db":      constants.DefaultConfigPath,
			"default_profile": constants.DefaultProfile,
			"listen_addr":     constants.DefaultListenAddr,
			"mood_days":       strconv.Itoa(constants.DefaultMoodDays),
		},
	)

	store, configDir, err := openStore(CLI.DB)
	if err != nil {
		clierrors.Fatal(err)
	}
	defer store.Close()

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir,
		Stderr:    strings.HasPrefix(ctx.Command(), "serve"),
	}); err != nil {
		fmt.Fprintln(os.Stderr, clierrors.Formatf("failed to initialize logger: %v", err))
	}

	appCtx := &cli.Context{
		Store:     store,
		Cache:     openCache(CLI.RedisURL),
		Timezone:  CLI.Timezone,
		Profile:   CLI.Profile,
		ConfigDir: configDir,
		Ctx:       context.Background(),
	}
	if appCtx.Cache != nil {
		defer appCtx.Cache.Close()
	}

	if needsStore(ctx.Command()) {
		if err := store.Load(); err != nil {
			clierrors.Fatal(clierrors.WithHint(err, "run 'diary init' to create the database, or 'diary doctor' to diagnose it"))
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		clierrors.Fatal(err)
	}
}

func needsStore(command string) bool {
	for _, name := range selfLoading {
		if command == name || strings.HasPrefix(command, name+" ") {
			return false
		}
	}
	return true
}

// openStore picks the backend for dsn and returns the directory that holds
// logs, backups and the serve lockfile.
func openStore(dsn string) (storage.Provider, string, error) {
	defaultDir, err := utils.ExpandHome(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return nil, "", err
	}

	if postgres.IsConnString(dsn) {
		if _, err := postgres.ValidateConnString(dsn); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, "", clierrors.WithHint(err, "store it with 'diary keyring set' or export DIARY_DB_CONNECTION instead")
			}
			return nil, "", err
		}
		return postgres.New(dsn), defaultDir, nil
	}

	// Secret-bearing connection strings are only accepted from the environment
	// or the keyring, and only when --db was left at its default.
	if dsn == constants.DefaultConfigPath {
		conn := utils.GetEnvAsString("DIARY_DB_CONNECTION", keyring.Lookup(keyring.Database, ""))
		if conn != "" {
			return postgres.New(conn), defaultDir, nil
		}
	}

	path, err := utils.ExpandHome(dsn)
	if err != nil {
		return nil, "", err
	}
	return sqlite.NewStore(path), filepath.Dir(path), nil
}

// openCache returns a Redis cache, or nil for the in-memory default.
func openCache(redisURL string) cache.Cache {
	if redisURL == "" {
		redisURL = keyring.Lookup(keyring.Redis, "")
	}
	if redisURL == "" {
		return nil
	}
	c, err := cache.NewRedis(context.Background(), redisURL)
	if err != nil {
		logger.Warn("Redis unavailable, caching in memory", "error", err)
		return nil
	}
	return c
}
