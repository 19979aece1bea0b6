package constants

import "time"

const (
	AppName            = "diary"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/diary/diary.db"
	DefaultProfile     = "default"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "diary-"
	BackupFileSuffix = ".db"

	// Serve constants
	ServeLockfileName   = "diary-serve.lock"
	DefaultListenAddr   = "127.0.0.1:8420"
	ServeShutdownGrace  = 10 * time.Second
	ServeRequestTimeout = 30 * time.Second

	// Entry constants
	MoodMin         = 1
	MoodMax         = 5
	MaxTitleLen     = 200
	MaxFolderName   = 100
	DefaultMoodDays = 30
)
