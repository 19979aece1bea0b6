package storage

import (
	"errors"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
)

var (
	// ErrNotFound is returned when no live row matches the requested id.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyDeleted is returned when deleting a row that is already soft-deleted.
	ErrAlreadyDeleted = errors.New("already deleted")
	// ErrNotDeleted is returned when restoring a row that was never deleted.
	ErrNotDeleted = errors.New("not deleted")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	// Migrate applies pending schema migrations and returns how many ran.
	Migrate(logFn func(string)) (int, error)

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Entries
	AddEntry(models.Entry) error
	GetEntry(id string) (models.Entry, error)
	UpdateEntry(models.Entry) error
	ListEntries(models.EntryFilter) ([]models.Entry, error)
	DeleteEntry(id string) error
	RestoreEntry(id string) error
	// GetEntryDates returns one row per calendar day with at least one live entry,
	// restricted to [startDay, endDay] when those are non-empty.
	GetEntryDates(startDay, endDay string) ([]models.EntryDate, error)
	// CountEntriesByFolder returns the number of live entries filed under each folder.
	CountEntriesByFolder() (map[string]int, error)

	// Folders
	AddFolder(models.Folder) error
	GetFolder(id string) (models.Folder, error)
	UpdateFolder(models.Folder) error
	GetAllFolders(includeDeleted bool) ([]models.Folder, error)
	// DeleteFolder soft-deletes a folder and its live descendants in one transaction.
	DeleteFolder(id string) error
	// RestoreFolder restores a folder and the descendants deleted along with it.
	RestoreFolder(id string) error
	SetFolderExpanded(id string, expanded bool) error

	// Utils
	GetConfigPath() string
}
