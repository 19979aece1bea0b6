package models

import "time"

// Entry represents a single diary entry written on a calendar day
type Entry struct {
	ID        string     `json:"id"`
	Day       string     `json:"day" validate:"required,datetime=2006-01-02"` // YYYY-MM-DD format
	Title     string     `json:"title" validate:"max=200"`
	Content   string     `json:"content"`
	Mood      int        `json:"mood,omitempty" validate:"omitempty,min=1,max=5"` // 1 (low) .. 5 (great), 0 when unset
	FolderID  *string    `json:"folder_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// EntryDate records that at least one entry was written on Date.
// Date carries no time component; Count is the number of entries that day.
type EntryDate struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// EntryFilter narrows ListEntries results. Empty fields do not filter.
type EntryFilter struct {
	StartDay       string
	EndDay         string
	FolderID       string
	IncludeDeleted bool
	Limit          int
}
