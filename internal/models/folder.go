package models

import "time"

// Folder is a user-owned organisational node. ParentID is nil for root folders.
type Folder struct {
	ID          string     `json:"id"`
	ParentID    *string    `json:"parent_id"`
	Name        string     `json:"name" validate:"required,max=100"`
	Icon        string     `json:"icon,omitempty" validate:"max=16"`
	Color       string     `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Description string     `json:"description,omitempty" validate:"max=500"`
	IsPinned    bool       `json:"is_pinned"`
	SortOrder   int        `json:"sort_order"`
	IsExpanded  bool       `json:"is_expanded"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// IsRoot reports whether the folder has no parent.
func (f Folder) IsRoot() bool {
	return f.ParentID == nil || *f.ParentID == ""
}
