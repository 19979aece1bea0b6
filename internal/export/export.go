// Package export writes a portable JSON copy of a diary and reads it back.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/foldertree"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/streak"
)

// FormatVersion is bumped whenever Document changes incompatibly.
const FormatVersion = 1

// Document is the exported form of a diary.
type Document struct {
	FormatVersion int                `json:"format_version"`
	AppVersion    string             `json:"app_version"`
	ExportedAt    time.Time          `json:"exported_at"`
	Settings      models.Settings    `json:"settings"`
	Streak        *streak.Result     `json:"streak,omitempty"`
	Entries       []models.Entry     `json:"entries"`
	Folders       []models.Folder    `json:"folders"`
	Tree          []*foldertree.Node `json:"tree"`
}

// Options controls what Build includes.
type Options struct {
	IncludeDeleted bool
	Today          time.Time
	Now            time.Time
}

// Build collects everything in store into a Document.
func Build(ctx context.Context, store storage.Provider, opts Options) (*Document, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	settings, err := store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	entries, err := store.ListEntries(models.EntryFilter{IncludeDeleted: opts.IncludeDeleted})
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	folders, err := store.GetAllFolders(opts.IncludeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	// The tree only ever shows live records.
	live := make([]models.Folder, 0, len(folders))
	for _, f := range folders {
		if f.DeletedAt == nil {
			live = append(live, f)
		}
	}
	counts, err := store.CountEntriesByFolder()
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	doc := &Document{
		FormatVersion: FormatVersion,
		AppVersion:    constants.Version,
		ExportedAt:    opts.Now.UTC(),
		Settings:      settings,
		Entries:       entries,
		Folders:       folders,
		Tree:          foldertree.Build(live, counts).Roots,
	}
	if doc.Entries == nil {
		doc.Entries = []models.Entry{}
	}
	if doc.Folders == nil {
		doc.Folders = []models.Folder{}
	}

	if !opts.Today.IsZero() {
		dates, err := store.GetEntryDates("", "")
		if err != nil {
			return nil, fmt.Errorf("failed to load entry dates: %w", err)
		}
		result := streak.Compute(dates, opts.Today)
		doc.Streak = &result
	}
	return doc, nil
}

// Write encodes doc as indented JSON.
func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Read decodes a Document and checks its format version.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode export: %w", err)
	}
	if doc.FormatVersion == 0 || doc.FormatVersion > FormatVersion {
		return nil, fmt.Errorf("unsupported export format version %d", doc.FormatVersion)
	}
	return &doc, nil
}

// ImportResult counts what Import wrote and skipped.
type ImportResult struct {
	Entries int
	Folders int
	Skipped int
}

// Import adds the folders and entries of doc whose ids store does not already
// hold, deleted records included. Parents are written before their children and
// records exported as deleted are soft-deleted again.
func Import(ctx context.Context, store storage.Provider, doc *Document) (ImportResult, error) {
	var res ImportResult

	folders, err := store.GetAllFolders(true)
	if err != nil {
		return res, fmt.Errorf("failed to list folders: %w", err)
	}
	entries, err := store.ListEntries(models.EntryFilter{IncludeDeleted: true})
	if err != nil {
		return res, fmt.Errorf("failed to list entries: %w", err)
	}
	exists := make(map[string]bool, len(folders)+len(entries))
	for _, f := range folders {
		exists["f:"+f.ID] = true
	}
	for _, e := range entries {
		exists["e:"+e.ID] = true
	}

	for _, f := range parentsFirst(doc.Folders) {
		if exists["f:"+f.ID] {
			res.Skipped++
			continue
		}
		if err := store.AddFolder(f); err != nil {
			return res, fmt.Errorf("failed to import folder %s: %w", f.ID, err)
		}
		if f.DeletedAt != nil {
			if err := store.DeleteFolder(f.ID); err != nil {
				return res, fmt.Errorf("failed to import folder %s: %w", f.ID, err)
			}
		}
		res.Folders++
	}

	for _, e := range doc.Entries {
		if exists["e:"+e.ID] {
			res.Skipped++
			continue
		}
		if err := store.AddEntry(e); err != nil {
			return res, fmt.Errorf("failed to import entry %s: %w", e.ID, err)
		}
		if e.DeletedAt != nil {
			if err := store.DeleteEntry(e.ID); err != nil {
				return res, fmt.Errorf("failed to import entry %s: %w", e.ID, err)
			}
		}
		res.Entries++
	}
	return res, nil
}

// parentsFirst orders folders so every parent precedes its children. Folders
// caught in a cycle or pointing at a missing parent keep their relative order
// at the end.
func parentsFirst(folders []models.Folder) []models.Folder {
	byID := make(map[string]bool, len(folders))
	for _, f := range folders {
		byID[f.ID] = true
	}

	out := make([]models.Folder, 0, len(folders))
	placed := make(map[string]bool, len(folders))
	for progress := true; progress; {
		progress = false
		for _, f := range folders {
			if placed[f.ID] {
				continue
			}
			if f.IsRoot() || placed[*f.ParentID] || !byID[*f.ParentID] {
				out = append(out, f)
				placed[f.ID] = true
				progress = true
			}
		}
	}
	for _, f := range folders {
		if !placed[f.ID] {
			out = append(out, f)
		}
	}
	return out
}
