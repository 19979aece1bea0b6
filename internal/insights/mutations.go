package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/utils"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/validation"
)

// AddEntry validates and stores a new entry. A missing id is generated and a
// missing day defaults to today.
func (s *Service) AddEntry(ctx context.Context, e models.Entry) (models.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Day == "" {
		e.Day = utils.FormatDay(s.Today())
	}
	if e.FolderID != nil && *e.FolderID == "" {
		e.FolderID = nil
	}
	if err := s.validator.ValidateEntry(e); err != nil {
		return models.Entry{}, err
	}
	if e.FolderID != nil {
		if _, err := s.store.GetFolder(*e.FolderID); err != nil {
			return models.Entry{}, fmt.Errorf("folder %s: %w", *e.FolderID, err)
		}
	}

	now := s.now()
	e.CreatedAt, e.UpdatedAt = now, now
	if err := s.store.AddEntry(e); err != nil {
		return models.Entry{}, err
	}
	s.Invalidate(ctx)
	return e, nil
}

func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	if err := s.store.DeleteEntry(id); err != nil {
		return err
	}
	s.Invalidate(ctx)
	return nil
}

func (s *Service) RestoreEntry(ctx context.Context, id string) error {
	if err := s.store.RestoreEntry(id); err != nil {
		return err
	}
	s.Invalidate(ctx)
	return nil
}

// AddFolder validates and stores a new folder under parentID ("" for a root).
func (s *Service) AddFolder(ctx context.Context, f models.Folder) (models.Folder, error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	f.Name = strings.TrimSpace(f.Name)
	if f.ParentID != nil && *f.ParentID == "" {
		f.ParentID = nil
	}
	if err := s.validator.ValidateFolder(f); err != nil {
		return models.Folder{}, err
	}
	if f.ParentID != nil {
		if _, err := s.store.GetFolder(*f.ParentID); err != nil {
			return models.Folder{}, fmt.Errorf("parent %s: %w", *f.ParentID, err)
		}
	}

	now := s.now()
	f.CreatedAt, f.UpdatedAt = now, now
	if err := s.store.AddFolder(f); err != nil {
		return models.Folder{}, err
	}
	return f, nil
}

// MoveFolder reparents a folder, refusing moves that would create a cycle.
func (s *Service) MoveFolder(ctx context.Context, id, newParentID string) error {
	folder, err := s.store.GetFolder(id)
	if err != nil {
		return err
	}
	folders, err := s.store.GetAllFolders(false)
	if err != nil {
		return err
	}
	if err := validation.ValidateFolderMove(folders, id, newParentID); err != nil {
		return err
	}

	if newParentID == "" {
		folder.ParentID = nil
	} else {
		folder.ParentID = &newParentID
	}
	folder.UpdatedAt = s.now()
	return s.store.UpdateFolder(folder)
}

// SetPinned pins or unpins a folder so it sorts ahead of its siblings.
func (s *Service) SetPinned(ctx context.Context, id string, pinned bool) error {
	folder, err := s.store.GetFolder(id)
	if err != nil {
		return err
	}
	folder.IsPinned = pinned
	folder.UpdatedAt = s.now()
	return s.store.UpdateFolder(folder)
}

// DeleteFolder moves a folder and its subfolders to the trash.
func (s *Service) DeleteFolder(ctx context.Context, id string) error {
	return s.store.DeleteFolder(id)
}

// RestoreFolder brings a folder back with the subfolders trashed alongside it.
// A folder whose parent is still in the trash cannot be restored on its own.
func (s *Service) RestoreFolder(ctx context.Context, id string) error {
	folders, err := s.store.GetAllFolders(true)
	if err != nil {
		return err
	}
	byID := make(map[string]models.Folder, len(folders))
	for _, f := range folders {
		byID[f.ID] = f
	}
	if f, ok := byID[id]; ok && !f.IsRoot() {
		if parent, ok := byID[*f.ParentID]; ok && parent.DeletedAt != nil {
			return fmt.Errorf("%w: parent folder %s is in the trash, restore it first", validation.ErrInvalid, parent.ID)
		}
	}
	return s.store.RestoreFolder(id)
}

// UpdateSettings validates and persists new settings and applies them.
func (s *Service) UpdateSettings(ctx context.Context, settings models.Settings) error {
	if err := s.validator.ValidateSettings(settings); err != nil {
		return err
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return err
	}
	if err := s.store.SaveSettings(settings); err != nil {
		return err
	}
	s.settings, s.loc = settings, loc
	s.Invalidate(ctx)
	return nil
}
