package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage"
)

const folderColumns = `id, parent_id, name, icon, color, description, is_pinned, sort_order, is_expanded, created_at, updated_at, deleted_at`

func scanFolder(row rowScanner) (models.Folder, error) {
	var f models.Folder
	var parentID, deletedAt sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&f.ID, &parentID, &f.Name, &f.Icon, &f.Color, &f.Description,
		&f.IsPinned, &f.SortOrder, &f.IsExpanded, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return models.Folder{}, err
	}

	if f.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return models.Folder{}, err
	}
	if f.UpdatedAt, err = storage.ParseTime(updatedAt); err != nil {
		return models.Folder{}, err
	}
	if f.DeletedAt, err = storage.ParseNullTime(deletedAt); err != nil {
		return models.Folder{}, err
	}
	f.ParentID = storage.StringPtr(parentID)
	return f, nil
}

func (s *Store) AddFolder(f models.Folder) error {
	if f.ID == "" {
		return fmt.Errorf("folder id is required")
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = f.CreatedAt
	}

	_, err := s.db.Exec(`
		INSERT INTO folders (`+folderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
		f.ID, storage.NullString(f.ParentID), f.Name, f.Icon, f.Color, f.Description,
		f.IsPinned, f.SortOrder, f.IsExpanded,
		storage.FormatTime(f.CreatedAt), storage.FormatTime(f.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert folder: %w", err)
	}
	return nil
}

func (s *Store) GetFolder(id string) (models.Folder, error) {
	row := s.db.QueryRow(`SELECT `+folderColumns+` FROM folders WHERE id = ? AND deleted_at IS NULL`, id)
	f, err := scanFolder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Folder{}, fmt.Errorf("folder %s: %w", id, storage.ErrNotFound)
	}
	return f, err
}

func (s *Store) UpdateFolder(f models.Folder) error {
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = time.Now()
	}
	res, err := s.db.Exec(`
		UPDATE folders
		SET parent_id = ?, name = ?, icon = ?, color = ?, description = ?,
		    is_pinned = ?, sort_order = ?, is_expanded = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		storage.NullString(f.ParentID), f.Name, f.Icon, f.Color, f.Description,
		f.IsPinned, f.SortOrder, f.IsExpanded, storage.FormatTime(f.UpdatedAt), f.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update folder: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("folder %s: %w", f.ID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) GetAllFolders(includeDeleted bool) ([]models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders`
	if !includeDeleted {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// DeleteFolder soft-deletes a folder together with its live descendants, all
// stamped with the same deleted_at so RestoreFolder can bring the subtree back.
func (s *Store) DeleteFolder(id string) error {
	stamp, err := s.folderDeletedAt(id)
	if err != nil {
		return err
	}
	if stamp.Valid {
		return fmt.Errorf("folders %s: %w", id, storage.ErrAlreadyDeleted)
	}

	now := storage.FormatTime(time.Now())
	return s.execInTx(`WITH RECURSIVE subtree(id) AS (
			SELECT id FROM folders WHERE id = ?
			UNION
			SELECT f.id FROM folders f JOIN subtree ON f.parent_id = subtree.id WHERE f.deleted_at IS NULL
		)
		UPDATE folders SET deleted_at = ?, updated_at = ? WHERE id IN (SELECT id FROM subtree)`, id, now, now)
}

// RestoreFolder restores a folder and the descendants that were deleted with it.
// Subfolders deleted on their own earlier stay in the trash.
func (s *Store) RestoreFolder(id string) error {
	stamp, err := s.folderDeletedAt(id)
	if err != nil {
		return err
	}
	if !stamp.Valid {
		return fmt.Errorf("folders %s: %w", id, storage.ErrNotDeleted)
	}

	return s.execInTx(`WITH RECURSIVE subtree(id) AS (
			SELECT id FROM folders WHERE id = ?
			UNION
			SELECT f.id FROM folders f JOIN subtree ON f.parent_id = subtree.id WHERE f.deleted_at = ?
		)
		UPDATE folders SET deleted_at = NULL, updated_at = ? WHERE id IN (SELECT id FROM subtree)`, id, stamp.String, storage.FormatTime(time.Now()))
}

func (s *Store) folderDeletedAt(id string) (sql.NullString, error) {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM folders WHERE id = ?", id).Scan(&deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return deletedAt, fmt.Errorf("folders %s: %w", id, storage.ErrNotFound)
	}
	return deletedAt, err
}

func (s *Store) execInTx(query string, args ...any) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) SetFolderExpanded(id string, expanded bool) error {
	res, err := s.db.Exec(`UPDATE folders SET is_expanded = ? WHERE id = ? AND deleted_at IS NULL`, expanded, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("folder %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
