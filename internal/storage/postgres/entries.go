package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/utils"
)

const entryColumns = `id, day, title, content, mood, folder_id, created_at, updated_at, deleted_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.Entry, error) {
	var e models.Entry
	var mood sql.NullInt64
	var folderID, deletedAt sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&e.ID, &e.Day, &e.Title, &e.Content, &mood, &folderID, &createdAt, &updatedAt, &deletedAt); err != nil {
		return models.Entry{}, err
	}

	var err error
	if e.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return models.Entry{}, err
	}
	if e.UpdatedAt, err = storage.ParseTime(updatedAt); err != nil {
		return models.Entry{}, err
	}
	if e.DeletedAt, err = storage.ParseNullTime(deletedAt); err != nil {
		return models.Entry{}, err
	}
	if mood.Valid {
		e.Mood = int(mood.Int64)
	}
	e.FolderID = storage.StringPtr(folderID)
	return e, nil
}

func (s *Store) AddEntry(e models.Entry) error {
	if e.ID == "" {
		return fmt.Errorf("entry id is required")
	}
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = e.CreatedAt
	}

	_, err := s.db.Exec(`
		INSERT INTO entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL)`,
		e.ID, e.Day, e.Title, e.Content, storage.NullInt(e.Mood), storage.NullString(e.FolderID),
		storage.FormatTime(e.CreatedAt), storage.FormatTime(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

func (s *Store) GetEntry(id string) (models.Entry, error) {
	row := s.db.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE id = $1 AND deleted_at IS NULL`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entry{}, fmt.Errorf("entry %s: %w", id, storage.ErrNotFound)
	}
	return e, err
}

func (s *Store) UpdateEntry(e models.Entry) error {
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now()
	}
	res, err := s.db.Exec(`
		UPDATE entries
		SET day = $1, title = $2, content = $3, mood = $4, folder_id = $5, updated_at = $6
		WHERE id = $7 AND deleted_at IS NULL`,
		e.Day, e.Title, e.Content, storage.NullInt(e.Mood), storage.NullString(e.FolderID),
		storage.FormatTime(e.UpdatedAt), e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("entry %s: %w", e.ID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) ListEntries(filter models.EntryFilter) ([]models.Entry, error) {
	var where []string
	var args []any
	if !filter.IncludeDeleted {
		where = append(where, "deleted_at IS NULL")
	}
	if filter.StartDay != "" {
		args = append(args, filter.StartDay)
		where = append(where, fmt.Sprintf("day >= $%d", len(args)))
	}
	if filter.EndDay != "" {
		args = append(args, filter.EndDay)
		where = append(where, fmt.Sprintf("day <= $%d", len(args)))
	}
	if filter.FolderID != "" {
		args = append(args, filter.FolderID)
		where = append(where, fmt.Sprintf("folder_id = $%d", len(args)))
	}

	query := `SELECT ` + entryColumns + ` FROM entries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY day DESC, created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteEntry(id string) error {
	return s.softDelete("entries", id)
}

func (s *Store) RestoreEntry(id string) error {
	return s.restore("entries", id)
}

func (s *Store) GetEntryDates(startDay, endDay string) ([]models.EntryDate, error) {
	query := `SELECT day, COUNT(*) FROM entries WHERE deleted_at IS NULL`
	var args []any
	if startDay != "" {
		args = append(args, startDay)
		query += fmt.Sprintf(" AND day >= $%d", len(args))
	}
	if endDay != "" {
		args = append(args, endDay)
		query += fmt.Sprintf(" AND day <= $%d", len(args))
	}
	query += " GROUP BY day ORDER BY day"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []models.EntryDate
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		date, err := utils.ParseDay(day)
		if err != nil {
			return nil, fmt.Errorf("invalid stored day %q: %w", day, err)
		}
		dates = append(dates, models.EntryDate{Date: date, Count: count})
	}
	return dates, rows.Err()
}

func (s *Store) CountEntriesByFolder() (map[string]int, error) {
	rows, err := s.db.Query(`
		SELECT folder_id, COUNT(*) FROM entries
		WHERE deleted_at IS NULL AND folder_id IS NOT NULL
		GROUP BY folder_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// softDelete marks a row deleted. table is always a package constant.
func (s *Store) softDelete(table, id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM "+table+" WHERE id = $1", id).Scan(&deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", table, id, storage.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if deletedAt.Valid {
		return fmt.Errorf("%s %s: %w", table, id, storage.ErrAlreadyDeleted)
	}

	now := storage.FormatTime(time.Now())
	_, err = s.db.Exec("UPDATE "+table+" SET deleted_at = $1, updated_at = $2 WHERE id = $3", now, now, id)
	return err
}

func (s *Store) restore(table, id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM "+table+" WHERE id = $1", id).Scan(&deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", table, id, storage.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if !deletedAt.Valid {
		return fmt.Errorf("%s %s: %w", table, id, storage.ErrNotDeleted)
	}

	_, err = s.db.Exec("UPDATE "+table+" SET deleted_at = NULL, updated_at = $1 WHERE id = $2", storage.FormatTime(time.Now()), id)
	return err
}
