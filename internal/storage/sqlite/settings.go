package sqlite

import (
	"fmt"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	if len(data) == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	settings, err := models.MapToSettings(data)
	if err != nil {
		return models.Settings{}, err
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range models.SettingsToMap(settings) {
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("saving %s: %w", key, err)
		}
	}
	return tx.Commit()
}
