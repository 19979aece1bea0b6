package models

import (
	"fmt"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingCalendarMonths:
			if _, err := fmt.Sscanf(value, "%d", &settings.CalendarMonths); err != nil {
				return Settings{}, fmt.Errorf("parsing calendar_months: %w", err)
			}
		case constants.SettingConsistencyWindowMonths:
			if _, err := fmt.Sscanf(value, "%d", &settings.ConsistencyWindowMonths); err != nil {
				return Settings{}, fmt.Errorf("parsing consistency_window_months: %w", err)
			}
		case constants.SettingCacheTTLMinutes:
			if _, err := fmt.Sscanf(value, "%d", &settings.CacheTTLMinutes); err != nil {
				return Settings{}, fmt.Errorf("parsing cache_ttl_minutes: %w", err)
			}
		case constants.SettingRefreshInterval:
			settings.RefreshInterval = value
		case constants.SettingReminderTime:
			settings.ReminderTime = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:                settings.Timezone,
		constants.SettingCalendarMonths:          fmt.Sprintf("%d", settings.CalendarMonths),
		constants.SettingConsistencyWindowMonths: fmt.Sprintf("%d", settings.ConsistencyWindowMonths),
		constants.SettingCacheTTLMinutes:         fmt.Sprintf("%d", settings.CacheTTLMinutes),
		constants.SettingRefreshInterval:         settings.RefreshInterval,
		constants.SettingReminderTime:            settings.ReminderTime,
	}
}

// DefaultSettings returns the settings written by a fresh init.
func DefaultSettings() Settings {
	s := Settings{}
	ApplyDefaultSettings(&s)
	return s
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.CalendarMonths <= 0 {
		settings.CalendarMonths = constants.DefaultCalendarMonths
	}
	if settings.ConsistencyWindowMonths <= 0 {
		settings.ConsistencyWindowMonths = constants.DefaultConsistencyWindowMonths
	}
	if settings.CacheTTLMinutes <= 0 {
		settings.CacheTTLMinutes = constants.DefaultCacheTTLMinutes
	}
	if settings.RefreshInterval == "" {
		settings.RefreshInterval = constants.DefaultRefreshInterval
	}
	if settings.ReminderTime == "" {
		settings.ReminderTime = constants.DefaultReminderTime
	}
}
