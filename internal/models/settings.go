package models

// Settings represents application-wide settings
type Settings struct {
	Timezone                string `json:"timezone" validate:"required,tzname"`               // IANA timezone name (e.g. "Europe/London", or "Local" for system timezone)
	CalendarMonths          int    `json:"calendar_months" validate:"min=1,max=36"`           // months shown in the calendar heat-map
	ConsistencyWindowMonths int    `json:"consistency_window_months" validate:"min=1,max=24"` // trailing window for the consistency rate
	CacheTTLMinutes         int    `json:"cache_ttl_minutes" validate:"min=1,max=1440"`       // lifetime of cached streak results
	RefreshInterval         string `json:"refresh_interval" validate:"required,cronspec"`     // cron spec for the background cache refresh
	ReminderTime            string `json:"reminder_time" validate:"required,datetime=15:04"`  // HH:MM at which an at-risk streak is reported
}
