package constants

const (
	SettingTimezone                = "timezone"
	SettingCalendarMonths          = "calendar_months"
	SettingConsistencyWindowMonths = "consistency_window_months"
	SettingCacheTTLMinutes         = "cache_ttl_minutes"
	SettingRefreshInterval         = "refresh_interval"
	SettingReminderTime            = "reminder_time"

	DefaultTimezone                = "Local" // Use system local timezone by default
	DefaultCalendarMonths          = 12
	DefaultConsistencyWindowMonths = 3
	DefaultCacheTTLMinutes         = 15
	DefaultRefreshInterval         = "@every 15m"
	DefaultReminderTime            = "20:00"
)
