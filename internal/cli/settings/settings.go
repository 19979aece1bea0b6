package settings

import (
	"fmt"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone                *string `help:"IANA timezone that decides when a day starts, or Local."`
	CalendarMonths          *int    `help:"Months shown in the calendar heat-map."`
	ConsistencyWindowMonths *int    `help:"Trailing window for the consistency rate, in months."`
	CacheTTLMinutes         *int    `name:"cache-ttl" help:"Minutes a computed streak stays cached."`
	RefreshInterval         *string `help:"Cron spec for the background streak refresh, e.g. '@every 15m'."`
	ReminderTime            *string `help:"HH:MM at which 'diary serve' warns about an at-risk streak."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:            %s\n", settings.Timezone)
		if ctx.Timezone != "" && ctx.Timezone != settings.Timezone {
			ctx.Printf("    (overridden by --timezone %s)\n", ctx.Timezone)
		}
		ctx.Printf("  Calendar Months:     %d\n", settings.CalendarMonths)
		ctx.Printf("  Consistency Window:  %d months\n", settings.ConsistencyWindowMonths)
		ctx.Printf("  Cache TTL:           %d min\n", settings.CacheTTLMinutes)
		ctx.Printf("  Refresh Interval:    %s\n", settings.RefreshInterval)
		ctx.Printf("  Reminder Time:       %s\n", settings.ReminderTime)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.CalendarMonths != nil {
		settings.CalendarMonths = *c.CalendarMonths
		updated = true
	}
	if c.ConsistencyWindowMonths != nil {
		settings.ConsistencyWindowMonths = *c.ConsistencyWindowMonths
		updated = true
	}
	if c.CacheTTLMinutes != nil {
		settings.CacheTTLMinutes = *c.CacheTTLMinutes
		updated = true
	}
	if c.RefreshInterval != nil {
		settings.RefreshInterval = *c.RefreshInterval
		updated = true
	}
	if c.ReminderTime != nil {
		settings.ReminderTime = *c.ReminderTime
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := svc.UpdateSettings(ctx.Context(), settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}
