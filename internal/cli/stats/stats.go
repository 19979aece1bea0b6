// Package stats holds the read-only streak, calendar, consistency and mood commands.
package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/render"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/utils"
)

type StreakCmd struct {
	JSON bool `help:"Output as JSON."`
}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	atRisk, result, err := svc.AtRisk(ctx.Context())
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(struct {
			CurrentStreak int    `json:"current_streak"`
			LongestStreak int    `json:"longest_streak"`
			TotalEntries  int    `json:"total_entries"`
			NextMilestone int    `json:"next_milestone"`
			Message       string `json:"message"`
			AtRisk        bool   `json:"at_risk"`
		}{
			result.CurrentStreak, result.LongestStreak, result.TotalEntries,
			result.NextMilestone.Days, result.NextMilestone.Message, atRisk,
		})
	}
	ctx.Println(render.Streak(result, atRisk))
	return nil
}

type CalendarCmd struct {
	Months int    `short:"m" help:"Months to show, ending today. Defaults to the calendar_months setting."`
	From   string `help:"First day (YYYY-MM-DD)."`
	To     string `help:"Last day (YYYY-MM-DD)."`
	JSON   bool   `help:"Output cells as JSON."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	var start, end time.Time
	if c.To != "" {
		if end, err = utils.ParseDay(c.To); err != nil {
			return fmt.Errorf("invalid --to: %w", err)
		}
	}
	if c.From != "" {
		if start, err = utils.ParseDay(c.From); err != nil {
			return fmt.Errorf("invalid --from: %w", err)
		}
	} else if c.Months > 0 {
		anchor := end
		if anchor.IsZero() {
			anchor = svc.Today()
		}
		start = anchor.AddDate(0, -c.Months, 0)
	}

	cal, err := svc.Calendar(ctx.Context(), start, end)
	if err != nil {
		return err
	}
	if c.JSON {
		cells := make([]any, 0, len(cal))
		for _, d := range cal.Dates() {
			cells = append(cells, cal[d])
		}
		return ctx.PrintJSON(cells)
	}
	ctx.Println(render.Heatmap(cal))
	return nil
}

type ConsistencyCmd struct {
	Months int `short:"m" help:"Trailing window in months. Defaults to the consistency_window_months setting."`
}

func (c *ConsistencyCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	months := c.Months
	if months <= 0 {
		months = svc.Settings().ConsistencyWindowMonths
	}
	rate, err := svc.Consistency(ctx.Context(), months)
	if err != nil {
		return err
	}
	ctx.Printf("Consistency over the last %d month(s): %d%%\n", months, rate)
	return nil
}

type MoodCmd struct {
	Days int  `short:"d" help:"Trailing window in days, today included." default:"${mood_days}"`
	JSON bool `help:"Output as JSON."`
}

func (c *MoodCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	summary, err := svc.Mood(ctx.Context(), c.Days)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(summary)
	}

	ctx.Printf("%s\n", render.TitleStyle.Render(fmt.Sprintf("Mood %s to %s", summary.Start, summary.End)))
	if summary.Rated == 0 {
		ctx.Printf("No rated entries among %d written.\n", summary.Entries)
		return nil
	}
	ctx.Printf("Average %.2f from %d of %d entries\n\n", summary.Average, summary.Rated, summary.Entries)
	for mood := constants.MoodMax; mood >= constants.MoodMin; mood-- {
		n := summary.Distribution[mood]
		ctx.Printf("  %d %-20s %d\n", mood, strings.Repeat("█", scale(n, summary.Rated, 20)), n)
	}
	return nil
}

// scale maps n out of total onto a bar of at most width cells.
func scale(n, total, width int) int {
	if total == 0 {
		return 0
	}
	return n * width / total
}
