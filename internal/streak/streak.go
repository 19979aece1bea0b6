// Package streak derives writing-streak statistics and calendar heat-map cells
// from the set of days on which diary entries were written.
//
// Every function is pure: callers fetch entry dates from storage, pass an explicit
// "today", and receive freshly allocated results.
package streak

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
)

// Milestones are the streak lengths that drive encouragement messages, ascending.
var Milestones = []int{7, 14, 30, 50, 100, 365}

// LegendMilestone is reported once every entry in Milestones has been passed.
const LegendMilestone = 1000

var milestoneMessages = map[int]string{
	7:               "%d more days to a full week of journaling!",
	14:              "%d more days to two weeks strong!",
	30:              "%d more days to a month of daily entries!",
	50:              "%d more days to 50 days in a row!",
	100:             "%d more days to triple digits!",
	365:             "%d more days to a full year of writing!",
	LegendMilestone: "Over a year without missing a day. %d more to reach 1000. Legendary!",
}

const (
	startTodayMessage = "Write your first entry today to start a streak!"
	legendMessage     = "%d days and counting. Every milestone is behind you. Legendary!"
)

// Milestone is the next streak length to aim for.
type Milestone struct {
	Days      int    `json:"days"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message"`
}

// Result holds the streak statistics for one user.
type Result struct {
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	TotalEntries  int        `json:"total_entries"`
	LastEntryDate *time.Time `json:"last_entry_date,omitempty"`
	NextMilestone Milestone  `json:"next_milestone"`
}

// Run is a maximal sequence of consecutive calendar days with at least one entry.
type Run struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Length int       `json:"length"`
}

// Day truncates t to its calendar day, expressed as midnight UTC of the same
// year, month and day. Using UTC keeps day arithmetic free of DST shifts.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Normalize truncates every date to its calendar day, merges duplicates by summing
// their counts and returns the result sorted ascending. Zero dates are dropped and
// counts below one are treated as one.
func Normalize(days []models.EntryDate) []models.EntryDate {
	merged := make(map[time.Time]int, len(days))
	for _, d := range days {
		if d.Date.IsZero() {
			continue
		}
		count := d.Count
		if count < 1 {
			count = 1
		}
		merged[Day(d.Date)] += count
	}

	out := make([]models.EntryDate, 0, len(merged))
	for date, count := range merged {
		out = append(out, models.EntryDate{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Runs returns every maximal consecutive-day run in days, oldest first.
// A gap of exactly one day continues a run; any larger gap starts a new one.
func Runs(days []models.EntryDate) []Run {
	sorted := Normalize(days)
	if len(sorted) == 0 {
		return nil
	}

	var runs []Run
	current := Run{Start: sorted[0].Date, End: sorted[0].Date, Length: 1}
	for _, d := range sorted[1:] {
		if d.Date.Equal(current.End.AddDate(0, 0, 1)) {
			current.End = d.Date
			current.Length++
			continue
		}
		runs = append(runs, current)
		current = Run{Start: d.Date, End: d.Date, Length: 1}
	}
	return append(runs, current)
}

// Compute derives streak statistics from the days on which entries were written.
// The current streak is anchored at today when today has an entry, otherwise at
// yesterday; with neither present it is zero.
func Compute(days []models.EntryDate, today time.Time) Result {
	sorted := Normalize(days)
	today = Day(today)

	result := Result{}
	if len(sorted) == 0 {
		result.NextMilestone = NextMilestone(0)
		return result
	}

	present := make(map[time.Time]bool, len(sorted))
	for _, d := range sorted {
		present[d.Date] = true
		result.TotalEntries += d.Count
	}

	last := sorted[len(sorted)-1].Date
	result.LastEntryDate = &last

	anchor := today
	if !present[anchor] {
		anchor = today.AddDate(0, 0, -1)
	}
	for day := anchor; present[day]; day = day.AddDate(0, 0, -1) {
		result.CurrentStreak++
	}

	for _, run := range Runs(sorted) {
		if run.Length > result.LongestStreak {
			result.LongestStreak = run.Length
		}
	}
	if result.CurrentStreak > result.LongestStreak {
		result.LongestStreak = result.CurrentStreak
	}

	result.NextMilestone = NextMilestone(result.CurrentStreak)
	return result
}

// NextMilestone returns the smallest milestone strictly greater than current.
// From LegendMilestone on there is nothing left to reach and Remaining is 0.
func NextMilestone(current int) Milestone {
	if current <= 0 {
		return Milestone{Days: Milestones[0], Remaining: Milestones[0], Message: startTodayMessage}
	}

	target := LegendMilestone
	for _, m := range Milestones {
		if m > current {
			target = m
			break
		}
	}

	remaining := target - current
	if remaining <= 0 {
		return Milestone{Days: LegendMilestone, Message: fmt.Sprintf(legendMessage, current)}
	}
	return Milestone{
		Days:      target,
		Remaining: remaining,
		Message:   fmt.Sprintf(milestoneMessages[target], remaining),
	}
}

// IsAtRisk reports whether the streak will break unless an entry is written today.
// It is false when nothing has been written yet.
func IsAtRisk(lastEntryDate *time.Time, today time.Time) bool {
	if lastEntryDate == nil {
		return false
	}
	return Day(*lastEntryDate).Before(Day(today))
}

// Cell is one day of the calendar heat-map.
type Cell struct {
	Date       string `json:"date"`
	HasEntry   bool   `json:"has_entry"`
	EntryCount int    `json:"entry_count"`
	InStreak   bool   `json:"in_streak"`
}

// Calendar maps YYYY-MM-DD to the cell for that day.
type Calendar map[string]Cell

// Dates returns the calendar's keys in ascending order.
func (c Calendar) Dates() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BuildCalendar produces one cell for every day in [start, end] inclusive.
// A cell is in a streak when its day lies inside any run of consecutive entry days,
// including runs of length one. An end before start yields an empty calendar.
func BuildCalendar(days []models.EntryDate, start, end time.Time) Calendar {
	start, end = Day(start), Day(end)
	cal := Calendar{}
	if end.Before(start) {
		return cal
	}

	counts := make(map[time.Time]int)
	for _, d := range Normalize(days) {
		counts[d.Date] = d.Count
	}

	inRun := make(map[time.Time]bool)
	for _, run := range Runs(days) {
		if run.End.Before(start) || run.Start.After(end) {
			continue
		}
		for day := run.Start; !day.After(run.End); day = day.AddDate(0, 0, 1) {
			inRun[day] = true
		}
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		count := counts[day]
		key := day.Format(constants.DateFormat)
		cal[key] = Cell{
			Date:       key,
			HasEntry:   count > 0,
			EntryCount: count,
			InStreak:   inRun[day],
		}
	}
	return cal
}

// ConsistencyRate returns the percentage of days with an entry over the trailing
// window [today - windowMonths months, today], rounded to the nearest integer.
// Days missing from the calendar count as days without an entry.
func ConsistencyRate(cal Calendar, today time.Time, windowMonths int) int {
	if windowMonths <= 0 {
		return 0
	}
	today = Day(today)
	start := today.AddDate(0, -windowMonths, 0)

	total, written := 0, 0
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		total++
		if cell, ok := cal[day.Format(constants.DateFormat)]; ok && cell.HasEntry {
			written++
		}
	}
	return int(math.Round(float64(written) * 100 / float64(total)))
}
