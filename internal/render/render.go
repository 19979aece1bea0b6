// Package render draws streak statistics, the calendar heat-map and the folder
// tree as styled terminal text.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/foldertree"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/streak"
)

var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	MutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	WarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	statStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	boxStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	pinnedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)

	// Heat levels from no entry to four or more entries in a day.
	heatLevels = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	}
)

const cellGlyph = "■"

// Streak renders the streak summary box.
func Streak(r streak.Result, atRisk bool) string {
	lines := []string{
		TitleStyle.Render("Writing streak"),
		fmt.Sprintf("Current  %s days", statStyle.Render(fmt.Sprint(r.CurrentStreak))),
		fmt.Sprintf("Longest  %s days", statStyle.Render(fmt.Sprint(r.LongestStreak))),
		fmt.Sprintf("Entries  %d", r.TotalEntries),
	}
	if r.LastEntryDate != nil {
		lines = append(lines, MutedStyle.Render("Last entry "+r.LastEntryDate.Format(constants.DateFormat)))
	}
	lines = append(lines, "", r.NextMilestone.Message)
	switch {
	case atRisk && r.CurrentStreak > 0:
		lines = append(lines, WarnStyle.Render("Write today to keep your streak alive!"))
	case atRisk:
		lines = append(lines, WarnStyle.Render("Nothing written today yet."))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func heat(c streak.Cell) lipgloss.Style {
	n := c.EntryCount
	if n >= len(heatLevels) {
		n = len(heatLevels) - 1
	}
	return heatLevels[n]
}

// Heatmap renders cal as a grid with one column per week and one row per
// weekday, Sunday on top. Days missing from cal are left blank.
func Heatmap(cal streak.Calendar) string {
	dates := cal.Dates()
	if len(dates) == 0 {
		return MutedStyle.Render("No days to show.")
	}
	first, err := time.Parse(constants.DateFormat, dates[0])
	if err != nil {
		return ""
	}
	last, err := time.Parse(constants.DateFormat, dates[len(dates)-1])
	if err != nil {
		return ""
	}

	// Align the grid to the Sunday on or before the first day.
	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	weeks := int(last.Sub(gridStart).Hours()/24)/7 + 1

	// Month labels sit above the first week of each month.
	header := []byte(strings.Repeat(" ", weeks*2+2))
	labelEnd, lastMonth := 0, time.Month(0)
	for w := 0; w < weeks; w++ {
		d := gridStart.AddDate(0, 0, 7*w)
		if w > 0 {
			d = d.AddDate(0, 0, 6)
		}
		if pos := w * 2; d.Month() != lastMonth && pos >= labelEnd {
			labelEnd = pos + copy(header[pos:], d.Format("Jan")) + 1
			lastMonth = d.Month()
		}
	}

	rows := []string{MutedStyle.Render(strings.TrimRight("    "+string(header), " "))}
	dayNames := []string{"   ", "Mon", "   ", "Wed", "   ", "Fri", "   "}
	for wd := 0; wd < 7; wd++ {
		var b strings.Builder
		b.WriteString(MutedStyle.Render(dayNames[wd]) + " ")
		for w := 0; w < weeks; w++ {
			d := gridStart.AddDate(0, 0, 7*w+wd)
			cell, ok := cal[d.Format(constants.DateFormat)]
			if !ok {
				b.WriteString("  ")
				continue
			}
			b.WriteString(heat(cell).Render(cellGlyph) + " ")
		}
		rows = append(rows, strings.TrimRight(b.String(), " "))
	}

	var legend strings.Builder
	legend.WriteString("Less ")
	for _, s := range heatLevels {
		legend.WriteString(s.Render(cellGlyph) + " ")
	}
	legend.WriteString("More")
	rows = append(rows, "", MutedStyle.Render(legend.String()))
	return strings.Join(rows, "\n")
}

// TreeOptions controls Tree output.
type TreeOptions struct {
	// All descends into collapsed folders too.
	All bool
	// Selected highlights the folder with this id.
	Selected string
}

// Tree renders the folder forest, one folder per line, indented by level.
func Tree(t *foldertree.Tree, opts TreeOptions) string {
	var nodes []*foldertree.Node
	if opts.All {
		t.Walk(func(n *foldertree.Node) { nodes = append(nodes, n) })
	} else {
		nodes = t.Visible()
	}
	if len(nodes) == 0 {
		return MutedStyle.Render("No folders yet.")
	}

	lines := make([]string, 0, len(nodes)+len(t.Warnings))
	for _, n := range nodes {
		line := TreeLine(n, opts.All)
		if n.ID == opts.Selected {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	for _, w := range t.Warnings {
		lines = append(lines, WarnStyle.Render(fmt.Sprintf("! folder %s skipped (%s)", w.FolderID, w.Kind)))
	}
	return strings.Join(lines, "\n")
}

// TreeLine renders one node without selection styling.
func TreeLine(n *foldertree.Node, expandAll bool) string {
	marker := "  "
	if len(n.Children) > 0 {
		if n.IsExpanded || expandAll {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}

	name := n.Name
	if n.Icon != "" {
		name = n.Icon + " " + name
	}
	if n.Color != "" {
		name = lipgloss.NewStyle().Foreground(lipgloss.Color(n.Color)).Render(name)
	}
	if n.IsPinned {
		name += pinnedStyle.Render(" *")
	}

	line := strings.Repeat("  ", n.Level) + marker + name
	if n.EntryCount > 0 {
		line += MutedStyle.Render(fmt.Sprintf(" (%d)", n.EntryCount))
	}
	return line
}

// Breadcrumb joins folder names from root to leaf.
func Breadcrumb(names []string) string {
	return strings.Join(names, MutedStyle.Render(" / "))
}
