package entries

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
)

type EntryCmd struct {
	Add     AddCmd     `cmd:"" help:"Write a new entry."`
	List    ListCmd    `cmd:"" help:"List entries, newest first." default:"1"`
	Delete  DeleteCmd  `cmd:"" help:"Delete an entry (it can be restored)."`
	Restore RestoreCmd `cmd:"" help:"Restore a deleted entry."`
}

type AddCmd struct {
	Content string `arg:"" optional:"" help:"Entry text."`
	Title   string `short:"t" help:"Entry title."`
	Day     string `short:"d" help:"Day the entry belongs to (YYYY-MM-DD, today or yesterday)." default:"today"`
	Mood    int    `short:"m" help:"Mood from 1 (low) to 5 (great)."`
	Folder  string `short:"f" help:"Folder id to file the entry under."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	entry := models.Entry{
		Day:     cli.ResolveDay(svc, c.Day),
		Title:   c.Title,
		Content: c.Content,
		Mood:    c.Mood,
	}
	if c.Folder != "" {
		entry.FolderID = &c.Folder
	}

	entry, err = svc.AddEntry(ctx.Context(), entry)
	if err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}
	ctx.Printf("✓ Entry %s added for %s\n", entry.ID, entry.Day)

	atRisk, result, err := svc.AtRisk(ctx.Context())
	if err == nil && !atRisk && result.CurrentStreak > 0 {
		ctx.Printf("  Current streak: %d days\n", result.CurrentStreak)
	}
	return nil
}

type ListCmd struct {
	From    string `help:"Earliest day to include (YYYY-MM-DD)."`
	To      string `help:"Latest day to include (YYYY-MM-DD)."`
	Folder  string `short:"f" help:"Only entries in this folder."`
	Limit   int    `short:"n" help:"Maximum number of entries." default:"20"`
	Deleted bool   `help:"Include deleted entries."`
	JSON    bool   `help:"Output as JSON."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	entries, err := svc.Entries(ctx.Context(), models.EntryFilter{
		StartDay:       c.From,
		EndDay:         c.To,
		FolderID:       c.Folder,
		IncludeDeleted: c.Deleted,
		Limit:          c.Limit,
	})
	if err != nil {
		return err
	}

	if c.JSON {
		if entries == nil {
			entries = []models.Entry{}
		}
		return ctx.PrintJSON(entries)
	}
	if len(entries) == 0 {
		ctx.Println("No entries found.")
		return nil
	}

	w := tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DAY\tID\tMOOD\tTITLE")
	for _, e := range entries {
		mood := "-"
		if e.Mood > 0 {
			mood = strings.Repeat("*", e.Mood)
		}
		title := e.Title
		if title == "" {
			title = summary(e.Content)
		}
		if e.DeletedAt != nil {
			title += " (deleted)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Day, e.ID, mood, title)
	}
	return w.Flush()
}

// summary is the first line of content, cut to 50 runes.
func summary(content string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(content), "\n")
	if r := []rune(line); len(r) > 50 {
		return string(r[:49]) + "…"
	}
	return line
}

type DeleteCmd struct {
	ID string `arg:"" help:"Entry id."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	if err := svc.DeleteEntry(ctx.Context(), c.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	ctx.Printf("✓ Entry %s deleted. Restore it with 'diary entry restore %s'\n", c.ID, c.ID)
	return nil
}

type RestoreCmd struct {
	ID string `arg:"" help:"Entry id."`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	if err := svc.RestoreEntry(ctx.Context(), c.ID); err != nil {
		return fmt.Errorf("failed to restore entry: %w", err)
	}
	ctx.Printf("✓ Entry %s restored\n", c.ID)
	return nil
}
