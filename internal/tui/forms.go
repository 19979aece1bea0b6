package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func newFolderForm(fm *FolderFormModel, parentName string) *huh.Form {
	title := "Folder name"
	if parentName != "" {
		title = fmt.Sprintf("Folder name (inside %s)", parentName)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("folder name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Icon (optional)").
				Value(&fm.Icon),
			huh.NewInput().
				Title("Color (optional, e.g. #ff8800)").
				Value(&fm.Color).
				Validate(func(s string) error {
					if s != "" && !hexColor.MatchString(s) {
						return fmt.Errorf("color must be a hex value such as #ff8800")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func newEntryForm(fm *EntryFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				CharLimit(200),
			huh.NewText().
				Title("What happened today?").
				Value(&fm.Content).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("entry cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[int]().
				Title("Mood").
				Options(
					huh.NewOption("Skip", 0),
					huh.NewOption("1 - Rough", 1),
					huh.NewOption("2 - Low", 2),
					huh.NewOption("3 - Okay", 3),
					huh.NewOption("4 - Good", 4),
					huh.NewOption("5 - Great", 5),
				).
				Value(&fm.Mood),
		),
	).WithTheme(huh.ThemeDracula())
}
