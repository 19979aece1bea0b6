package system

import (
	"fmt"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/foldertree"
)

type DebugCmd struct {
	DBPath   DebugDBPathCmd       `cmd:"" name:"db-path" help:"Show database path."`
	Entry    DebugDumpEntryCmd    `cmd:"" help:"Dump an entry as JSON."`
	Folder   DebugDumpFolderCmd   `cmd:"" help:"Dump a folder as JSON."`
	Tree     DebugDumpTreeCmd     `cmd:"" help:"Dump the folder tree and its warnings as JSON."`
	Settings DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return ctx.PrintJSON(map[string]string{
		"path":       ctx.Store.GetConfigPath(),
		"config_dir": ctx.ConfigDir,
	})
}

type DebugDumpEntryCmd struct {
	ID string `arg:"" help:"ID of the entry to dump."`
}

func (cmd *DebugDumpEntryCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.Store.GetEntry(cmd.ID)
	if err != nil {
		return fmt.Errorf("failed to get entry %s: %w", cmd.ID, err)
	}
	return ctx.PrintJSON(entry)
}

type DebugDumpFolderCmd struct {
	ID string `arg:"" help:"ID of the folder to dump."`
}

func (cmd *DebugDumpFolderCmd) Run(ctx *cli.Context) error {
	folder, err := ctx.Store.GetFolder(cmd.ID)
	if err != nil {
		return fmt.Errorf("failed to get folder %s: %w", cmd.ID, err)
	}
	return ctx.PrintJSON(folder)
}

type DebugDumpTreeCmd struct{}

func (cmd *DebugDumpTreeCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	tree, err := svc.FolderTree(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.PrintJSON(struct {
		Placed int `json:"placed"`
		*foldertree.Tree
	}{tree.Len(), tree})
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return ctx.PrintJSON(settings)
}
