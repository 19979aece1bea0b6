package folders

import (
	"fmt"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/render"
)

type FolderCmd struct {
	Tree    TreeCmd    `cmd:"" help:"Show the folder tree." default:"1"`
	Add     AddCmd     `cmd:"" help:"Create a folder."`
	Path    PathCmd    `cmd:"" help:"Show the breadcrumb from the root to a folder."`
	Toggle  ToggleCmd  `cmd:"" help:"Expand or collapse a folder."`
	Move    MoveCmd    `cmd:"" help:"Move a folder under another parent."`
	Pin     PinCmd     `cmd:"" help:"Pin or unpin a folder."`
	Delete  DeleteCmd  `cmd:"" help:"Delete a folder (it can be restored)."`
	Restore RestoreCmd `cmd:"" help:"Restore a deleted folder."`
}

type TreeCmd struct {
	All    bool `short:"a" help:"Show collapsed folders too."`
	Strict bool `help:"Fail when folders had to be left out of the tree."`
	JSON   bool `help:"Output as JSON."`
}

func (c *TreeCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	tree, err := svc.FolderTree(ctx.Context())
	if err != nil {
		return err
	}
	if c.Strict {
		if err := tree.Err(); err != nil {
			return err
		}
	}
	if c.JSON {
		return ctx.PrintJSON(tree)
	}
	ctx.Println(render.Tree(tree, render.TreeOptions{All: c.All}))
	return nil
}

type AddCmd struct {
	Name        string `arg:"" help:"Folder name."`
	Parent      string `short:"p" help:"Parent folder id."`
	Icon        string `help:"Icon shown before the name."`
	Color       string `help:"Hex color such as #ff8800."`
	Description string `help:"Free-form description."`
	Pinned      bool   `help:"Pin the folder to the top of its level."`
	Order       int    `help:"Sort order among siblings."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	f := models.Folder{
		Name:        c.Name,
		Icon:        c.Icon,
		Color:       c.Color,
		Description: c.Description,
		IsPinned:    c.Pinned,
		SortOrder:   c.Order,
	}
	if c.Parent != "" {
		f.ParentID = &c.Parent
	}
	f, err = svc.AddFolder(ctx.Context(), f)
	if err != nil {
		return fmt.Errorf("failed to add folder: %w", err)
	}
	ctx.Printf("✓ Folder %q created with id %s\n", f.Name, f.ID)
	return nil
}

type PathCmd struct {
	ID string `arg:"" help:"Folder id."`
}

func (c *PathCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	path, err := svc.FolderPath(ctx.Context(), c.ID)
	if err != nil {
		return err
	}
	names := make([]string, len(path))
	for i, f := range path {
		names[i] = f.Name
	}
	ctx.Println(render.Breadcrumb(names))
	return nil
}

type ToggleCmd struct {
	ID string `arg:"" help:"Folder id."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	expanded, err := svc.ToggleFolder(ctx.Context(), c.ID)
	if err != nil {
		return err
	}
	state := "collapsed"
	if expanded {
		state = "expanded"
	}
	ctx.Printf("✓ Folder %s %s\n", c.ID, state)
	return nil
}

type MoveCmd struct {
	ID     string `arg:"" help:"Folder id."`
	Parent string `arg:"" optional:"" help:"New parent id; omit to move to the top level."`
}

func (c *MoveCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	if err := svc.MoveFolder(ctx.Context(), c.ID, c.Parent); err != nil {
		return fmt.Errorf("failed to move folder: %w", err)
	}
	if c.Parent == "" {
		ctx.Printf("✓ Folder %s moved to the top level\n", c.ID)
	} else {
		ctx.Printf("✓ Folder %s moved under %s\n", c.ID, c.Parent)
	}
	return nil
}

type PinCmd struct {
	ID    string `arg:"" help:"Folder id."`
	Unpin bool   `help:"Remove the pin instead."`
}

func (c *PinCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	if err := svc.SetPinned(ctx.Context(), c.ID, !c.Unpin); err != nil {
		return err
	}
	if c.Unpin {
		ctx.Printf("✓ Folder %s unpinned\n", c.ID)
	} else {
		ctx.Printf("✓ Folder %s pinned\n", c.ID)
	}
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Folder id."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	if err := svc.DeleteFolder(ctx.Context(), c.ID); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	ctx.Printf("✓ Folder %s deleted. Its subfolders went to the trash with it.\n", c.ID)
	return nil
}

type RestoreCmd struct {
	ID string `arg:"" help:"Folder id."`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	if err := svc.RestoreFolder(ctx.Context(), c.ID); err != nil {
		return fmt.Errorf("failed to restore folder: %w", err)
	}
	ctx.Printf("✓ Folder %s restored\n", c.ID)
	return nil
}
