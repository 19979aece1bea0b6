// Package data exports a diary to JSON and imports it back.
package data

import (
	"fmt"
	"io"
	"os"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/export"
)

type ExportCmd struct {
	Output         string `short:"o" help:"File to write; '-' writes to stdout." default:"-"`
	IncludeDeleted bool   `help:"Include deleted entries and folders."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	doc, err := export.Build(ctx.Context(), ctx.Store, export.Options{
		IncludeDeleted: c.IncludeDeleted,
		Today:          svc.Today(),
	})
	if err != nil {
		return err
	}

	if c.Output == "-" || c.Output == "" {
		return export.Write(ctx.Writer(), doc)
	}
	f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := export.Write(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	ctx.Printf("✓ Exported %d entries and %d folders to %s\n", len(doc.Entries), len(doc.Folders), c.Output)
	return nil
}

type ImportCmd struct {
	Input string `arg:"" help:"Export file to read; '-' reads stdin."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	var r io.Reader = os.Stdin
	if c.Input != "-" {
		f, err := os.Open(c.Input)
		if err != nil {
			return fmt.Errorf("failed to open export file: %w", err)
		}
		defer f.Close()
		r = f
	}
	doc, err := export.Read(r)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	result, err := export.Import(ctx.Context(), ctx.Store, doc)
	if err != nil {
		return err
	}
	if svc, err := ctx.Service(); err == nil {
		svc.Invalidate(ctx.Context())
	}
	ctx.Printf("✓ Imported %d entries and %d folders (%d already present)\n", result.Entries, result.Folders, result.Skipped)
	return nil
}
