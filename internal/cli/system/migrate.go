package system

import (
	"fmt"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	count, err := ctx.Store.Migrate(func(msg string) { ctx.Println(msg) })
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
