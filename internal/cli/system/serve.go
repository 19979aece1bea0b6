package system

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cli"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/lockfile"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/scheduler"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/server"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/streak"
)

type ServeCmd struct {
	Addr        string `help:"Address to listen on." default:"${listen_addr}" env:"DIARY_ADDR"`
	NoScheduler bool   `help:"Do not run the background refresh and reminder jobs."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = constants.DefaultListenAddr
	}
	lock, err := lockfile.Acquire(lockfile.Path(ctx.ConfigDir), addr)
	if err != nil {
		if errors.Is(err, lockfile.ErrAlreadyRunning) {
			return fmt.Errorf("%w (see %s)", err, lockfile.Path(ctx.ConfigDir))
		}
		return err
	}
	defer lock.Release()

	ctx.PerformAutomaticBackup()

	runCtx, stop := signal.NotifyContext(ctx.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !c.NoScheduler {
		sched, err := scheduler.New(svc, svc.Settings(), svc.Location(), func(r streak.Result) {
			ctx.Printf("⚠ Your %d day streak ends at midnight. Write something today.\n", r.CurrentStreak)
		})
		if err != nil {
			return fmt.Errorf("failed to configure scheduler: %w", err)
		}
		sched.Start(runCtx)
		defer sched.Stop()
	}

	ctx.Printf("Serving diary API on http://%s (Ctrl+C to stop)\n", addr)
	return server.New(svc).Run(runCtx, addr)
}
