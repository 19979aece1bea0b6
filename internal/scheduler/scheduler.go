// Package scheduler runs the background jobs of diary serve: periodic streak
// refreshes and the nightly at-risk reminder.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	rcron "github.com/robfig/cron/v3"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/logger"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/metrics"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/streak"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/utils"
)

const (
	JobRefresh  = "refresh"
	JobReminder = "reminder"
)

// Source is the part of the insights service the jobs depend on.
type Source interface {
	Refresh(ctx context.Context) (streak.Result, error)
	AtRisk(ctx context.Context) (bool, streak.Result, error)
}

// Notifier is told when the streak is about to break.
type Notifier func(result streak.Result)

type Scheduler struct {
	cron   *rcron.Cron
	source Source
	notify Notifier
	log    *log.Logger

	mu      sync.Mutex
	ctx     context.Context
	entries map[string]rcron.EntryID
}

var parser = rcron.NewParser(rcron.Minute | rcron.Hour | rcron.Dom | rcron.Month | rcron.Dow | rcron.Descriptor)

// New registers the refresh and reminder jobs described by settings. Jobs fire
// in loc. A nil notify logs a warning instead.
func New(source Source, settings models.Settings, loc *time.Location, notify Notifier) (*Scheduler, error) {
	reminder, err := ReminderSpec(settings.ReminderTime)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.Local
	}

	l := logger.With("component", "scheduler")
	s := &Scheduler{
		source:  source,
		notify:  notify,
		log:     l,
		ctx:     context.Background(),
		entries: make(map[string]rcron.EntryID, 2),
	}
	if s.notify == nil {
		s.notify = func(r streak.Result) {
			s.log.Warn("Streak at risk, write an entry before midnight", "current", r.CurrentStreak)
		}
	}

	cl := cronLogger{l}
	s.cron = rcron.New(
		rcron.WithParser(parser),
		rcron.WithLocation(loc),
		rcron.WithChain(rcron.Recover(cl), rcron.SkipIfStillRunning(cl)),
		rcron.WithLogger(cl),
	)

	if err := s.add(JobRefresh, settings.RefreshInterval, func() { _ = s.RunRefresh(s.runCtx()) }); err != nil {
		return nil, err
	}
	if err := s.add(JobReminder, reminder, func() { _, _ = s.RunReminder(s.runCtx()) }); err != nil {
		return nil, err
	}
	return s, nil
}

// ReminderSpec converts an HH:MM reminder time into a daily cron expression.
func ReminderSpec(hhmm string) (string, error) {
	minutes, err := utils.ParseTimeToMinutes(hhmm)
	if err != nil {
		return "", fmt.Errorf("invalid reminder time %q: %w", hhmm, err)
	}
	return fmt.Sprintf("%d %d * * *", minutes%60, minutes/60), nil
}

func (s *Scheduler) add(name, spec string, fn func()) error {
	id, err := s.cron.AddFunc(spec, fn)
	if err != nil {
		return fmt.Errorf("invalid schedule %q for %s job: %w", spec, name, err)
	}
	s.entries[name] = id
	return nil
}

func (s *Scheduler) runCtx() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// Start runs the jobs until ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.cron.Start()
	s.log.Info("Scheduler started", "refresh_next", s.Next(JobRefresh), "reminder_next", s.Next(JobReminder))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
}

// Stop waits up to five seconds for running jobs to finish.
func (s *Scheduler) Stop() {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn("Timed out waiting for running jobs")
	}
}

// Next reports when the named job fires next, or the zero time if it is not
// scheduled or the scheduler has not started.
func (s *Scheduler) Next(name string) time.Time {
	id, ok := s.entries[name]
	if !ok {
		return time.Time{}
	}
	return s.cron.Entry(id).Next
}

// RunRefresh recomputes the cached streak.
func (s *Scheduler) RunRefresh(ctx context.Context) error {
	result, err := s.source.Refresh(ctx)
	if err != nil {
		metrics.ScheduledJobRuns.WithLabelValues(JobRefresh, "error").Inc()
		s.log.Error("Failed to refresh streak", "error", err)
		return err
	}
	metrics.ScheduledJobRuns.WithLabelValues(JobRefresh, "ok").Inc()
	s.log.Debug("Streak refreshed", "current", result.CurrentStreak, "longest", result.LongestStreak)
	return nil
}

// RunReminder notifies when today's entry is still missing from a live streak.
func (s *Scheduler) RunReminder(ctx context.Context) (bool, error) {
	atRisk, result, err := s.source.AtRisk(ctx)
	if err != nil {
		metrics.ScheduledJobRuns.WithLabelValues(JobReminder, "error").Inc()
		s.log.Error("Failed to check streak", "error", err)
		return false, err
	}
	metrics.ScheduledJobRuns.WithLabelValues(JobReminder, "ok").Inc()
	// A streak that already broke has nothing left to save tonight.
	fire := atRisk && result.CurrentStreak > 0
	if fire {
		s.notify(result)
	}
	return fire, nil
}

// cronLogger adapts the application logger to cron's logging interface.
type cronLogger struct {
	l *log.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error(msg, append(keysAndValues, "error", err)...)
}
