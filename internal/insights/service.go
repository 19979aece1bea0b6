// Package insights serves streak statistics, calendar heat-maps and the folder
// tree on top of a storage provider, caching derived results between writes.
package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/cache"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/foldertree"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/logger"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/metrics"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/models"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/storage"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/streak"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/utils"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/validation"
)

type Service struct {
	store     storage.Provider
	cache     cache.Cache
	validator *validation.Validator
	log       *log.Logger

	profile  string
	now      func() time.Time
	settings models.Settings
	loc      *time.Location
}

type Option func(*Service)

// WithCache replaces the default in-memory cache.
func WithCache(c cache.Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithClock injects the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithProfile namespaces cache keys when several databases share one Redis.
func WithProfile(profile string) Option {
	return func(s *Service) { s.profile = profile }
}

// WithTimezone overrides the timezone stored in settings.
func WithTimezone(tz string) Option {
	return func(s *Service) {
		if tz != "" {
			s.settings.Timezone = tz
		}
	}
}

// New builds a service over a loaded store.
func New(store storage.Provider, opts ...Option) (*Service, error) {
	settings, err := store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)

	s := &Service{
		store:     store,
		validator: validation.New(),
		log:       logger.With("component", "insights"),
		profile:   constants.DefaultProfile,
		now:       time.Now,
		settings:  settings,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = cache.NewMemory()
	}

	loc, err := utils.LoadLocation(s.settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.settings.Timezone, err)
	}
	s.loc = loc
	return s, nil
}

// Settings returns the effective settings.
func (s *Service) Settings() models.Settings {
	return s.settings
}

// Store exposes the underlying provider for callers that need raw records.
func (s *Service) Store() storage.Provider {
	return s.store
}

// Location is the configured timezone.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Today is the current calendar day in the configured timezone.
func (s *Service) Today() time.Time {
	return streak.Day(s.now().In(s.loc))
}

func (s *Service) ttl() time.Duration {
	return time.Duration(s.settings.CacheTTLMinutes) * time.Minute
}

// Streak returns the current and longest streak with the next milestone.
func (s *Service) Streak(ctx context.Context) (streak.Result, error) {
	today := s.Today()
	key := s.key(ctx, "streak", utils.FormatDay(today))

	var result streak.Result
	if s.lookup(ctx, "streak", key, &result) {
		return result, nil
	}

	start := time.Now()
	days, err := s.store.GetEntryDates("", "")
	if err != nil {
		return streak.Result{}, fmt.Errorf("failed to load entry dates: %w", err)
	}
	result = streak.Compute(days, today)
	metrics.ComputeDuration.WithLabelValues("streak").Observe(time.Since(start).Seconds())
	metrics.CurrentStreak.Set(float64(result.CurrentStreak))

	s.save(ctx, key, result)
	return result, nil
}

// Calendar returns heat-map cells for [start, end]. Zero bounds default to the
// configured number of months ending today.
func (s *Service) Calendar(ctx context.Context, start, end time.Time) (streak.Calendar, error) {
	if end.IsZero() {
		end = s.Today()
	}
	if start.IsZero() {
		start = streak.Day(end).AddDate(0, -s.settings.CalendarMonths, 0)
	}
	key := s.key(ctx, "calendar", utils.FormatDay(start), utils.FormatDay(end))

	cal := streak.Calendar{}
	if s.lookup(ctx, "calendar", key, &cal) {
		return cal, nil
	}

	began := time.Now()
	// Runs that cross start still mark cells inside the range, so load everything.
	days, err := s.store.GetEntryDates("", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load entry dates: %w", err)
	}
	cal = streak.BuildCalendar(days, start, end)
	metrics.ComputeDuration.WithLabelValues("calendar").Observe(time.Since(began).Seconds())

	s.save(ctx, key, cal)
	return cal, nil
}

// Consistency is the percentage of days with an entry over the trailing window.
// months <= 0 uses the configured window.
func (s *Service) Consistency(ctx context.Context, months int) (int, error) {
	if months <= 0 {
		months = s.settings.ConsistencyWindowMonths
	}
	today := s.Today()
	cal, err := s.Calendar(ctx, today.AddDate(0, -months, 0), today)
	if err != nil {
		return 0, err
	}
	return streak.ConsistencyRate(cal, today, months), nil
}

// AtRisk reports whether nothing has been written yet today although earlier
// entries exist. Whether a streak is still alive is up to the caller to check
// against the returned result.
func (s *Service) AtRisk(ctx context.Context) (bool, streak.Result, error) {
	result, err := s.Streak(ctx)
	if err != nil {
		return false, streak.Result{}, err
	}
	return streak.IsAtRisk(result.LastEntryDate, s.Today()), result, nil
}

// FolderTree builds the folder forest with live entry counts.
func (s *Service) FolderTree(ctx context.Context) (*foldertree.Tree, error) {
	began := time.Now()
	folders, err := s.store.GetAllFolders(false)
	if err != nil {
		return nil, fmt.Errorf("failed to load folders: %w", err)
	}
	counts, err := s.store.CountEntriesByFolder()
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	tree := foldertree.Build(folders, counts)
	metrics.ComputeDuration.WithLabelValues("tree").Observe(time.Since(began).Seconds())
	metrics.FolderIntegrityWarnings.Set(float64(len(tree.Warnings)))
	for _, w := range tree.Warnings {
		s.log.Warn("Folder left out of tree", "folder", w.FolderID, "parent", w.ParentID, "kind", w.Kind)
	}
	return tree, nil
}

// FolderPath returns the breadcrumb from a root folder down to id.
func (s *Service) FolderPath(ctx context.Context, id string) ([]models.Folder, error) {
	tree, err := s.FolderTree(ctx)
	if err != nil {
		return nil, err
	}
	return tree.Path(id)
}

// ToggleFolder flips and persists the expanded state of one folder.
func (s *Service) ToggleFolder(ctx context.Context, id string) (bool, error) {
	tree, err := s.FolderTree(ctx)
	if err != nil {
		return false, err
	}
	expanded, err := tree.ToggleExpanded(id)
	if err != nil {
		return false, err
	}
	if err := s.store.SetFolderExpanded(id, expanded); err != nil {
		return false, fmt.Errorf("failed to save folder state: %w", err)
	}
	return expanded, nil
}

// Invalidate drops every cached result for this profile by bumping its generation.
func (s *Service) Invalidate(ctx context.Context) {
	gen := s.generation(ctx) + 1
	if err := s.cache.Set(ctx, s.genKey(), gen, 0); err != nil {
		s.log.Warn("Failed to invalidate cache", "error", err)
	}
}

// Refresh recomputes and caches today's streak; used by the scheduler.
func (s *Service) Refresh(ctx context.Context) (streak.Result, error) {
	s.Invalidate(ctx)
	return s.Streak(ctx)
}

func (s *Service) genKey() string {
	return s.profile + ":gen"
}

func (s *Service) generation(ctx context.Context) int64 {
	var gen int64
	if _, err := s.cache.Get(ctx, s.genKey(), &gen); err != nil {
		s.log.Warn("Failed to read cache generation", "error", err)
	}
	return gen
}

func (s *Service) key(ctx context.Context, kind string, parts ...string) string {
	k := fmt.Sprintf("%s:%d:%s", s.profile, s.generation(ctx), kind)
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

func (s *Service) lookup(ctx context.Context, kind, key string, dst any) bool {
	hit, err := s.cache.Get(ctx, key, dst)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues(kind, metrics.Error).Inc()
		s.log.Warn("Cache read failed", "key", key, "error", err)
		return false
	case hit:
		metrics.CacheLookups.WithLabelValues(kind, metrics.Hit).Inc()
		return true
	default:
		metrics.CacheLookups.WithLabelValues(kind, metrics.Miss).Inc()
		return false
	}
}

func (s *Service) save(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value, s.ttl()); err != nil {
		s.log.Warn("Cache write failed", "key", key, "error", err)
	}
}

// Entries lists entries matching filter, newest first.
func (s *Service) Entries(ctx context.Context, filter models.EntryFilter) ([]models.Entry, error) {
	entries, err := s.store.ListEntries(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}
