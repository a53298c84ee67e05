// Package jobs runs the planner's periodic maintenance on cron schedules.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

// WarmIndustries are refreshed by the news job.
var WarmIndustries = []domain.Industry{
	domain.IndustryFitness,
	domain.IndustryBeauty,
	domain.IndustryFood,
	domain.IndustryGeneral,
}

const jobTimeout = 5 * time.Minute

// ErrAlreadyStarted is returned by a second Start.
var ErrAlreadyStarted = errors.New("scheduler already started")

// Cleaner removes data older than the retention window.
type Cleaner interface {
	Cleanup(ctx context.Context, days int) (*domain.CleanupResult, error)
}

// NewsWarmer refreshes cached news.
type NewsWarmer interface {
	Warm(ctx context.Context, industries []domain.Industry) error
}

// Config holds the job schedules in cron syntax; descriptors such as
// "@daily" and "@every 6h" are accepted. An empty schedule disables its job.
type Config struct {
	CleanupSchedule string
	RetentionDays   int
	NewsSchedule    string
}

// Scheduler owns the cron runner. Overlapping runs of one job are skipped.
type Scheduler struct {
	cfg     Config
	cleaner Cleaner
	warmer  NewsWarmer
	log     logger.Logger
	parser  cron.Parser

	mu      sync.Mutex
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	entries map[string]cron.EntryID
}

// New creates a Scheduler. cleaner or warmer may be nil to skip that job.
func New(cfg Config, cleaner Cleaner, warmer NewsWarmer, log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Scheduler{
		cfg:     cfg,
		cleaner: cleaner,
		warmer:  warmer,
		log:     log,
		parser:  cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		entries: make(map[string]cron.EntryID),
	}
}

// Start registers the jobs and starts the runner. Jobs run with a context
// derived from ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return ErrAlreadyStarted
	}

	adapter := cronLogger{log: s.log}
	c := cron.New(
		cron.WithParser(s.parser),
		cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
		cron.WithLogger(adapter),
	)
	s.ctx, s.cancel = context.WithCancel(ctx)

	if s.cleaner != nil && s.cfg.CleanupSchedule != "" {
		if err := s.add(c, "cleanup", s.cfg.CleanupSchedule, s.RunCleanup); err != nil {
			s.cancel()
			return err
		}
	}
	if s.warmer != nil && s.cfg.NewsSchedule != "" {
		if err := s.add(c, "news_warmup", s.cfg.NewsSchedule, s.RunNewsWarmup); err != nil {
			s.cancel()
			return err
		}
	}

	s.cron = c
	c.Start()
	s.log.Info("Job scheduler started", logger.Int("jobs", len(s.entries)))
	return nil
}

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	cancel := s.cancel
	s.mu.Unlock()

	if c == nil {
		return nil
	}

	done := c.Stop()
	select {
	case <-done.Done():
		cancel()
		s.log.Info("Job scheduler stopped")
		return nil
	case <-ctx.Done():
		cancel()
		return fmt.Errorf("stop scheduler: %w", ctx.Err())
	}
}

// NextRun reports when the named job runs next.
func (s *Scheduler) NextRun(name string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.entries[name]
	if !ok || s.cron == nil {
		return time.Time{}, false
	}
	return s.cron.Entry(id).Next, true
}

// RunCleanup deletes stale drafts and schedules once.
func (s *Scheduler) RunCleanup(ctx context.Context) error {
	start := time.Now()
	res, err := s.cleaner.Cleanup(ctx, s.cfg.RetentionDays)
	if err != nil {
		s.log.Error("Retention cleanup failed", logger.Error(err))
		return err
	}
	s.log.Info("Retention cleanup finished",
		logger.Int64("deleted_posts", res.DeletedPosts),
		logger.Int64("deleted_schedules", res.DeletedSchedules),
		logger.Duration("duration", time.Since(start)),
	)
	return nil
}

// RunNewsWarmup refreshes the news cache for WarmIndustries once.
func (s *Scheduler) RunNewsWarmup(ctx context.Context) error {
	if err := s.warmer.Warm(ctx, WarmIndustries); err != nil {
		s.log.Warn("News warm-up failed", logger.Error(err))
		return err
	}
	s.log.Debug("News cache warmed", logger.Int("industries", len(WarmIndustries)))
	return nil
}

// add must be called with s.mu held.
func (s *Scheduler) add(c *cron.Cron, name, spec string, run func(context.Context) error) error {
	if _, err := s.parser.Parse(spec); err != nil {
		return fmt.Errorf("job %s: parse schedule %q: %w", name, spec, err)
	}
	id, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
		defer cancel()
		_ = run(ctx)
	})
	if err != nil {
		return fmt.Errorf("job %s: %w", name, err)
	}
	s.entries[name] = id
	s.log.Info("Job scheduled", logger.String("job", name), logger.String("schedule", spec))
	return nil
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, fields(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(fields(keysAndValues), logger.Error(err))...)
}

func fields(kv []any) []logger.Field {
	out := make([]logger.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		out = append(out, logger.Any(key, kv[i+1]))
	}
	return out
}
