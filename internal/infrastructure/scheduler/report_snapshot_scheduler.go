// Package scheduler runs the periodic report snapshot job.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/propmanager/backend/internal/domain/report"
	"github.com/propmanager/backend/internal/infrastructure/config"
	"github.com/propmanager/backend/internal/infrastructure/telemetry"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SnapshotRunner archives the given reports
type SnapshotRunner interface {
	Snapshot(ctx context.Context, kinds []report.Kind) error
}

// ReportSnapshotConfig holds configuration for the snapshot scheduler
type ReportSnapshotConfig struct {
	// Schedule is a standard five-field cron expression
	Schedule      string
	JobTimeout    time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	Kinds         []report.Kind
	Location      *time.Location
}

// DefaultReportSnapshotConfig runs occupancy and revenue snapshots at 2:00 AM daily
func DefaultReportSnapshotConfig() ReportSnapshotConfig {
	return ReportSnapshotConfig{
		Schedule:      "0 2 * * *",
		JobTimeout:    5 * time.Minute,
		RetryAttempts: 3,
		RetryDelay:    time.Minute,
		Kinds:         []report.Kind{report.KindOccupancy, report.KindRevenue},
		Location:      time.Local,
	}
}

// ConfigFromSettings converts loaded settings, rejecting unknown report kinds
func ConfigFromSettings(cfg config.SchedulerConfig) (ReportSnapshotConfig, error) {
	out := DefaultReportSnapshotConfig()
	if cfg.SnapshotCron != "" {
		out.Schedule = cfg.SnapshotCron
	}
	if cfg.JobTimeout > 0 {
		out.JobTimeout = cfg.JobTimeout
	}
	if cfg.RetryAttempts > 0 {
		out.RetryAttempts = cfg.RetryAttempts
	}
	if cfg.RetryDelay > 0 {
		out.RetryDelay = cfg.RetryDelay
	}
	if len(cfg.SnapshotKinds) > 0 {
		out.Kinds = make([]report.Kind, 0, len(cfg.SnapshotKinds))
		for _, k := range cfg.SnapshotKinds {
			kind := report.Kind(k)
			if !kind.IsValid() {
				return out, fmt.Errorf("%w: unknown report kind %q", ErrInvalidConfig, k)
			}
			out.Kinds = append(out.Kinds, kind)
		}
	}
	return out, nil
}

// SnapshotStatus describes the scheduler state
type SnapshotStatus struct {
	Running   bool       `json:"running"`
	Schedule  string     `json:"schedule"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	LastError string     `json:"last_error,omitempty"`
	NextRunAt *time.Time `json:"next_run_at,omitempty"`
}

// ResultHook observes every finished snapshot run
type ResultHook func(err error, duration time.Duration)

// ReportSnapshotScheduler archives reports on a cron schedule with
// per-attempt timeouts and retries.
type ReportSnapshotScheduler struct {
	config ReportSnapshotConfig
	runner SnapshotRunner
	logger *zap.Logger
	cron   *cron.Cron
	hook   ResultHook

	baseCtx context.Context
	cancel  context.CancelFunc

	mu        sync.Mutex
	running   bool
	inFlight  bool
	entryID   cron.EntryID
	lastRunAt *time.Time
	lastErr   error
}

// Option configures a ReportSnapshotScheduler
type Option func(*ReportSnapshotScheduler)

// WithResultHook registers a callback for finished runs
func WithResultHook(hook ResultHook) Option {
	return func(s *ReportSnapshotScheduler) { s.hook = hook }
}

// NewReportSnapshotScheduler validates the schedule and builds the scheduler
func NewReportSnapshotScheduler(cfg ReportSnapshotConfig, runner SnapshotRunner, logger *zap.Logger, opts ...Option) (*ReportSnapshotScheduler, error) {
	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 1
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	cronLog := &zapCronLogger{logger: logger}
	s := &ReportSnapshotScheduler{
		config: cfg,
		runner: runner,
		logger: logger,
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start registers the job and starts the cron loop
func (s *ReportSnapshotScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	s.baseCtx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	id, err := s.cron.AddFunc(s.config.Schedule, func() {
		if err := s.RunOnce(s.baseCtx); err != nil {
			s.logger.Error("Scheduled report snapshot failed", zap.Error(err))
		}
	})
	if err != nil {
		s.cancel()
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	s.entryID = id
	s.running = true
	s.cron.Start()

	s.logger.Info("Report snapshot scheduler started",
		zap.String("schedule", s.config.Schedule),
		zap.Time("next_run_at", s.cron.Entry(id).Next),
	)
	return nil
}

// Stop cancels in-flight work and waits for it until ctx is done
func (s *ReportSnapshotScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.cron.Remove(s.entryID)
	s.cancel()
	s.mu.Unlock()

	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Report snapshot scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Report snapshot scheduler stop timed out")
		return ctx.Err()
	}
}

// RunOnce archives the configured reports now, retrying failed attempts
func (s *ReportSnapshotScheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrSnapshotInProgress
	}
	s.inFlight = true
	s.mu.Unlock()

	start := time.Now()
	err := s.runWithRetry(ctx)

	s.mu.Lock()
	s.inFlight = false
	s.lastRunAt = &start
	s.lastErr = err
	s.mu.Unlock()

	if s.hook != nil {
		s.hook(err, time.Since(start))
	}
	if err == nil {
		s.logger.Info("Report snapshot completed", zap.Duration("duration", time.Since(start)))
	}
	return err
}

func (s *ReportSnapshotScheduler) runWithRetry(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= s.config.RetryAttempts; attempt++ {
		err = s.attempt(ctx)
		if err == nil {
			return nil
		}
		s.logger.Warn("Report snapshot attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.config.RetryAttempts),
			zap.Error(err),
		)
		if attempt == s.config.RetryAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.config.RetryDelay):
		}
	}
	return fmt.Errorf("report snapshot failed after %d attempts: %w", s.config.RetryAttempts, err)
}

func (s *ReportSnapshotScheduler) attempt(ctx context.Context) error {
	if s.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.JobTimeout)
		defer cancel()
	}
	var err error
	telemetry.WithProfilingLabels(ctx, map[string]string{
		telemetry.ProfilingLabelOperation: "report_snapshot",
	}, func(ctx context.Context) {
		err = s.runner.Snapshot(ctx, s.config.Kinds)
	})
	return err
}

// Status returns the current scheduler state
func (s *ReportSnapshotScheduler) Status() SnapshotStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := SnapshotStatus{
		Running:   s.running,
		Schedule:  s.config.Schedule,
		LastRunAt: s.lastRunAt,
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	if s.running {
		if next := s.cron.Entry(s.entryID).Next; !next.IsZero() {
			st.NextRunAt = &next
		}
	}
	return st
}

// zapCronLogger adapts zap to cron.Logger
type zapCronLogger struct {
	logger *zap.Logger
}

func (l *zapCronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, zap.Any("details", keysAndValues))
}

func (l *zapCronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, zap.Error(err), zap.Any("details", keysAndValues))
}
