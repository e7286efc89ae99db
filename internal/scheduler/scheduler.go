package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tagrec/internal/domain"
	"github.com/kailas-cloud/tagrec/internal/domain/model"
)

// DefaultTimeout bounds a single scheduled rebuild.
const DefaultTimeout = 30 * time.Minute

// Rebuilder performs a full model rebuild.
type Rebuilder interface {
	Rebuild(ctx context.Context) (model.Metadata, error)
}

// Scheduler runs full model rebuilds on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	mu        sync.Mutex
	entryID   cron.EntryID
	rebuilder Rebuilder
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a Scheduler. Overlapping runs are skipped.
func New(rebuilder Rebuilder, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	cl := cronLogger{l: logger.Sugar()}
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		)),
		rebuilder: rebuilder,
		timeout:   DefaultTimeout,
		logger:    logger,
	}
}

// WithTimeout configures the per-run timeout.
func (s *Scheduler) WithTimeout(d time.Duration) *Scheduler {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Schedule installs the rebuild job for a standard cron spec or descriptor
// such as "@every 1h". An empty spec removes the job. A previous job is replaced.
func (s *Scheduler) Schedule(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
		s.entryID = 0
	}
	if spec == "" {
		s.logger.Info("scheduled model rebuild disabled")
		return nil
	}

	id, err := s.cron.AddFunc(spec, s.run)
	if err != nil {
		return fmt.Errorf("invalid rebuild schedule %q: %w", spec, err)
	}
	s.entryID = id
	s.logger.Info("model rebuild scheduled", zap.String("cron", spec))
	return nil
}

// Enabled reports whether a job is installed.
func (s *Scheduler) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entryID != 0
}

// Next returns the next run time, or the zero time when disabled or not started.
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	id := s.entryID
	s.mu.Unlock()
	if id == 0 {
		return time.Time{}
	}
	return s.cron.Entry(id).Next
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running rebuild until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("scheduled rebuild still running at shutdown")
	}
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	meta, err := s.rebuilder.Rebuild(ctx)
	switch {
	case errors.Is(err, domain.ErrRebuildInProgress):
		s.logger.Info("scheduled rebuild skipped, another rebuild is running")
	case err != nil:
		s.logger.Error("scheduled rebuild failed", zap.Error(err))
	default:
		s.logger.Info("scheduled rebuild finished", zap.Int("version", meta.Version))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
