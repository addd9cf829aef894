package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/partnerhub/backend/internal/config"
	"github.com/partnerhub/backend/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Settler runs settlement for the week that has just started.
type Settler interface {
	SettleCurrentWeek(ctx context.Context) (*models.SettlementRun, error)
}

// SettlementScheduler triggers weekly settlement at Monday 00:00 in the
// auction timezone. Overlapping triggers are skipped.
type SettlementScheduler struct {
	settler    Settler
	spec       string
	loc        *time.Location
	enabled    bool
	runOnStart bool
	timeout    time.Duration

	cron *cron.Cron
	mu   sync.Mutex
	log  *logrus.Entry
}

func NewSettlementScheduler(settler Settler, cfg config.SchedulerConfig, loc *time.Location) *SettlementScheduler {
	if loc == nil {
		loc = time.UTC
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &SettlementScheduler{
		settler:    settler,
		spec:       cfg.Spec,
		loc:        loc,
		enabled:    cfg.Enabled,
		runOnStart: cfg.RunOnStart,
		timeout:    timeout,
		log:        logrus.WithField("component", "scheduler"),
	}
}

// Start registers the weekly job. With runOnStart the current week is settled
// immediately, which catches up after downtime over a Monday midnight.
func (s *SettlementScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		s.log.Info("scheduler disabled, not starting")
		return nil
	}
	if s.cron != nil {
		return nil
	}

	logger := cron.PrintfLogger(s.log)
	c := cron.New(
		cron.WithLocation(s.loc),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(s.spec, s.trigger); err != nil {
		return fmt.Errorf("invalid scheduler spec %q: %w", s.spec, err)
	}

	c.Start()
	s.cron = c
	s.log.WithFields(logrus.Fields{"spec": s.spec, "timezone": s.loc.String(), "next": s.nextLocked()}).
		Info("settlement scheduler started")

	if s.runOnStart {
		go s.trigger()
	}
	return nil
}

// Stop waits for a running settlement to finish.
func (s *SettlementScheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	s.log.Info("settlement scheduler stopped")
}

// Next reports when the weekly job fires next; zero when not running.
func (s *SettlementScheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextLocked()
}

func (s *SettlementScheduler) nextLocked() time.Time {
	if s.cron == nil {
		return time.Time{}
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// RunNow settles the current week synchronously.
func (s *SettlementScheduler) RunNow(ctx context.Context) (*models.SettlementRun, error) {
	start := time.Now()
	run, err := s.settler.SettleCurrentWeek(ctx)
	if err != nil {
		s.log.WithError(err).Error("scheduled settlement failed")
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"week_key": run.WeekKey,
		"status":   run.Status,
		"won":      run.WonCount,
		"lost":     run.LostCount,
		"late":     run.LateCount,
		"took":     time.Since(start).String(),
	}).Info("scheduled settlement finished")
	return run, nil
}

func (s *SettlementScheduler) trigger() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.RunNow(ctx)
}
