package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/NateStaxx/FetchDeck/internal/panel"
)

// Prober runs every panel once and records the outcomes.
type Prober interface {
	Probe(ctx context.Context, store panel.StatusStore)
}

// Scheduler periodically probes the upstream APIs behind every panel.
type Scheduler struct {
	scheduler *gocron.Scheduler
	prober    Prober
	store     panel.StatusStore
	interval  time.Duration
	timeout   time.Duration
	log       *zap.Logger
}

// New creates a new Scheduler. An interval of zero disables probing.
func New(prober Prober, store panel.StatusStore, interval, timeout time.Duration, log *zap.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	// A slow probe must not overlap the next one.
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		prober:    prober,
		store:     store,
		interval:  interval,
		timeout:   timeout,
		log:       log,
	}
}

// Start schedules the periodic probe and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.log.Info("scheduler: status probe disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.log.Info("scheduler: status probe started", zap.Duration("interval", s.interval))
	return nil
}

func (s *Scheduler) run() {
	s.log.Debug("scheduler: running status probe")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.prober.Probe(ctx, s.store)
	s.log.Debug("scheduler: completed status probe")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
