package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	"github.com/omarshaarawi/livescore/internal/models"
)

type SnapshotStore interface {
	Snapshot() models.Snapshot
	MarkStale(stale bool)
}

// Watchdog flags the snapshot stale when no cycle has rendered for
// staleAfter. The refresh loop clears the flag on its next success.
type Watchdog struct {
	s          gocron.Scheduler
	store      SnapshotStore
	every      time.Duration
	staleAfter time.Duration
	clock      clockwork.Clock
	started    time.Time
	logger     *slog.Logger
}

func NewWatchdog(store SnapshotStore, interval time.Duration, cycles int, clock clockwork.Clock, logger *slog.Logger) (*Watchdog, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cycles < 1 {
		cycles = 1
	}

	s, err := gocron.NewScheduler(gocron.WithClock(clock))
	if err != nil {
		return nil, fmt.Errorf("failed to create watchdog scheduler: %w", err)
	}

	return &Watchdog{
		s:          s,
		store:      store,
		every:      interval,
		staleAfter: time.Duration(cycles) * interval,
		clock:      clock,
		logger:     logger,
	}, nil
}

func (w *Watchdog) Start() error {
	w.started = w.clock.Now()

	_, err := w.s.NewJob(
		gocron.DurationJob(w.every),
		gocron.NewTask(w.check),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create staleness job: %w", err)
	}

	w.s.Start()
	return nil
}

func (w *Watchdog) Stop() error {
	return w.s.Shutdown()
}

func (w *Watchdog) check() {
	snap := w.store.Snapshot()
	if snap.Stale {
		return
	}

	last := snap.LastSuccess
	if last.IsZero() {
		last = w.started
	}

	age := w.clock.Since(last)
	if age <= w.staleAfter {
		return
	}

	w.logger.Warn("Scoreboard is stale", "last_success", snap.LastSuccess, "age", age.Round(time.Second))
	w.store.MarkStale(true)
}
