package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/omarshaarawi/livescore/internal/metrics"
	"github.com/omarshaarawi/livescore/internal/models"
)

// Source produces one scoreboard per call. *service.ScoreboardService
// implements it.
type Source interface {
	Scoreboard(ctx context.Context) (models.ViewModel, error)
}

// Presenter receives everything the refresh loop wants shown. Calls are made
// from the loop goroutine only.
type Presenter interface {
	SetStatus(status models.Status)
	Render(vm models.ViewModel)
	RenderError(err error)
	Countdown(remaining int)
}

type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseFetching
	PhaseRendered
	PhaseFailed
	PhaseCountingDown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFetching:
		return "fetching"
	case PhaseRendered:
		return "rendered"
	case PhaseFailed:
		return "failed"
	case PhaseCountingDown:
		return "counting_down"
	default:
		return "unknown"
	}
}

type cycleResult struct {
	generation uint64
	vm         models.ViewModel
	err        error
}

// Scheduler drives fetch → render → countdown → fetch until its context
// ends. Failed cycles are retried after one flat interval, forever.
type Scheduler struct {
	source    Source
	presenter Presenter
	interval  time.Duration
	clock     clockwork.Clock
	metrics   *metrics.Metrics
	logger    *slog.Logger

	refresh chan struct{}
	results chan cycleResult
	phase   atomic.Int32

	// Owned by the Run goroutine.
	generation  uint64
	cancelCycle context.CancelFunc
	ticker      clockwork.Ticker
	retry       clockwork.Timer
	remaining   int
}

type Option func(*Scheduler)

func WithClock(clock clockwork.Clock) Option {
	return func(s *Scheduler) { s.clock = clock }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = logger }
}

func NewScheduler(source Source, presenter Presenter, interval time.Duration, opts ...Option) *Scheduler {
	s := &Scheduler{
		source:    source,
		presenter: presenter,
		interval:  interval,
		clock:     clockwork.NewRealClock(),
		logger:    slog.Default(),
		refresh:   make(chan struct{}, 1),
		results:   make(chan cycleResult),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Phase() Phase {
	return Phase(s.phase.Load())
}

// Refresh asks for an immediate cycle. It supersedes whatever cycle or timer
// is live. Requests made while one is already pending are folded together.
func (s *Scheduler) Refresh() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	defer s.disarm()
	defer func() {
		if s.cancelCycle != nil {
			s.cancelCycle()
		}
	}()

	s.startCycle(ctx)

	for {
		var tick, retry <-chan time.Time
		if s.ticker != nil {
			tick = s.ticker.Chan()
		}
		if s.retry != nil {
			retry = s.retry.Chan()
		}

		select {
		case <-ctx.Done():
			s.setPhase(PhaseIdle)
			return ctx.Err()
		case <-s.refresh:
			s.logger.Debug("Manual refresh requested", "generation", s.generation)
			s.startCycle(ctx)
		case res := <-s.results:
			s.handleResult(res)
		case <-tick:
			s.remaining--
			if s.remaining <= 0 {
				s.startCycle(ctx)
				continue
			}
			s.presenter.Countdown(s.remaining)
		case <-retry:
			s.startCycle(ctx)
		}
	}
}

func (s *Scheduler) startCycle(ctx context.Context) {
	s.disarm()
	if s.cancelCycle != nil {
		s.cancelCycle()
	}

	s.generation++
	generation := s.generation
	cycleCtx, cancel := context.WithCancel(ctx)
	s.cancelCycle = cancel

	s.setPhase(PhaseFetching)
	s.presenter.SetStatus(models.StatusLive)

	go func() {
		vm, err := s.source.Scoreboard(cycleCtx)
		select {
		case s.results <- cycleResult{generation: generation, vm: vm, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (s *Scheduler) handleResult(res cycleResult) {
	if res.generation != s.generation {
		s.logger.Debug("Discarding result from superseded cycle", "generation", res.generation, "current", s.generation)
		s.metrics.StaleDiscarded()
		return
	}

	if s.cancelCycle != nil {
		s.cancelCycle()
		s.cancelCycle = nil
	}

	if res.err != nil {
		s.metrics.CycleDone(false)
		s.logger.Warn("Refresh cycle failed", "generation", res.generation, "retry_in", s.interval, "error", res.err)
		s.setPhase(PhaseFailed)
		s.armRetry()
		s.presenter.SetStatus(models.StatusWarning)
		s.presenter.RenderError(res.err)
		return
	}

	s.metrics.CycleDone(true)
	s.setPhase(PhaseRendered)
	s.presenter.SetStatus(models.StatusOK)
	s.presenter.Render(res.vm)

	s.armCountdown()
	s.setPhase(PhaseCountingDown)
	s.presenter.Countdown(s.remaining)
}

func (s *Scheduler) armCountdown() {
	s.disarm()
	s.remaining = int(s.interval / time.Second)
	if s.remaining < 1 {
		s.remaining = 1
	}
	s.ticker = s.clock.NewTicker(time.Second)
}

func (s *Scheduler) armRetry() {
	s.disarm()
	s.retry = s.clock.NewTimer(s.interval)
}

// disarm stops the live timer, if any. Only one of ticker and retry is ever
// set.
func (s *Scheduler) disarm() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	if s.retry != nil {
		s.retry.Stop()
		s.retry = nil
	}
}

func (s *Scheduler) setPhase(p Phase) {
	s.phase.Store(int32(p))
}
