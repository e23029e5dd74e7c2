package workers

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

type TimelineEnsurer interface {
	EnsureHabitsForDate(ctx context.Context, date time.Time) error
}

// EnsureWorker periodically makes sure today's note carries a checkbox line
// for every known habit. Runs never overlap: a tick that fires while the
// previous run is still in flight is skipped.
type EnsureWorker struct {
	timeline TimelineEnsurer
	interval time.Duration
	trigger  chan struct{}
	inFlight atomic.Bool
}

func NewEnsureWorker(timeline TimelineEnsurer, interval time.Duration) *EnsureWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &EnsureWorker{
		timeline: timeline,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

func (w *EnsureWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Ensure Worker started in background...")
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		go w.run(ctx)

		for {
			select {
			case <-ticker.C:
				go w.run(ctx)
			case <-w.trigger:
				go w.run(ctx)
			case <-ctx.Done():
				log.Println("Ensure Worker shutting down...")
				return
			}
		}
	}()
}

// Trigger requests an immediate run, on top of the periodic ticks. A
// trigger arriving while one is already pending is dropped.
func (w *EnsureWorker) Trigger() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

func (w *EnsureWorker) run(ctx context.Context) {
	if !w.inFlight.CompareAndSwap(false, true) {
		log.Println("Ensure Worker: previous run still in flight, skipping")
		return
	}
	defer w.inFlight.Store(false)

	if err := w.timeline.EnsureHabitsForDate(ctx, time.Now()); err != nil {
		log.Printf("Ensure Worker error: %v", err)
	}
}
