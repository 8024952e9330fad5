package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"debatematch/services"

	"github.com/go-co-op/gocron/v2"
)

// VoteSweeper periodically closes debates whose voting window has lapsed.
// Closing is idempotent, so overlapping or repeated sweeps are safe; the
// sweeper only provides the liveness the core does not.
type VoteSweeper struct {
	debates   *services.DebateService
	interval  time.Duration
	scheduler gocron.Scheduler
}

func NewVoteSweeper(debates *services.DebateService, interval time.Duration) *VoteSweeper {
	return &VoteSweeper{
		debates:  debates,
		interval: interval,
	}
}

// Start schedules the recurring sweep. Call Stop to shut it down.
func (w *VoteSweeper) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			w.sweep(ctx)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule vote sweep: %w", err)
	}

	w.scheduler = scheduler
	scheduler.Start()
	log.Printf("Vote sweeper started (interval %s)", w.interval)
	return nil
}

// Stop shuts the scheduler down, waiting for a running sweep to finish.
func (w *VoteSweeper) Stop() {
	if w.scheduler != nil {
		if err := w.scheduler.Shutdown(); err != nil {
			log.Printf("Failed to shut down vote sweeper: %v", err)
		}
	}
}

func (w *VoteSweeper) sweep(ctx context.Context) {
	closed, err := w.debates.CloseExpiredWindows(ctx)
	if err != nil {
		log.Printf("Vote sweep failed: %v", err)
		return
	}
	if closed > 0 {
		log.Printf("Vote sweep resolved %d debate(s)", closed)
	}
}
