package jobs

import (
	"context"
	"log/slog"
	"time"

	"eventhorizon/internal/repository"
)

const sweepInterval = 10 * time.Minute

// NoShowSweepJob periodically moves registered and confirmed attendees of
// events that ended longer than the grace period ago into no_show.
type NoShowSweepJob struct {
	attendeeRepo *repository.AttendeeRepository
	grace        time.Duration
	ticker       *time.Ticker
	done         chan bool
}

func NewNoShowSweepJob(attendeeRepo *repository.AttendeeRepository, grace time.Duration) *NoShowSweepJob {
	return &NoShowSweepJob{
		attendeeRepo: attendeeRepo,
		grace:        grace,
		done:         make(chan bool),
	}
}

// Start begins the background sweep loop.
func (j *NoShowSweepJob) Start(ctx context.Context) {
	slog.Info("Starting no-show sweep job", "interval", sweepInterval.String(), "grace", j.grace.String())

	j.ticker = time.NewTicker(sweepInterval)

	// Run initial sweep immediately
	go j.sweep(ctx)

	go func() {
		for {
			select {
			case <-j.ticker.C:
				go j.sweep(ctx)
			case <-j.done:
				slog.Info("No-show sweep job stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the background job.
func (j *NoShowSweepJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}

func (j *NoShowSweepJob) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-j.grace)

	moved, err := j.attendeeRepo.MarkNoShows(ctx, cutoff)
	if err != nil {
		slog.Error("Failed to sweep no-shows", "error", err)
		return
	}

	if moved > 0 {
		slog.Info("Swept stale registrations to no_show", "count", moved, "cutoff", cutoff)
	} else {
		slog.Debug("No stale registrations found")
	}
}
