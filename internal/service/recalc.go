package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fabzclean/backend/internal/models"
	"github.com/fabzclean/backend/internal/notify"
)

const (
	RunStatusRunning = "RUNNING"
	RunStatusSuccess = "SUCCESS"
	RunStatusFailed  = "FAILED"
)

type SnapshotWriter interface {
	SaveSnapshot(ctx context.Context, summary models.BISummary) (string, error)
}

type RunRecorder interface {
	CreateRecalcRun(ctx context.Context, status string) (string, error)
	FinishRecalcRun(ctx context.Context, runID string, status string, detail string) error
}

// RecalcService is the per-scope computation the scheduled snapshot job
// calls. It recomputes a summary under a bounded timeout, persists it, and
// relays failure to the caller. There is no retry here; retry policy
// belongs to the caller.
type RecalcService struct {
	Summary   *SummaryService
	Snapshots SnapshotWriter
	Runs      RunRecorder
	Notifier  notify.Adapter
	Timeout   time.Duration
	Logger    zerolog.Logger
}

func (r *RecalcService) Run(ctx context.Context, scope string, windowDays int) (models.BISummary, error) {
	scope, windowDays = normalizeScope(scope, windowDays)

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	runID, err := r.Runs.CreateRecalcRun(ctx, RunStatusRunning)
	if err != nil {
		return models.BISummary{}, err
	}

	summary, err := r.Summary.Assemble(ctx, scope, windowDays)
	if err != nil {
		r.finish(runID, RunStatusFailed, err.Error())
		return models.BISummary{}, err
	}
	summary.Source = "snapshot"

	snapshotID, err := r.Snapshots.SaveSnapshot(ctx, summary)
	if err != nil {
		r.finish(runID, RunStatusFailed, err.Error())
		return models.BISummary{}, err
	}

	// The fresh snapshot supersedes whatever the in-memory tier holds.
	r.Summary.Cache.Invalidate(scope, windowDays)

	r.finish(runID, RunStatusSuccess, snapshotID)

	if r.Notifier != nil {
		msg := notify.Message{
			Channel: "ops",
			Text:    fmt.Sprintf("BI snapshot %s recomputed for scope %s (%d day window)", snapshotID, scope, windowDays),
		}
		if err := r.Notifier.Send(ctx, msg); err != nil {
			r.Logger.Warn().Err(err).Msg("recalc notification failed")
		}
	}
	return summary, nil
}

// finish records the run outcome on a fresh context so a timed-out
// computation still gets its FAILED row.
func (r *RecalcService) finish(runID, status, detail string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Runs.FinishRecalcRun(ctx, runID, status, detail); err != nil {
		r.Logger.Error().Err(err).Str("run_id", runID).Msg("failed to finish recalc run")
	}
}
