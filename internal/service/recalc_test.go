package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fabzclean/backend/internal/models"
	"github.com/fabzclean/backend/internal/notify"
)

type fakeSnapshotWriter struct {
	saved []models.BISummary
	err   error
}

func (f *fakeSnapshotWriter) SaveSnapshot(ctx context.Context, summary models.BISummary) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, summary)
	return "snap-1", nil
}

type fakeRunRecorder struct {
	created  int
	statuses []string
	details  []string
}

func (f *fakeRunRecorder) CreateRecalcRun(ctx context.Context, status string) (string, error) {
	f.created++
	return "run-1", nil
}

func (f *fakeRunRecorder) FinishRecalcRun(ctx context.Context, runID, status, detail string) error {
	f.statuses = append(f.statuses, status)
	f.details = append(f.details, detail)
	return nil
}

type fakeNotifier struct {
	messages []notify.Message
}

func (f *fakeNotifier) Send(ctx context.Context, msg notify.Message) error {
	f.messages = append(f.messages, msg)
	return nil
}

type blockingOrders struct{}

func (blockingOrders) ListOrders(ctx context.Context, scope string, since time.Time) ([]models.OrderRecord, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func newRecalcService(orders OrderSource) (*RecalcService, *fakeSnapshotWriter, *fakeRunRecorder, *fakeNotifier) {
	summary := &SummaryService{
		Orders:           orders,
		Cache:            NewSummaryCache(5*time.Minute, fixedNow),
		Logger:           zerolog.Nop(),
		AnomalyThreshold: 3,
		Now:              fixedNow,
		ForecastSeed:     func(string) int64 { return 1 },
	}
	writer := &fakeSnapshotWriter{}
	runs := &fakeRunRecorder{}
	notifier := &fakeNotifier{}
	return &RecalcService{
		Summary:   summary,
		Snapshots: writer,
		Runs:      runs,
		Notifier:  notifier,
		Timeout:   time.Minute,
		Logger:    zerolog.Nop(),
	}, writer, runs, notifier
}

func TestRecalcRunSuccess(t *testing.T) {
	orders := &fakeOrders{orders: []models.OrderRecord{{TotalAmount: 100, CreatedAt: fixedNow()}}}
	recalc, writer, runs, notifier := newRecalcService(orders)

	// a stale cached entry must not survive a fresh snapshot
	recalc.Summary.Cache.Set("all", 30, models.BISummary{TotalRevenue: -1})

	summary, err := recalc.Run(context.Background(), "all", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Source != "snapshot" {
		t.Fatalf("expected snapshot source, got %q", summary.Source)
	}
	if len(writer.saved) != 1 || writer.saved[0].TotalRevenue != 100 {
		t.Fatalf("expected summary persisted, got %+v", writer.saved)
	}
	if runs.created != 1 || len(runs.statuses) != 1 || runs.statuses[0] != RunStatusSuccess {
		t.Fatalf("expected one SUCCESS run, got %+v", runs)
	}
	if _, ok := recalc.Summary.Cache.Get("all", 30); ok {
		t.Fatalf("expected cache invalidated after recalculation")
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("expected completion notification, got %d", len(notifier.messages))
	}
}

func TestRecalcRunRelaysFailure(t *testing.T) {
	orders := &fakeOrders{err: errors.New("store unreachable")}
	recalc, writer, runs, notifier := newRecalcService(orders)

	_, err := recalc.Run(context.Background(), "all", 30)
	if err == nil {
		t.Fatalf("expected failure relayed to the caller")
	}
	if len(writer.saved) != 0 {
		t.Fatalf("expected no snapshot persisted on failure")
	}
	if len(runs.statuses) != 1 || runs.statuses[0] != RunStatusFailed {
		t.Fatalf("expected FAILED run, got %+v", runs.statuses)
	}
	if runs.details[0] != "store unreachable" {
		t.Fatalf("expected the underlying error surfaced, got %q", runs.details[0])
	}
	if len(notifier.messages) != 0 {
		t.Fatalf("expected no notification on failure")
	}
}

func TestRecalcRunTimesOutAsFailed(t *testing.T) {
	recalc, _, runs, _ := newRecalcService(blockingOrders{})
	recalc.Timeout = 20 * time.Millisecond

	_, err := recalc.Run(context.Background(), "all", 30)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if len(runs.statuses) != 1 || runs.statuses[0] != RunStatusFailed {
		t.Fatalf("expected timeout reported as FAILED, got %+v", runs.statuses)
	}
}
