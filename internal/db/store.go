package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fabzclean/backend/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListOrders returns every order created at or after since, optionally
// filtered by franchise scope. Amounts and line items are stored as text
// and parsed defensively: a record with a bad total or unreadable items
// is still returned with defaulted fields.
func (s *Store) ListOrders(ctx context.Context, scope string, since time.Time) ([]models.OrderRecord, error) {
	query := `SELECT id, order_number, franchise_id, customer_id, created_by,
		total_amount, items, tax_enabled, tax_rate, created_at
		FROM orders WHERE created_at >= $1`
	args := []any{since}
	if scope != "" && !strings.EqualFold(scope, "all") {
		args = append(args, scope)
		query += fmt.Sprintf(" AND franchise_id = $%d", len(args))
	}

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.OrderRecord
	for rows.Next() {
		var (
			o           models.OrderRecord
			orderNumber *string
			franchiseID *string
			customerID  *string
			createdBy   *string
			rawTotal    *string
			rawItems    []byte
			taxEnabled  *bool
			rawRate     *string
		)
		if err := rows.Scan(&o.ID, &orderNumber, &franchiseID, &customerID, &createdBy,
			&rawTotal, &rawItems, &taxEnabled, &rawRate, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.OrderNumber = derefString(orderNumber)
		o.FranchiseID = derefString(franchiseID)
		o.CustomerID = derefString(customerID)
		o.CreatedBy = derefString(createdBy)
		if rawTotal != nil {
			o.TotalAmount = models.ParseAmount(*rawTotal)
		}
		o.Items = models.ParseItems(rawItems)
		if taxEnabled != nil {
			o.TaxEnabled = *taxEnabled
		}
		if rawRate != nil {
			o.TaxRate = models.ParseAmount(*rawRate)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// GetLatestSnapshot returns the newest precomputed summary for the scope
// computed at or after since, or nil when none exists. A missing snapshot
// is not an error; callers fall back to live computation.
func (s *Store) GetLatestSnapshot(ctx context.Context, scope string, windowDays int, since time.Time) (*models.BISummary, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT payload FROM bi_snapshots
		WHERE scope = $1 AND window_days = $2 AND computed_at >= $3
		ORDER BY computed_at DESC LIMIT 1
	`, scope, windowDays, since)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var summary models.BISummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// SaveSnapshot persists a computed summary and prunes superseded snapshots
// for the same key older than a week. Only the recalculation job writes
// snapshots; the live read path never does.
func (s *Store) SaveSnapshot(ctx context.Context, summary models.BISummary) (string, error) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	err = s.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO bi_snapshots (id, scope, window_days, computed_at, payload)
			VALUES ($1, $2, $3, $4, $5)
		`, id, summary.Scope, summary.WindowDays, summary.ComputedAt, payload); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			DELETE FROM bi_snapshots
			WHERE scope = $1 AND window_days = $2 AND computed_at < $3
		`, summary.Scope, summary.WindowDays, summary.ComputedAt.AddDate(0, 0, -7))
		return err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) CreateRecalcRun(ctx context.Context, status string) (string, error) {
	id := uuid.NewString()
	_, err := s.Pool.Exec(ctx, `INSERT INTO recalc_runs (id, status, started_at) VALUES ($1, $2, NOW())`, id, status)
	return id, err
}

func (s *Store) FinishRecalcRun(ctx context.Context, runID string, status string, detail string) error {
	_, err := s.Pool.Exec(ctx, `UPDATE recalc_runs SET status = $1, detail = $2, finished_at = NOW() WHERE id = $3`, status, detail, runID)
	return err
}

func (s *Store) GetLatestRecalcRun(ctx context.Context) (*models.RecalcRun, error) {
	row := s.Pool.QueryRow(ctx, `SELECT id, started_at, finished_at, status, detail FROM recalc_runs ORDER BY started_at DESC LIMIT 1`)
	var (
		run    models.RecalcRun
		detail *string
	)
	if err := row.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.Status, &detail); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if detail != nil {
		run.Detail = *detail
	}
	return &run, nil
}
