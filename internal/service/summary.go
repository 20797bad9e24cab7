package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fabzclean/backend/internal/models"
	"github.com/fabzclean/backend/internal/utils"
)

const ScopeAll = "all"

// OrderSource is the read-only order collaborator. Implementations must
// tolerate partially malformed per-record fields without failing the fetch.
type OrderSource interface {
	ListOrders(ctx context.Context, scope string, since time.Time) ([]models.OrderRecord, error)
}

// SnapshotSource reads precomputed summaries. Snapshots are written only by
// the recalculation job; this service never writes them.
type SnapshotSource interface {
	GetLatestSnapshot(ctx context.Context, scope string, windowDays int, since time.Time) (*models.BISummary, error)
}

type SummaryService struct {
	Orders           OrderSource
	Snapshots        SnapshotSource
	Cache            *SummaryCache
	Logger           zerolog.Logger
	AnomalyThreshold float64
	Now              func() time.Time
	// ForecastSeed overrides the per-scope seed when non-nil; tests use it
	// to make jitter reproducible.
	ForecastSeed func(scope string) int64
}

// GetSummary serves one summary for (scope, windowDays): in-memory cache
// first, then the newest matching snapshot, then an equivalent live
// computation. All three produce the same field contract so callers cannot
// tell the paths apart structurally.
func (s *SummaryService) GetSummary(ctx context.Context, scope string, windowDays int) (models.BISummary, error) {
	scope, windowDays = normalizeScope(scope, windowDays)

	if cached, ok := s.Cache.Get(scope, windowDays); ok {
		return cached, nil
	}

	since := s.now().AddDate(0, 0, -windowDays)
	if s.Snapshots != nil {
		snapshot, err := s.Snapshots.GetLatestSnapshot(ctx, scope, windowDays, since)
		if err != nil {
			s.Logger.Warn().Err(err).Str("scope", scope).Msg("snapshot read failed, falling back to live computation")
		} else if snapshot != nil {
			s.Cache.Set(scope, windowDays, *snapshot)
			return *snapshot, nil
		}
	}

	summary, err := s.Assemble(ctx, scope, windowDays)
	if err != nil {
		return models.BISummary{}, err
	}
	s.Cache.Set(scope, windowDays, summary)
	return summary, nil
}

// Assemble runs every analyzer over the live record set. It is a pure
// function of the fetched snapshot of orders; a zero-order window still
// yields a complete summary with every aggregate at its zero/empty default.
// Store failures propagate with no partial summary.
func (s *SummaryService) Assemble(ctx context.Context, scope string, windowDays int) (models.BISummary, error) {
	scope, windowDays = normalizeScope(scope, windowDays)
	start := time.Now()
	since := s.now().AddDate(0, 0, -windowDays)

	orders, err := s.Orders.ListOrders(ctx, scope, since)
	if err != nil {
		return models.BISummary{}, err
	}

	summary := emptySummary(scope, windowDays)
	summary.ComputedAt = s.now()

	if len(orders) > 0 {
		totals := OrderTotals(orders)
		stats := Describe(totals)

		totalRevenue := 0.0
		customers := map[string]struct{}{}
		for _, o := range orders {
			totalRevenue += o.TotalAmount
			if o.CustomerID != "" {
				customers[o.CustomerID] = struct{}{}
			}
		}

		forecaster := s.forecasterFor(scope)
		trend, averages := forecaster.Forecast(orders, totalRevenue, windowDays)
		heatmap, peakHour := BuildDemandHeatmap(orders)

		summary.TotalRevenue = totalRevenue
		summary.OrderCount = len(orders)
		summary.UniqueCustomers = len(customers)
		summary.AverageOrder = stats.Mean
		summary.Statistics = stats
		summary.ServiceMix = AnalyzeServiceMix(orders, totalRevenue)
		summary.StaffPerformance = RankStaffPerformance(orders)
		summary.TaxBreakdown = CalculateTaxBreakdown(orders)
		summary.Anomalies = DetectAnomalies(orders, stats.Mean, stats.StdDev, s.AnomalyThreshold)
		summary.DemandHeatmap = heatmap
		summary.PeakHour = peakHour
		summary.MovingAverages = averages
		summary.Trend = trend
		summary.DataQualityScore = dataQuality(orders)
	}

	summary.ComputationMS = time.Since(start).Milliseconds()
	return summary, nil
}

func (s *SummaryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *SummaryService) forecasterFor(scope string) *Forecaster {
	var seed int64
	if s.ForecastSeed != nil {
		seed = s.ForecastSeed(scope)
	} else {
		seed = int64(utils.HashStringToUint64(scope)) ^ s.now().UnixNano()
	}
	f := NewForecaster(seed)
	f.Now = s.now
	return f
}

func normalizeScope(scope string, windowDays int) (string, int) {
	if scope == "" {
		scope = ScopeAll
	}
	if windowDays <= 0 {
		windowDays = 30
	}
	return scope, windowDays
}

// emptySummary carries the full field contract with zero/empty defaults so
// a summary for a windowless scope marshals with every key present and
// every list as [], never null.
func emptySummary(scope string, windowDays int) models.BISummary {
	return models.BISummary{
		Scope:            scope,
		WindowDays:       windowDays,
		ServiceMix:       []models.ServiceMixEntry{},
		StaffPerformance: []models.StaffPerformanceEntry{},
		Anomalies:        []models.AnomalyEntry{},
		DemandHeatmap:    []models.DemandBucket{},
		PeakHour:         DefaultPeakHour,
		Trend: models.TrendInfo{
			RevenueVelocity:   100,
			Trend:             TrendStable,
			ForecastNext7Days: []models.ForecastDay{},
		},
		Source: "live",
	}
}

// dataQuality scores the window as the fraction of records that parsed
// cleanly: a positive total and readable line items.
func dataQuality(orders []models.OrderRecord) float64 {
	if len(orders) == 0 {
		return 0
	}
	clean := 0
	for _, o := range orders {
		if o.TotalAmount > 0 && o.Items != nil {
			clean++
		}
	}
	return float64(clean) / float64(len(orders))
}
