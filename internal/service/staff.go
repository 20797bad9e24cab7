package service

import (
	"math"
	"sort"

	"github.com/fabzclean/backend/internal/models"
)

const (
	TierExceptional      = "Exceptional"
	TierAboveAverage     = "AboveAverage"
	TierAverage          = "Average"
	TierBelowAverage     = "BelowAverage"
	TierNeedsImprovement = "NeedsImprovement"
)

// RankStaffPerformance aggregates orders per creator, z-scores each staff
// member's order count against the population mean/stddev of counts, and
// assigns a rating tier. The percentile is the normal approximation
// round(50 + z*34), deliberately not clamped to [0,100]. The weighted score
// carries the raw order count; renaming it is a stakeholder decision, not
// ours. Entries come back sorted descending by z-score.
func RankStaffPerformance(orders []models.OrderRecord) []models.StaffPerformanceEntry {
	type agg struct {
		count   int
		revenue float64
	}
	byStaff := map[string]*agg{}
	var keys []string

	for _, o := range orders {
		key := o.CreatedBy
		if key == "" {
			key = "Unknown"
		}
		a, ok := byStaff[key]
		if !ok {
			a = &agg{}
			byStaff[key] = a
			keys = append(keys, key)
		}
		a.count++
		a.revenue += o.TotalAmount
	}

	counts := make([]float64, 0, len(keys))
	for _, key := range keys {
		counts = append(counts, float64(byStaff[key].count))
	}
	stats := Describe(counts)

	entries := []models.StaffPerformanceEntry{}
	for _, key := range keys {
		a := byStaff[key]
		z := 0.0
		if stats.StdDev > 0 {
			z = (float64(a.count) - stats.Mean) / stats.StdDev
		}
		entries = append(entries, models.StaffPerformanceEntry{
			StaffID:       key,
			OrderCount:    a.count,
			Revenue:       a.revenue,
			ZScore:        z,
			Percentile:    int(math.Round(50 + z*34)),
			WeightedScore: float64(a.count),
			RatingTier:    ratingTier(z),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ZScore == entries[j].ZScore {
			return entries[i].StaffID < entries[j].StaffID
		}
		return entries[i].ZScore > entries[j].ZScore
	})
	return entries
}

func ratingTier(z float64) string {
	switch {
	case z >= 1.5:
		return TierExceptional
	case z >= 0.5:
		return TierAboveAverage
	case z >= -0.5:
		return TierAverage
	case z >= -1.5:
		return TierBelowAverage
	default:
		return TierNeedsImprovement
	}
}
