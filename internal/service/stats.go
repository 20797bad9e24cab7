package service

import (
	"math"
	"sort"

	"github.com/fabzclean/backend/internal/models"
)

// Describe computes descriptive statistics over order totals. Variance is
// population variance (divide by n), the median uses the lower-middle index
// for even counts, and p95 is nearest-rank at floor(n*0.95) with no
// interpolation. Empty input yields all zeros.
func Describe(values []float64) models.CoreStatistics {
	n := len(values)
	if n == 0 {
		return models.CoreStatistics{}
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	sqSum := 0.0
	for _, v := range values {
		d := v - mean
		sqSum += d * d
	}
	variance := sqSum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p95Idx := int(math.Floor(float64(n) * 0.95))
	if p95Idx >= n {
		p95Idx = n - 1
	}

	return models.CoreStatistics{
		Count:    n,
		Mean:     mean,
		Median:   sorted[n/2],
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		P95:      sorted[p95Idx],
	}
}

// OrderTotals extracts the totals slice the statistics run over.
func OrderTotals(orders []models.OrderRecord) []float64 {
	totals := make([]float64, 0, len(orders))
	for _, o := range orders {
		totals = append(totals, o.TotalAmount)
	}
	return totals
}
