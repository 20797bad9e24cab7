package service

import (
	"fmt"
	"math"

	"github.com/fabzclean/backend/internal/models"
)

const DefaultAnomalyThreshold = 3.0

// DetectAnomalies flags orders whose totals lie more than threshold standard
// deviations from the mean. When stdDev is zero every z-score is zero, so
// nothing is ever flagged regardless of magnitude. Output keeps the ingestion
// order of the input.
func DetectAnomalies(orders []models.OrderRecord, mean, stdDev, threshold float64) []models.AnomalyEntry {
	if threshold <= 0 {
		threshold = DefaultAnomalyThreshold
	}

	anomalies := []models.AnomalyEntry{}
	for _, o := range orders {
		z := 0.0
		if stdDev > 0 {
			z = (o.TotalAmount - mean) / stdDev
		}
		if math.Abs(z) <= threshold {
			continue
		}
		direction := "above"
		if z < 0 {
			direction = "below"
		}
		anomalies = append(anomalies, models.AnomalyEntry{
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			Amount:      o.TotalAmount,
			ZScore:      z,
			Reason:      fmt.Sprintf("Order total %.2f is %.1f standard deviations %s the average of %.2f", o.TotalAmount, math.Abs(z), direction, mean),
		})
	}
	return anomalies
}
