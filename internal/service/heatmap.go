package service

import (
	"fmt"
	"sort"

	"github.com/fabzclean/backend/internal/models"
)

// DefaultPeakHour is reported when the window holds no orders at all.
const DefaultPeakHour = 10

// BuildDemandHeatmap buckets orders by hour of day and normalizes each
// bucket against the busiest one. Day-of-week is part of the bucket shape
// but is not populated by live computation; it stays 0. Returns at most the
// top 10 buckets by count and the peak hour.
func BuildDemandHeatmap(orders []models.OrderRecord) ([]models.DemandBucket, int) {
	counts := map[int]int{}
	for _, o := range orders {
		counts[o.CreatedAt.Hour()]++
	}
	if len(counts) == 0 {
		return []models.DemandBucket{}, DefaultPeakHour
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	buckets := make([]models.DemandBucket, 0, len(counts))
	for hour, c := range counts {
		buckets = append(buckets, models.DemandBucket{
			HourOfDay:   hour,
			OrderCount:  c,
			DemandScore: float64(c) / float64(maxCount),
			Label:       fmt.Sprintf("%d:00", hour),
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].OrderCount == buckets[j].OrderCount {
			return buckets[i].HourOfDay < buckets[j].HourOfDay
		}
		return buckets[i].OrderCount > buckets[j].OrderCount
	})

	if len(buckets) > 10 {
		buckets = buckets[:10]
	}
	return buckets, buckets[0].HourOfDay
}
