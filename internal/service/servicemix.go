package service

import (
	"sort"

	"github.com/fabzclean/backend/internal/models"
)

const (
	CategoryHero       = "Hero"
	CategoryPerformer  = "Performer"
	CategoryStandard   = "Standard"
	CategoryLossLeader = "LossLeader"
)

// AnalyzeServiceMix aggregates line-item revenue per service and tiers each
// service by its share of total revenue. Orders whose items failed to parse
// contribute nothing; they are skipped, not an error. Entries come back
// sorted descending by revenue.
func AnalyzeServiceMix(orders []models.OrderRecord, totalRevenue float64) []models.ServiceMixEntry {
	type group struct {
		name    string
		revenue float64
		count   int
	}
	groups := map[string]*group{}
	var keys []string

	for _, o := range orders {
		for _, item := range o.Items {
			key := item.ServiceID
			if key == "" {
				key = item.ServiceName
			}
			if key == "" {
				key = "Unknown"
			}
			g, ok := groups[key]
			if !ok {
				g = &group{name: item.ServiceName}
				if g.name == "" {
					g.name = key
				}
				groups[key] = g
				keys = append(keys, key)
			}
			revenue := item.Subtotal
			if revenue == 0 {
				revenue = item.Price
			}
			g.revenue += revenue
			g.count++
		}
	}

	entries := []models.ServiceMixEntry{}
	for _, key := range keys {
		g := groups[key]
		share := 0.0
		if totalRevenue > 0 {
			share = g.revenue / totalRevenue * 100
		}
		entries = append(entries, models.ServiceMixEntry{
			ServiceID:           key,
			ServiceName:         g.name,
			OrderCount:          g.count,
			Revenue:             g.revenue,
			RevenueSharePercent: share,
			Category:            mixCategory(share),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Revenue == entries[j].Revenue {
			return entries[i].ServiceID < entries[j].ServiceID
		}
		return entries[i].Revenue > entries[j].Revenue
	})
	return entries
}

func mixCategory(sharePercent float64) string {
	switch {
	case sharePercent > 15:
		return CategoryHero
	case sharePercent > 8:
		return CategoryPerformer
	case sharePercent > 3:
		return CategoryStandard
	default:
		return CategoryLossLeader
	}
}
