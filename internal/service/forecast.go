package service

import (
	"math/rand"
	"sort"
	"time"

	"github.com/fabzclean/backend/internal/models"
)

const (
	TrendAccelerating = "accelerating"
	TrendStable       = "stable"
	TrendDecelerating = "decelerating"
)

const dayKeyFormat = "2006-01-02"

// Forecaster derives the daily revenue series, moving averages, velocity and
// the short heuristic forecast. The jitter source is injected so forecasts
// are reproducible under test; the projection is an estimate, not a fitted
// model, and the regression fields stay nil on this path.
type Forecaster struct {
	Rand *rand.Rand
	Now  func() time.Time
}

func NewForecaster(seed int64) *Forecaster {
	return &Forecaster{
		Rand: rand.New(rand.NewSource(seed)),
		Now:  time.Now,
	}
}

// Forecast computes the trend block and moving averages for the window.
func (f *Forecaster) Forecast(orders []models.OrderRecord, totalRevenue float64, windowDays int) (models.TrendInfo, models.MovingAverages) {
	daily := dailyRevenue(orders)

	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)

	averages := models.MovingAverages{
		SMA7:  movingAverage(daily, days, 7),
		SMA14: movingAverage(daily, days, 14),
		SMA30: movingAverage(daily, days, 30),
	}

	if windowDays <= 0 {
		windowDays = 1
	}
	dailyAverage := totalRevenue / float64(windowDays)

	now := f.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthToDate := 0.0
	for day, revenue := range daily {
		t, err := time.Parse(dayKeyFormat, day)
		if err != nil {
			continue
		}
		if !t.Before(monthStart) && !t.After(now) {
			monthToDate += revenue
		}
	}
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	daysRemaining := daysInMonth - now.Day()

	velocity := 100.0
	if averages.SMA7 > 0 {
		velocity = dailyAverage / averages.SMA7 * 100
	}

	trend := models.TrendInfo{
		DailyAverage:      dailyAverage,
		MonthToDate:       monthToDate,
		ProjectedMonthEnd: monthToDate + dailyAverage*float64(daysRemaining),
		RevenueVelocity:   velocity,
		Trend:             trendLabel(velocity),
		ForecastNext7Days: f.forecastWeek(dailyAverage, now),
	}
	return trend, averages
}

// forecastWeek predicts each of the next 7 calendar days as the daily
// average with up to ±10% jitter, bounded by a fixed [0.7, 1.3] interval.
func (f *Forecaster) forecastWeek(dailyAverage float64, now time.Time) []models.ForecastDay {
	forecast := make([]models.ForecastDay, 0, 7)
	for i := 1; i <= 7; i++ {
		jitter := (f.Rand.Float64()*2 - 1) * 0.1
		forecast = append(forecast, models.ForecastDay{
			Date:       now.AddDate(0, 0, i).Format(dayKeyFormat),
			Predicted:  dailyAverage * (1 + jitter),
			LowerBound: dailyAverage * 0.7,
			UpperBound: dailyAverage * 1.3,
		})
	}
	return forecast
}

// dailyRevenue buckets revenue by each order's own calendar day.
func dailyRevenue(orders []models.OrderRecord) map[string]float64 {
	daily := map[string]float64{}
	for _, o := range orders {
		daily[o.CreatedAt.Format(dayKeyFormat)] += o.TotalAmount
	}
	return daily
}

// movingAverage averages the most recent k day totals, dividing by the
// number of days actually present when the window is only partially filled.
func movingAverage(daily map[string]float64, sortedDays []string, k int) float64 {
	if len(sortedDays) == 0 {
		return 0
	}
	start := len(sortedDays) - k
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for _, day := range sortedDays[start:] {
		sum += daily[day]
	}
	denom := k
	if len(sortedDays) < denom {
		denom = len(sortedDays)
	}
	return sum / float64(denom)
}

func trendLabel(velocity float64) string {
	switch {
	case velocity > 110:
		return TrendAccelerating
	case velocity < 90:
		return TrendDecelerating
	default:
		return TrendStable
	}
}
