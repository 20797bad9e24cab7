package service

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/fabzclean/backend/internal/models"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func seededForecaster(seed int64) *Forecaster {
	f := NewForecaster(seed)
	f.Now = fixedNow
	return f
}

func dayOrder(day time.Time, amount float64) models.OrderRecord {
	return models.OrderRecord{TotalAmount: amount, CreatedAt: day}
}

func TestMovingAveragePartialWindow(t *testing.T) {
	now := fixedNow()
	orders := []models.OrderRecord{
		dayOrder(now.AddDate(0, 0, -2), 100),
		dayOrder(now.AddDate(0, 0, -1), 200),
		dayOrder(now, 300),
	}
	_, averages := seededForecaster(1).Forecast(orders, 600, 30)
	// only 3 days exist, so every SMA averages over 3, not k
	if averages.SMA7 != 200 || averages.SMA14 != 200 || averages.SMA30 != 200 {
		t.Fatalf("expected partial-window averages of 200, got %+v", averages)
	}
}

func TestMovingAverageFullWindow(t *testing.T) {
	now := fixedNow()
	var orders []models.OrderRecord
	for i := 0; i < 10; i++ {
		orders = append(orders, dayOrder(now.AddDate(0, 0, -i), 100))
	}
	_, averages := seededForecaster(1).Forecast(orders, 1000, 30)
	if averages.SMA7 != 100 {
		t.Fatalf("expected SMA7 100, got %v", averages.SMA7)
	}
	// 10 days present: SMA14 still divides by 10
	if averages.SMA14 != 100 {
		t.Fatalf("expected SMA14 100, got %v", averages.SMA14)
	}
}

func TestForecastVelocityLabels(t *testing.T) {
	now := fixedNow()
	orders := []models.OrderRecord{
		dayOrder(now.AddDate(0, 0, -2), 100),
		dayOrder(now.AddDate(0, 0, -1), 100),
		dayOrder(now, 100),
	}

	// daily average 10 vs SMA7 100 -> velocity 10, decelerating
	trend, _ := seededForecaster(1).Forecast(orders, 300, 30)
	if trend.RevenueVelocity != 10 || trend.Trend != TrendDecelerating {
		t.Fatalf("expected decelerating at velocity 10, got %+v", trend)
	}

	// daily average 100 vs SMA7 100 -> velocity 100, stable
	trend, _ = seededForecaster(1).Forecast(orders, 300, 3)
	if trend.RevenueVelocity != 100 || trend.Trend != TrendStable {
		t.Fatalf("expected stable at velocity 100, got %+v", trend)
	}

	// daily average 150 vs SMA7 100 -> velocity 150, accelerating
	trend, _ = seededForecaster(1).Forecast(orders, 300, 2)
	if trend.RevenueVelocity != 150 || trend.Trend != TrendAccelerating {
		t.Fatalf("expected accelerating at velocity 150, got %+v", trend)
	}
}

func TestForecastEmptyWindowVelocityDefaults(t *testing.T) {
	trend, averages := seededForecaster(1).Forecast(nil, 0, 30)
	if averages.SMA7 != 0 {
		t.Fatalf("expected zero SMA7, got %v", averages.SMA7)
	}
	if trend.RevenueVelocity != 100 || trend.Trend != TrendStable {
		t.Fatalf("expected neutral velocity on empty window, got %+v", trend)
	}
}

func TestForecastWeekJitterBoundsAndReproducibility(t *testing.T) {
	now := fixedNow()
	orders := []models.OrderRecord{dayOrder(now, 3000)}

	first, _ := seededForecaster(7).Forecast(orders, 3000, 30)
	second, _ := seededForecaster(7).Forecast(orders, 3000, 30)
	if len(first.ForecastNext7Days) != 7 {
		t.Fatalf("expected 7 forecast days, got %d", len(first.ForecastNext7Days))
	}

	dailyAverage := 100.0
	for i, day := range first.ForecastNext7Days {
		if day.Predicted != second.ForecastNext7Days[i].Predicted {
			t.Fatalf("expected reproducible jitter from the same seed")
		}
		if day.Predicted < dailyAverage*0.9-1e-9 || day.Predicted > dailyAverage*1.1+1e-9 {
			t.Fatalf("predicted %v outside the ±10%% jitter range", day.Predicted)
		}
		if day.LowerBound != dailyAverage*0.7 || day.UpperBound != dailyAverage*1.3 {
			t.Fatalf("expected fixed confidence bounds, got %+v", day)
		}
		wantDate := now.AddDate(0, 0, i+1).Format(dayKeyFormat)
		if day.Date != wantDate {
			t.Fatalf("expected date %s, got %s", wantDate, day.Date)
		}
	}

	other, _ := seededForecaster(8).Forecast(orders, 3000, 30)
	same := true
	for i := range other.ForecastNext7Days {
		if other.ForecastNext7Days[i].Predicted != first.ForecastNext7Days[i].Predicted {
			same = false
		}
	}
	if same {
		t.Fatalf("expected different seeds to produce different jitter")
	}
}

func TestForecastMonthToDateProjection(t *testing.T) {
	orders := []models.OrderRecord{
		dayOrder(time.Date(2026, time.February, 27, 9, 0, 0, 0, time.UTC), 500),
		dayOrder(time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC), 300),
		dayOrder(time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC), 200),
	}
	trend, _ := seededForecaster(1).Forecast(orders, 1000, 20)
	if trend.MonthToDate != 500 {
		t.Fatalf("expected month-to-date 500, got %v", trend.MonthToDate)
	}
	// March has 31 days, 21 remain after the 10th; daily average 1000/20
	want := 500 + 50.0*21
	if math.Abs(trend.ProjectedMonthEnd-want) > 1e-9 {
		t.Fatalf("expected projection %v, got %v", want, trend.ProjectedMonthEnd)
	}
	if trend.RegressionSlope != nil || trend.RSquared != nil {
		t.Fatalf("expected regression fields nil on the live path")
	}
}

func TestForecasterUsesInjectedRand(t *testing.T) {
	f := &Forecaster{Rand: rand.New(rand.NewSource(99)), Now: fixedNow}
	trend, _ := f.Forecast([]models.OrderRecord{dayOrder(fixedNow(), 100)}, 100, 1)
	if len(trend.ForecastNext7Days) != 7 {
		t.Fatalf("expected forecast with injected source, got %+v", trend)
	}
}
