package models

import "time"

type CoreStatistics struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
	P95      float64 `json:"p95"`
}

type ServiceMixEntry struct {
	ServiceID           string  `json:"service_id"`
	ServiceName         string  `json:"service_name"`
	OrderCount          int     `json:"order_count"`
	Revenue             float64 `json:"revenue"`
	RevenueSharePercent float64 `json:"revenue_share_percent"`
	Category            string  `json:"category"`
}

type StaffPerformanceEntry struct {
	StaffID       string  `json:"staff_id"`
	OrderCount    int     `json:"order_count"`
	Revenue       float64 `json:"revenue"`
	ZScore        float64 `json:"z_score"`
	Percentile    int     `json:"percentile"`
	WeightedScore float64 `json:"weighted_score"`
	RatingTier    string  `json:"rating_tier"`
}

type AnomalyEntry struct {
	OrderID     string  `json:"order_id"`
	OrderNumber string  `json:"order_number"`
	Amount      float64 `json:"amount"`
	ZScore      float64 `json:"z_score"`
	Reason      string  `json:"reason"`
}

type DemandBucket struct {
	HourOfDay   int     `json:"hour_of_day"`
	DayOfWeek   int     `json:"day_of_week"`
	OrderCount  int     `json:"order_count"`
	DemandScore float64 `json:"demand_score"`
	Label       string  `json:"label"`
}

type TaxBreakdown struct {
	TotalTaxCollected float64 `json:"total_tax_collected"`
	CGST              float64 `json:"cgst"`
	SGST              float64 `json:"sgst"`
	IGST              float64 `json:"igst"`
	TaxableAmount     float64 `json:"taxable_amount"`
}

type MovingAverages struct {
	SMA7  float64 `json:"sma_7"`
	SMA14 float64 `json:"sma_14"`
	SMA30 float64 `json:"sma_30"`
}

type ForecastDay struct {
	Date       string  `json:"date"`
	Predicted  float64 `json:"predicted"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

type TrendInfo struct {
	DailyAverage      float64       `json:"daily_average"`
	MonthToDate       float64       `json:"month_to_date"`
	ProjectedMonthEnd float64       `json:"projected_month_end"`
	RevenueVelocity   float64       `json:"revenue_velocity"`
	Trend             string        `json:"trend"`
	ForecastNext7Days []ForecastDay `json:"forecast_next_7_days"`
	// Populated only by the precomputation job; the live path leaves them nil.
	RegressionSlope *float64 `json:"regression_slope"`
	RSquared        *float64 `json:"r_squared"`
}

// BISummary is the single summary object served to callers. Snapshot and
// live computations share this field contract exactly; list fields are
// always non-nil so both paths marshal identically.
type BISummary struct {
	Scope            string                  `json:"scope"`
	WindowDays       int                     `json:"window_days"`
	TotalRevenue     float64                 `json:"total_revenue"`
	OrderCount       int                     `json:"order_count"`
	UniqueCustomers  int                     `json:"unique_customers"`
	AverageOrder     float64                 `json:"average_order"`
	Statistics       CoreStatistics          `json:"statistics"`
	ServiceMix       []ServiceMixEntry       `json:"service_mix"`
	StaffPerformance []StaffPerformanceEntry `json:"staff_performance"`
	TaxBreakdown     TaxBreakdown            `json:"tax_breakdown"`
	Anomalies        []AnomalyEntry          `json:"anomalies"`
	DemandHeatmap    []DemandBucket          `json:"demand_heatmap"`
	PeakHour         int                     `json:"peak_hour"`
	MovingAverages   MovingAverages          `json:"moving_averages"`
	Trend            TrendInfo               `json:"trend"`
	DataQualityScore float64                 `json:"data_quality_score"`
	ComputationMS    int64                   `json:"computation_ms"`
	ComputedAt       time.Time               `json:"computed_at"`
	Source           string                  `json:"source"`
}

type RecalcRun struct {
	ID         string     `json:"id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
	Status     string     `json:"status"`
	Detail     string     `json:"detail,omitempty"`
}
