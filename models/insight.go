package models

// Affordability buckets the price-to-income ratio.
type Affordability string

const (
	AffordabilityGood     Affordability = "Good"
	AffordabilityModerate Affordability = "Moderate"
	AffordabilitySevere   Affordability = "Severe"
	AffordabilityCritical Affordability = "Critical"
)

// InsightReport holds the summary statistics computed over a generated series.
type InsightReport struct {
	Region    string
	StartYear int
	EndYear   int
	Years     int

	AverageHomePrice   float64
	AverageIncome      float64
	AverageRent        float64
	PriceToIncomeRatio float64

	HomePriceGrowthPct  float64
	PopulationGrowthPct float64
	RentGrowthPct       float64

	CurrentRatio   float64
	Affordability  Affordability
	CurrentVacancy float64

	Profile         RegionProfile
	KeyEvents       []string
	Recommendations []string
}

// Metric is one labelled, already formatted figure of a report.
type Metric struct {
	Label string
	Value string
}
