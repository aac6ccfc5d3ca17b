package services

import (
	"math"
	"testing"

	"texas-market-sim/generator"
	"texas-market-sim/models"
	"texas-market-sim/regions"
	"texas-market-sim/utils"
)

func row(year int, price, income, rent, pop, vacancy float64) models.YearRow {
	r := models.NewYearRow(year)
	r.Set(models.MedianHomePrice, price)
	r.Set(models.MedianIncome, income)
	r.Set(models.AverageRent, rent)
	r.Set(models.Population, pop)
	r.Set(models.RentalVacancyRate, vacancy)
	return r
}

func sampleSeries() models.Series {
	return models.Series{
		row(2020, 300000, 60000, 1000, 1000000, 6.0),
		row(2021, 330000, 62000, 1100, 1020000, 5.5),
		row(2022, 360000, 64000, 1200, 1050000, 5.0),
	}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestInsightAverages(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(sampleSeries(), regions.Resolve("San Antonio"))

	if r.Years != 3 {
		t.Errorf("Years: got %d, want 3", r.Years)
	}
	if r.StartYear != 2020 || r.EndYear != 2022 {
		t.Errorf("period: got %d-%d, want 2020-2022", r.StartYear, r.EndYear)
	}
	if !closeTo(r.AverageHomePrice, 330000) {
		t.Errorf("AverageHomePrice: got %.2f, want 330000", r.AverageHomePrice)
	}
	if !closeTo(r.AverageIncome, 62000) {
		t.Errorf("AverageIncome: got %.2f, want 62000", r.AverageIncome)
	}
	if !closeTo(r.AverageRent, 1100) {
		t.Errorf("AverageRent: got %.2f, want 1100", r.AverageRent)
	}
	if !closeTo(r.PriceToIncomeRatio, 330000.0/62000.0) {
		t.Errorf("PriceToIncomeRatio: got %.4f, want %.4f", r.PriceToIncomeRatio, 330000.0/62000.0)
	}
}

func TestInsightGrowth(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(sampleSeries(), regions.Resolve("San Antonio"))

	if !closeTo(r.HomePriceGrowthPct, 20) {
		t.Errorf("HomePriceGrowthPct: got %.4f, want 20", r.HomePriceGrowthPct)
	}
	if !closeTo(r.PopulationGrowthPct, 5) {
		t.Errorf("PopulationGrowthPct: got %.4f, want 5", r.PopulationGrowthPct)
	}
	if !closeTo(r.RentGrowthPct, 20) {
		t.Errorf("RentGrowthPct: got %.4f, want 20", r.RentGrowthPct)
	}
	if !closeTo(r.CurrentRatio, 360000.0/64000.0) {
		t.Errorf("CurrentRatio: got %.4f, want %.4f", r.CurrentRatio, 360000.0/64000.0)
	}
	if r.Affordability != models.AffordabilityCritical {
		t.Errorf("Affordability: got %s, want Critical", r.Affordability)
	}
	if r.CurrentVacancy != 5.0 {
		t.Errorf("CurrentVacancy: got %.2f, want 5", r.CurrentVacancy)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		ratio float64
		want  models.Affordability
	}{
		{0, models.AffordabilityGood},
		{3.0, models.AffordabilityGood},
		{3.01, models.AffordabilityModerate},
		{4.0, models.AffordabilityModerate},
		{4.5, models.AffordabilitySevere},
		{5.0, models.AffordabilitySevere},
		{5.2, models.AffordabilityCritical},
	}
	for _, tt := range tests {
		if got := Classify(tt.ratio); got != tt.want {
			t.Errorf("Classify(%.2f): got %s, want %s", tt.ratio, got, tt.want)
		}
	}
}

func TestInsightEmptySeries(t *testing.T) {
	svc := NewInsightService(utils.NewNopLogger())
	r := svc.Generate(nil, regions.Default())

	if r.Years != 0 {
		t.Errorf("Years: got %d, want 0", r.Years)
	}
	for name, v := range map[string]float64{
		"AverageHomePrice":    r.AverageHomePrice,
		"PriceToIncomeRatio":  r.PriceToIncomeRatio,
		"HomePriceGrowthPct":  r.HomePriceGrowthPct,
		"PopulationGrowthPct": r.PopulationGrowthPct,
		"CurrentRatio":        r.CurrentRatio,
	} {
		if v != 0 || math.IsNaN(v) {
			t.Errorf("%s: got %v, want 0", name, v)
		}
	}
	if len(r.KeyEvents) == 0 {
		t.Error("KeyEvents should be filled even for an empty series")
	}

	// Printing an empty report must not panic.
	svc.Print(r)
}

func TestInsightZeroFirstValue(t *testing.T) {
	s := models.Series{row(2002, 0, 0, 0, 0, 2), row(2003, 100, 50, 10, 5, 2)}
	r := NewInsightService(utils.NewNopLogger()).Generate(s, regions.Default())

	if r.HomePriceGrowthPct != 0 || r.PopulationGrowthPct != 0 || r.RentGrowthPct != 0 {
		t.Errorf("growth from zero should be 0, got %v %v %v",
			r.HomePriceGrowthPct, r.PopulationGrowthPct, r.RentGrowthPct)
	}
	if !closeTo(r.CurrentRatio, 2) {
		t.Errorf("CurrentRatio: got %v, want 2", r.CurrentRatio)
	}
}

func TestRecommendations(t *testing.T) {
	tests := []struct {
		region string
		first  string
		count  int
	}{
		{"Houston Metro", "Diversify beyond oil and gas dependence", 7},
		{"Austin Area", "Continue attracting tech companies and talent", 7},
		{"El Paso Area", "Support advanced manufacturing development", 7},
		{"Dallas-Fort Worth", "Continue attracting tech companies and talent", 7},
		{"San Antonio", "Manage rapid growth with infrastructure investment", 5},
		{"Central Texas", "Support advanced manufacturing development", 7},
	}
	for _, tt := range tests {
		recs := Recommendations(regions.Resolve(tt.region))
		if len(recs) != tt.count {
			t.Errorf("%s: got %d recommendations, want %d", tt.region, len(recs), tt.count)
			continue
		}
		if recs[0] != tt.first {
			t.Errorf("%s: first recommendation got %q, want %q", tt.region, recs[0], tt.first)
		}
	}
}

func TestMetricsFormatting(t *testing.T) {
	r := &models.InsightReport{
		StartYear:        2002,
		EndYear:          2025,
		AverageHomePrice: 1234567.4,
		CurrentRatio:     4.26,
		Affordability:    models.AffordabilitySevere,
	}
	m := Metrics(r)
	if m[0].Value != "$1,234,567" {
		t.Errorf("home price: got %q, want %q", m[0].Value, "$1,234,567")
	}
	if m[4].Label != "Home price growth (2002-2025)" {
		t.Errorf("growth label: got %q", m[4].Label)
	}
	if m[6].Value != "4.3 (Severe)" {
		t.Errorf("current ratio: got %q, want %q", m[6].Value, "4.3 (Severe)")
	}
}

func TestInsightOnGeneratedSeries(t *testing.T) {
	p := regions.Resolve("Austin Area")
	s := generator.Generate(p, generator.StartYear, generator.EndYear, 42)
	r := NewInsightService(utils.NewNopLogger()).Generate(s, p)

	if r.Years != 24 {
		t.Errorf("Years: got %d, want 24", r.Years)
	}
	if r.AverageHomePrice <= 0 || r.AverageIncome <= 0 {
		t.Errorf("averages should be positive: %v %v", r.AverageHomePrice, r.AverageIncome)
	}
	if r.CurrentVacancy < 2 {
		t.Errorf("CurrentVacancy below floor: %v", r.CurrentVacancy)
	}
	if r.Profile.Name != "Austin Area" {
		t.Errorf("Profile.Name: got %q", r.Profile.Name)
	}
}
