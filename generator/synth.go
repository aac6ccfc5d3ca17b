// Package generator synthesizes the yearly indicator series of a region and
// applies the historical event adjustments to it.
package generator

import (
	"hash/fnv"
	"math/rand/v2"

	"texas-market-sim/models"
)

const (
	// StartYear and EndYear bound the default simulation window.
	StartYear = 2002
	EndYear   = 2025
)

// Noise is a source of standard normal samples.
type Noise interface {
	NormFloat64() float64
}

// NewSource returns a deterministic noise source for seed and stream.
func NewSource(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// StreamFor derives the noise stream of a region from its name, so every
// region gets its own sequence under one seed.
func StreamFor(region string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(region))
	return h.Sum64()
}

// formulas lists the noisy and plain indicators in evaluation order. Price per
// square foot is derived after the loop.
var formulas = []struct {
	ind models.Indicator
	fn  func(step) float64
}{
	{models.Population, population},
	{models.Households, households},
	{models.MedianIncome, medianIncome},
	{models.TotalRevenue, totalRevenue},
	{models.PropertyTaxRevenue, propertyTaxRevenue},
	{models.StateFederalFunding, stateFederalFunding},
	{models.BusinessTaxRevenue, businessTaxRevenue},
	{models.EnergyRevenue, energyRevenue},
	{models.OtherRevenue, otherRevenue},
	{models.TotalExpenses, totalExpenses},
	{models.InfrastructureExpenses, infrastructureExpenses},
	{models.PublicServicesExpenses, publicServicesExpenses},
	{models.EducationExpenses, educationExpenses},
	{models.HealthcareExpenses, healthcareExpenses},
	{models.BudgetSurplusDeficit, budgetBalance},
	{models.RegionalDebt, regionalDebt},
	{models.DebtToRevenueRatio, debtRatio},
	{models.MedianHomePrice, medianHomePrice},
	{models.HomeSalesVolume, homeSales},
	{models.NewConstructionPermits, constructionPermits},
	{models.RentalVacancyRate, vacancyRate},
	{models.AverageRent, averageRent},
	{models.EnergyInvestment, energyInvestment},
	{models.TechInvestment, techInvestment},
	{models.InfrastructureInvestment, infrastructureInvestment},
	{models.HousingDevelopmentInvestment, housingInvestment},
	{models.ManufacturingInvestment, manufacturingInvestment},
	{models.AgriculturalInvestment, agriculturalInvestment},
}

// Synthesize builds one row per year in [startYear, endYear]. Rows are
// computed in year order and each noisy indicator draws exactly one sample
// from noise, so a seeded source always yields the same series.
func Synthesize(p models.RegionProfile, startYear, endYear int, noise Noise) models.Series {
	if endYear < startYear {
		return models.Series{}
	}

	series := make(models.Series, 0, endYear-startYear+1)
	for year := startYear; year <= endYear; year++ {
		s := step{p: p, year: year, i: year - startYear, noise: noise}

		row := models.NewYearRow(year)
		for _, f := range formulas {
			row.Set(f.ind, f.fn(s))
		}
		row.Set(models.PricePerSqft, pricePerSqft(row.Value(models.MedianHomePrice)))

		series = append(series, row)
	}
	return series
}

// Generate synthesizes the series of p with the region's own noise stream and
// applies the event adjustments.
func Generate(p models.RegionProfile, startYear, endYear int, seed uint64) models.Series {
	noise := NewSource(seed, StreamFor(p.Name))
	return ApplyEvents(Synthesize(p, startYear, endYear, noise), p)
}
