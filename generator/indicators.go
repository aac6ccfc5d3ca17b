package generator

import (
	"math"

	"texas-market-sim/models"
)

const (
	householdSize = 2.7
	homeSizeM2    = 200.0
	sqftPerM2     = 10.764

	// SqftPerHome is the average home size in square feet used to derive
	// price per square foot from the median home price.
	SqftPerHome = homeSizeM2 * sqftPerM2

	baseVacancy  = 6.0
	vacancyFloor = 2.0
	vacancySigma = 0.4
)

// step carries everything one indicator formula may read.
type step struct {
	p     models.RegionProfile
	year  int
	i     int
	noise Noise
}

// jitter draws one multiplicative noise factor with mean 1, floored at zero
// so a deep negative draw cannot flip the sign of a level indicator.
func (s step) jitter(sigma float64) float64 {
	return math.Max(0, s.signedJitter(sigma))
}

// signedJitter is jitter without the floor, for indicators that may go
// negative.
func (s step) signedJitter(sigma float64) float64 {
	return 1 + sigma*s.noise.NormFloat64()
}

func (s step) has(tag models.Specialty) bool {
	return s.p.Specialties.Has(tag)
}

func (s step) budget(share float64) float64 {
	return s.p.BudgetBase * share
}

// byType picks the rate for tech_innovation, corporate_tech, energy_medical,
// or the fallback for every other archetype.
func byType(t models.EconomicType, tech, corporate, energy, other float64) float64 {
	switch t {
	case models.TypeTechInnovation:
		return tech
	case models.TypeCorporateTech:
		return corporate
	case models.TypeEnergyMedical:
		return energy
	default:
		return other
	}
}

// gate returns yes when the profile carries tag, else no.
func (s step) gate(tag models.Specialty, yes, no float64) float64 {
	if s.has(tag) {
		return yes
	}
	return no
}

// Demography

func population(s step) float64 {
	rate := byType(s.p.Type, 0.028, 0.022, 0.020, 0.015)
	return s.p.PopulationBase * linear(rate, s.i)
}

func households(s step) float64 {
	return s.p.PopulationBase / householdSize * linear(0.016, s.i)
}

func medianIncome(s step) float64 {
	base := byType(s.p.Type, 85000, 75000, 70000, 55000)
	return base * incomeCurve.at(s.year) * s.jitter(0.05)
}

// Revenue, in millions of dollars

func totalRevenue(s step) float64 {
	rate := byType(s.p.Type, 0.065, 0.055, 0.050, 0.042)
	return s.p.BudgetBase * linear(rate, s.i) * s.jitter(0.12)
}

func propertyTaxRevenue(s step) float64 {
	return s.budget(0.45) * linear(0.035, s.i) * s.jitter(0.08)
}

func stateFederalFunding(s step) float64 {
	return s.budget(0.20) * since(s.year, 2010, 0.012) * s.jitter(0.08)
}

func businessTaxRevenue(s step) float64 {
	mult := 1.0
	switch {
	case s.has(models.SpecialtyTechnology):
		mult = 1.4
	case s.has(models.SpecialtyEnergy):
		mult = 1.2
	}
	return s.budget(0.18) * linear(0.048, s.i) * mult * s.jitter(0.15)
}

func energyRevenue(s step) float64 {
	mult := s.gate(models.SpecialtyEnergy, 2.5, 0.3)
	return s.budget(0.12) * linear(0.030, s.i) * energyCurve.at(s.year) * mult * s.jitter(0.25)
}

func otherRevenue(s step) float64 {
	return s.budget(0.05) * linear(0.028, s.i) * s.jitter(0.10)
}

// Expenses, in millions of dollars

func totalExpenses(s step) float64 {
	return s.budget(0.88) * linear(0.038, s.i) * s.jitter(0.06)
}

func infrastructureExpenses(s step) float64 {
	projects := bump(s.year, 1.8, 2005, 2013, 2018, 2023)
	return s.budget(0.20) * linear(0.040, s.i) * projects * s.jitter(0.18)
}

func publicServicesExpenses(s step) float64 {
	return s.budget(0.25) * linear(0.032, s.i) * s.jitter(0.04)
}

func educationExpenses(s step) float64 {
	return s.budget(0.28) * linear(0.036, s.i) * s.jitter(0.05)
}

func healthcareExpenses(s step) float64 {
	return s.budget(0.15) * linear(0.040, s.i) * s.jitter(0.06)
}

// Fiscal health

func budgetBalance(s step) float64 {
	return s.budget(0.12) * since(s.year, 2010, 0.015) * s.signedJitter(0.15)
}

func regionalDebt(s step) float64 {
	return s.budget(0.45) * since(s.year, 2012, -0.020) * s.jitter(0.07)
}

func debtRatio(s step) float64 {
	return 0.40 * since(s.year, 2012, -0.022) * s.signedJitter(0.06)
}

// Real estate

func medianHomePrice(s step) float64 {
	var rate float64
	switch s.p.Segment {
	case models.SegmentTechBoom:
		rate = 0.085
	case models.SegmentCorporateAffordable:
		rate = 0.055
	case models.SegmentEnergyDriven:
		rate = 0.048
	default:
		rate = 0.040
	}
	return s.p.PriceBase * homeSizeM2 * linear(rate, s.i) * homePriceCurve.at(s.year) * s.jitter(0.10)
}

func pricePerSqft(medianPrice float64) float64 {
	return medianPrice / SqftPerHome
}

func homeSales(s step) float64 {
	return s.p.PopulationBase / 100 * linear(0.018, s.i) * salesCurve.at(s.year) * s.jitter(0.14)
}

func constructionPermits(s step) float64 {
	cycle := bump(s.year, 2.0, 2005, 2013, 2018, 2022, 2024) * bump(s.year, 0.7, 2008, 2015, 2020)
	return s.p.PopulationBase / 400 * linear(0.025, s.i) * cycle * s.jitter(0.20)
}

// vacancyRate uses additive noise, unlike every other indicator.
func vacancyRate(s step) float64 {
	rate := vacancyCurve.at(s.year) + vacancySigma*s.noise.NormFloat64()
	return math.Max(vacancyFloor, rate)
}

func averageRent(s step) float64 {
	return s.p.PriceBase / 40 * rentCurve.at(s.year) * s.jitter(0.06)
}

// Investment, in millions of dollars

func energyInvestment(s step) float64 {
	mult := s.gate(models.SpecialtyEnergy, 3.0, 0.4)
	cycle := bump(s.year, 2.2, 2003, 2008, 2012, 2017, 2021)
	return s.budget(0.15) * linear(0.055, s.i) * cycle * mult * s.jitter(0.30)
}

func techInvestment(s step) float64 {
	mult := s.gate(models.SpecialtyTechnology, 2.5, 0.8)
	cycle := bump(s.year, 1.9, 2005, 2010, 2015, 2020, 2023)
	return s.budget(0.12) * linear(0.070, s.i) * cycle * mult * s.jitter(0.18)
}

func infrastructureInvestment(s step) float64 {
	cycle := bump(s.year, 1.8, 2004, 2011, 2016, 2022)
	return s.budget(0.20) * linear(0.045, s.i) * cycle * s.jitter(0.15)
}

func housingInvestment(s step) float64 {
	const construction = 1.5
	cycle := bump(s.year, 1.8, 2006, 2013, 2019, 2024)
	return s.budget(0.18) * linear(0.050, s.i) * cycle * construction * s.jitter(0.20)
}

func manufacturingInvestment(s step) float64 {
	mult := s.gate(models.SpecialtyManufacturing, 1.8, 0.7)
	cycle := bump(s.year, 1.7, 2007, 2014, 2018, 2023)
	return s.budget(0.10) * linear(0.038, s.i) * cycle * mult * s.jitter(0.16)
}

func agriculturalInvestment(s step) float64 {
	mult := s.gate(models.SpecialtyAgriculture, 2.2, 0.9)
	cycle := bump(s.year, 1.6, 2009, 2012, 2017, 2021)
	return s.budget(0.08) * linear(0.032, s.i) * cycle * mult * s.jitter(0.19)
}
