package generator

import (
	"slices"

	"texas-market-sim/models"
)

// Adjustment multiplies one indicator by Factor.
type Adjustment struct {
	Indicator models.Indicator
	Factor    float64
}

// Event is a historical window that rescales some indicators. Gate, when set,
// restricts the event to profiles carrying that specialty.
type Event struct {
	Name        string
	Description string
	Gate        models.Specialty
	InWindow    func(year int) bool
	Adjust      []Adjustment
}

// Matches reports whether the event fires for year under profile p.
func (e Event) Matches(year int, p models.RegionProfile) bool {
	if e.Gate != "" && !p.Specialties.Has(e.Gate) {
		return false
	}
	return e.InWindow(year)
}

// Apply returns a copy of s with the event's adjustments applied to every
// matching row. Each factor multiplies the current value of its field.
func (e Event) Apply(s models.Series, p models.RegionProfile) models.Series {
	out := s.Clone()
	for i := range out {
		if !e.Matches(out[i].Year, p) {
			continue
		}
		for _, a := range e.Adjust {
			out[i].Scale(a.Indicator, a.Factor)
		}
	}
	return out
}

func between(from, to int) func(int) bool {
	return func(y int) bool { return y >= from && y <= to }
}

func onward(start int) func(int) bool {
	return func(y int) bool { return y >= start }
}

var events = []Event{
	{
		Name:        "oil boom",
		Description: "2003-2008 and 2011-2014: oil and shale booms lift energy regions",
		Gate:        models.SpecialtyEnergy,
		InWindow: func(y int) bool {
			return between(2003, 2008)(y) || between(2011, 2014)(y)
		},
		Adjust: []Adjustment{
			{models.EnergyRevenue, 1.8},
			{models.MedianIncome, 1.10},
			{models.Population, 1.03},
		},
	},
	{
		Name:        "financial crisis",
		Description: "2008-2009: mild impact from the financial crisis",
		InWindow:    between(2008, 2009),
		Adjust: []Adjustment{
			{models.MedianHomePrice, 0.90},
			{models.HomeSalesVolume, 0.80},
			{models.EnergyInvestment, 0.70},
		},
	},
	{
		Name:        "oil price collapse",
		Description: "2015-2016: oil price collapse hits energy regions",
		Gate:        models.SpecialtyEnergy,
		InWindow:    between(2015, 2016),
		Adjust: []Adjustment{
			{models.EnergyRevenue, 0.40},
			{models.MedianHomePrice, 0.92},
			{models.Population, 0.99},
		},
	},
	{
		Name:        "tech migration",
		Description: "2015-present: major tech migration to Texas",
		Gate:        models.SpecialtyTechnology,
		InWindow:    onward(2015),
		Adjust: []Adjustment{
			{models.TechInvestment, 2.2},
			{models.MedianHomePrice, 1.15},
			{models.Population, 1.04},
		},
	},
	{
		Name:        "sustained growth",
		Description: "2010-present: strong population growth drives construction",
		InWindow:    onward(2010),
		Adjust: []Adjustment{
			{models.HousingDevelopmentInvestment, 1.4},
			{models.NewConstructionPermits, 1.3},
		},
	},
	{
		Name:        "covid",
		Description: "2020: COVID-19 pandemic",
		InWindow:    between(2020, 2020),
		Adjust: []Adjustment{
			{models.EnergyRevenue, 0.60},
			{models.HomeSalesVolume, 0.85},
		},
	},
	{
		Name:        "covid recovery",
		Description: "2021: strong Texas recovery",
		InWindow:    between(2021, 2021),
		Adjust: []Adjustment{
			{models.MedianHomePrice, 1.08},
			{models.Population, 1.02},
		},
	},
	{
		Name:        "post-covid boom",
		Description: "2022-present: massive population growth and development",
		InWindow:    onward(2022),
		Adjust: []Adjustment{
			{models.TechInvestment, 1.3},
			{models.ManufacturingInvestment, 1.4},
			{models.InfrastructureInvestment, 1.5},
		},
	},
}

// Events returns a copy of the event rules in application order.
func Events() []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		e.Adjust = slices.Clone(e.Adjust)
		out[i] = e
	}
	return out
}

// ApplyEvents folds every event over s in order and returns the adjusted
// series. s itself is left untouched.
func ApplyEvents(s models.Series, p models.RegionProfile) models.Series {
	out := s.Clone()
	for _, e := range events {
		out = e.Apply(out, p)
	}
	return out
}
