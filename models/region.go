package models

import "slices"

// EconomicType is the economic archetype that drives a region's growth rates.
type EconomicType string

const (
	TypeCorporateTech       EconomicType = "corporate_tech"
	TypeEnergyMedical       EconomicType = "energy_medical"
	TypeTechInnovation      EconomicType = "tech_innovation"
	TypeMilitaryTourism     EconomicType = "military_tourism"
	TypeBorderManufacturing EconomicType = "border_manufacturing"
	TypeAgriculturalBorder  EconomicType = "agricultural_border"
	TypeEnergyAgricultural  EconomicType = "energy_agricultural"
	TypeMixedAgricultural   EconomicType = "mixed_agricultural"
	TypeMixedDevelopment    EconomicType = "mixed_development"
)

// Segment is the real-estate market segment of a region.
type Segment string

const (
	SegmentCorporateAffordable Segment = "corporate_affordable"
	SegmentEnergyDriven        Segment = "energy_driven"
	SegmentTechBoom            Segment = "tech_boom"
	SegmentAffordableGrowth    Segment = "affordable_growth"
	SegmentBorderAffordable    Segment = "border_affordable"
	SegmentRuralAffordable     Segment = "rural_affordable"
	SegmentRuralEnergy         Segment = "rural_energy"
	SegmentRuralMixed          Segment = "rural_mixed"
	SegmentMixed               Segment = "mixed"
)

// Specialty is a category tag that gates some multipliers and event windows.
type Specialty string

const (
	SpecialtyEnergy        Specialty = "energy"
	SpecialtyTechnology    Specialty = "technology"
	SpecialtyManufacturing Specialty = "manufacturing"
	SpecialtyAgriculture   Specialty = "agriculture"
)

// Specialties is an ordered set of specialty tags.
type Specialties []Specialty

// Has reports whether tag is in the set.
func (s Specialties) Has(tag Specialty) bool {
	return slices.Contains(s, tag)
}

// Strings returns the tags as plain strings, in order.
func (s Specialties) Strings() []string {
	out := make([]string, len(s))
	for i, t := range s {
		out[i] = string(t)
	}
	return out
}

// RegionProfile holds the fixed simulation parameters of one region.
// BudgetBase is in millions of dollars, PriceBase in dollars per square metre.
type RegionProfile struct {
	Name           string       `yaml:"-"`
	PopulationBase float64      `yaml:"population_base" validate:"gt=0"`
	BudgetBase     float64      `yaml:"budget_base" validate:"gt=0"`
	Type           EconomicType `yaml:"type" validate:"required"`
	Specialties    Specialties  `yaml:"specialties"`
	PriceBase      float64      `yaml:"price_base" validate:"gt=0"`
	Segment        Segment      `yaml:"segment" validate:"required"`
	Currency       string       `yaml:"currency"`
	MajorCities    []string     `yaml:"major_cities"`
}

// Clone returns a copy that shares no slices with p.
func (p RegionProfile) Clone() RegionProfile {
	p.Specialties = slices.Clone(p.Specialties)
	p.MajorCities = slices.Clone(p.MajorCities)
	return p
}
