// Package regions holds the fixed Texas region profiles and the menu used to
// pick one of them.
package regions

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"texas-market-sim/models"
)

// DefaultRegion is used when a menu choice cannot be understood.
const DefaultRegion = "Dallas-Fort Worth"

// defaultKey names the fallback profile in overlay files.
const defaultKey = "default"

// menu lists the known regions in menu order.
var menu = []string{
	"Dallas-Fort Worth",
	"Houston Metro",
	"Austin Area",
	"San Antonio",
	"El Paso Area",
	"Rio Grande Valley",
	"West Texas",
	"Central Texas",
}

var builtin = map[string]models.RegionProfile{
	"Dallas-Fort Worth": {
		PopulationBase: 7600000,
		BudgetBase:     9800,
		Type:           models.TypeCorporateTech,
		Specialties:    models.Specialties{"technology", "finance", "corporate", "logistics", "defense"},
		PriceBase:      3200,
		Segment:        models.SegmentCorporateAffordable,
		Currency:       "USD",
		MajorCities:    []string{"Dallas", "Fort Worth", "Arlington", "Plano"},
	},
	"Houston Metro": {
		PopulationBase: 7300000,
		BudgetBase:     9200,
		Type:           models.TypeEnergyMedical,
		Specialties:    models.Specialties{"energy", "petroleum", "medicine", "port", "aerospace"},
		PriceBase:      2800,
		Segment:        models.SegmentEnergyDriven,
		Currency:       "USD",
		MajorCities:    []string{"Houston", "The Woodlands", "Sugar Land", "Pearland"},
	},
	"Austin Area": {
		PopulationBase: 2300000,
		BudgetBase:     4800,
		Type:           models.TypeTechInnovation,
		Specialties:    models.Specialties{"technology", "innovation", "music", "education", "startups"},
		PriceBase:      4500,
		Segment:        models.SegmentTechBoom,
		Currency:       "USD",
		MajorCities:    []string{"Austin", "Round Rock", "Cedar Park", "San Marcos"},
	},
	"San Antonio": {
		PopulationBase: 2600000,
		BudgetBase:     3800,
		Type:           models.TypeMilitaryTourism,
		Specialties:    models.Specialties{"military", "tourism", "health", "education", "culture"},
		PriceBase:      2200,
		Segment:        models.SegmentAffordableGrowth,
		Currency:       "USD",
		MajorCities:    []string{"San Antonio", "New Braunfels", "Schertz", "Converse"},
	},
	"El Paso Area": {
		PopulationBase: 850000,
		BudgetBase:     1800,
		Type:           models.TypeBorderManufacturing,
		Specialties:    models.Specialties{"manufacturing", "border_trade", "defense", "logistics", "services"},
		PriceBase:      1500,
		Segment:        models.SegmentBorderAffordable,
		Currency:       "USD",
		MajorCities:    []string{"El Paso", "Socorro", "Horizon City"},
	},
	"Rio Grande Valley": {
		PopulationBase: 1400000,
		BudgetBase:     2200,
		Type:           models.TypeAgriculturalBorder,
		Specialties:    models.Specialties{"agriculture", "border_trade", "tourism", "health", "education"},
		PriceBase:      1200,
		Segment:        models.SegmentRuralAffordable,
		Currency:       "USD",
		MajorCities:    []string{"McAllen", "Brownsville", "Edinburg", "Harlingen"},
	},
	"West Texas": {
		PopulationBase: 600000,
		BudgetBase:     1500,
		Type:           models.TypeEnergyAgricultural,
		Specialties:    models.Specialties{"energy", "petroleum", "agriculture", "ranching", "wind"},
		PriceBase:      1800,
		Segment:        models.SegmentRuralEnergy,
		Currency:       "USD",
		MajorCities:    []string{"Midland", "Odessa", "Lubbock", "Amarillo"},
	},
	"Central Texas": {
		PopulationBase: 1200000,
		BudgetBase:     2500,
		Type:           models.TypeMixedAgricultural,
		Specialties:    models.Specialties{"agriculture", "manufacturing", "education", "services", "rural_tourism"},
		PriceBase:      2000,
		Segment:        models.SegmentRuralMixed,
		Currency:       "USD",
		MajorCities:    []string{"Waco", "Temple", "Killeen", "College Station"},
	},
}

var defaultProfile = models.RegionProfile{
	Name:           defaultKey,
	PopulationBase: 1000000,
	BudgetBase:     2000,
	Type:           models.TypeMixedDevelopment,
	Specialties:    models.Specialties{"residential", "local_commerce", "services"},
	PriceBase:      2500,
	Segment:        models.SegmentMixed,
	Currency:       "USD",
	MajorCities:    []string{"Multiple cities"},
}

// Catalog is a read-only table of region profiles with a fallback profile.
type Catalog struct {
	profiles map[string]models.RegionProfile
	fallback models.RegionProfile
	names    []string
}

// Builtin returns the catalogue of the eight Texas regions.
func Builtin() *Catalog {
	c := &Catalog{
		profiles: make(map[string]models.RegionProfile, len(builtin)),
		fallback: defaultProfile.Clone(),
		names:    append([]string(nil), menu...),
	}
	for name, p := range builtin {
		p = p.Clone()
		p.Name = name
		c.profiles[name] = p
	}
	return c
}

var validate = validator.New()

// LoadCatalog reads a YAML overlay of profiles keyed by region name and merges
// it over the built-in table. A "default" key replaces the fallback profile.
// An empty path returns the built-in catalogue.
//
// Each entry must set population_base, budget_base and price_base (all > 0),
// type and segment. currency defaults to USD; specialties and major_cities
// may be left out and stay empty.
func LoadCatalog(path string) (*Catalog, error) {
	c := Builtin()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("regions: read %q: %w", path, err)
	}

	var overlay map[string]models.RegionProfile
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("regions: parse %q: %w", path, err)
	}

	added := make([]string, 0, len(overlay))
	for name, p := range overlay {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("regions: profile %q: %w", name, err)
		}
		if p.Currency == "" {
			p.Currency = "USD"
		}
		if name == defaultKey {
			p.Name = defaultKey
			c.fallback = p.Clone()
			continue
		}
		p.Name = name
		if _, known := c.profiles[name]; !known {
			added = append(added, name)
		}
		c.profiles[name] = p.Clone()
	}
	sort.Strings(added)
	c.names = append(c.names, added...)

	return c, nil
}

// Resolve returns the profile registered under name, or the default profile
// (whose Name is "default"). It never fails.
func (c *Catalog) Resolve(name string) models.RegionProfile {
	if p, ok := c.profiles[name]; ok {
		return p.Clone()
	}
	return c.fallback.Clone()
}

// Known reports whether name has its own profile.
func (c *Catalog) Known(name string) bool {
	_, ok := c.profiles[name]
	return ok
}

// Names returns the region names in menu order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Select maps a 1-based menu choice to a region name. Anything that is not a
// valid index yields DefaultRegion and ok=false.
func (c *Catalog) Select(input string) (name string, ok bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(c.names) {
		return DefaultRegion, false
	}
	return c.names[n-1], true
}

var std = Builtin()

// Resolve looks name up in the built-in catalogue.
func Resolve(name string) models.RegionProfile {
	return std.Resolve(name)
}

// Names returns the eight built-in region names in menu order.
func Names() []string {
	return std.Names()
}

// Select maps a menu choice over the built-in catalogue.
func Select(input string) (string, bool) {
	return std.Select(input)
}

// Default returns the fallback profile of the built-in catalogue.
func Default() models.RegionProfile {
	return defaultProfile.Clone()
}

// Slug turns a region name into the file-name prefix used by every output:
// lower case with spaces replaced by underscores.
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
