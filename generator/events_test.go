package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"texas-market-sim/models"
	"texas-market-sim/regions"
)

func rowFor(t *testing.T, s models.Series, year int) models.YearRow {
	t.Helper()
	for _, r := range s {
		if r.Year == year {
			return r
		}
	}
	t.Fatalf("no row for year %d", year)
	return models.YearRow{}
}

func TestAustinEventScenario(t *testing.T) {
	austin := regions.Resolve("Austin Area")
	before := Synthesize(austin, StartYear, EndYear, NewSource(2025, StreamFor(austin.Name)))
	snapshot := before.Clone()
	after := ApplyEvents(before, austin)
	require.Len(t, after, 24)

	pre2015 := rowFor(t, before, 2015)
	post2015 := rowFor(t, after, 2015)
	assert.InEpsilon(t, pre2015.Value(models.TechInvestment)*2.2, post2015.Value(models.TechInvestment), 1e-12)

	pre2009 := rowFor(t, before, 2009)
	post2009 := rowFor(t, after, 2009)
	assert.InEpsilon(t, pre2009.Value(models.MedianHomePrice)*0.90, post2009.Value(models.MedianHomePrice), 1e-12)

	// The pass works on a copy.
	assert.Equal(t, snapshot, before)
}

func TestDefaultProfileSingleYearUntouched(t *testing.T) {
	p := regions.Resolve("not a region")
	s := Synthesize(p, 2002, 2002, NewSource(1, 1))
	require.Len(t, s, 1)

	assert.Equal(t, s, ApplyEvents(s, p))
}

func TestEventsStackMultiplicatively(t *testing.T) {
	houston := regions.Resolve("Houston Metro")
	base := Synthesize(houston, 2002, 2025, zeroNoise{})
	adjusted := ApplyEvents(base, houston)

	// 2008: oil boom then financial crisis.
	pre := rowFor(t, base, 2008)
	post := rowFor(t, adjusted, 2008)
	assert.InEpsilon(t, pre.Value(models.EnergyRevenue)*1.8, post.Value(models.EnergyRevenue), 1e-12)
	assert.InEpsilon(t, pre.Value(models.EnergyInvestment)*0.70, post.Value(models.EnergyInvestment), 1e-12)
	assert.InEpsilon(t, pre.Value(models.MedianHomePrice)*0.90, post.Value(models.MedianHomePrice), 1e-12)

	// 2020: sustained growth, covid and nothing from the energy windows.
	pre = rowFor(t, base, 2020)
	post = rowFor(t, adjusted, 2020)
	assert.InEpsilon(t, pre.Value(models.EnergyRevenue)*0.60, post.Value(models.EnergyRevenue), 1e-12)
	assert.InEpsilon(t, pre.Value(models.HomeSalesVolume)*0.85, post.Value(models.HomeSalesVolume), 1e-12)
	assert.InEpsilon(t, pre.Value(models.NewConstructionPermits)*1.3, post.Value(models.NewConstructionPermits), 1e-12)

	// 2021: covid recovery on top of nothing else for population.
	pre = rowFor(t, base, 2021)
	post = rowFor(t, adjusted, 2021)
	assert.Equal(t, pre.Value(models.Population)*1.02, post.Value(models.Population))

	// 2016: oil price collapse.
	pre = rowFor(t, base, 2016)
	post = rowFor(t, adjusted, 2016)
	assert.Equal(t, pre.Value(models.Population)*0.99, post.Value(models.Population))
	assert.Equal(t, pre.Value(models.MedianHomePrice)*0.92, post.Value(models.MedianHomePrice))
}

func TestDallasTechStack(t *testing.T) {
	// Dallas carries "technology" but not "energy": tech migration and the
	// post-covid boom compose on Tech_Investment in 2023.
	dallas := regions.Resolve("Dallas-Fort Worth")
	base := Synthesize(dallas, 2002, 2025, zeroNoise{})
	adjusted := ApplyEvents(base, dallas)

	pre := rowFor(t, base, 2023)
	post := rowFor(t, adjusted, 2023)
	assert.Equal(t, pre.Value(models.TechInvestment)*2.2*1.3, post.Value(models.TechInvestment))
	assert.Equal(t, pre.Value(models.EnergyRevenue), post.Value(models.EnergyRevenue))
	assert.Equal(t, pre.Value(models.InfrastructureInvestment)*1.5, post.Value(models.InfrastructureInvestment))
}

func TestEventOnlyTouchesListedFields(t *testing.T) {
	p := regions.Resolve("West Texas")
	base := Synthesize(p, StartYear, EndYear, NewSource(5, 5))

	for _, e := range Events() {
		touched := make(map[models.Indicator]bool)
		for _, a := range e.Adjust {
			touched[a.Indicator] = true
		}
		out := e.Apply(base, p)
		for i, r := range out {
			for _, ind := range models.Indicators() {
				if touched[ind] && e.Matches(r.Year, p) {
					continue
				}
				assert.Equal(t, base[i].Value(ind), r.Value(ind), "%s touched %s in %d", e.Name, ind, r.Year)
			}
		}
	}
}

func TestEventGates(t *testing.T) {
	byName := make(map[string]Event)
	for _, e := range Events() {
		byName[e.Name] = e
	}

	houston := regions.Resolve("Houston Metro")
	austin := regions.Resolve("Austin Area")

	tests := []struct {
		event string
		year  int
		p     models.RegionProfile
		want  bool
	}{
		{"oil boom", 2005, houston, true},
		{"oil boom", 2005, austin, false},
		{"oil boom", 2010, houston, false},
		{"oil boom", 2012, houston, true},
		{"financial crisis", 2009, austin, true},
		{"financial crisis", 2010, austin, false},
		{"tech migration", 2014, austin, false},
		{"tech migration", 2015, austin, true},
		{"tech migration", 2015, houston, false},
		{"sustained growth", 2009, houston, false},
		{"sustained growth", 2010, houston, true},
		{"covid", 2020, austin, true},
		{"covid", 2021, austin, false},
		{"covid recovery", 2021, austin, true},
		{"post-covid boom", 2021, austin, false},
		{"post-covid boom", 2022, houston, true},
	}

	for _, tt := range tests {
		e, ok := byName[tt.event]
		require.True(t, ok, tt.event)
		assert.Equal(t, tt.want, e.Matches(tt.year, tt.p), "%s %d %s", tt.event, tt.year, tt.p.Name)
	}
}

func TestEventOrder(t *testing.T) {
	var names []string
	for _, e := range Events() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{
		"oil boom", "financial crisis", "oil price collapse", "tech migration",
		"sustained growth", "covid", "covid recovery", "post-covid boom",
	}, names)
}

func TestEventsReturnsCopy(t *testing.T) {
	austin := regions.Resolve("Austin Area")
	base := Synthesize(austin, StartYear, EndYear, zeroNoise{})
	want := ApplyEvents(base, austin)

	evs := Events()
	for i := range evs {
		for j := range evs[i].Adjust {
			evs[i].Adjust[j].Factor = 5
		}
	}

	assert.Equal(t, want, ApplyEvents(base, austin))
	assert.Equal(t, 0.90, Events()[1].Adjust[0].Factor)
}
