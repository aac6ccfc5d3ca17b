package generator

import "slices"

// segment is one branch of a piecewise curve over calendar years. Inside
// [from, to] the curve equals level + slope*(year-from).
type segment struct {
	from, to     int
	level, slope float64
}

// curve is an ordered list of segments. The last segment is the catch-all
// branch: years matching no segment are evaluated on it.
type curve []segment

func (c curve) at(year int) float64 {
	for _, s := range c {
		if year >= s.from && year <= s.to {
			return s.eval(year)
		}
	}
	return c[len(c)-1].eval(year)
}

func (s segment) eval(year int) float64 {
	return s.level + s.slope*float64(year-s.from)
}

const open = 1 << 30

// Era curves. Boundary years differ between indicators and are kept that way.
var (
	incomeCurve = curve{
		{2002, 2008, 1, 0.040},
		{2009, 2010, 1, -0.020},
		{2011, 2014, 1, 0.045},
		{2015, 2016, 1 - 0.015, 0},
		{2017, 2019, 1, 0.038},
		{2020, 2021, 1 - 0.010, 0},
		{2022, open, 1, 0.042},
	}

	energyCurve = curve{
		{2002, 2008, 1, 0.15},
		{2009, 2010, 0.70, 0},
		{2011, 2014, 1, 0.12},
		{2015, 2016, 0.60, 0},
		{2017, 2019, 1, 0.08},
		{2020, 2021, 0.75, 0},
		{2022, open, 1, 0.10},
	}

	homePriceCurve = curve{
		{2002, 2007, 1, 0.08},
		{2008, 2009, 0.90, 0},
		{2010, 2014, 1, 0.10},
		{2015, 2016, 0.95, 0},
		{2017, 2019, 1, 0.07},
		{2020, 2021, 1.02, 0},
		{2022, open, 1, 0.09},
	}

	salesCurve = curve{
		{2002, 2006, 1, 0.12},
		{2007, 2009, 0.80, 0},
		{2010, 2019, 1, 0.10},
		{2020, 2021, 0.90, 0},
		{2022, open, 1, 0.11},
	}

	rentCurve = curve{
		{2002, 2007, 1, 0.035},
		{2008, 2010, 1, -0.010},
		{2011, 2019, 1, 0.040},
		{2020, 2021, 1 + 0.005, 0},
		{2022, open, 1, 0.045},
	}

	// vacancyCurve is an additive level in percent, not a multiplier.
	vacancyCurve = curve{
		{2002, 2006, baseVacancy, -0.8},
		{2007, 2010, baseVacancy + 1.5, 0},
		{2011, 2019, baseVacancy, -0.4},
		{2020, 2021, baseVacancy + 1.0, 0},
		{2022, open, baseVacancy, -0.3},
	}
)

// linear is the plain 1 + rate*i growth over the year index.
func linear(rate float64, i int) float64 {
	return 1 + rate*float64(i)
}

// since is 1 before year from, then 1 + rate*(year-from).
func since(year, from int, rate float64) float64 {
	if year < from {
		return 1
	}
	return 1 + rate*float64(year-from)
}

// bump returns factor when year is one of years, else 1.
func bump(year int, factor float64, years ...int) float64 {
	if slices.Contains(years, year) {
		return factor
	}
	return 1
}
