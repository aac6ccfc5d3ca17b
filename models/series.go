package models

import "fmt"

// Indicator identifies one column of the generated series.
type Indicator int

const (
	Population Indicator = iota
	Households
	MedianIncome
	TotalRevenue
	PropertyTaxRevenue
	StateFederalFunding
	BusinessTaxRevenue
	EnergyRevenue
	OtherRevenue
	TotalExpenses
	InfrastructureExpenses
	PublicServicesExpenses
	EducationExpenses
	HealthcareExpenses
	BudgetSurplusDeficit
	RegionalDebt
	DebtToRevenueRatio
	MedianHomePrice
	PricePerSqft
	HomeSalesVolume
	NewConstructionPermits
	RentalVacancyRate
	AverageRent
	EnergyInvestment
	TechInvestment
	InfrastructureInvestment
	HousingDevelopmentInvestment
	ManufacturingInvestment
	AgriculturalInvestment

	indicatorCount
)

var indicatorNames = [indicatorCount]string{
	"Population",
	"Households",
	"Median_Income",
	"Total_Revenue",
	"Property_Tax_Revenue",
	"State_Federal_Funding",
	"Business_Tax_Revenue",
	"Energy_Revenue",
	"Other_Revenue",
	"Total_Expenses",
	"Infrastructure_Expenses",
	"Public_Services_Expenses",
	"Education_Expenses",
	"Healthcare_Expenses",
	"Budget_Surplus_Deficit",
	"Regional_Debt",
	"Debt_to_Revenue_Ratio",
	"Median_Home_Price",
	"Price_per_Sqft",
	"Home_Sales_Volume",
	"New_Construction_Permits",
	"Rental_Vacancy_Rate",
	"Average_Rent",
	"Energy_Investment",
	"Tech_Investment",
	"Infrastructure_Investment",
	"Housing_Development_Investment",
	"Manufacturing_Investment",
	"Agricultural_Investment",
}

// String returns the column header used by every exporter.
func (ind Indicator) String() string {
	if ind < 0 || ind >= indicatorCount {
		return fmt.Sprintf("Indicator(%d)", int(ind))
	}
	return indicatorNames[ind]
}

// Indicators returns every indicator in column order.
func Indicators() []Indicator {
	out := make([]Indicator, indicatorCount)
	for i := range out {
		out[i] = Indicator(i)
	}
	return out
}

// ParseIndicator maps a column header back to its Indicator.
func ParseIndicator(name string) (Indicator, bool) {
	for i, n := range indicatorNames {
		if n == name {
			return Indicator(i), true
		}
	}
	return 0, false
}

// YearRow is one calendar year of indicator values.
type YearRow struct {
	Year   int
	values [indicatorCount]float64
}

// NewYearRow returns a row for year with every indicator at zero.
func NewYearRow(year int) YearRow {
	return YearRow{Year: year}
}

// Value returns the value of one indicator.
func (r YearRow) Value(ind Indicator) float64 {
	return r.values[ind]
}

// Set stores the value of one indicator.
func (r *YearRow) Set(ind Indicator, v float64) {
	r.values[ind] = v
}

// Scale multiplies one indicator by factor.
func (r *YearRow) Scale(ind Indicator, factor float64) {
	r.values[ind] *= factor
}

// Values returns all indicator values in column order.
func (r YearRow) Values() []float64 {
	out := make([]float64, indicatorCount)
	copy(out, r.values[:])
	return out
}

// Series is an ordered run of YearRows, one per year, ascending.
type Series []YearRow

// Clone returns an independent copy of s.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// Validate checks that years are strictly ascending with step 1.
func (s Series) Validate() error {
	for i := 1; i < len(s); i++ {
		if s[i].Year != s[i-1].Year+1 {
			return fmt.Errorf("series: row %d has year %d, want %d", i, s[i].Year, s[i-1].Year+1)
		}
	}
	return nil
}

// Column returns the values of one indicator across all rows.
func (s Series) Column(ind Indicator) []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = r.Value(ind)
	}
	return out
}

// Years returns the year of every row.
func (s Series) Years() []int {
	out := make([]int, len(s))
	for i, r := range s {
		out[i] = r.Year
	}
	return out
}

// First returns the earliest row; ok is false for an empty series.
func (s Series) First() (YearRow, bool) {
	if len(s) == 0 {
		return YearRow{}, false
	}
	return s[0], true
}

// Last returns the latest row; ok is false for an empty series.
func (s Series) Last() (YearRow, bool) {
	if len(s) == 0 {
		return YearRow{}, false
	}
	return s[len(s)-1], true
}
