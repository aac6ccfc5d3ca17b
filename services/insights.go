package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"texas-market-sim/models"
	"texas-market-sim/utils"
)

var keyEvents = []string{
	"2002-2008: Oil and gas boom driving growth",
	"2008-2009: Mild impact from financial crisis",
	"2010-2014: Shale revolution and energy boom",
	"2015-2016: Oil price collapse affecting energy regions",
	"2015-present: Major tech migration to Texas",
	"2020-2021: COVID-19 pandemic with Texas resilience",
	"2021-present: Massive population growth and development",
	"Ongoing: Business-friendly policies attracting companies",
}

var specialtyRecommendations = []struct {
	tag  models.Specialty
	recs []string
}{
	{models.SpecialtyEnergy, []string{
		"Diversify beyond oil and gas dependence",
		"Invest in renewable energy transition",
	}},
	{models.SpecialtyTechnology, []string{
		"Continue attracting tech companies and talent",
		"Develop innovation districts and tech hubs",
	}},
	{models.SpecialtyManufacturing, []string{
		"Support advanced manufacturing development",
		"Invest in workforce training programs",
	}},
}

var generalRecommendations = []string{
	"Manage rapid growth with infrastructure investment",
	"Maintain housing affordability through supply",
	"Invest in transportation and water infrastructure",
	"Support small business and entrepreneurship",
	"Focus on sustainable development practices",
}

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate summarises series for region profile p. An empty series yields a
// report with zero statistics.
func (s *InsightService) Generate(series models.Series, p models.RegionProfile) *models.InsightReport {
	report := &models.InsightReport{
		Region:          p.Name,
		Profile:         p.Clone(),
		KeyEvents:       append([]string(nil), keyEvents...),
		Recommendations: Recommendations(p),
	}

	first, ok := series.First()
	if !ok {
		s.logger.Warn("[insights] %s: empty series, nothing to summarise", p.Name)
		return report
	}
	last, _ := series.Last()

	report.StartYear = first.Year
	report.EndYear = last.Year
	report.Years = len(series)

	report.AverageHomePrice = mean(series.Column(models.MedianHomePrice))
	report.AverageIncome = mean(series.Column(models.MedianIncome))
	report.AverageRent = mean(series.Column(models.AverageRent))
	report.PriceToIncomeRatio = ratio(report.AverageHomePrice, report.AverageIncome)

	report.HomePriceGrowthPct = growthPct(first.Value(models.MedianHomePrice), last.Value(models.MedianHomePrice))
	report.PopulationGrowthPct = growthPct(first.Value(models.Population), last.Value(models.Population))
	report.RentGrowthPct = growthPct(first.Value(models.AverageRent), last.Value(models.AverageRent))

	report.CurrentRatio = ratio(last.Value(models.MedianHomePrice), last.Value(models.MedianIncome))
	report.Affordability = Classify(report.CurrentRatio)
	report.CurrentVacancy = last.Value(models.RentalVacancyRate)

	s.logger.Debug("[insights] %s: %d years, current ratio %.2f (%s)",
		p.Name, report.Years, report.CurrentRatio, report.Affordability)
	return report
}

// Classify buckets a price-to-income ratio.
func Classify(ratio float64) models.Affordability {
	switch {
	case ratio > 5:
		return models.AffordabilityCritical
	case ratio > 4:
		return models.AffordabilitySevere
	case ratio > 3:
		return models.AffordabilityModerate
	default:
		return models.AffordabilityGood
	}
}

// Recommendations lists the specialty-driven advice for p followed by the
// advice given to every region.
func Recommendations(p models.RegionProfile) []string {
	var out []string
	for _, sr := range specialtyRecommendations {
		if p.Specialties.Has(sr.tag) {
			out = append(out, sr.recs...)
		}
	}
	return append(out, generalRecommendations...)
}

// Metrics formats the headline figures of r for display.
func Metrics(r *models.InsightReport) []models.Metric {
	period := fmt.Sprintf("%d-%d", r.StartYear, r.EndYear)
	return []models.Metric{
		{Label: "Average median home price", Value: dollars(r.AverageHomePrice)},
		{Label: "Average median income", Value: dollars(r.AverageIncome)},
		{Label: "Average rent", Value: dollars(r.AverageRent)},
		{Label: "Price-to-income ratio", Value: fmt.Sprintf("%.1f", r.PriceToIncomeRatio)},
		{Label: "Home price growth (" + period + ")", Value: fmt.Sprintf("%.1f%%", r.HomePriceGrowthPct)},
		{Label: "Population growth (" + period + ")", Value: fmt.Sprintf("%.1f%%", r.PopulationGrowthPct)},
		{Label: "Current price-to-income ratio", Value: fmt.Sprintf("%.1f (%s)", r.CurrentRatio, r.Affordability)},
		{Label: "Current vacancy rate", Value: fmt.Sprintf("%.1f%%", r.CurrentVacancy)},
		{Label: "Rent growth (" + period + ")", Value: fmt.Sprintf("%.1f%%", r.RentGrowthPct)},
	}
}

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 65)
	thin := strings.Repeat("─", 65)
	metrics := Metrics(r)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🤠 TEXAS REAL ESTATE INSIGHTS - %s\033[0m\n", r.Region)
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	if r.Years == 0 {
		fmt.Printf("  No data available\n")
		fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
		return
	}

	section := func(title string, ms []models.Metric) {
		fmt.Printf("\033[1;33m  %s\033[0m\n", title)
		fmt.Printf("  %s\n", thin)
		for _, m := range ms {
			fmt.Printf("  %-36s : \033[1m%s\033[0m\n", m.Label, m.Value)
		}
		fmt.Println()
	}

	section("1. Key Statistics", metrics[0:4])
	section("2. Real Estate Growth", metrics[4:6])
	section("3. Housing Affordability", metrics[6:7])
	section("4. Rental Market", metrics[7:9])

	section(fmt.Sprintf("5. %s Specifics", strings.ToUpper(r.Region)), []models.Metric{
		{Label: "Region type", Value: string(r.Profile.Type)},
		{Label: "Specializations", Value: strings.Join(r.Profile.Specialties.Strings(), ", ")},
		{Label: "Major cities", Value: strings.Join(r.Profile.MajorCities, ", ")},
		{Label: "Real estate segment", Value: string(r.Profile.Segment)},
	})

	list := func(title string, items []string) {
		fmt.Printf("\033[1;33m  %s\033[0m\n", title)
		fmt.Printf("  %s\n", thin)
		for _, it := range items {
			fmt.Printf("  • %s\n", it)
		}
		fmt.Println()
	}
	list("6. Key Texas Real Estate Events", r.KeyEvents)
	list("7. Strategic Recommendations", r.Recommendations)

	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var total float64
	for _, v := range vs {
		total += v
	}
	return total / float64(len(vs))
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// growthPct is the percentage change from first to last; zero when first is
// zero.
func growthPct(first, last float64) float64 {
	if first == 0 {
		return 0
	}
	return (last/first - 1) * 100
}

func dollars(v float64) string {
	return "$" + humanize.Comma(int64(math.Round(v)))
}
