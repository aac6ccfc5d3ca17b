// Package charts renders a generated series as gonum/plot charts: ten
// panels tiled into one dashboard image, optionally saved one per file.
package charts

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"texas-market-sim/models"
	"texas-market-sim/utils"
)

const (
	Rows = 5
	Cols = 2
)

// ErrEmptySeries is returned when there is nothing to plot.
var ErrEmptySeries = errors.New("charts: empty series")

var (
	texasBlue = color.RGBA{R: 0x00, G: 0x28, B: 0x68, A: 255}
	texasRed  = color.RGBA{R: 0xBF, G: 0x0A, B: 0x30, A: 255}
	green     = color.RGBA{R: 0x00, G: 0x87, B: 0x51, A: 255}
	orange    = color.RGBA{R: 0xFF, G: 0xA3, B: 0x00, A: 255}
	grey      = color.RGBA{R: 0x66, G: 0x66, B: 0x66, A: 255}
	brown     = color.RGBA{R: 0x8B, G: 0x45, B: 0x13, A: 255}
)

// Chart is one named panel of the dashboard.
type Chart struct {
	Name string
	Plot *plot.Plot
}

// Renderer builds and saves charts.
type Renderer struct {
	logger *utils.Logger

	// Dashboard and per-chart image sizes.
	DashboardWidth, DashboardHeight vg.Length
	ChartWidth, ChartHeight         vg.Length
}

// NewRenderer returns a Renderer with the default image sizes.
func NewRenderer(logger *utils.Logger) *Renderer {
	return &Renderer{
		logger:          logger,
		DashboardWidth:  20 * vg.Inch,
		DashboardHeight: 28 * vg.Inch,
		ChartWidth:      10 * vg.Inch,
		ChartHeight:     5 * vg.Inch,
	}
}

// series is one line or bar source.
type series struct {
	label string
	ind   models.Indicator
	color color.Color
	scale float64
}

// Build creates the ten dashboard panels in display order.
func (r *Renderer) Build(s models.Series) ([]Chart, error) {
	if len(s) == 0 {
		return nil, ErrEmptySeries
	}

	builders := []struct {
		name string
		fn   func(models.Series) (*plot.Plot, error)
	}{
		{"home_price", homePriceChart},
		{"market_activity", overlay("Real Estate Market Activity",
			series{label: "Home Sales", ind: models.HomeSalesVolume, color: texasBlue},
			series{label: "Price per Sqft", ind: models.PricePerSqft, color: texasRed})},
		{"revenue_expenses", lines("Revenue and Expenses Evolution (M$)", "Amount (M$)",
			series{label: "Total Revenue", ind: models.TotalRevenue, color: texasBlue},
			series{label: "Total Expenses", ind: models.TotalExpenses, color: texasRed})},
		{"revenue_structure", stacked("Revenue Structure (M$)",
			series{label: "Property Tax", ind: models.PropertyTaxRevenue, color: texasBlue},
			series{label: "Govt Funding", ind: models.StateFederalFunding, color: texasRed},
			series{label: "Business Tax", ind: models.BusinessTaxRevenue, color: grey},
			series{label: "Energy Revenue", ind: models.EnergyRevenue, color: green},
			series{label: "Other Revenue", ind: models.OtherRevenue, color: orange})},
		{"rental_market", overlay("Rental Market Analysis",
			series{label: "Average Rent", ind: models.AverageRent, color: green},
			series{label: "Vacancy Rate", ind: models.RentalVacancyRate, color: texasRed})},
		{"investments", lines("Regional Investments Distribution (M$)", "Amount (M$)",
			series{label: "Technology", ind: models.TechInvestment, color: texasBlue},
			series{label: "Energy", ind: models.EnergyInvestment, color: texasRed},
			series{label: "Infrastructure", ind: models.InfrastructureInvestment, color: green},
			series{label: "Housing", ind: models.HousingDevelopmentInvestment, color: orange})},
		{"demography_income", overlay("Demography and Income Trends",
			series{label: "Population", ind: models.Population, color: texasBlue},
			series{label: "Median Income", ind: models.MedianIncome, color: texasRed})},
		{"debt_budget", overlay("Regional Debt and Budget Balance",
			series{label: "Regional Debt", ind: models.RegionalDebt, color: texasBlue},
			series{label: "Budget Balance", ind: models.BudgetSurplusDeficit, color: green})},
		{"construction", overlay("Construction and Development Activity",
			series{label: "Construction Permits", ind: models.NewConstructionPermits, color: orange},
			series{label: "Housing Investment", ind: models.HousingDevelopmentInvestment, color: texasRed})},
		{"sector_investments", stacked("Sectorial Investments Distribution (M$)",
			series{label: "Technology", ind: models.TechInvestment, color: texasBlue},
			series{label: "Energy", ind: models.EnergyInvestment, color: texasRed},
			series{label: "Infrastructure", ind: models.InfrastructureInvestment, color: green},
			series{label: "Housing", ind: models.HousingDevelopmentInvestment, color: orange},
			series{label: "Manufacturing", ind: models.ManufacturingInvestment, color: grey},
			series{label: "Agriculture", ind: models.AgriculturalInvestment, color: brown})},
	}

	charts := make([]Chart, 0, len(builders))
	for _, b := range builders {
		p, err := b.fn(s)
		if err != nil {
			return nil, fmt.Errorf("charts: %s: %w", b.name, err)
		}
		charts = append(charts, Chart{Name: b.name, Plot: p})
	}
	return charts, nil
}

// SaveDashboard tiles charts Rows×Cols under a title and writes a PNG.
func (r *Renderer) SaveDashboard(path, title string, charts []Chart) error {
	if len(charts) != Rows*Cols {
		return fmt.Errorf("charts: dashboard needs %d charts, got %d", Rows*Cols, len(charts))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("charts: create output dir: %w", err)
	}

	img := vgimg.New(r.DashboardWidth, r.DashboardHeight)
	dc := draw.New(img)

	const titleBand = 0.6 * vg.Inch
	titleStyle := text.Style{
		Color:   texasBlue,
		Font:    font.From(plot.DefaultFont, vg.Points(22)),
		XAlign:  draw.XCenter,
		YAlign:  draw.YTop,
		Handler: plot.DefaultTextHandler,
	}
	dc.FillText(titleStyle, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - 0.15*vg.Inch}, title)

	body := draw.Crop(dc, 0, 0, 0, -titleBand)
	grid := make([][]*plot.Plot, Rows)
	for i := range grid {
		grid[i] = make([]*plot.Plot, Cols)
		for j := range grid[i] {
			grid[i][j] = charts[i*Cols+j].Plot
		}
	}

	tiles := draw.Tiles{
		Rows:      Rows,
		Cols:      Cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(grid, tiles, body)
	for i := range grid {
		for j := range grid[i] {
			grid[i][j].Draw(canvases[i][j])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("charts: create %q: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PNGCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("charts: write %q: %w", path, err)
	}
	r.logger.Debug("[charts] dashboard written to %s", path)
	return nil
}

// SaveEach writes every chart to dir as <prefix>_<name>.png and returns the
// paths in chart order.
func (r *Renderer) SaveEach(dir, prefix string, charts []Chart) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("charts: create output dir: %w", err)
	}

	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		path := filepath.Join(dir, prefix+"_"+c.Name+".png")
		if err := c.Plot.Save(r.ChartWidth, r.ChartHeight, path); err != nil {
			return nil, fmt.Errorf("charts: save %s: %w", c.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func newPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.Text = ylabel
	p.X.Tick.Marker = yearTicks{}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())
	return p
}

func points(s models.Series, ind models.Indicator, scale float64) plotter.XYs {
	if scale == 0 {
		scale = 1
	}
	pts := make(plotter.XYs, len(s))
	for i, r := range s {
		pts[i].X = float64(r.Year)
		pts[i].Y = r.Value(ind) / scale
	}
	return pts
}

func addLine(p *plot.Plot, label string, pts plotter.XYs, c color.Color, width vg.Length) error {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.Color = c
	l.Width = width
	p.Add(l)
	p.Legend.Add(label, l)
	return nil
}

func homePriceChart(s models.Series) (*plot.Plot, error) {
	p := newPlot("Median Home Price Evolution (Thousand $)", "Price (Thousand $)")
	pts := points(s, models.MedianHomePrice, 1000)
	if err := addLine(p, "Median Home Price", pts, texasRed, vg.Points(3)); err != nil {
		return nil, err
	}

	var marks plotter.XYLabels
	for _, m := range []struct {
		year  int
		label string
	}{{2006, "Oil Boom"}, {2018, "Tech Boom"}} {
		for _, pt := range pts {
			if int(pt.X) == m.year {
				marks.XYs = append(marks.XYs, plotter.XY{X: pt.X, Y: pt.Y})
				marks.Labels = append(marks.Labels, m.label)
			}
		}
	}
	if len(marks.XYs) > 0 {
		labels, err := plotter.NewLabels(marks)
		if err != nil {
			return nil, err
		}
		p.Add(labels)
	}
	return p, nil
}

func lines(title, ylabel string, ss ...series) func(models.Series) (*plot.Plot, error) {
	return func(s models.Series) (*plot.Plot, error) {
		p := newPlot(title, ylabel)
		for _, sr := range ss {
			if err := addLine(p, sr.label, points(s, sr.ind, sr.scale), sr.color, vg.Points(2)); err != nil {
				return nil, err
			}
		}
		return p, nil
	}
}

// overlay puts indicators of different units on one axis by indexing each to
// its first year.
func overlay(title string, ss ...series) func(models.Series) (*plot.Plot, error) {
	return func(s models.Series) (*plot.Plot, error) {
		first := s[0].Year
		p := newPlot(title, "Index ("+strconv.Itoa(first)+" = 100)")
		for _, sr := range ss {
			if err := addLine(p, sr.label, Index(points(s, sr.ind, 1)), sr.color, vg.Points(2)); err != nil {
				return nil, err
			}
		}
		return p, nil
	}
}

func stacked(title string, ss ...series) func(models.Series) (*plot.Plot, error) {
	return func(s models.Series) (*plot.Plot, error) {
		p := newPlot(title, "Amount (M$)")
		var below *plotter.BarChart
		for _, sr := range ss {
			bars, err := plotter.NewBarChart(plotter.Values(s.Column(sr.ind)), vg.Points(7))
			if err != nil {
				return nil, err
			}
			bars.XMin = float64(s[0].Year)
			bars.Color = sr.color
			bars.LineStyle.Width = vg.Length(0)
			if below != nil {
				bars.StackOn(below)
			}
			p.Add(bars)
			p.Legend.Add(sr.label, bars)
			below = bars
		}
		return p, nil
	}
}

// Index rescales pts so the first Y becomes 100. A zero first value leaves
// the points unchanged; a negative one keeps each point's sign.
func Index(pts plotter.XYs) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	copy(out, pts)
	if len(out) == 0 {
		return out
	}
	base := math.Abs(out[0].Y)
	if base == 0 {
		return out
	}
	for i := range out {
		out[i].Y = out[i].Y / base * 100
	}
	return out
}

// yearTicks labels whole years, thinning to every few years on long ranges.
type yearTicks struct{}

func (yearTicks) Ticks(min, max float64) []plot.Tick {
	lo, hi := int(math.Ceil(min)), int(math.Floor(max))
	step := 1
	if span := hi - lo; span > 12 {
		step = (span + 11) / 12
	}

	var ticks []plot.Tick
	for y := lo; y <= hi; y++ {
		t := plot.Tick{Value: float64(y)}
		if (y-lo)%step == 0 {
			t.Label = strconv.Itoa(y)
		}
		ticks = append(ticks, t)
	}
	return ticks
}
