package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"texas-market-sim/charts"
	"texas-market-sim/models"
	"texas-market-sim/regions"
	"texas-market-sim/storage"
	"texas-market-sim/utils"
)

// PipelineOptions selects which outputs Process produces.
type PipelineOptions struct {
	OutputDir    string
	WriteXLSX    bool
	RenderCharts bool
	ChartEach    bool
	PDFReport    bool
}

// Outputs lists the files written for one region. Empty fields were not
// produced.
type Outputs struct {
	CSV       string
	XLSX      string
	Dashboard string
	Charts    []string
	HTML      string
	PDF       string
}

// Pipeline exports, charts and summarises generated series.
type Pipeline struct {
	opts     PipelineOptions
	logger   *utils.Logger
	insights *InsightService
	renderer *charts.Renderer
	printer  *charts.PDFPrinter
	sink     storage.SeriesWriter
}

// NewPipeline wires the collaborators. printer and sink may be nil.
func NewPipeline(opts PipelineOptions, logger *utils.Logger, renderer *charts.Renderer,
	printer *charts.PDFPrinter, sink storage.SeriesWriter) *Pipeline {
	return &Pipeline{
		opts:     opts,
		logger:   logger,
		insights: NewInsightService(logger),
		renderer: renderer,
		printer:  printer,
		sink:     sink,
	}
}

// Insights returns the narrator used by the pipeline.
func (p *Pipeline) Insights() *InsightService { return p.insights }

// CSVPath returns <dir>/<slug>_texas_data_<start>_<end>.csv.
func CSVPath(dir, region string, start, end int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_texas_data_%d_%d.csv", regions.Slug(region), start, end))
}

// XLSXPath returns the workbook path matching CSVPath.
func XLSXPath(dir, region string, start, end int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_texas_data_%d_%d.xlsx", regions.Slug(region), start, end))
}

// DashboardPath returns <dir>/<slug>_texas_analysis.png.
func DashboardPath(dir, region string) string {
	return filepath.Join(dir, regions.Slug(region)+"_texas_analysis.png")
}

// Process writes every enabled output for one region and returns the files
// written with the insight report. Only a CSV failure is returned as an
// error; the other outputs log and carry on.
func (p *Pipeline) Process(ctx context.Context, region string, profile models.RegionProfile,
	s models.Series) (*Outputs, *models.InsightReport, error) {
	out := &Outputs{}
	start, end := 0, 0
	if first, ok := s.First(); ok {
		last, _ := s.Last()
		start, end = first.Year, last.Year
	}

	csvPath := CSVPath(p.opts.OutputDir, region, start, end)
	if err := writeSeries(region, s, func() (storage.SeriesWriter, error) {
		return storage.NewCSVWriter(csvPath)
	}); err != nil {
		return nil, nil, err
	}
	out.CSV = csvPath
	p.logger.Info("[export] %s: %d rows saved to %s", region, len(s), csvPath)

	if p.opts.WriteXLSX {
		xlsxPath := XLSXPath(p.opts.OutputDir, region, start, end)
		err := writeSeries(region, s, func() (storage.SeriesWriter, error) {
			return storage.NewXLSXWriter(xlsxPath, profile)
		})
		if err != nil {
			p.logger.Error("[export] %s: XLSX export failed: %v", region, err)
		} else {
			out.XLSX = xlsxPath
			p.logger.Info("[export] %s: workbook saved to %s", region, xlsxPath)
		}
	}

	if p.sink != nil {
		p.mirror(region, s)
	}

	report := p.insights.Generate(s, profile)
	report.Region = region

	if p.opts.RenderCharts && len(s) > 0 {
		p.render(ctx, region, start, end, s, report, out)
	}

	return out, report, nil
}

func writeSeries(region string, s models.Series, open func() (storage.SeriesWriter, error)) error {
	w, err := open()
	if err != nil {
		return err
	}
	if err := w.Write(region, s); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (p *Pipeline) mirror(region string, s models.Series) {
	if err := p.sink.Write(region, s); err != nil {
		p.logger.Error("[postgres] %s: write failed: %v", region, err)
		return
	}
	reader, ok := p.sink.(storage.SeriesReader)
	if !ok {
		return
	}
	stored, err := reader.FetchSeries(region)
	if err != nil {
		p.logger.Error("[postgres] %s: read back failed: %v", region, err)
		return
	}
	p.logger.Info("[postgres] %s: %d rows stored (table: region_series)", region, len(stored))
}

func (p *Pipeline) render(ctx context.Context, region string, start, end int, s models.Series,
	report *models.InsightReport, out *Outputs) {
	built, err := p.renderer.Build(s)
	if err != nil {
		p.logger.Error("[charts] %s: %v", region, err)
		return
	}

	title := fmt.Sprintf("Financial and Real Estate Analysis of %s, Texas (%d-%d)", region, start, end)
	dashboard := DashboardPath(p.opts.OutputDir, region)
	if err := p.renderer.SaveDashboard(dashboard, title, built); err != nil {
		p.logger.Error("[charts] %s: %v", region, err)
		return
	}
	out.Dashboard = dashboard
	p.logger.Info("[charts] %s: dashboard saved to %s", region, dashboard)

	if p.opts.ChartEach {
		dir := filepath.Join(p.opts.OutputDir, regions.Slug(region)+"_charts")
		paths, err := p.renderer.SaveEach(dir, regions.Slug(region), built)
		if err != nil {
			p.logger.Error("[charts] %s: %v", region, err)
		} else {
			out.Charts = paths
			p.logger.Info("[charts] %s: %d charts saved to %s", region, len(paths), dir)
		}
	}

	if p.opts.PDFReport && p.printer != nil {
		p.report(ctx, region, title, report, out)
	}
}

func (p *Pipeline) report(ctx context.Context, region, title string, r *models.InsightReport, out *Outputs) {
	base := filepath.Join(p.opts.OutputDir, regions.Slug(region)+"_texas_report")
	data := charts.ReportData{
		Title:           title,
		Subtitle:        fmt.Sprintf("%s | %s | %s", r.Profile.Type, r.Profile.Segment, strings.Join(r.Profile.MajorCities, ", ")),
		Images:          []string{filepath.Base(out.Dashboard)},
		Metrics:         Metrics(r),
		KeyEvents:       r.KeyEvents,
		Recommendations: r.Recommendations,
	}

	out.HTML = base + ".html"
	if err := charts.WriteReportHTML(out.HTML, data); err != nil {
		p.logger.Error("[pdf] %s: %v", region, err)
		out.HTML = ""
		return
	}
	if err := p.printer.Print(ctx, out.HTML, base+".pdf"); err != nil {
		p.logger.Error("[pdf] %s: %v", region, err)
		return
	}
	out.PDF = base + ".pdf"
}
