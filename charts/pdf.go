package charts

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"texas-market-sim/models"
	"texas-market-sim/utils"
)

// ReportData is everything the HTML report shows. Images are paths relative
// to the HTML file.
type ReportData struct {
	Title           string
	Subtitle        string
	Images          []string
	Metrics         []models.Metric
	KeyEvents       []string
	Recommendations []string
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: "Liberation Sans", Arial, sans-serif; color: #222; margin: 24px; }
h1 { color: #002868; border-bottom: 3px solid #BF0A30; padding-bottom: 6px; }
h2 { color: #BF0A30; margin-top: 28px; }
table { border-collapse: collapse; width: 100%; }
td { padding: 4px 8px; border-bottom: 1px solid #ddd; }
td.label { color: #555; width: 45%; }
img { width: 100%; page-break-inside: avoid; margin-bottom: 12px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Subtitle}}<p>{{.Subtitle}}</p>{{end}}
{{if .Metrics}}<h2>Key statistics</h2>
<table>
{{range .Metrics}}<tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</table>{{end}}
{{if .KeyEvents}}<h2>Key events</h2>
<ul>
{{range .KeyEvents}}<li>{{.}}</li>
{{end}}</ul>{{end}}
{{if .Recommendations}}<h2>Recommendations</h2>
<ul>
{{range .Recommendations}}<li>{{.}}</li>
{{end}}</ul>{{end}}
{{range .Images}}<img src="{{.}}">
{{end}}
</body>
</html>
`))

// WriteReportHTML renders data to path.
func WriteReportHTML(path string, data ReportData) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("report: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %q: %w", path, err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("report: render: %w", err)
	}
	return nil
}

// PDFPrinter prints HTML files to PDF with headless Chrome.
type PDFPrinter struct {
	chromeBin string
	retry     *utils.RetryConfig
	logger    *utils.Logger
	Timeout   time.Duration
}

// NewPDFPrinter returns a printer using chromeBin, or the first Chrome or
// Chromium found on the system when chromeBin is empty.
func NewPDFPrinter(chromeBin string, retry *utils.RetryConfig, logger *utils.Logger) *PDFPrinter {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	return &PDFPrinter{
		chromeBin: chromeBin,
		retry:     retry,
		logger:    logger,
		Timeout:   60 * time.Second,
	}
}

// Print loads htmlPath in a headless browser and writes the printed page to
// pdfPath.
func (p *PDFPrinter) Print(ctx context.Context, htmlPath, pdfPath string) error {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("pdf: resolve %q: %w", htmlPath, err)
	}
	p.logger.Info("[pdf] Using browser binary: %s", p.chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if p.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(p.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	var pdf []byte
	err = p.retry.DoContext(ctx, "pdf print", func(ctx context.Context) error {
		tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
		defer cancelTab()
		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, p.Timeout)
		defer cancelTimeout()

		return chromedp.Run(tabCtx,
			chromedp.Navigate("file://"+filepath.ToSlash(abs)),
			chromedp.WaitReady("body"),
			chromedp.ActionFunc(func(ctx context.Context) error {
				buf, _, err := page.PrintToPDF().
					WithPrintBackground(true).
					WithPaperWidth(8.5).
					WithPaperHeight(11).
					Do(ctx)
				if err != nil {
					return err
				}
				pdf = buf
				return nil
			}),
		)
	})
	if err != nil {
		return fmt.Errorf("pdf: %w", err)
	}

	if err := os.WriteFile(pdfPath, pdf, 0644); err != nil {
		return fmt.Errorf("pdf: write %q: %w", pdfPath, err)
	}
	p.logger.Info("[pdf] Report written to %s (%d bytes)", pdfPath, len(pdf))
	return nil
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
