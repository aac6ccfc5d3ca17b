package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"texas-market-sim/models"
)

const (
	SeriesSheet  = "Series"
	ProfileSheet = "Profile"
)

// XLSXWriter writes a generated series and its region profile to an Excel
// workbook. The workbook is saved on every Write.
type XLSXWriter struct {
	mu      sync.Mutex
	path    string
	file    *excelize.File
	profile models.RegionProfile
}

// NewXLSXWriter prepares a workbook at path with the Series and Profile
// sheets. Nothing is written to disk until Write.
func NewXLSXWriter(path string, p models.RegionProfile) (*XLSXWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("xlsx: create output dir: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SeriesSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(ProfileSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: add sheet: %w", err)
	}

	return &XLSXWriter{path: path, file: f, profile: p.Clone()}, nil
}

func (x *XLSXWriter) Path() string { return x.path }

// Write fills both sheets and saves the workbook.
func (x *XLSXWriter) Write(region string, s models.Series) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if err := x.writeSeries(s); err != nil {
		return err
	}
	if err := x.writeProfile(region); err != nil {
		return err
	}
	if err := x.file.SaveAs(x.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", x.path, err)
	}
	return nil
}

func (x *XLSXWriter) writeSeries(s models.Series) error {
	header := Header()
	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := x.file.SetSheetRow(SeriesSheet, "A1", &hdr); err != nil {
		return fmt.Errorf("xlsx: write header: %w", err)
	}

	bold, err := x.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}
	if err := x.file.SetRowStyle(SeriesSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}

	last, _ := excelize.ColumnNumberToName(len(header))
	if err := x.file.SetColWidth(SeriesSheet, "A", last, 18); err != nil {
		return fmt.Errorf("xlsx: column width: %w", err)
	}

	for i, r := range s {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: cell name: %w", err)
		}
		row := make([]any, 0, len(header))
		row = append(row, r.Year)
		for _, v := range r.Values() {
			row = append(row, v)
		}
		if err := x.file.SetSheetRow(SeriesSheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: write row %d: %w", r.Year, err)
		}
	}

	return x.file.SetPanes(SeriesSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}

func (x *XLSXWriter) writeProfile(region string) error {
	p := x.profile
	if region == "" {
		region = p.Name
	}
	rows := [][]any{
		{"Field", "Value"},
		{"Region", region},
		{"Population base", p.PopulationBase},
		{"Budget base (M USD)", p.BudgetBase},
		{"Economic type", string(p.Type)},
		{"Specialties", strings.Join(p.Specialties.Strings(), ", ")},
		{"Price base (USD/m2)", p.PriceBase},
		{"Market segment", string(p.Segment)},
		{"Currency", p.Currency},
		{"Major cities", strings.Join(p.MajorCities, ", ")},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := x.file.SetSheetRow(ProfileSheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: write profile: %w", err)
		}
	}
	if err := x.file.SetColWidth(ProfileSheet, "A", "B", 28); err != nil {
		return fmt.Errorf("xlsx: column width: %w", err)
	}
	return nil
}

// Close releases the workbook.
func (x *XLSXWriter) Close() error {
	return x.file.Close()
}
