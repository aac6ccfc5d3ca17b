package services

import (
	"fmt"
	"io"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"texas-market-sim/models"
)

var previewColumns = []models.Indicator{
	models.Population,
	models.MedianIncome,
	models.MedianHomePrice,
	models.PricePerSqft,
	models.AverageRent,
	models.RentalVacancyRate,
	models.TotalRevenue,
	models.TechInvestment,
}

// PrintPreview writes the first n rows of s as a table.
func PrintPreview(w io.Writer, s models.Series, n int) error {
	if n > len(s) {
		n = len(s)
	}

	header := make([]any, 0, len(previewColumns)+1)
	header = append(header, "Year")
	for _, ind := range previewColumns {
		header = append(header, ind.String())
	}

	rows := make([][]string, 0, n)
	for _, r := range s[:n] {
		row := make([]string, 0, len(header))
		row = append(row, fmt.Sprint(r.Year))
		for _, ind := range previewColumns {
			row = append(row, formatCell(ind, r.Value(ind)))
		}
		rows = append(rows, row)
	}

	table := tablewriter.NewWriter(w)
	table.Header(header...)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

func formatCell(ind models.Indicator, v float64) string {
	switch ind {
	case models.PricePerSqft, models.RentalVacancyRate:
		return fmt.Sprintf("%.2f", v)
	case models.TotalRevenue, models.TechInvestment:
		return humanize.CommafWithDigits(v, 1)
	default:
		return humanize.Comma(int64(math.Round(v)))
	}
}
