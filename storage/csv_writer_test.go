package storage

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"texas-market-sim/generator"
	"texas-market-sim/models"
	"texas-market-sim/regions"
)

func sampleSeries(t *testing.T) models.Series {
	t.Helper()
	p := regions.Resolve("Houston Metro")
	return generator.Generate(p, generator.StartYear, generator.EndYear, 42)
}

func TestHeader(t *testing.T) {
	h := Header()
	require.Len(t, h, 30)
	assert.Equal(t, "Year", h[0])
	assert.Equal(t, "Population", h[1])
	assert.Equal(t, "Price_per_Sqft", h[19])
	assert.Equal(t, "Agricultural_Investment", h[29])
}

func TestCSVRoundTrip(t *testing.T) {
	s := sampleSeries(t)
	path := filepath.Join(t.TempDir(), "nested", "houston_metro_texas_data_2002_2025.csv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write("Houston Metro", s))
	require.NoError(t, w.Close())

	got, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestCSVPlainDecimals(t *testing.T) {
	row := models.NewYearRow(2002)
	row.Set(models.Population, 7300000)
	row.Set(models.DebtToRevenueRatio, 0.000001)
	row.Set(models.BudgetSurplusDeficit, -12.5)

	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write("x", models.Series{row}))
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)

	data := lines[1]
	assert.True(t, strings.HasPrefix(data, "2002,7300000,"), data)
	assert.Contains(t, data, ",0.000001,")
	assert.Contains(t, data, ",-12.5,")
	assert.NotContains(t, data, "e+")
	assert.NotContains(t, data, "e-")
}

func TestCSVEmptySeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write("x", nil))
	require.NoError(t, w.Close())

	got, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadCSVErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadCSV(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	header := strings.Join(Header(), ",")
	row := func(year, v string) string {
		return year + strings.Repeat(","+v, len(Header())-1) + "\n"
	}

	tests := []struct {
		name    string
		content string
	}{
		{"no year column", "Population\n1\n"},
		{"bad year", header + "\n" + row("abc", "1")},
		{"bad value", header + "\n" + row("2002", "many")},
		{"gap", header + "\n" + row("2002", "1") + row("2004", "2")},
		{"missing indicator", "Year,Population\n2002,1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := ReadCSV(path)
			assert.Error(t, err)
		})
	}
}

func TestReadCSVMissingColumns(t *testing.T) {
	h := Header()
	truncated := strings.Join(h[:len(h)-2], ",") + "\n2002" + strings.Repeat(",1", len(h)-3) + "\n"
	path := filepath.Join(t.TempDir(), "truncated.csv")
	require.NoError(t, os.WriteFile(path, []byte(truncated), 0o644))

	_, err := ReadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), h[len(h)-2])
	assert.Contains(t, err.Error(), h[len(h)-1])
}

func TestReadCSVReorderedColumns(t *testing.T) {
	h := Header()
	reversed := make([]string, len(h))
	values := make([]string, len(h))
	for i := range h {
		reversed[len(h)-1-i] = h[i]
		values[len(h)-1-i] = strconv.Itoa(i)
	}
	values[len(h)-1] = "2002"
	content := strings.Join(reversed, ",") + ",Extra\n" + strings.Join(values, ",") + ",x\n"
	path := filepath.Join(t.TempDir(), "reordered.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, s, 1)
	assert.Equal(t, 2002, s[0].Year)
	assert.Equal(t, 1.0, s[0].Value(models.Indicators()[0]))
}
