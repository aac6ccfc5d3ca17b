package services

import (
	"reflect"
	"testing"
	"time"

	"texas-market-sim/generator"
	"texas-market-sim/regions"
	"texas-market-sim/utils"
)

func TestBatchMatchesSingleRegion(t *testing.T) {
	svc := NewBatchService(regions.Builtin(), 4, 0, utils.NewNopLogger())
	names := regions.Names()
	results := svc.Run(names, generator.StartYear, generator.EndYear, 42)

	if len(results) != len(names) {
		t.Fatalf("results: got %d, want %d", len(results), len(names))
	}
	for i, res := range results {
		if res.Name != names[i] {
			t.Errorf("result %d: got %q, want %q", i, res.Name, names[i])
		}
		want := generator.Generate(regions.Resolve(names[i]), generator.StartYear, generator.EndYear, 42)
		if !reflect.DeepEqual(res.Series, want) {
			t.Errorf("%s: batch series differs from single-region generation", res.Name)
		}
	}
}

func TestBatchDeduplicates(t *testing.T) {
	svc := NewBatchService(regions.Builtin(), 2, 0, utils.NewNopLogger())
	results := svc.Run([]string{"West Texas", "Austin Area", "West Texas"}, 2002, 2005, 1)

	if len(results) != 2 {
		t.Fatalf("results: got %d, want 2", len(results))
	}
	if results[0].Name != "West Texas" || results[1].Name != "Austin Area" {
		t.Errorf("order: got %q, %q", results[0].Name, results[1].Name)
	}
}

func TestBatchUnknownRegion(t *testing.T) {
	svc := NewBatchService(regions.Builtin(), 1, 0, utils.NewNopLogger())
	results := svc.Run([]string{"Atlantis"}, 2002, 2003, 1)

	if len(results) != 1 {
		t.Fatalf("results: got %d, want 1", len(results))
	}
	if results[0].Name != "Atlantis" {
		t.Errorf("Name: got %q, want Atlantis", results[0].Name)
	}
	if !reflect.DeepEqual(results[0].Profile, regions.Default()) {
		t.Errorf("Profile: got %+v, want the default profile", results[0].Profile)
	}
	if len(results[0].Series) != 2 {
		t.Errorf("rows: got %d, want 2", len(results[0].Series))
	}
}

func TestBatchRateLimit(t *testing.T) {
	svc := NewBatchService(regions.Builtin(), 3, 40, utils.NewNopLogger())
	names := []string{"West Texas", "Austin Area", "El Paso Area"}

	start := time.Now()
	results := svc.Run(names, 2002, 2003, 1)
	elapsed := time.Since(start)

	if len(results) != 3 {
		t.Fatalf("results: got %d, want 3", len(results))
	}
	// Three starts spaced 40ms apart take at least 80ms after the first.
	if elapsed < 80*time.Millisecond {
		t.Errorf("elapsed: got %v, want at least 80ms", elapsed)
	}
}
