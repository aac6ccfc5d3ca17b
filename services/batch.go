package services

import (
	"texas-market-sim/generator"
	"texas-market-sim/models"
	"texas-market-sim/regions"
	"texas-market-sim/utils"
)

// RegionResult is the generated series of one requested region. Name is the
// name as requested; Profile.Name is "default" for unknown names.
type RegionResult struct {
	Name    string
	Profile models.RegionProfile
	Series  models.Series
}

// BatchService generates several regions concurrently. Each region draws
// from its own noise stream, so a region's series does not depend on which
// other regions are in the batch.
type BatchService struct {
	catalog     *regions.Catalog
	workers     int
	rateLimitMs int
	logger      *utils.Logger
}

// NewBatchService returns a runner using up to workers goroutines. A positive
// rateLimitMs spaces region starts at least that many milliseconds apart.
func NewBatchService(catalog *regions.Catalog, workers, rateLimitMs int, logger *utils.Logger) *BatchService {
	return &BatchService{catalog: catalog, workers: workers, rateLimitMs: rateLimitMs, logger: logger}
}

// Run generates every distinct name in names for the years start..end and
// returns the results in first-seen order.
func (b *BatchService) Run(names []string, start, end int, seed uint64) []RegionResult {
	seen := utils.NewNameSet()
	var unique []string
	for _, n := range names {
		if seen.Add(n) {
			unique = append(unique, n)
		} else {
			b.logger.Warn("[batch] Skipping duplicate region %q", n)
		}
	}

	results := make([]RegionResult, len(unique))
	pool := utils.NewWorkerPool(b.workers, b.rateLimitMs)
	for i, name := range unique {
		if !b.catalog.Known(name) {
			b.logger.Warn("[batch] Unknown region %q, using the default profile", name)
		}
		p := b.catalog.Resolve(name)
		pool.Submit(func() {
			results[i] = RegionResult{
				Name:    name,
				Profile: p,
				Series:  generator.Generate(p, start, end, seed),
			}
			b.logger.Debug("[batch] %s: %d rows", name, len(results[i].Series))
		})
	}
	pool.Wait()

	b.logger.Info("[batch] Generated %d regions (%d-%d, seed %d)", len(results), start, end, seed)
	return results
}
