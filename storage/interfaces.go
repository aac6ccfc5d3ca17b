package storage

import "texas-market-sim/models"

// SeriesWriter is the interface any export backend must satisfy.
type SeriesWriter interface {
	Write(region string, s models.Series) error
	Close() error
}

// SeriesReader loads a previously exported series back.
type SeriesReader interface {
	FetchSeries(region string) (models.Series, error)
}
