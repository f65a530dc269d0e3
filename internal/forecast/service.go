// Package forecast retrieves 3-hourly forecasts and flattens them into one
// table row per (location, period, report).
package forecast

import (
	"context"
	"fmt"
	"log/slog"

	"datapoint-forecast/internal/providers/datapoint"
	"datapoint-forecast/internal/table"
)

// LocationIDColumn is added to every row with the id of the requested site
const LocationIDColumn = "Location_ID"

// Service fetches forecasts for a list of sites
type Service interface {
	// Fetch returns one row per report across all ids, in request order.
	// Any failure aborts the whole fetch.
	Fetch(ctx context.Context, locationIDs []string) (*table.Table, error)
}

// ForecastProvider defines the interface for 3-hourly forecast providers
type ForecastProvider interface {
	GetThreeHourlyForecast(ctx context.Context, locationID string) (*datapoint.ForecastResponse, error)
}

type forecastService struct {
	provider ForecastProvider
	logger   *slog.Logger
}

// NewForecastService creates a new forecast service backed by a DataPoint client
func NewForecastService(client *datapoint.Client, logger *slog.Logger) Service {
	return NewForecastServiceWithProvider(logger, client)
}

// NewForecastServiceWithProvider creates a forecast service with a custom provider
// This is useful for testing with mock providers
func NewForecastServiceWithProvider(logger *slog.Logger, provider ForecastProvider) Service {
	return &forecastService{
		provider: provider,
		logger:   logger.With("component", "forecast-service"),
	}
}

func (s *forecastService) Fetch(ctx context.Context, locationIDs []string) (*table.Table, error) {
	out, err := table.New()
	if err != nil {
		return nil, err
	}

	for _, id := range locationIDs {
		resp, err := s.provider.GetThreeHourlyForecast(ctx, id)
		if err != nil {
			s.logger.Error("failed to get forecast", "location_id", id, "error", err)
			return nil, fmt.Errorf("failed to get forecast for location %s: %w", id, err)
		}

		periods, err := resp.Periods()
		if err != nil {
			return nil, fmt.Errorf("failed to read forecast for location %s: %w", id, err)
		}

		before := out.Len()
		for _, period := range periods {
			for _, rep := range period.Rep {
				out.AppendRecord(toRecord(rep, id))
			}
		}

		s.logger.Debug("flattened forecast",
			"location_id", id,
			"periods", len(periods),
			"rows", out.Len()-before,
		)
	}

	s.logger.Info("fetched forecasts", "locations", len(locationIDs), "rows", out.Len())

	return out, nil
}

// toRecord converts a report into a table record and tags it with its site id
func toRecord(rep datapoint.Report, locationID string) table.Record {
	rec := make(table.Record, 0, len(rep.Fields)+1)
	for _, f := range rep.Fields {
		cell := table.Text(f.Value)
		if f.Null {
			cell = table.Missing
		}
		rec = append(rec, table.Field{Name: f.Name, Cell: cell})
	}
	return append(rec, table.Field{Name: LocationIDColumn, Cell: table.Text(locationID)})
}
