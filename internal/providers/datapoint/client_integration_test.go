//go:build integration

package datapoint

import (
	"context"
	"log/slog"
	"os"
	"testing"
)

func newIntegrationClient(t *testing.T) *Client {
	t.Helper()
	apiKey := os.Getenv("DATAPOINT_FORECAST_DATAPOINT_APIKEY")
	if apiKey == "" {
		t.Skip("DATAPOINT_FORECAST_DATAPOINT_APIKEY not set")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return NewClient(Options{APIKey: apiKey}, logger)
}

func TestClient_GetSiteList_Integration(t *testing.T) {
	client := newIntegrationClient(t)

	t.Log("Making API call to DataPoint sitelist endpoint...")

	resp, err := client.GetSiteList(context.Background())
	if err != nil {
		t.Fatalf("Failed to get site list: %v", err)
	}

	sites, err := resp.Sites()
	if err != nil {
		t.Fatalf("Failed to read sites: %v", err)
	}
	if len(sites) == 0 {
		t.Fatal("No sites returned")
	}

	first := sites[0]
	t.Logf("Site List Details:")
	t.Logf("  Site Count: %d", len(sites))
	t.Logf("  Sample Site: %s (%s) at %s,%s", first.Name, first.ID, first.Latitude, first.Longitude)
}

func TestClient_GetThreeHourlyForecast_Integration(t *testing.T) {
	client := newIntegrationClient(t)
	locationID := "352409" // London

	t.Logf("Making API call to DataPoint 3-hourly forecast for %s...", locationID)

	resp, err := client.GetThreeHourlyForecast(context.Background(), locationID)
	if err != nil {
		t.Fatalf("Failed to get forecast: %v", err)
	}

	periods, err := resp.Periods()
	if err != nil {
		t.Fatalf("Failed to read periods: %v", err)
	}
	if len(periods) == 0 {
		t.Fatal("No periods returned")
	}

	t.Logf("Forecast Details:")
	t.Logf("  Period Count: %d", len(periods))
	for _, p := range periods {
		t.Logf("  %s: %d reports", p.Value, len(p.Rep))
	}
}
