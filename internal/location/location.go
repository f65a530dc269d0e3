package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"datapoint-forecast/internal/providers/datapoint"
	"datapoint-forecast/internal/types"
)

// Validation errors
var (
	ErrEmptyName = errors.New("location name must not be empty")
	ErrNotFound  = errors.New("location not found")
)

// NotFoundError is returned when no site in the list has the queried name
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("location %q not found in site list", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Service resolves human-readable place names to DataPoint site ids
type Service interface {
	// Resolve returns the site whose name exactly matches name
	Resolve(ctx context.Context, name string) (*types.Site, error)
	// ResolveAll resolves each name in order. Not-found misses are collected
	// and returned joined alongside the sites that did resolve.
	ResolveAll(ctx context.Context, names []string) ([]types.Site, error)
}

// SiteListProvider defines the interface for site list providers
type SiteListProvider interface {
	GetSiteList(ctx context.Context) (*datapoint.SiteListResponse, error)
}

// locationService implements the Service interface
type locationService struct {
	siteListProvider SiteListProvider
	logger           *slog.Logger
}

// NewLocationService creates a new location service backed by a DataPoint client
func NewLocationService(client *datapoint.Client, logger *slog.Logger) Service {
	return NewLocationServiceWithProviders(logger, client)
}

// NewLocationServiceWithProviders creates a new location service with a custom provider
// This is useful for testing with mock providers
func NewLocationServiceWithProviders(logger *slog.Logger, siteListProvider SiteListProvider) Service {
	return &locationService{
		siteListProvider: siteListProvider,
		logger:           logger.With("component", "location-service"),
	}
}

// Resolve fetches the full site list on every call and matches names exactly,
// including case.
func (s *locationService) Resolve(ctx context.Context, name string) (*types.Site, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	resp, err := s.siteListProvider.GetSiteList(ctx)
	if err != nil {
		s.logger.Error("failed to get site list", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get site list: %w", err)
	}

	sites, err := resp.Sites()
	if err != nil {
		return nil, fmt.Errorf("failed to read site list: %w", err)
	}

	for _, site := range sites {
		if site.Name == name {
			s.logger.Debug("resolved location", "name", name, "id", site.ID)
			return translateSite(site), nil
		}
	}

	s.logger.Debug("location not found", "name", name, "site_count", len(sites))
	return nil, &NotFoundError{Name: name}
}

func (s *locationService) ResolveAll(ctx context.Context, names []string) ([]types.Site, error) {
	var (
		resolved []types.Site
		misses   []error
	)

	for _, name := range names {
		site, err := s.Resolve(ctx, name)
		if err != nil {
			if errors.Is(err, ErrNotFound) || errors.Is(err, ErrEmptyName) {
				misses = append(misses, err)
				continue
			}
			return nil, err
		}
		resolved = append(resolved, *site)
	}

	return resolved, errors.Join(misses...)
}

// translateSite converts a DataPoint site record to the domain Site type.
// Numeric fields that fail to parse are left at zero.
func translateSite(site datapoint.Site) *types.Site {
	lat, _ := strconv.ParseFloat(site.Latitude, 64)
	lon, _ := strconv.ParseFloat(site.Longitude, 64)
	elevation, _ := strconv.ParseFloat(site.Elevation, 64)

	return &types.Site{
		Location: types.Location{
			Name: site.Name,
			ID:   site.ID,
		},
		Latitude:        lat,
		Longitude:       lon,
		ElevationMeters: elevation,
		Region:          site.Region,
		UnitaryAuthArea: site.UnitaryAuthArea,
	}
}
