package datapoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// API Docs: https://www.metoffice.gov.uk/services/data/datapoint/api-reference
const (
	DefaultBaseURL = "http://datapoint.metoffice.gov.uk/public/data/"
	DefaultTimeout = 30 * time.Second

	forecastResource = "val/wxfcs/all/json"
	resolution       = "3hourly"
	maxErrorBody     = 512
)

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

func NewClient(opts Options, logger *slog.Logger) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
		logger:     logger.With("component", "datapoint-client"),
	}
}

// GetSiteList fetches every site that has a 3-hourly forecast
func (c *Client) GetSiteList(ctx context.Context) (*SiteListResponse, error) {
	var apiResp SiteListResponse
	if err := c.get(ctx, "sitelist", nil, &apiResp); err != nil {
		return nil, err
	}

	sites, err := apiResp.Sites()
	if err != nil {
		return nil, err
	}

	c.logger.Debug("successfully fetched site list", "site_count", len(sites))

	return &apiResp, nil
}

// GetThreeHourlyForecast fetches the multi-day 3-hourly forecast for a site
func (c *Client) GetThreeHourlyForecast(ctx context.Context, locationID string) (*ForecastResponse, error) {
	q := url.Values{}
	q.Set("res", resolution)

	var apiResp ForecastResponse
	if err := c.get(ctx, locationID, q, &apiResp); err != nil {
		return nil, err
	}

	periods, err := apiResp.Periods()
	if err != nil {
		return nil, err
	}

	c.logger.Debug("successfully fetched forecast",
		"location_id", locationID,
		"period_count", len(periods),
	)

	return &apiResp, nil
}

// get issues a single GET for resource and decodes the JSON body into out.
// The API key is added here and never logged.
func (c *Client) get(ctx context.Context, resource string, query url.Values, out any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}
	u = u.JoinPath(forecastResource, resource)

	if query == nil {
		query = url.Values{}
	}
	logURL := u.String() + "?" + query.Encode()
	query.Set("key", c.apiKey)
	u.RawQuery = query.Encode()

	c.logger.Debug("fetching DataPoint resource", "url", logURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch DataPoint resource", "url", logURL, "error", redact(err))
		return &TransportError{Resource: resource, Err: redact(err)}
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("DataPoint API returned error",
			"status_code", resp.StatusCode,
			"url", logURL,
			"response_body", string(body),
		)
		return &TransportError{Resource: resource, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("failed to decode DataPoint response", "url", logURL, "error", err)
		return &ParseError{Resource: resource, Err: err}
	}

	return nil
}

// redact strips the request URL, which carries the API key, from transport errors
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
