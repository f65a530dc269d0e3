package datapoint

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(Options{APIKey: "test-key", BaseURL: srv.URL, Timeout: 2 * time.Second}, logger)
}

const forecastBody = `{
  "SiteRep": {
    "Wx": {"Param": [{"name": "W", "units": "", "$": "Weather Type"}]},
    "DV": {
      "dataDate": "2024-01-01T09:00:00Z",
      "type": "Forecast",
      "Location": {
        "i": "352409",
        "name": "LONDON",
        "Period": [
          {"type": "Day", "value": "2024-01-01Z", "Rep": [
            {"D": "SSW", "T": "11", "W": "7", "$": "540"},
            {"D": "S", "T": 9, "W": "8", "$": "720"}
          ]},
          {"type": "Day", "value": "2024-01-02Z", "Rep": {"D": "N", "T": "4", "W": "1", "$": "0"}},
          {"type": "Day", "value": "2024-01-03Z"}
        ]
      }
    }
  }
}`

func TestClient_GetSiteList(t *testing.T) {
	var gotPath, gotKey string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_, _ = io.WriteString(w, `{"Locations": {"Location": [
			{"id": "352409", "name": "London", "latitude": "51.5081", "longitude": "-0.1248", "elevation": "5.0"},
			{"id": "310013", "name": "Manchester"}
		]}}`)
	})

	resp, err := client.GetSiteList(context.Background())
	if err != nil {
		t.Fatalf("GetSiteList() error = %v", err)
	}

	if gotPath != "/val/wxfcs/all/json/sitelist" {
		t.Errorf("request path = %q, want %q", gotPath, "/val/wxfcs/all/json/sitelist")
	}
	if gotKey != "test-key" {
		t.Errorf("key query param = %q, want %q", gotKey, "test-key")
	}

	sites, err := resp.Sites()
	if err != nil {
		t.Fatalf("Sites() error = %v", err)
	}
	if len(sites) != 2 {
		t.Fatalf("Sites() returned %d sites, want 2", len(sites))
	}
	if sites[0].Name != "London" || sites[0].ID != "352409" || sites[0].Latitude != "51.5081" {
		t.Errorf("sites[0] = %+v, want London/352409/51.5081", sites[0])
	}
}

func TestClient_GetSiteList_SingleObject(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"Locations": {"Location": {"id": "1", "name": "Only"}}}`)
	})

	resp, err := client.GetSiteList(context.Background())
	if err != nil {
		t.Fatalf("GetSiteList() error = %v", err)
	}
	sites, _ := resp.Sites()
	if len(sites) != 1 || sites[0].Name != "Only" {
		t.Errorf("Sites() = %+v, want single site Only", sites)
	}
}

func TestClient_GetThreeHourlyForecast(t *testing.T) {
	var gotPath, gotRes string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRes = r.URL.Query().Get("res")
		_, _ = io.WriteString(w, forecastBody)
	})

	resp, err := client.GetThreeHourlyForecast(context.Background(), "352409")
	if err != nil {
		t.Fatalf("GetThreeHourlyForecast() error = %v", err)
	}

	if gotPath != "/val/wxfcs/all/json/352409" {
		t.Errorf("request path = %q, want %q", gotPath, "/val/wxfcs/all/json/352409")
	}
	if gotRes != "3hourly" {
		t.Errorf("res query param = %q, want %q", gotRes, "3hourly")
	}

	periods, err := resp.Periods()
	if err != nil {
		t.Fatalf("Periods() error = %v", err)
	}
	if len(periods) != 3 {
		t.Fatalf("Periods() returned %d periods, want 3", len(periods))
	}

	wantReps := []int{2, 1, 0}
	for i, p := range periods {
		if len(p.Rep) != wantReps[i] {
			t.Errorf("periods[%d] has %d reports, want %d", i, len(p.Rep), wantReps[i])
		}
	}

	wantFields := []Field{
		{Name: "D", Value: "S"},
		{Name: "T", Value: "9"},
		{Name: "W", Value: "8"},
		{Name: "$", Value: "720"},
	}
	if diff := cmp.Diff(wantFields, periods[0].Rep[1].Fields); diff != "" {
		t.Errorf("report fields mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     any
		errContains string
	}{
		{
			name:        "non-200 status is a transport error",
			status:      http.StatusForbidden,
			body:        "invalid key",
			wantErr:     &TransportError{},
			errContains: "status 403",
		},
		{
			name:        "malformed json is a parse error",
			status:      http.StatusOK,
			body:        `{"SiteRep": `,
			wantErr:     &ParseError{},
			errContains: "failed to decode",
		},
		{
			name:        "missing DV container is a parse error",
			status:      http.StatusOK,
			body:        `{"SiteRep": {"Wx": {}}}`,
			wantErr:     &ParseError{},
			errContains: "SiteRep.DV",
		},
		{
			name:        "missing Period list is a parse error",
			status:      http.StatusOK,
			body:        `{"SiteRep": {"DV": {"Location": {"i": "1"}}}}`,
			wantErr:     &ParseError{},
			errContains: "Period",
		},
		{
			name:        "nested report value is a parse error",
			status:      http.StatusOK,
			body:        `{"SiteRep": {"DV": {"Location": {"Period": {"Rep": {"W": {"x": 1}}}}}}}`,
			wantErr:     &ParseError{},
			errContains: "not a scalar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.GetThreeHourlyForecast(context.Background(), "1")
			if err == nil {
				t.Fatal("GetThreeHourlyForecast() expected error, got nil")
			}

			switch tt.wantErr.(type) {
			case *TransportError:
				var transportErr *TransportError
				if !errors.As(err, &transportErr) {
					t.Errorf("error = %T, want *TransportError", err)
				}
			case *ParseError:
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("error = %T, want *ParseError", err)
				}
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error = %v, want error containing %q", err, tt.errContains)
			}
		})
	}
}

func TestClient_TransportFailureHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient(Options{APIKey: "secret-key", BaseURL: baseURL}, logger)

	_, err := client.GetSiteList(context.Background())
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("GetSiteList() error = %v, want *TransportError", err)
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Errorf("error message leaks API key: %v", err)
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, forecastBody)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetThreeHourlyForecast(ctx, "352409")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("GetThreeHourlyForecast() error = %v, want context.Canceled", err)
	}
}
