package wsdot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://www.wsdot.wa.gov/Ferries/API"

// HTTPClient implements Client against the WSDOT Ferries REST API.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient creates a client with the default endpoint and a
// 12-second per-request budget.
func NewHTTPClient(apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 12 * time.Second,
		},
	}
}

// NewHTTPClientWithBase creates a client against a custom endpoint,
// used by tests with an httptest server.
func NewHTTPClientWithBase(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ScheduleToday retrieves today's schedule for a route. The API wraps
// the schedule in a single-element array for some routes; both shapes
// are accepted.
func (c *HTTPClient) ScheduleToday(ctx context.Context, routeID int) (*Schedule, error) {
	path := fmt.Sprintf("/Schedule/rest/scheduletoday/%d/true", routeID)

	body, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var many []Schedule
	if err := json.Unmarshal(body, &many); err == nil {
		if len(many) == 0 {
			return &Schedule{}, nil
		}
		return &many[0], nil
	}

	var one Schedule
	if err := json.Unmarshal(body, &one); err != nil {
		return nil, fmt.Errorf("decoding schedule: %w", err)
	}
	return &one, nil
}

// VesselLocations retrieves live positions for all vessels.
func (c *HTTPClient) VesselLocations(ctx context.Context) ([]VesselLocation, error) {
	body, err := c.get(ctx, "/Vessels/rest/vessellocations", nil)
	if err != nil {
		return nil, err
	}

	var locs []VesselLocation
	if err := json.Unmarshal(body, &locs); err != nil {
		return nil, fmt.Errorf("decoding vessel locations: %w", err)
	}
	return locs, nil
}

// TerminalSpace retrieves drive-up space for one terminal on a route.
func (c *HTTPClient) TerminalSpace(ctx context.Context, terminalID, routeID int) ([]TerminalSpace, error) {
	params := url.Values{}
	params.Set("terminalid", strconv.Itoa(terminalID))
	params.Set("route", strconv.Itoa(routeID))

	body, err := c.get(ctx, "/Terminals/rest/terminalsailingspace", params)
	if err != nil {
		return nil, err
	}

	var spaces []TerminalSpace
	if err := json.Unmarshal(body, &spaces); err != nil {
		return nil, fmt.Errorf("decoding terminal space: %w", err)
	}
	return spaces, nil
}

// VesselStats retrieves static capacity figures for all vessels.
func (c *HTTPClient) VesselStats(ctx context.Context) ([]VesselStat, error) {
	body, err := c.get(ctx, "/Vessels/rest/vesselstats", nil)
	if err != nil {
		return nil, err
	}

	var stats []VesselStat
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("decoding vessel stats: %w", err)
	}
	return stats, nil
}

// Routes retrieves the route listing.
func (c *HTTPClient) Routes(ctx context.Context) ([]Route, error) {
	body, err := c.get(ctx, "/Routes/rest/routes", nil)
	if err != nil {
		return nil, err
	}

	var routes []Route
	if err := json.Unmarshal(body, &routes); err != nil {
		return nil, fmt.Errorf("decoding routes: %w", err)
	}
	return routes, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apiaccesscode", c.apiKey)

	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}
	return body, nil
}
