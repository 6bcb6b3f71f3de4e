// Package geocoding resolves postal addresses to coordinates through an
// external geocoding HTTP API.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/phrazzld/roam-api/internal/domain"
	"github.com/phrazzld/roam-api/internal/platform/logger"
)

// Sentinel errors returned by Geocode.
var (
	// ErrAddressNotFound indicates the provider returned no results for the address.
	ErrAddressNotFound = errors.New("could not find location for the specified address")

	// ErrProviderUnavailable indicates the provider could not be reached or
	// answered with a server error.
	ErrProviderUnavailable = errors.New("geocoding provider unavailable")
)

// Geocoder resolves a free-form address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Client is a Geocoder backed by a Nominatim-compatible search endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a geocoding client for the given base URL
// (e.g. "https://nominatim.openstreetmap.org"). If logger is nil, the
// default logger is used.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(slog.String("component", "geocoding")),
	}
}

var _ Geocoder = (*Client)(nil)

// searchResult is the subset of the provider's response we consume.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode implements Geocoder. It returns ErrAddressNotFound when the
// provider has no match and ErrProviderUnavailable on transport or
// server failures.
func (c *Client) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	reqURL := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", c.baseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("failed to build geocoding request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("geocoding request failed", slog.String("error", err.Error()))
		return domain.Coordinates{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		log.Error("geocoding provider returned non-OK status",
			slog.Int("status", resp.StatusCode))
		return domain.Coordinates{}, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		log.Error("failed to decode geocoding response", slog.String("error", err.Error()))
		return domain.Coordinates{}, fmt.Errorf("%w: invalid response: %v", ErrProviderUnavailable, err)
	}
	if len(results) == 0 {
		log.Debug("no geocoding results for address")
		return domain.Coordinates{}, ErrAddressNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: invalid latitude %q", ErrProviderUnavailable, results[0].Lat)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: invalid longitude %q", ErrProviderUnavailable, results[0].Lon)
	}

	return domain.Coordinates{Lat: lat, Lng: lng}, nil
}
