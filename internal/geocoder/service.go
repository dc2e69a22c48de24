package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"campground_backend/platform/config"
	"campground_backend/platform/logger"
)

// Service wraps a Nominatim-compatible address-to-coordinates lookup.
// An empty result set is not an error at this level; callers decide whether
// "no match" is a validation failure.
type Service struct {
	client       *http.Client
	baseURL      string
	countryCodes string
	limit        int
	userAgent    string
	log          *logger.Logger
}

// NewService creates a geocoding service from configuration. The HTTP client
// carries an explicit timeout so a hung upstream cannot hang the request.
func NewService(cfg config.GeocoderConfig, log *logger.Logger) *Service {
	limit := cfg.GetGeocoderLimit()
	if limit < 1 {
		limit = 5
	}
	return &Service{
		client:       &http.Client{Timeout: 5 * time.Second},
		baseURL:      cfg.GetGeocoderBaseURL(),
		countryCodes: cfg.GetGeocoderCountryCodes(),
		limit:        limit,
		userAgent:    cfg.GetGeocoderUserAgent(),
		log:          log,
	}
}

// Geocode resolves a free-text location into zero or more results.
func (s *Service) Geocode(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("limit", strconv.Itoa(s.limit))
	if s.countryCodes != "" {
		params.Add("countrycodes", s.countryCodes)
	}

	reqURL := fmt.Sprintf("%s?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.UpstreamError("geocoder", "search", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		s.log.Error("geocoder upstream error", "status", resp.StatusCode)
		return nil, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var rawResults []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&rawResults); err != nil {
		s.log.Error("failed to decode geocoder payload", "error", err)
		return nil, err
	}

	results := make([]Result, 0, len(rawResults))
	for _, raw := range rawResults {
		result, ok := buildResult(raw)
		if !ok {
			continue
		}

		results = append(results, result)
	}

	return results, nil
}

// buildResult converts a raw payload entry, dropping entries whose
// coordinates don't parse so partial results never escape this package.
func buildResult(raw nominatimResponse) (Result, bool) {
	if raw.DisplayName == "" {
		return Result{}, false
	}

	lat, err := strconv.ParseFloat(raw.Lat, 64)
	if err != nil {
		return Result{}, false
	}
	lon, err := strconv.ParseFloat(raw.Lon, 64)
	if err != nil {
		return Result{}, false
	}

	return Result{
		Latitude:         lat,
		Longitude:        lon,
		FormattedAddress: raw.DisplayName,
	}, true
}
