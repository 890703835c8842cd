package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"
)

// ErrNoResultsFound is returned when the geocoding provider has no match for
// the given place name.
var ErrNoResultsFound = errors.New("no results found for the given place name")

// GeocodingService resolves a place name to geographic coordinates.
type GeocodingService interface {
	Geocode(ctx context.Context, placeName string) (Coordinates, error)
}

// NominatimGeocodingService is a GeocodingService backed by the OpenStreetMap
// Nominatim API. Nominatim's usage policy allows at most one request per
// second, enforced here with a rate limiter shared across goroutines.
type NominatimGeocodingService struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewNominatimGeocodingService(baseURL, userAgent string, httpClient *http.Client) *NominatimGeocodingService {
	return &NominatimGeocodingService{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(1), 1),
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (s *NominatimGeocodingService) Geocode(ctx context.Context, placeName string) (Coordinates, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return Coordinates{}, fmt.Errorf("rate limiter wait interrupted: %w", err)
	}

	requestURL := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", s.baseURL, url.QueryEscape(placeName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("couldn't create geocoding request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("couldn't reach geocoding service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("geocoding service returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Coordinates{}, fmt.Errorf("couldn't decode geocoding response: %w", err)
	}
	if len(results) == 0 {
		return Coordinates{}, ErrNoResultsFound
	}

	// Nominatim encodes coordinates as strings.
	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("couldn't parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("couldn't parse longitude %q: %w", results[0].Lon, err)
	}
	return Coordinates{Latitude: lat, Longitude: lon}, nil
}
