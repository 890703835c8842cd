package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ForecastService fetches the forecast for a set of coordinates.
type ForecastService interface {
	Fetch(ctx context.Context, coords Coordinates) (Forecast, error)
}

// NWSForecastService is a ForecastService backed by the National Weather
// Service API. Fetching is a two-step protocol: the points endpoint maps
// coordinates to a gridpoint and returns the forecast URL, which is then
// fetched for the periods. The NWS asks clients to identify themselves with
// a User-Agent and to keep request rates modest.
type NWSForecastService struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewNWSForecastService(baseURL, userAgent string, httpClient *http.Client) *NWSForecastService {
	return &NWSForecastService{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(2), 4),
	}
}

type nwsPointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

type nwsForecastResponse struct {
	Properties struct {
		Periods []nwsPeriod `json:"periods"`
	} `json:"properties"`
}

type nwsPeriod struct {
	Number           int       `json:"number"`
	Name             string    `json:"name"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	IsDaytime        bool      `json:"isDaytime"`
	Temperature      int       `json:"temperature"`
	TemperatureUnit  string    `json:"temperatureUnit"`
	ShortForecast    string    `json:"shortForecast"`
	DetailedForecast string    `json:"detailedForecast"`
}

func (s *NWSForecastService) Fetch(ctx context.Context, coords Coordinates) (Forecast, error) {
	pointsURL := fmt.Sprintf("%s/points/%.4f,%.4f", s.baseURL, coords.Latitude, coords.Longitude)
	var points nwsPointsResponse
	if err := s.getJSON(ctx, pointsURL, &points); err != nil {
		return nil, fmt.Errorf("couldn't resolve gridpoint: %w", err)
	}
	if points.Properties.Forecast == "" {
		return nil, fmt.Errorf("points response for %.4f,%.4f carried no forecast URL", coords.Latitude, coords.Longitude)
	}

	var forecastResp nwsForecastResponse
	if err := s.getJSON(ctx, points.Properties.Forecast, &forecastResp); err != nil {
		return nil, fmt.Errorf("couldn't fetch forecast: %w", err)
	}
	if len(forecastResp.Properties.Periods) == 0 {
		return nil, fmt.Errorf("forecast response carried no periods")
	}

	forecast := make(Forecast, 0, len(forecastResp.Properties.Periods))
	for _, p := range forecastResp.Properties.Periods {
		forecast = append(forecast, ForecastPeriod{
			Name:             p.Name,
			StartTime:        p.StartTime,
			EndTime:          p.EndTime,
			IsDaytime:        p.IsDaytime,
			Temperature:      p.Temperature,
			TemperatureUnit:  p.TemperatureUnit,
			ShortForecast:    p.ShortForecast,
			DetailedForecast: p.DetailedForecast,
		})
	}
	return forecast, nil
}

func (s *NWSForecastService) getJSON(ctx context.Context, requestURL string, out any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait interrupted: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("couldn't create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("couldn't reach weather service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather service returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("couldn't decode weather service response: %w", err)
	}
	return nil
}
