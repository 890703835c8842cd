package main

import (
	"time"
)

// This file defines the domain types shared across the query pipeline:
// the parsed intent extracted from a raw question, the forecast data
// returned by the upstream weather source, and the final answer envelope.

// Source identifies which extraction path produced a value.
type Source string

const (
	SourceAI        Source = "ai"
	SourceRuleBased Source = "rule_based"
)

// TargetDay is the day (or day range) a query asks about. Weekday values are
// the lowercase English day names so they can be matched directly against
// forecast period names.
type TargetDay string

const (
	TargetToday       TargetDay = "today"
	TargetTomorrow    TargetDay = "tomorrow"
	TargetMonday      TargetDay = "monday"
	TargetTuesday     TargetDay = "tuesday"
	TargetWednesday   TargetDay = "wednesday"
	TargetThursday    TargetDay = "thursday"
	TargetFriday      TargetDay = "friday"
	TargetSaturday    TargetDay = "saturday"
	TargetSunday      TargetDay = "sunday"
	TargetWeekend     TargetDay = "this_weekend"
	TargetWeek        TargetDay = "this_week"
	TargetUnspecified TargetDay = "unspecified"
)

var weekdayNames = map[TargetDay]time.Weekday{
	TargetMonday:    time.Monday,
	TargetTuesday:   time.Tuesday,
	TargetWednesday: time.Wednesday,
	TargetThursday:  time.Thursday,
	TargetFriday:    time.Friday,
	TargetSaturday:  time.Saturday,
	TargetSunday:    time.Sunday,
}

// Weekday returns the weekday a TargetDay names, if it names one.
func (d TargetDay) Weekday() (time.Weekday, bool) {
	wd, ok := weekdayNames[d]
	return wd, ok
}

// targetDayForWeekday is the inverse of Weekday.
func targetDayForWeekday(wd time.Weekday) (TargetDay, bool) {
	for day, w := range weekdayNames {
		if w == wd {
			return day, true
		}
	}
	return TargetUnspecified, false
}

// WeatherAspect is the weather condition a query asks about.
type WeatherAspect string

const (
	AspectRain        WeatherAspect = "rain"
	AspectSnow        WeatherAspect = "snow"
	AspectTemperature WeatherAspect = "temperature"
	AspectWind        WeatherAspect = "wind"
	AspectGeneral     WeatherAspect = "general"
)

// QuestionType distinguishes yes/no questions ("Will it rain...?") from
// open-ended ones ("What's the weather...?").
type QuestionType string

const (
	QuestionYesNo         QuestionType = "yes_no"
	QuestionInformational QuestionType = "informational"
)

// Sourced pairs an extracted value with the path that produced it.
// Tracking provenance per field lets a partially valid AI extraction be
// repaired field-by-field instead of discarded wholesale.
type Sourced[T any] struct {
	Value  T
	Source Source
}

// ParsedQuery is the intent extracted from a raw weather question.
// TargetDay and Aspect are always concrete (TargetUnspecified / AspectGeneral
// stand in for absence); Location may legitimately be empty.
type ParsedQuery struct {
	Location     Sourced[string]
	TargetDay    Sourced[TargetDay]
	Aspect       Sourced[WeatherAspect]
	QuestionType Sourced[QuestionType]
}

// AIEnhanced reports whether any field was extracted by the AI path.
func (q ParsedQuery) AIEnhanced() bool {
	return q.Location.Source == SourceAI ||
		q.TargetDay.Source == SourceAI ||
		q.Aspect.Source == SourceAI ||
		q.QuestionType.Source == SourceAI
}

// Coordinates is a geocoded point. Latitude is in [-90, 90], longitude in
// [-180, 180]. It lives only for the duration of a single request.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ForecastPeriod is one named slot of an upstream forecast ("Sunday",
// "Sunday Night", "Tonight"). The upstream delivers periods in chronological
// order and the period selector depends on that ordering.
type ForecastPeriod struct {
	Name             string    `json:"name"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	IsDaytime        bool      `json:"is_daytime"`
	Temperature      int       `json:"temperature"`
	TemperatureUnit  string    `json:"temperature_unit"`
	ShortForecast    string    `json:"short_forecast"`
	DetailedForecast string    `json:"detailed_forecast"`
}

// Forecast is the ordered multi-period forecast for one location.
type Forecast []ForecastPeriod

// Answer is the final envelope assembled once per request. It is handed
// unchanged to the conversation store and to the caller.
type Answer struct {
	ResponseText string
	Query        string
	UserID       string
	SessionID    string
	Timestamp    time.Time
	AIEnhanced   bool
}

// QueryRequest is the inbound request body for POST /api/weather.
type QueryRequest struct {
	Query     string `json:"query"`
	UserID    string `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// QueryResponse is the outbound body, echoing the request fields.
type QueryResponse struct {
	Response   string `json:"response"`
	Query      string `json:"query"`
	UserID     string `json:"user_id,omitempty"`
	SessionID  string `json:"session_id,omitempty"`
	Timestamp  string `json:"timestamp"`
	AIEnhanced bool   `json:"ai_enhanced"`
}

// HealthResponse is returned by /api/healthz.
type HealthResponse struct {
	Status         string `json:"status"`
	Service        string `json:"service"`
	Version        string `json:"version"`
	AIModelEnabled bool   `json:"ai_model_enabled"`
}

// ConfigResponse exposes runtime configuration to clients in dev mode.
type ConfigResponse struct {
	DevMode         bool   `json:"dev_mode"`
	AIModelEnabled  bool   `json:"ai_model_enabled"`
	ModelID         string `json:"model_id,omitempty"`
	RefreshInterval string `json:"refresh_interval"`
	PruneInterval   string `json:"prune_interval"`
	RetentionWindow string `json:"retention_window"`
	DefaultLocation string `json:"default_location,omitempty"`
}
