package main

import (
	"strings"
	"time"
)

// selectPeriods maps a target day onto the slice of forecast periods that
// answer it. Periods come back from the forecast service in chronological
// order and that order is preserved here. An empty result means the request
// falls outside the forecast horizon; the composer turns that into a
// no-data response rather than an error.
func selectPeriods(forecast Forecast, day TargetDay) []ForecastPeriod {
	if len(forecast) == 0 {
		return nil
	}
	switch day {
	case TargetToday, TargetUnspecified:
		return forecast[:1]
	case TargetTomorrow:
		next := forecast[0].StartTime.Weekday() + 1
		if next > time.Saturday {
			next = time.Sunday
		}
		if target, ok := targetDayForWeekday(next); ok {
			return selectPeriods(forecast, target)
		}
		return nil
	case TargetWeekend:
		// Weekend membership is decided by StartTime, not the period name,
		// so a Saturday period the NWS labels "Today" or "Tonight" is still
		// included.
		var periods []ForecastPeriod
		for _, p := range forecast {
			wd := p.StartTime.Weekday()
			if wd == time.Saturday || wd == time.Sunday {
				periods = append(periods, p)
			}
		}
		return periods
	case TargetWeek:
		return forecast
	default:
		weekday, ok := day.Weekday()
		if !ok {
			return forecast[:1]
		}
		return matchWeekday(forecast, weekday)
	}
}

// matchWeekday finds the periods named after the given weekday. NWS names
// periods "Sunday" and "Sunday Night"; when both are present the daytime
// period is preferred, since questions about a day mean the day unless they
// say otherwise.
func matchWeekday(forecast Forecast, weekday time.Weekday) []ForecastPeriod {
	name := strings.ToLower(weekday.String())
	var night *ForecastPeriod
	for i := range forecast {
		p := forecast[i]
		if !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if p.IsDaytime {
			return []ForecastPeriod{p}
		}
		if night == nil {
			night = &forecast[i]
		}
	}
	if night != nil {
		return []ForecastPeriod{*night}
	}
	return nil
}
