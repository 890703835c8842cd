package main

import (
	"strings"
)

// This file implements the deterministic, rule-based extraction path of the
// query interpreter. It is total: every function returns a concrete value for
// any input, so the pipeline can always fall back on it when the AI path is
// disabled or misbehaves. All scans use a fixed order; the first match wins,
// which keeps extraction reproducible across runs.

// locationTriggers are the phrases that introduce a place name, checked in
// this order.
var locationTriggers = []string{" in ", " at ", " near ", " for "}

// locationStopWords terminate the captured place name.
var locationStopWords = map[string]struct{}{
	"on":       {},
	"today":    {},
	"tonight":  {},
	"tomorrow": {},
	"this":     {},
	"next":     {},
	"will":     {},
	"is":       {},
	"it":       {},
	"going":    {},
	"be":       {},
	"the":      {},
	"area":     {},
	"weekend":  {},
	"week":     {},
}

// extractLocation finds the first location-trigger phrase and captures the
// words that follow it, up to a stop word or the end of the query. The result
// is title-cased ("new york" becomes "New York"). Returns "" when no place
// name can be found.
func extractLocation(query string) string {
	lower := strings.ToLower(query)
	for _, trigger := range locationTriggers {
		idx := strings.Index(lower, trigger)
		if idx < 0 {
			continue
		}
		rest := lower[idx+len(trigger):]
		var words []string
		for _, word := range strings.Fields(rest) {
			word = strings.Trim(word, "?,.!;:")
			if word == "" {
				break
			}
			if _, stop := locationStopWords[word]; stop {
				break
			}
			words = append(words, word)
		}
		if len(words) > 0 {
			return titleCasePlace(strings.Join(words, " "))
		}
	}
	return ""
}

// targetDayScanOrder fixes the order in which day keywords are checked:
// explicit weekday names first, then relative references, then ranges.
// "weekend" is checked before "week" because the former contains the latter.
var targetDayScanOrder = []struct {
	keyword string
	day     TargetDay
}{
	{"monday", TargetMonday},
	{"tuesday", TargetTuesday},
	{"wednesday", TargetWednesday},
	{"thursday", TargetThursday},
	{"friday", TargetFriday},
	{"saturday", TargetSaturday},
	{"sunday", TargetSunday},
	{"today", TargetToday},
	{"tonight", TargetToday},
	{"tomorrow", TargetTomorrow},
	{"weekend", TargetWeekend},
	{"week", TargetWeek},
}

// extractTargetDay scans for day keywords in the fixed order above.
// Queries with no day reference map to TargetUnspecified.
func extractTargetDay(query string) TargetDay {
	lower := strings.ToLower(query)
	for _, entry := range targetDayScanOrder {
		if strings.Contains(lower, entry.keyword) {
			return entry.day
		}
	}
	return TargetUnspecified
}

// aspectScanOrder fixes the order in which aspect keyword groups are checked.
// Keywords are matched as substrings so inflections ("raining", "snowy",
// "windy") match their stems.
var aspectScanOrder = []struct {
	aspect   WeatherAspect
	keywords []string
}{
	{AspectRain, []string{"rain", "umbrella", "shower", "drizzle", "precipitation"}},
	{AspectSnow, []string{"snow", "blizzard", "flurr", "sleet"}},
	{AspectTemperature, []string{"temperature", "temp", "hot", "cold", "warm", "chilly", "freezing", "degrees"}},
	{AspectWind, []string{"wind", "breez", "gust"}},
}

// extractAspect scans for weather-condition keywords in the fixed order
// above. Queries with no condition keyword map to AspectGeneral.
func extractAspect(query string) WeatherAspect {
	lower := strings.ToLower(query)
	for _, entry := range aspectScanOrder {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.aspect
			}
		}
	}
	return AspectGeneral
}

// yesNoPrefixes are the auxiliary-verb openings that mark a yes/no question.
var yesNoPrefixes = []string{
	"will ",
	"is it",
	"is there",
	"are there",
	"should i",
	"does it",
	"do i",
}

// extractQuestionType classifies a query as yes/no when it opens with an
// auxiliary-verb pattern, informational otherwise.
func extractQuestionType(query string) QuestionType {
	lower := strings.ToLower(strings.TrimSpace(query))
	for _, prefix := range yesNoPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return QuestionYesNo
		}
	}
	return QuestionInformational
}

// ruleBasedParse runs all four extractors and tags every field rule_based.
func ruleBasedParse(query string) ParsedQuery {
	return ParsedQuery{
		Location:     Sourced[string]{Value: extractLocation(query), Source: SourceRuleBased},
		TargetDay:    Sourced[TargetDay]{Value: extractTargetDay(query), Source: SourceRuleBased},
		Aspect:       Sourced[WeatherAspect]{Value: extractAspect(query), Source: SourceRuleBased},
		QuestionType: Sourced[QuestionType]{Value: extractQuestionType(query), Source: SourceRuleBased},
	}
}
