package main

import (
	"testing"
)

func TestExtractLocation(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		expected string
	}{
		{"in trigger", "Will it rain in Denver on Sunday?", "Denver"},
		{"multi-word place", "What's the temperature in New York today?", "New York"},
		{"at trigger", "What's the weather at Lake Tahoe?", "Lake Tahoe"},
		{"near trigger", "Any snow near Salt Lake City tomorrow?", "Salt Lake City"},
		{"for trigger", "What's the forecast for Portland this weekend?", "Portland"},
		{"trailing punctuation stripped", "Is it windy in Chicago?", "Chicago"},
		{"stop word terminates capture", "Will it snow in Boston this week?", "Boston"},
		{"no trigger", "Will it rain on Sunday?", ""},
		{"trigger followed by stop word", "What's the weather in this area?", ""},
		{"empty query", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractLocation(tc.query); got != tc.expected {
				t.Errorf("extractLocation(%q) = %q, want %q", tc.query, got, tc.expected)
			}
		})
	}
}

func TestExtractTargetDay(t *testing.T) {
	testCases := []struct {
		query    string
		expected TargetDay
	}{
		{"Will it rain in Denver on Sunday?", TargetSunday},
		{"What about Monday?", TargetMonday},
		{"Is Tuesday looking wet?", TargetTuesday},
		{"Wednesday forecast please", TargetWednesday},
		{"Thursday in Austin", TargetThursday},
		{"How cold on Friday?", TargetFriday},
		{"Saturday plans in Miami", TargetSaturday},
		{"What's the weather today?", TargetToday},
		{"Will it snow tonight?", TargetToday},
		{"Do I need an umbrella tomorrow?", TargetTomorrow},
		{"What's it like this weekend?", TargetWeekend},
		{"Forecast for this week", TargetWeek},
		{"What's the weather in Denver?", TargetUnspecified},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			if got := extractTargetDay(tc.query); got != tc.expected {
				t.Errorf("extractTargetDay(%q) = %q, want %q", tc.query, got, tc.expected)
			}
		})
	}
}

// A query naming both a weekday and a relative day keeps the weekday, since
// weekday names are scanned first.
func TestExtractTargetDayPrefersWeekday(t *testing.T) {
	if got := extractTargetDay("Will it rain today or on Sunday?"); got != TargetSunday {
		t.Errorf("expected weekday to win, got %q", got)
	}
}

func TestExtractAspect(t *testing.T) {
	testCases := []struct {
		query    string
		expected WeatherAspect
	}{
		{"Will it rain tomorrow?", AspectRain},
		{"Is it raining in Seattle?", AspectRain},
		{"Do I need an umbrella?", AspectRain},
		{"Any showers this week?", AspectRain},
		{"Will it snow on Friday?", AspectSnow},
		{"Snowy in Denver?", AspectSnow},
		{"What's the temperature in Phoenix?", AspectTemperature},
		{"How hot is it today?", AspectTemperature},
		{"Is it cold outside?", AspectTemperature},
		{"How windy is Chicago?", AspectWind},
		{"Any gusts tomorrow?", AspectWind},
		{"What's the weather like?", AspectGeneral},
		{"", AspectGeneral},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			if got := extractAspect(tc.query); got != tc.expected {
				t.Errorf("extractAspect(%q) = %q, want %q", tc.query, got, tc.expected)
			}
		})
	}
}

func TestExtractQuestionType(t *testing.T) {
	testCases := []struct {
		query    string
		expected QuestionType
	}{
		{"Will it rain in Denver on Sunday?", QuestionYesNo},
		{"Is it going to snow?", QuestionYesNo},
		{"Should I bring an umbrella?", QuestionYesNo},
		{"Does it rain a lot in Seattle?", QuestionYesNo},
		{"Is there rain coming?", QuestionYesNo},
		{"What's the weather in Chicago?", QuestionInformational},
		{"Tell me the forecast for Boston", QuestionInformational},
		{"  will it rain? ", QuestionYesNo},
		{"", QuestionInformational},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			if got := extractQuestionType(tc.query); got != tc.expected {
				t.Errorf("extractQuestionType(%q) = %q, want %q", tc.query, got, tc.expected)
			}
		})
	}
}

// ruleBasedParse is deterministic: the same query always yields the same
// result, with every field tagged rule_based.
func TestRuleBasedParseDeterministic(t *testing.T) {
	query := "Will it rain in Denver on Sunday?"
	first := ruleBasedParse(query)
	second := ruleBasedParse(query)
	if first != second {
		t.Fatalf("ruleBasedParse is not deterministic: %+v vs %+v", first, second)
	}
	if first.Location.Value != "Denver" || first.TargetDay.Value != TargetSunday ||
		first.Aspect.Value != AspectRain || first.QuestionType.Value != QuestionYesNo {
		t.Errorf("unexpected parse: %+v", first)
	}
	for _, source := range []Source{first.Location.Source, first.TargetDay.Source, first.Aspect.Source, first.QuestionType.Source} {
		if source != SourceRuleBased {
			t.Errorf("expected rule_based source, got %q", source)
		}
	}
	if first.AIEnhanced() {
		t.Error("rule-based parse must not report AI enhancement")
	}
}
