package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// noDataResponse is returned whenever period selection yields nothing, such
// as a named weekday beyond the forecast horizon.
const noDataResponse = "I don't have forecast data for that day or location yet."

// rainForecastKeywords and snowForecastKeywords decide yes/no answers by
// scanning the selected periods' forecast text.
var (
	rainForecastKeywords = []string{"rain", "shower", "drizzle", "storm", "precipitation"}
	snowForecastKeywords = []string{"snow", "sleet", "flurr", "blizzard", "wintry"}
)

// Composer renders selected forecast periods into a conversational answer.
// When the AI path is enabled it asks the model to phrase the answer from a
// forecast summary; a failed or empty model response falls back to the
// deterministic templates, so composition always produces text. The boolean
// result reports whether the AI path produced the final text.
type Composer struct {
	model      ModelInvoker
	useAIModel bool
	logger     *slog.Logger
}

func NewComposer(model ModelInvoker, useAIModel bool, logger *slog.Logger) *Composer {
	return &Composer{model: model, useAIModel: useAIModel, logger: logger}
}

func (c *Composer) Compose(ctx context.Context, query string, periods []ForecastPeriod, aspect WeatherAspect, questionType QuestionType) (string, bool) {
	if len(periods) == 0 {
		return noDataResponse, false
	}
	if !c.useAIModel || c.model == nil {
		return ruleBasedResponse(periods, aspect, questionType), false
	}

	output, err := c.model.Invoke(ctx, buildCompositionPrompt(query, periods, questionType))
	if err != nil {
		c.logger.Warn("model composition failed, using template response", "error", err)
		aiFallbacksTotal.WithLabelValues("compose").Inc()
		return ruleBasedResponse(periods, aspect, questionType), false
	}
	output = strings.TrimSpace(output)
	if output == "" {
		c.logger.Warn("model composition returned empty text, using template response")
		aiFallbacksTotal.WithLabelValues("compose").Inc()
		return ruleBasedResponse(periods, aspect, questionType), false
	}
	return output, true
}

func buildCompositionPrompt(query string, periods []ForecastPeriod, questionType QuestionType) string {
	var sb strings.Builder
	for _, p := range periods {
		fmt.Fprintf(&sb, "%s: %d°%s, %s\n", p.Name, p.Temperature, p.TemperatureUnit, p.ShortForecast)
	}
	hint := ""
	if questionType == QuestionYesNo {
		hint = " This is a yes/no question, so open your answer with Yes or No."
	}
	return fmt.Sprintf(`You are a friendly weather assistant. Answer the user's question in one or two short sentences using only the forecast below. Always mention the temperature.%s

Question: %s

Forecast:
%s
Answer:`, hint, query, sb.String())
}

// ruleBasedResponse renders the deterministic template for the selected
// periods. Every template includes the temperature of at least the first
// period. Yes/no rain and snow questions get an explicit "Yes"/"No" lead
// derived from the forecast text.
func ruleBasedResponse(periods []ForecastPeriod, aspect WeatherAspect, questionType QuestionType) string {
	if questionType == QuestionYesNo && (aspect == AspectRain || aspect == AspectSnow) {
		return yesNoResponse(periods, aspect)
	}

	summaries := make([]string, len(periods))
	for i, p := range periods {
		summaries[i] = periodSummary(p)
	}
	joined := strings.Join(summaries, " ")

	switch aspect {
	case AspectTemperature:
		return "Here's the temperature outlook. " + joined
	case AspectWind:
		return "Here's the wind outlook. " + joined
	default:
		return "Here's the forecast. " + joined
	}
}

func yesNoResponse(periods []ForecastPeriod, aspect WeatherAspect) string {
	condition := "rain"
	keywords := rainForecastKeywords
	if aspect == AspectSnow {
		condition = "snow"
		keywords = snowForecastKeywords
	}

	mentioned := false
	for _, p := range periods {
		if forecastMentions(p, keywords) {
			mentioned = true
			break
		}
	}

	lead := fmt.Sprintf("No, it doesn't look like %s for %s.", condition, periods[0].Name)
	if mentioned {
		lead = fmt.Sprintf("Yes, %s is in the forecast for %s!", condition, periods[0].Name)
	}
	return lead + " " + periodSummary(periods[0])
}

func forecastMentions(p ForecastPeriod, keywords []string) bool {
	text := strings.ToLower(p.ShortForecast + " " + p.DetailedForecast)
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func periodSummary(p ForecastPeriod) string {
	return fmt.Sprintf("%s: around %d°%s, %s.", p.Name, p.Temperature, p.TemperatureUnit, p.ShortForecast)
}
