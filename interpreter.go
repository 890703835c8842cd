package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Interpreter turns a raw natural-language query into a ParsedQuery. When the
// AI path is enabled it asks the model to extract the four fields, validates
// each one independently, and fills anything invalid or missing from the
// rule-based extractors. With the AI path disabled (or failing) the result is
// the pure rule-based parse, so interpretation never errors.
type Interpreter struct {
	model      ModelInvoker
	useAIModel bool
	logger     *slog.Logger
}

func NewInterpreter(model ModelInvoker, useAIModel bool, logger *slog.Logger) *Interpreter {
	return &Interpreter{model: model, useAIModel: useAIModel, logger: logger}
}

func (it *Interpreter) Interpret(ctx context.Context, query string) ParsedQuery {
	parsed := ruleBasedParse(query)
	if !it.useAIModel || it.model == nil {
		return parsed
	}

	output, err := it.model.Invoke(ctx, buildExtractionPrompt(query))
	if err != nil {
		it.logger.Warn("model extraction failed, using rule-based parse", "error", err)
		aiFallbacksTotal.WithLabelValues("interpret").Inc()
		return parsed
	}

	fields := parseExtractionOutput(output)
	validated := 0
	if loc, ok := validateLocation(fields["location"]); ok {
		parsed.Location = Sourced[string]{Value: loc, Source: SourceAI}
		validated++
	}
	if day, ok := validateTargetDay(fields["day"]); ok {
		parsed.TargetDay = Sourced[TargetDay]{Value: day, Source: SourceAI}
		validated++
	}
	if aspect, ok := validateAspect(fields["aspect"]); ok {
		parsed.Aspect = Sourced[WeatherAspect]{Value: aspect, Source: SourceAI}
		validated++
	}
	if qt, ok := validateQuestionType(fields["question"]); ok {
		parsed.QuestionType = Sourced[QuestionType]{Value: qt, Source: SourceAI}
		validated++
	}
	// A successful call can still degrade: any field that fails validation is
	// served rule-based and counts as a fallback.
	if validated < 4 {
		it.logger.Debug("model extraction partially discarded", "validated_fields", validated)
		aiFallbacksTotal.WithLabelValues("interpret").Inc()
	}
	return parsed
}

func buildExtractionPrompt(query string) string {
	return fmt.Sprintf(`Extract structured fields from this weather question.

Question: %q

Reply with exactly four lines in this format, nothing else:
location: <place name, or none>
day: <today, tomorrow, monday, tuesday, wednesday, thursday, friday, saturday, sunday, this_weekend, this_week, or none>
aspect: <rain, snow, temperature, wind, or general>
question: <yes_no or informational>`, query)
}

// parseExtractionOutput scans the model output line by line for "key: value"
// pairs. Unknown keys and malformed lines are ignored, so a chatty model
// still yields whatever valid fields it produced.
func parseExtractionOutput(output string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))
		switch key {
		case "location", "day", "aspect", "question":
			fields[key] = value
		}
	}
	return fields
}

func validateLocation(value string) (string, bool) {
	value = strings.Trim(value, `"'`)
	if value == "" || value == "none" || value == "unknown" {
		return "", false
	}
	return titleCasePlace(value), true
}

func validateTargetDay(value string) (TargetDay, bool) {
	switch TargetDay(strings.ReplaceAll(value, " ", "_")) {
	case TargetToday:
		return TargetToday, true
	case TargetTomorrow:
		return TargetTomorrow, true
	case TargetMonday:
		return TargetMonday, true
	case TargetTuesday:
		return TargetTuesday, true
	case TargetWednesday:
		return TargetWednesday, true
	case TargetThursday:
		return TargetThursday, true
	case TargetFriday:
		return TargetFriday, true
	case TargetSaturday:
		return TargetSaturday, true
	case TargetSunday:
		return TargetSunday, true
	case TargetWeekend:
		return TargetWeekend, true
	case TargetWeek:
		return TargetWeek, true
	}
	return TargetUnspecified, false
}

func validateAspect(value string) (WeatherAspect, bool) {
	switch WeatherAspect(value) {
	case AspectRain:
		return AspectRain, true
	case AspectSnow:
		return AspectSnow, true
	case AspectTemperature:
		return AspectTemperature, true
	case AspectWind:
		return AspectWind, true
	case AspectGeneral:
		return AspectGeneral, true
	}
	return AspectGeneral, false
}

func validateQuestionType(value string) (QuestionType, bool) {
	switch QuestionType(value) {
	case QuestionYesNo:
		return QuestionYesNo, true
	case QuestionInformational:
		return QuestionInformational, true
	}
	return QuestionInformational, false
}
