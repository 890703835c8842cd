package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/sony/gobreaker"
)

// ErrEmptyModelResponse is returned when the model replies with a payload
// that contains no generated text.
var ErrEmptyModelResponse = errors.New("model returned no generated text")

// ModelInvoker sends a prompt to a language model and returns its text
// completion. Implementations must be safe for concurrent use.
type ModelInvoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

type bedrockClient interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockModelService is a ModelInvoker backed by AWS Bedrock. Requests and
// responses are shaped per model family (Anthropic Claude, Meta Llama,
// Amazon Titan), chosen from the model ID. A circuit breaker sits in front
// of the API so a struggling model endpoint fails fast instead of stalling
// every request; while the breaker is open Invoke returns an error
// immediately and callers take their rule-based fallback.
type BedrockModelService struct {
	client  bedrockClient
	modelID string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

func NewBedrockModelService(ctx context.Context, modelID string, timeout time.Duration, logger *slog.Logger) (*BedrockModelService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("couldn't load AWS configuration: %w", err)
	}
	return newBedrockModelService(bedrockruntime.NewFromConfig(awsCfg), modelID, timeout, logger), nil
}

func newBedrockModelService(client bedrockClient, modelID string, timeout time.Duration, logger *slog.Logger) *BedrockModelService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     "bedrock",
		Interval: time.Minute,
		Timeout:  2 * time.Minute,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("model circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return &BedrockModelService{
		client:  client,
		modelID: modelID,
		timeout: timeout,
		breaker: breaker,
		logger:  logger,
	}
}

func (s *BedrockModelService) Invoke(ctx context.Context, prompt string) (string, error) {
	body, err := buildModelRequestBody(s.modelID, prompt)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.breaker.Execute(func() (any, error) {
		resp, err := s.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
			ModelId:     aws.String(s.modelID),
			ContentType: aws.String("application/json"),
			Accept:      aws.String("application/json"),
			Body:        body,
		})
		if err != nil {
			return nil, err
		}
		return parseModelResponseBody(s.modelID, resp.Body)
	})
	if err != nil {
		return "", fmt.Errorf("couldn't invoke model %s: %w", s.modelID, err)
	}
	return result.(string), nil
}

type claudeRequest struct {
	AnthropicVersion string          `json:"anthropic_version"`
	MaxTokens        int             `json:"max_tokens"`
	Messages         []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llamaRequest struct {
	Prompt      string  `json:"prompt"`
	MaxGenLen   int     `json:"max_gen_len"`
	Temperature float64 `json:"temperature"`
}

type titanRequest struct {
	InputText            string          `json:"inputText"`
	TextGenerationConfig titanTextConfig `json:"textGenerationConfig"`
}

type titanTextConfig struct {
	MaxTokenCount int     `json:"maxTokenCount"`
	Temperature   float64 `json:"temperature"`
}

// buildModelRequestBody shapes the request payload for the model's family.
// Unknown model IDs get the Claude messages format, the service default.
func buildModelRequestBody(modelID, prompt string) ([]byte, error) {
	var payload any
	switch {
	case strings.Contains(modelID, "llama"):
		payload = llamaRequest{Prompt: prompt, MaxGenLen: 300, Temperature: 0.2}
	case strings.Contains(modelID, "titan"):
		payload = titanRequest{
			InputText:            prompt,
			TextGenerationConfig: titanTextConfig{MaxTokenCount: 300, Temperature: 0.2},
		}
	default:
		payload = claudeRequest{
			AnthropicVersion: "bedrock-2023-05-31",
			MaxTokens:        300,
			Messages:         []claudeMessage{{Role: "user", Content: prompt}},
		}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal model request: %w", err)
	}
	return body, nil
}

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

type llamaResponse struct {
	Generation string `json:"generation"`
}

type titanResponse struct {
	Results []struct {
		OutputText string `json:"outputText"`
	} `json:"results"`
}

// parseModelResponseBody extracts the generated text from a model response,
// dispatching on the same family rules as buildModelRequestBody.
func parseModelResponseBody(modelID string, body []byte) (string, error) {
	var text string
	switch {
	case strings.Contains(modelID, "llama"):
		var resp llamaResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("couldn't parse model response: %w", err)
		}
		text = resp.Generation
	case strings.Contains(modelID, "titan"):
		var resp titanResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("couldn't parse model response: %w", err)
		}
		if len(resp.Results) > 0 {
			text = resp.Results[0].OutputText
		}
	default:
		var resp claudeResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("couldn't parse model response: %w", err)
		}
		if len(resp.Content) > 0 {
			text = resp.Content[0].Text
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyModelResponse
	}
	return text, nil
}
