package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/garyjia/speedauth/internal/application/port"
	"github.com/garyjia/speedauth/internal/domain/entity"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const systemPrompt = "You are a hospital utilization review nurse. " +
	"Given an ICD-10 diagnosis code, summarize the case for a prior authorization reviewer. " +
	"Return a single JSON object and nothing else."

const userPromptTemplate = `ICD-10 code: %s
Requested procedure (CPT): %s

Respond with JSON of the form:
{"diagnosis": "<short clinical description>", "carePlan": ["<step>", "..."], "estimatedStayDays": <integer>, "notes": "<considerations for the reviewer>"}`

// Config holds the chat model settings. BaseURL may point at any OpenAI-compatible endpoint.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// chatClient is the part of *openai.Client the summarizer uses
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Summarizer implements port.CaseSummarizer with a chat completion model.
// Without an API key it answers with a deterministic mock summary.
type Summarizer struct {
	client chatClient
	cfg    Config
	logger *zap.Logger
}

// NewSummarizer creates a new summarizer
func NewSummarizer(cfg Config, logger *zap.Logger) *Summarizer {
	s := &Summarizer{cfg: cfg, logger: logger}
	if cfg.APIKey == "" {
		logger.Warn("No model API key configured, case summaries run in mock mode")
		return s
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	s.client = openai.NewClientWithConfig(clientCfg)
	return s
}

// Summarize implements port.CaseSummarizer. Model failures degrade to a fallback summary.
func (s *Summarizer) Summarize(ctx context.Context, auth *entity.Authorization) (*port.CaseSummary, error) {
	icd := strings.ToUpper(strings.TrimSpace(auth.ICDCodeAuth))
	if s.client == nil {
		return mockSummary(icd), nil
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(userPromptTemplate, icd, auth.ProcedureCodeAuth)},
		},
	})
	if err != nil {
		s.logger.Error("Chat completion failed", zap.String("icd_code", icd), zap.Error(err))
		return fallbackSummary(icd), nil
	}
	if len(resp.Choices) == 0 {
		s.logger.Error("Chat completion returned no choices", zap.String("icd_code", icd))
		return fallbackSummary(icd), nil
	}

	content := resp.Choices[0].Message.Content
	summary, err := parseSummary(content)
	if err != nil {
		s.logger.Error("Failed to parse case summary",
			zap.String("icd_code", icd),
			zap.String("content", content),
			zap.Error(err))
		return fallbackSummary(icd), nil
	}

	summary.ICDCode = icd
	summary.Source = port.SummarySourceModel
	return summary, nil
}

func parseSummary(content string) (*port.CaseSummary, error) {
	var summary port.CaseSummary
	if err := json.Unmarshal([]byte(content), &summary); err != nil {
		raw := extractJSON(content)
		if raw == "" {
			return nil, fmt.Errorf("no JSON object in response: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &summary); err != nil {
			return nil, fmt.Errorf("invalid JSON object in response: %w", err)
		}
	}
	if summary.Diagnosis == "" {
		return nil, fmt.Errorf("response has no diagnosis")
	}
	return &summary, nil
}

func mockSummary(icd string) *port.CaseSummary {
	return &port.CaseSummary{
		ICDCode:           icd,
		Diagnosis:         icd + " - Mock Diagnosis",
		CarePlan:          []string{"Initial assessment", "Treatment per clinical guidelines", "Follow-up review"},
		EstimatedStayDays: 3,
		Notes:             "Mock case summary for development and testing.",
		Source:            port.SummarySourceMock,
	}
}

func fallbackSummary(icd string) *port.CaseSummary {
	return &port.CaseSummary{
		ICDCode:           icd,
		Diagnosis:         icd,
		CarePlan:          []string{"Clinical review of submitted documentation", "Confirm medical necessity with treating provider"},
		EstimatedStayDays: 0,
		Notes:             "Model unavailable; summary requires manual review.",
		Source:            port.SummarySourceFallback,
	}
}

// extractJSON returns the first balanced {...} object in content, or ""
func extractJSON(content string) string {
	start := strings.IndexByte(content, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		c := content[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return content[start : i+1]
			}
		}
	}
	return ""
}

var _ port.CaseSummarizer = (*Summarizer)(nil)
