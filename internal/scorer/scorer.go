// Package scorer asks an LLM to judge overall link confidence from the
// precomputed relationship flags and the raw record fields.
package scorer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/shell-assess/internal/model"
	"github.com/sells-group/shell-assess/pkg/anthropic"
)

const (
	defaultModel     = "claude-haiku-4-5-20251001"
	defaultMaxTokens = 1024
)

// Scorer produces AI confidence assessments for evaluated accounts.
type Scorer struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithModel overrides the default model ID.
func WithModel(model string) Option {
	return func(s *Scorer) {
		if model != "" {
			s.model = model
		}
	}
}

// NewScorer builds a Scorer over the given Anthropic client.
func NewScorer(client anthropic.Client, opts ...Option) *Scorer {
	s := &Scorer{client: client, model: defaultModel, maxTokens: defaultMaxTokens}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// scoreResponse is the strict JSON contract the prompt demands.
type scoreResponse struct {
	ConfidenceScore    int      `json:"confidence_score"`
	ExplanationBullets []string `json:"explanation_bullets"`
}

// Score asks the model for a confidence judgement on one assessment. A
// transport or parse failure is returned as a degraded AIAssessment, not an
// error: one bad response must not sink a batch.
func (s *Scorer) Score(ctx context.Context, a model.Assessment) model.AIAssessment {
	payload, err := buildPayload(a)
	if err != nil {
		return failedAssessment(a.Account.ID, err)
	}

	temp := 0.0
	resp, err := s.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		System: []anthropic.SystemBlock{
			{Text: systemPrompt, CacheControl: &anthropic.CacheControl{TTL: "5m"}},
		},
		Messages:    []anthropic.Message{{Role: "user", Content: payload}},
		Temperature: &temp,
	})
	if err != nil {
		return failedAssessment(a.Account.ID, err)
	}
	resp.Usage.LogCost(s.model, "confidence")

	parsed, err := parseScoreResponse(resp.Text())
	if err != nil {
		return failedAssessment(a.Account.ID, err)
	}

	return model.AIAssessment{
		Success:            true,
		ConfidenceScore:    clamp(parsed.ConfidenceScore),
		ExplanationBullets: parsed.ExplanationBullets,
	}
}

// parseScoreResponse decodes the model output. A strict parse is tried
// first; if the model wrapped the JSON in prose, the outermost brace pair
// is extracted and retried.
func parseScoreResponse(text string) (*scoreResponse, error) {
	text = strings.TrimSpace(text)

	var parsed scoreResponse
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return validateScoreResponse(&parsed)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, eris.New("scorer: response contains no JSON object")
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return nil, eris.Wrap(err, "scorer: parse response")
	}
	return validateScoreResponse(&parsed)
}

func validateScoreResponse(r *scoreResponse) (*scoreResponse, error) {
	if len(r.ExplanationBullets) == 0 {
		return nil, eris.New("scorer: response has no explanation bullets")
	}
	return r, nil
}

func failedAssessment(accountID string, err error) model.AIAssessment {
	zap.L().Warn("scorer: assessment failed",
		zap.String("account_id", accountID),
		zap.Error(err))
	return model.AIAssessment{
		Success: false,
		Error:   eris.ToString(err, false),
	}
}

func clamp(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
