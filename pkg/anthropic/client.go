// Package anthropic narrows the official anthropic-sdk-go to the single
// synchronous message call the confidence scorer makes, with prompt caching
// and cost attribution.
package anthropic

import (
	"context"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Client is the one operation the scorer needs.
type Client interface {
	CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error)
}

// MessageRequest carries a single scoring call: one system prompt, one or
// more conversational turns, and an optional temperature override.
type MessageRequest struct {
	Model       string
	MaxTokens   int64
	System      []SystemBlock
	Messages    []Message
	Temperature *float64
}

// SystemBlock is one system-prompt block. Setting CacheControl marks the
// block for server-side prompt caching, which matters here because the same
// long rubric prompt fronts every account in a batch.
type SystemBlock struct {
	Text         string
	CacheControl *CacheControl
}

// CacheControl sets the cache lifetime for a block ("5m" or "1h").
type CacheControl struct {
	TTL string
}

// Message is one conversational turn, role "user" or "assistant".
type Message struct {
	Role    string
	Content string
}

// MessageResponse holds what the scorer consumes from a reply: the content
// blocks and the token accounting.
type MessageResponse struct {
	Content []ContentBlock
	Usage   TokenUsage
}

// ContentBlock is one block of reply content.
type ContentBlock struct {
	Type string
	Text string
}

// Text joins the reply's text blocks into one string.
func (r *MessageResponse) Text() string {
	var b strings.Builder
	for _, blk := range r.Content {
		if blk.Type == "text" {
			b.WriteString(blk.Text)
		}
	}
	return b.String()
}

// TokenUsage is the per-call token accounting, split by cache activity.
type TokenUsage struct {
	InputTokens              int64
	OutputTokens             int64
	CacheCreationInputTokens int64
	CacheReadInputTokens     int64
}

// perMTok is {input, output} USD pricing for the models the scorer runs.
// Cache writes bill at 1.25x input, cache reads at 0.1x.
var perMTok = map[string][2]float64{
	"claude-haiku-4-5-20251001":  {0.80, 4.00},
	"claude-sonnet-4-5-20250929": {3.00, 15.00},
}

// LogCost emits a structured cost-attribution line for one call. Unknown
// models log zero cost rather than being dropped.
func (u TokenUsage) LogCost(model, phase string) {
	var cost float64
	if p, ok := perMTok[model]; ok {
		cost = float64(u.InputTokens)/1e6*p[0] +
			float64(u.OutputTokens)/1e6*p[1] +
			float64(u.CacheCreationInputTokens)/1e6*p[0]*1.25 +
			float64(u.CacheReadInputTokens)/1e6*p[0]*0.1
	}
	zap.L().Info("cost attribution",
		zap.String("model", model),
		zap.String("phase", phase),
		zap.Int64("input_tokens", u.InputTokens),
		zap.Int64("output_tokens", u.OutputTokens),
		zap.Int64("cache_write_tokens", u.CacheCreationInputTokens),
		zap.Int64("cache_read_tokens", u.CacheReadInputTokens),
		zap.Float64("estimated_cost_usd", cost),
	)
}

type sdkClient struct {
	client sdk.Client
}

// NewClient builds a Client over the official SDK.
func NewClient(apiKey string) Client {
	return &sdkClient{client: sdk.NewClient(option.WithAPIKey(apiKey))}
}

func (c *sdkClient) CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(req.Model),
		MaxTokens: req.MaxTokens,
	}
	for _, m := range req.Messages {
		block := sdk.NewTextBlock(m.Content)
		if m.Role == "assistant" {
			params.Messages = append(params.Messages, sdk.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, sdk.NewUserMessage(block))
		}
	}
	for _, s := range req.System {
		blk := sdk.TextBlockParam{Text: s.Text}
		if s.CacheControl != nil {
			cc := sdk.NewCacheControlEphemeralParam()
			if s.CacheControl.TTL != "" {
				cc.TTL = sdk.CacheControlEphemeralTTL(s.CacheControl.TTL)
			}
			blk.CacheControl = cc
		}
		params.System = append(params.System, blk)
	}
	if req.Temperature != nil {
		params.Temperature = sdk.Float(*req.Temperature)
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, eris.Wrap(err, "anthropic: create message")
	}

	resp := &MessageResponse{
		Usage: TokenUsage{
			InputTokens:              msg.Usage.InputTokens,
			OutputTokens:             msg.Usage.OutputTokens,
			CacheCreationInputTokens: msg.Usage.CacheCreationInputTokens,
			CacheReadInputTokens:     msg.Usage.CacheReadInputTokens,
		},
	}
	for _, b := range msg.Content {
		resp.Content = append(resp.Content, ContentBlock{Type: b.Type, Text: b.Text})
	}
	return resp, nil
}
