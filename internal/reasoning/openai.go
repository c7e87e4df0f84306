package reasoning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/mkoval/claimflow/internal/model"
)

// OpenAIService implements Service over the OpenAI Chat Completions API.
// All invocations share one rate limiter so a burst of claim events cannot
// exceed the account's request budget.
type OpenAIService struct {
	client    *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
	limiter   *rate.Limiter
}

// NewOpenAIService creates a reasoning service backed by OpenAI.
func NewOpenAIService(cfg model.LLMConfig) (*OpenAIService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	return &OpenAIService{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     modelName,
		maxTokens: maxTokens,
		timeout:   timeout,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

// Invoke runs one chat completion. The reply is classified by parsing: a
// JSON object is structured, anything else is freeform. The caller decides
// what a freeform reply means for its flow.
func (s *OpenAIService) Invoke(ctx context.Context, req Request) (*Response, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Context},
		},
		MaxTokens:   s.maxTokens,
		Temperature: 0.2,
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Def)
		if err != nil {
			return nil, fmt.Errorf("marshal schema %s: %w", req.Schema.Name, err)
		}
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: json.RawMessage(def),
				Strict: true,
			},
		}
	}

	resp, err := s.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, req.SpecialistID)
		}
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choice list", ErrMalformed)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	kind := model.ResponseFreeform
	if isJSONObject(text) {
		kind = model.ResponseStructured
	}
	return &Response{Kind: kind, Text: text}, nil
}

// isJSONObject reports whether text parses as a JSON object.
func isJSONObject(text string) bool {
	var probe map[string]json.RawMessage
	return json.Unmarshal([]byte(text), &probe) == nil
}
