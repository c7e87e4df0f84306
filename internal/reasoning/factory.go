package reasoning

import (
	"fmt"
	"strings"

	"github.com/mkoval/claimflow/internal/model"
)

// New creates a reasoning service from configuration. An empty provider
// disables reasoning entirely; callers must handle a nil service.
func New(cfg model.LLMConfig) (Service, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIService(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown reasoning provider: %s (supported: openai)", cfg.Provider)
	}
}
