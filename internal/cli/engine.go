package cli

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mkoval/claimflow/internal/attach"
	"github.com/mkoval/claimflow/internal/model"
	"github.com/mkoval/claimflow/internal/notify"
	"github.com/mkoval/claimflow/internal/orchestrator"
	"github.com/mkoval/claimflow/internal/reasoning"
	"github.com/mkoval/claimflow/internal/store"
)

// buildOrchestrator wires the full engine from configuration.
func buildOrchestrator(cfg *model.Config, log *zap.Logger) (*orchestrator.Orchestrator, error) {
	svc, err := reasoning.New(cfg.LLM)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("no reasoning provider configured; set llm.provider (and OPENAI_API_KEY)")
	}

	ttl := cfg.Store.MemoryTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	st := store.NewLayeredStore(
		store.NewMemoryStore(ttl, 2*ttl),
		store.NewFileStore(cfg.Store.Dir),
	)

	return orchestrator.New(
		st,
		svc,
		attach.NewReasoningDescriber(svc),
		notify.NewLogNotifier(log),
		log,
	), nil
}
