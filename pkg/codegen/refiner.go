package codegen

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/papercomputeco/buildx/pkg/llm"
	"github.com/papercomputeco/buildx/pkg/prompts"
	"github.com/papercomputeco/buildx/pkg/provider"
)

// Refiner rewrites rough ideas into buildable prompts.
type Refiner struct {
	provider provider.Provider
	model    string
	logger   *zap.Logger
}

// NewRefiner creates a new Refiner. An empty model selects DefaultClassifierModel.
func NewRefiner(p provider.Provider, model string, logger *zap.Logger) *Refiner {
	if model == "" {
		model = DefaultClassifierModel
	}
	return &Refiner{provider: p, model: model, logger: logger}
}

// Refine returns the rewritten prompt.
func (r *Refiner) Refine(ctx context.Context, idea string) (string, error) {
	out, err := r.provider.Complete(ctx, provider.CompletionRequest{
		Model: r.model,
		Messages: []llm.Message{
			llm.TextMessage(llm.RoleSystem, prompts.StripIndents(prompts.RefineInstruction)),
			llm.TextMessage(llm.RoleUser, idea),
		},
	})
	if err != nil {
		r.logger.Error("prompt refinement failed", zap.Error(err))
		return "", newProviderError(err)
	}

	return strings.TrimSpace(out), nil
}
