package codegen

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/papercomputeco/buildx/pkg/llm"
	"github.com/papercomputeco/buildx/pkg/prompts"
	"github.com/papercomputeco/buildx/pkg/provider"
)

// DefaultClassifierModel is the model used for classification and refinement.
const DefaultClassifierModel = "gemini-1.5-flash"

const unknownErrorText = "An unknown error occurred"

// ProviderError carries the upstream's message for a failed completion.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func newProviderError(err error) *ProviderError {
	msg := provider.Message(err)
	if msg == "" {
		msg = unknownErrorText
	}
	return &ProviderError{Message: msg, Err: err}
}

// Classifier maps a free-text idea to one of the framework words.
type Classifier struct {
	provider provider.Provider
	model    string
	logger   *zap.Logger
}

// NewClassifier creates a new Classifier. An empty model selects DefaultClassifierModel.
func NewClassifier(p provider.Provider, model string, logger *zap.Logger) *Classifier {
	if model == "" {
		model = DefaultClassifierModel
	}
	return &Classifier{provider: p, model: model, logger: logger}
}

// Classify returns the model's single-word answer, trimmed. The word is not validated;
// callers must use llm.ParseFramework and handle unexpected answers.
func (c *Classifier) Classify(ctx context.Context, idea string) (string, error) {
	out, err := c.provider.Complete(ctx, provider.CompletionRequest{
		Model: c.model,
		Messages: []llm.Message{
			llm.TextMessage(llm.RoleSystem, prompts.ClassifierInstruction),
			llm.TextMessage(llm.RoleUser, idea),
		},
	})
	if err != nil {
		c.logger.Error("classification failed", zap.Error(err))
		return "", newProviderError(err)
	}

	token := strings.TrimSpace(out)
	c.logger.Debug("classified prompt", zap.String("token", token))
	return token, nil
}
