// Package codegen implements the LLM side of buildx: framework classification, prompt
// refinement, and streaming code generation over an assembled conversation.
package codegen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/buildx/pkg/llm"
	"github.com/papercomputeco/buildx/pkg/logger"
	"github.com/papercomputeco/buildx/pkg/provider"
)

// ErrorText is sent to the sink, appended to the conversation and returned when a
// generation fails.
const ErrorText = "Error occurred while processing the request"

// ErrGenerationFailed wraps every generation failure, including cancellation.
var ErrGenerationFailed = errors.New("generation failed")

// Sink receives streamed tokens in arrival order.
type Sink func(token string)

// Generator streams code generations from a provider.
type Generator struct {
	provider    provider.Provider
	logger      *zap.Logger
	temperature float32
}

// NewGenerator creates a new Generator.
func NewGenerator(p provider.Provider, logger *zap.Logger) *Generator {
	return &Generator{
		provider:    p,
		logger:      logger,
		temperature: llm.DefaultTemperature,
	}
}

// Generate assembles conv for fw, appends prompt as the new user turn and streams a
// completion from model. Every present delta, including an empty one, is passed to sink
// and accumulated; the accumulated text is returned and appended to conv as the
// assistant turn.
//
// On failure conv gains an assistant message with ErrorText, sink receives ErrorText
// once, and ErrorText is returned along with an error wrapping ErrGenerationFailed.
// Cancelling ctx aborts the upstream request.
func (g *Generator) Generate(ctx context.Context, conv *Conversation, prompt string, fw llm.Framework, model string, sink Sink) (string, error) {
	startTime := time.Now()

	Assemble(conv, prompt, fw)

	g.logger.Debug("starting generation",
		zap.String("model", model),
		zap.String("framework", string(fw)),
		zap.Int("message_count", conv.Len()),
	)

	content, err := g.stream(ctx, conv, model, sink)
	if err != nil {
		g.logger.Error("generation failed",
			zap.String("model", model),
			zap.Error(err),
		)
		conv.Append(llm.TextMessage(llm.RoleAssistant, ErrorText))
		sink(ErrorText)
		return ErrorText, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	conv.Append(llm.TextMessage(llm.RoleAssistant, content))

	g.logger.Debug("generation complete",
		zap.String("content_preview", logger.Truncate(content, 200)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return content, nil
}

func (g *Generator) stream(ctx context.Context, conv *Conversation, model string, sink Sink) (string, error) {
	temperature := g.temperature
	stream, err := g.provider.Stream(ctx, provider.CompletionRequest{
		Model:    model,
		Messages: conv.Messages(),
		Options:  llm.Options{Temperature: &temperature},
	})
	if err != nil {
		return "", fmt.Errorf("start stream: %w", err)
	}
	defer stream.Close()

	var fullContent strings.Builder
	for {
		delta, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return fullContent.String(), nil
		}
		if err != nil {
			return "", fmt.Errorf("receive stream: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if delta.Content == nil {
			continue
		}

		sink(*delta.Content)
		fullContent.WriteString(*delta.Content)
	}
}
