// Package provider abstracts the upstream chat-completion API used for classification,
// prompt refinement and streaming code generation.
package provider

import (
	"context"
	"errors"

	"github.com/papercomputeco/buildx/pkg/llm"
)

// ErrEmptyResponse is returned when the upstream answers without any choice.
var ErrEmptyResponse = errors.New("provider returned empty response")

// CompletionRequest is a chat completion request against a single model.
type CompletionRequest struct {
	Model    string
	Messages []llm.Message
	Options  llm.Options
}

// Delta is one streamed increment. Content is nil when the upstream chunk carried no
// content field at all, and points to "" when it carried an empty one.
type Delta struct {
	Content *string
}

// Stream yields deltas in arrival order. Recv returns io.EOF once the stream is complete.
type Stream interface {
	Recv() (Delta, error)
	Close() error
}

// Provider is an upstream chat-completion API.
type Provider interface {
	// Complete sends messages and returns the text of the first choice.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Stream starts a streaming completion. Cancelling ctx aborts the stream.
	Stream(ctx context.Context, req CompletionRequest) (Stream, error)

	// ListModels returns the ids of the models the upstream serves.
	ListModels(ctx context.Context) ([]string, error)
}
