package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openaiapi "github.com/sashabaranov/go-openai"

	"github.com/papercomputeco/buildx/pkg/llm"
)

// Config configures an OpenAI-compatible upstream.
type Config struct {
	APIKey string
	// BaseURL overrides the default API root, e.g. a Gemini or OpenRouter
	// OpenAI-compatible endpoint.
	BaseURL string
}

// OpenAI implements Provider for OpenAI-compatible APIs.
type OpenAI struct {
	client *openaiapi.Client
}

// NewOpenAI creates a new OpenAI-compatible provider.
func NewOpenAI(config Config) *OpenAI {
	clientConfig := openaiapi.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}

	return &OpenAI{
		client: openaiapi.NewClientWithConfig(clientConfig),
	}
}

// Complete implements Provider.Complete. Upstream errors are returned unwrapped so that
// callers can inspect *openai.APIError.
func (o *OpenAI) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, toAPIRequest(req))
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

// Stream implements Provider.Stream
func (o *OpenAI) Stream(ctx context.Context, req CompletionRequest) (Stream, error) {
	apiReq := toAPIRequest(req)
	apiReq.Stream = true

	stream, err := o.client.CreateChatCompletionStream(ctx, apiReq)
	if err != nil {
		return nil, err
	}

	return &openAIStream{stream: stream}, nil
}

// ListModels implements Provider.ListModels
func (o *OpenAI) ListModels(ctx context.Context) ([]string, error) {
	list, err := o.client.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// rawStreamChunk decodes the delta content as a pointer so that an absent field can be
// told apart from an empty one.
type rawStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content *string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

type openAIStream struct {
	stream *openaiapi.ChatCompletionStream
}

func (s *openAIStream) Recv() (Delta, error) {
	raw, err := s.stream.RecvRaw()
	if err != nil {
		return Delta{}, err
	}

	var chunk rawStreamChunk
	if err := json.Unmarshal(raw, &chunk); err != nil {
		return Delta{}, fmt.Errorf("decode stream chunk: %w", err)
	}

	if len(chunk.Choices) == 0 {
		return Delta{}, nil
	}
	return Delta{Content: chunk.Choices[0].Delta.Content}, nil
}

func (s *openAIStream) Close() error {
	return s.stream.Close()
}

func toAPIRequest(req CompletionRequest) openaiapi.ChatCompletionRequest {
	apiReq := openaiapi.ChatCompletionRequest{
		Model:    req.Model,
		Messages: toAPIMessages(req.Messages),
	}
	if req.Options.Temperature != nil {
		apiReq.Temperature = *req.Options.Temperature
	}
	return apiReq
}

func toAPIMessages(msgs []llm.Message) []openaiapi.ChatCompletionMessage {
	res := make([]openaiapi.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		if !m.HasImage() {
			res = append(res, openaiapi.ChatCompletionMessage{
				Role:    string(m.Role),
				Content: m.Text(),
			})
			continue
		}

		parts := make([]openaiapi.ChatMessagePart, 0, len(m.Content))
		for _, part := range m.Content {
			switch part.Type {
			case llm.PartText:
				parts = append(parts, openaiapi.ChatMessagePart{
					Type: openaiapi.ChatMessagePartTypeText,
					Text: part.Text,
				})
			case llm.PartImageURL:
				if part.ImageURL == nil {
					continue
				}
				parts = append(parts, openaiapi.ChatMessagePart{
					Type: openaiapi.ChatMessagePartTypeImageURL,
					ImageURL: &openaiapi.ChatMessageImageURL{
						URL:    part.ImageURL.URL,
						Detail: openaiapi.ImageURLDetailAuto,
					},
				})
			}
		}

		res = append(res, openaiapi.ChatCompletionMessage{
			Role:         string(m.Role),
			MultiContent: parts,
		})
	}
	return res
}
