// Package client is a typed client for the buildx API.
package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/buildx/pkg/llm"
)

const userIDHeader = "X-User-ID"

// requestTimeout bounds every non-streaming call.
const requestTimeout = 2 * time.Minute

var (
	// ErrUnauthorized is returned for 401 responses; the user needs to sign in again.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrGenerationFailed is returned when a chat stream ends with an error line.
	ErrGenerationFailed = errors.New("generation failed")
)

// APIError is a non-2xx response other than 401.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client calls a buildx server on behalf of one user.
type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a new Client.
func New(baseURL, userID string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  userID,
		// Streams can outlive any fixed timeout; non-streaming calls use requestTimeout.
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Classify asks the server which framework suits prompt. A rejected prompt comes back
// with Message set and Framework empty.
func (c *Client) Classify(ctx context.Context, prompt string) (llm.TemplateResponse, error) {
	var resp llm.TemplateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/main/template", llm.PromptRequest{Prompt: prompt}, &resp); err != nil {
		return llm.TemplateResponse{}, fmt.Errorf("classify prompt: %w", err)
	}
	return resp, nil
}

// Refine returns the server's rewrite of prompt.
func (c *Client) Refine(ctx context.Context, prompt string) (string, error) {
	var resp llm.RefineResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/main/refine-prompt", llm.PromptRequest{Prompt: prompt}, &resp); err != nil {
		return "", fmt.Errorf("refine prompt: %w", err)
	}
	return resp.RefinedPrompt, nil
}

// CreateProject creates a project and returns its id.
func (c *Client) CreateProject(ctx context.Context, prompt string, fw llm.Framework) (string, error) {
	var resp llm.CreateProjectResponse
	req := llm.CreateProjectRequest{Prompt: prompt, Framework: string(fw)}
	if err := c.doJSON(ctx, http.MethodPost, "/api/main/create-project", req, &resp); err != nil {
		return "", fmt.Errorf("create project: %w", err)
	}
	if resp.ID == "" {
		return "", errors.New("create project: server returned no id")
	}
	return resp.ID, nil
}

// Models lists the selectable models.
func (c *Client) Models(ctx context.Context) ([]llm.ModelInfo, error) {
	var models []llm.ModelInfo
	if err := c.doJSON(ctx, http.MethodGet, "/api/main/models", nil, &models); err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return models, nil
}

// UserModel returns the id of the active model.
func (c *Client) UserModel(ctx context.Context) (string, error) {
	var resp llm.UserModelResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/main/user-model", nil, &resp); err != nil {
		return "", fmt.Errorf("get user model: %w", err)
	}
	return resp.ID, nil
}

// SetUserModel changes the active model.
func (c *Client) SetUserModel(ctx context.Context, modelID string) error {
	var resp llm.SuccessResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/main/user-model", llm.SetModelRequest{ModelID: modelID}, &resp); err != nil {
		return fmt.Errorf("set user model: %w", err)
	}
	if !resp.Success {
		return errors.New("set user model: server did not confirm")
	}
	return nil
}

// Chat streams a generation, passing every token to sink, and returns the full content
// from the final line. A final error line yields ErrGenerationFailed.
func (c *Client) Chat(ctx context.Context, req llm.ChatRequest, sink func(token string)) (string, error) {
	httpResp, err := c.send(ctx, http.MethodPost, "/api/main/chat", req)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	defer httpResp.Body.Close()

	if err := checkStatus(httpResp); err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}

	scanner := bufio.NewScanner(httpResp.Body)
	// The final line carries the whole generation.
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var chunk llm.StreamChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			c.logger.Warn("failed to parse chunk", zap.Error(err), zap.ByteString("line", line))
			continue
		}

		if chunk.Done {
			if chunk.Error != "" {
				return "", fmt.Errorf("%w: %s", ErrGenerationFailed, chunk.Error)
			}
			return chunk.Content, nil
		}
		if chunk.Token != nil {
			sink(*chunk.Token)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("chat: read stream: %w", err)
	}
	return "", errors.New("chat: stream ended before completion")
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	httpResp, err := c.send(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	if err := checkStatus(httpResp); err != nil {
		return err
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reqBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(reqBody)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		httpReq.Header.Set(userIDHeader, c.userID)
	}

	c.logger.Debug("calling buildx api", zap.String("method", method), zap.String("endpoint", endpoint))

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	return httpResp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	respBody, _ := io.ReadAll(resp.Body)
	msg := strings.TrimSpace(string(respBody))
	var errResp llm.ErrorResponse
	if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
		msg = errResp.Error
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
