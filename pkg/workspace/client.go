package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is returned when the workspace service does not know a project or file.
var ErrNotFound = errors.New("not found")

// Client talks to the workspace service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Client for the service at baseURL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			// Project creation provisions a container and can take a while
			Timeout: 2 * time.Minute,
		},
		logger: logger,
	}
}

type createProjectRequest struct {
	Prompt    string `json:"prompt"`
	Framework string `json:"framework"`
}

type createProjectResponse struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// CreateProject creates a project seeded with prompt for framework and returns its id.
func (c *Client) CreateProject(ctx context.Context, prompt, framework string) (string, error) {
	var resp createProjectResponse
	if err := c.do(ctx, http.MethodPost, "/projects", createProjectRequest{Prompt: prompt, Framework: framework}, &resp); err != nil {
		return "", fmt.Errorf("create project: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("create project: service returned no id")
	}

	c.logger.Debug("project created", zap.String("id", resp.ID), zap.String("framework", framework))
	return resp.ID, nil
}

// FetchFile returns the content of filePath inside the container.
func (c *Client) FetchFile(ctx context.Context, containerID, filePath string) (FileContent, error) {
	endpoint := "/containers/" + url.PathEscape(containerID) + "/files?path=" + url.QueryEscape(filePath)

	var file FileContent
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &file); err != nil {
		return EmptyFile, fmt.Errorf("fetch %s: %w", filePath, err)
	}
	return file, nil
}

type saveFileRequest struct {
	FileDir     string `json:"fileDir"`
	FileName    string `json:"fileName"`
	FileContent string `json:"fileContent"`
}

type saveFileResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SaveFile writes content to dir/name inside the container, creating the file if absent.
func (c *Client) SaveFile(ctx context.Context, containerID, dir, name, content string) error {
	endpoint := "/containers/" + url.PathEscape(containerID) + "/files"

	var resp saveFileResponse
	req := saveFileRequest{FileDir: dir, FileName: name, FileContent: content}
	if err := c.do(ctx, http.MethodPut, endpoint, req, &resp); err != nil {
		return fmt.Errorf("save %s/%s: %w", dir, name, err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "service reported failure"
		}
		return fmt.Errorf("save %s/%s: %s", dir, name, msg)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		reqBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(reqBody)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("calling workspace service",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
	)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return fmt.Errorf("workspace service returned %d: %s", httpResp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
