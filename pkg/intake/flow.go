// Package intake turns an idea typed by the user into a classified, provisioned project.
package intake

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/papercomputeco/buildx/pkg/llm"
)

var (
	// ErrEmptyPrompt is returned before any request is made for a blank prompt.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrRejectedPrompt is returned when the prompt maps to no supported framework.
	ErrRejectedPrompt = errors.New("prompt rejected")
)

// API is the subset of the buildx API the intake flow calls.
type API interface {
	Classify(ctx context.Context, prompt string) (llm.TemplateResponse, error)
	Refine(ctx context.Context, prompt string) (string, error)
	CreateProject(ctx context.Context, prompt string, fw llm.Framework) (string, error)
}

// Result describes a newly created project.
type Result struct {
	Framework llm.Framework
	ProjectID string
	// Route opens the project in the matching editor
	Route string
	// Message is the first user turn of the project's conversation
	Message llm.Message
}

// Flow runs prompt submission and refinement.
type Flow struct {
	api      API
	drafts   *DraftStore
	projects *ProjectStore
	logger   *zap.Logger
}

// Option configures a Flow.
type Option func(*Flow)

// WithProjectStore records the first message of every created project in store.
func WithProjectStore(store *ProjectStore) Option {
	return func(f *Flow) {
		f.projects = store
	}
}

// NewFlow creates a new Flow. drafts may be nil to skip draft persistence.
func NewFlow(api API, drafts *DraftStore, logger *zap.Logger, opts ...Option) *Flow {
	f := &Flow{api: api, drafts: drafts, logger: logger}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Submit classifies prompt, creates a project for it and returns where to open it.
// imagePath optionally attaches an image to the first message. After a successful
// submission the first message is recorded as the project's history and the draft is
// cleared.
func (f *Flow) Submit(ctx context.Context, prompt, imagePath string) (*Result, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	f.saveDraft(prompt)

	tmpl, err := f.api.Classify(ctx, prompt)
	if err != nil {
		return nil, err
	}

	fw, ok := llm.ParseFramework(tmpl.Framework)
	if !ok {
		msg := tmpl.Message
		if msg == "" {
			msg = "no framework matched"
		}
		return nil, fmt.Errorf("%w: %s", ErrRejectedPrompt, msg)
	}

	message := llm.TextMessage(llm.RoleUser, prompt)
	if imagePath != "" {
		dataURL, err := ImageDataURL(imagePath)
		if err != nil {
			return nil, err
		}
		message = llm.ImageMessage(prompt, dataURL)
	}

	id, err := f.api.CreateProject(ctx, prompt, fw)
	if err != nil {
		return nil, err
	}

	if f.projects != nil {
		record := &Project{ID: id, Framework: fw, Messages: []llm.Message{message}}
		if err := f.projects.Save(record); err != nil {
			return nil, fmt.Errorf("project %s was created but not recorded: %w", id, err)
		}
	}
	f.saveDraft("")

	f.logger.Debug("project ready",
		zap.String("id", id),
		zap.String("framework", string(fw)),
		zap.Bool("image", imagePath != ""),
	)

	return &Result{
		Framework: fw,
		ProjectID: id,
		Route:     fw.EditorRoute(id),
		Message:   message,
	}, nil
}

// Refine rewrites prompt and stores the result as the new draft.
func (f *Flow) Refine(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	refined, err := f.api.Refine(ctx, prompt)
	if err != nil {
		return "", err
	}

	f.saveDraft(refined)
	return refined, nil
}

// Draft returns the stored draft prompt.
func (f *Flow) Draft() (string, error) {
	if f.drafts == nil {
		return "", nil
	}
	return f.drafts.Load()
}

func (f *Flow) saveDraft(prompt string) {
	if f.drafts == nil {
		return
	}
	if err := f.drafts.Save(prompt); err != nil {
		f.logger.Warn("failed to store draft prompt", zap.Error(err))
	}
}

// ImageDataURL reads the image at path and encodes it as a data URL.
func ImageDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read image: %w", err)
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%s is not an image (detected %s)", path, mimeType)
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
