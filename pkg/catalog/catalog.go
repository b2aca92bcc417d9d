// Package catalog lists the models users may generate with and keeps each user's active
// selection.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/papercomputeco/buildx/pkg/llm"
)

// ErrModelNotFound is returned for a model id outside the catalogue.
var ErrModelNotFound = errors.New("model not found")

// DefaultCacheTTL is how long discovered models are reused.
const DefaultCacheTTL = 10 * time.Minute

// Lister discovers the models an upstream serves.
type Lister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Catalog is the set of selectable models. A configured list takes precedence; without
// one, models are discovered from the upstream and cached.
type Catalog struct {
	configured   []llm.ModelInfo
	lister       Lister
	cache        *modelsCache
	defaultModel string

	mu         sync.RWMutex
	selections map[string]string
}

// New creates a new Catalog. lister may be nil when models is non-empty.
func New(models []llm.ModelInfo, defaultModel string, lister Lister, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Catalog{
		configured:   models,
		lister:       lister,
		cache:        newModelsCache(ttl),
		defaultModel: defaultModel,
		selections:   make(map[string]string),
	}
}

// Models returns the selectable models.
func (c *Catalog) Models(ctx context.Context) ([]llm.ModelInfo, error) {
	if len(c.configured) > 0 {
		return c.configured, nil
	}
	if cached := c.cache.get(); cached != nil {
		return cached, nil
	}
	if c.lister == nil {
		return nil, errors.New("no models configured")
	}

	ids, err := c.lister.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}

	models := make([]llm.ModelInfo, 0, len(ids))
	for _, id := range ids {
		models = append(models, llm.ModelInfo{ID: id, Name: id, DisplayName: DisplayName(id)})
	}

	c.cache.set(models)
	return models, nil
}

// Lookup returns the model with the given id.
func (c *Catalog) Lookup(ctx context.Context, id string) (llm.ModelInfo, error) {
	models, err := c.Models(ctx)
	if err != nil {
		return llm.ModelInfo{}, err
	}
	for _, m := range models {
		if m.ID == id {
			return m, nil
		}
	}
	return llm.ModelInfo{}, ErrModelNotFound
}

// Selected returns the active model of userID, or the default model.
func (c *Catalog) Selected(userID string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if id, ok := c.selections[userID]; ok {
		return id
	}
	return c.defaultModel
}

// Select makes modelID the active model of userID.
func (c *Catalog) Select(ctx context.Context, userID, modelID string) error {
	if _, err := c.Lookup(ctx, modelID); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.selections[userID] = modelID
	return nil
}

// ParseModels parses entries of the form "id" or "id=Display Name".
func ParseModels(entries []string) []llm.ModelInfo {
	models := make([]llm.ModelInfo, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}

		id, display, ok := strings.Cut(e, "=")
		id = strings.TrimSpace(id)
		display = strings.TrimSpace(display)
		if !ok || display == "" {
			display = DisplayName(id)
		}
		models = append(models, llm.ModelInfo{ID: id, Name: id, DisplayName: display})
	}
	return models
}

// DisplayName derives a readable name from a model id, e.g.
// "google/gemini-1.5-flash" becomes "Gemini 1.5 Flash".
func DisplayName(id string) string {
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}
	words := strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	for i, w := range words {
		switch strings.ToLower(w) {
		case "gpt":
			words[i] = "GPT"
		default:
			r, size := utf8.DecodeRuneInString(w)
			words[i] = string(unicode.ToUpper(r)) + w[size:]
		}
	}
	return strings.Join(words, " ")
}
