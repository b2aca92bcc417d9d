package api

import (
	"bufio"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/papercomputeco/buildx/pkg/codegen"
	"github.com/papercomputeco/buildx/pkg/llm"
	"github.com/papercomputeco/buildx/pkg/logger"
)

// StreamIDHeader carries the id the server logs a generation stream under.
const StreamIDHeader = "X-Stream-ID"

// handleChat streams a code generation as NDJSON: one {"token"} line per delta, then a
// single {"done":true} line carrying either the full content or the error text.
// Generation is cancelled as soon as a write to the client fails.
func (s *Server) handleChat(c *fiber.Ctx) error {
	startTime := time.Now()

	var req llm.ChatRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		s.logger.Error("failed to parse request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: errPromptRequired})
	}

	fw, err := llm.ParseFrameworkTag(req.Framework)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: err.Error()})
	}

	model := req.Model
	if model == "" {
		model = s.catalog.Selected(userID(c))
	}

	streamID := uuid.NewString()
	s.logger.Debug("received chat request",
		zap.String("stream_id", streamID),
		zap.String("user", userID(c)),
		zap.String("model", model),
		zap.String("framework", string(fw)),
		zap.Int("message_count", len(req.Messages)),
	)

	c.Set("Content-Type", "application/x-ndjson")
	c.Set("Transfer-Encoding", "chunked")
	c.Set(StreamIDHeader, streamID)

	gen := generation{
		id:        streamID,
		conv:      codegen.NewConversation(req.Messages),
		prompt:    req.Prompt,
		framework: fw,
		model:     model,
		started:   startTime,
	}
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		s.streamGeneration(w, gen)
	}))

	return nil
}

// generation is a validated chat request ready to stream.
type generation struct {
	id        string
	conv      *codegen.Conversation
	prompt    string
	framework llm.Framework
	model     string
	started   time.Time
}

// streamGeneration runs gen and writes its NDJSON lines to w. The first failed write
// cancels the generation and ends the response without a done line.
func (s *Server) streamGeneration(w *bufio.Writer, gen generation) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	enc := json.NewEncoder(w)
	write := func(chunk llm.StreamChunk) bool {
		if err := enc.Encode(chunk); err != nil {
			return false
		}
		return w.Flush() == nil
	}

	disconnected := false
	sink := func(token string) {
		if disconnected {
			return
		}
		if !write(llm.TokenChunk(token)) {
			disconnected = true
			s.logger.Info("client disconnected, cancelling generation", zap.String("stream_id", gen.id))
			cancel()
		}
	}

	content, err := s.generator.Generate(ctx, gen.conv, gen.prompt, gen.framework, gen.model, sink)
	if disconnected {
		return
	}

	final := llm.StreamChunk{Done: true, Content: content}
	if err != nil {
		final = llm.StreamChunk{Done: true, Error: content}
	}
	write(final)

	s.logger.Debug("streaming complete",
		zap.String("stream_id", gen.id),
		zap.String("content_preview", logger.Truncate(content, 200)),
		zap.Bool("failed", err != nil),
		zap.Duration("duration", time.Since(gen.started)),
	)
}
