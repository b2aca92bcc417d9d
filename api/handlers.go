package api

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/buildx/pkg/catalog"
	"github.com/papercomputeco/buildx/pkg/codegen"
	"github.com/papercomputeco/buildx/pkg/llm"
	"github.com/papercomputeco/buildx/pkg/logger"
)

// RejectedPromptMessage is returned when a prompt maps to no known framework.
const RejectedPromptMessage = "Try again with a different prompt"

const errPromptRequired = "Prompt is required"

func providerErrorText(err error) string {
	var perr *codegen.ProviderError
	if errors.As(err, &perr) {
		return perr.Message
	}
	return err.Error()
}

// handleTemplate classifies a prompt into a framework token.
func (s *Server) handleTemplate(c *fiber.Ctx) error {
	var req llm.PromptRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: errPromptRequired})
	}

	token, err := s.classifier.Classify(c.Context(), req.Prompt)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(llm.ErrorResponse{Error: providerErrorText(err)})
	}

	fw, ok := llm.ParseFramework(token)
	if !ok {
		s.logger.Info("prompt rejected by classifier",
			zap.String("prompt", logger.Truncate(req.Prompt, 80)),
			zap.String("answer", logger.Truncate(token, 40)),
		)
		return c.JSON(llm.TemplateResponse{Message: RejectedPromptMessage})
	}

	return c.JSON(llm.TemplateResponse{Framework: fw.Token()})
}

// handleRefinePrompt rewrites a rough idea into a fuller prompt.
func (s *Server) handleRefinePrompt(c *fiber.Ctx) error {
	var req llm.PromptRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: errPromptRequired})
	}

	refined, err := s.refiner.Refine(c.Context(), req.Prompt)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(llm.ErrorResponse{Error: providerErrorText(err)})
	}

	return c.JSON(llm.RefineResponse{RefinedPrompt: refined})
}

// handleCreateProject forwards project creation to the workspace service.
func (s *Server) handleCreateProject(c *fiber.Ctx) error {
	var req llm.CreateProjectRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: errPromptRequired})
	}

	fw, err := llm.ParseFrameworkTag(req.Framework)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: err.Error()})
	}

	id, err := s.projects.CreateProject(c.Context(), req.Prompt, fw.Token())
	if err != nil {
		s.logger.Error("failed to create project",
			zap.String("user", userID(c)),
			zap.String("framework", string(fw)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusBadGateway).JSON(llm.ErrorResponse{Error: "Failed to create project"})
	}

	s.logger.Info("project created",
		zap.String("user", userID(c)),
		zap.String("id", id),
		zap.String("framework", string(fw)),
	)
	return c.JSON(llm.CreateProjectResponse{ID: id})
}

// handleListModels returns the selectable models.
func (s *Server) handleListModels(c *fiber.Ctx) error {
	models, err := s.catalog.Models(c.Context())
	if err != nil {
		s.logger.Error("failed to list models", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(llm.ErrorResponse{Error: "Failed to fetch models"})
	}
	return c.JSON(models)
}

// handleGetUserModel returns the active model of the caller.
func (s *Server) handleGetUserModel(c *fiber.Ctx) error {
	return c.JSON(llm.UserModelResponse{ID: s.catalog.Selected(userID(c))})
}

// handleSetUserModel changes the active model of the caller.
func (s *Server) handleSetUserModel(c *fiber.Ctx) error {
	var req llm.SetModelRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}

	if err := s.catalog.Select(c.Context(), userID(c), req.ModelID); err != nil {
		if errors.Is(err, catalog.ErrModelNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "Model not found"})
		}
		s.logger.Error("failed to select model", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(llm.ErrorResponse{Error: "Failed to update model"})
	}

	return c.JSON(llm.SuccessResponse{Success: true})
}
