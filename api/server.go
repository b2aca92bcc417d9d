// Package api serves the buildx HTTP API: framework classification, prompt refinement,
// project creation, model selection and streaming code generation.
package api

import (
	"context"
	"errors"
	"net"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/buildx/pkg/catalog"
	"github.com/papercomputeco/buildx/pkg/codegen"
	"github.com/papercomputeco/buildx/pkg/llm"
	"github.com/papercomputeco/buildx/pkg/provider"
)

// UserIDHeader identifies the calling user. It is set by the authenticating gateway in
// front of the server.
const UserIDHeader = "X-User-ID"

const userIDLocal = "userID"

// ProjectCreator provisions a project for a classified prompt.
type ProjectCreator interface {
	CreateProject(ctx context.Context, prompt, framework string) (string, error)
}

// Server is the buildx API server.
type Server struct {
	config     Config
	classifier *codegen.Classifier
	refiner    *codegen.Refiner
	generator  *codegen.Generator
	catalog    *catalog.Catalog
	projects   ProjectCreator
	logger     *zap.Logger
	app        *fiber.App
}

// NewServer creates a new Server generating with p and creating projects through projects.
func NewServer(config Config, p provider.Provider, projects ProjectCreator, logger *zap.Logger) (*Server, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(llm.ErrorResponse{Error: err.Error()})
		},
	})

	s := &Server{
		config:     config,
		classifier: codegen.NewClassifier(p, config.ClassifierModel, logger),
		refiner:    codegen.NewRefiner(p, config.ClassifierModel, logger),
		generator:  codegen.NewGenerator(p, logger),
		catalog:    catalog.New(catalog.ParseModels(config.Models), config.DefaultModel, p, config.ModelsCacheTTL),
		projects:   projects,
		logger:     logger,
		app:        app,
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	mainAPI := app.Group("/api/main", s.requireUser)
	mainAPI.Post("/template", s.handleTemplate)
	mainAPI.Post("/refine-prompt", s.handleRefinePrompt)
	mainAPI.Post("/create-project", s.handleCreateProject)
	mainAPI.Post("/chat", s.handleChat)
	mainAPI.Get("/models", s.handleListModels)
	mainAPI.Get("/user-model", s.handleGetUserModel)
	mainAPI.Post("/user-model", s.handleSetUserModel)

	return s, nil
}

// Run starts the server on the configured listening address.
func (s *Server) Run() error {
	s.logger.Info("starting api server",
		zap.String("listen", s.config.ListenAddr),
		zap.String("workspace", s.config.WorkspaceURL),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// RunWithListener serves on an existing listener.
func (s *Server) RunWithListener(ln net.Listener) error {
	s.logger.Info("starting api server", zap.String("listen", ln.Addr().String()))
	return s.app.Listener(ln)
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// requireUser rejects requests without a user id.
func (s *Server) requireUser(c *fiber.Ctx) error {
	userID := c.Get(UserIDHeader)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(llm.ErrorResponse{Error: "Unauthorized"})
	}
	c.Locals(userIDLocal, userID)
	return c.Next()
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDLocal).(string)
	return id
}
