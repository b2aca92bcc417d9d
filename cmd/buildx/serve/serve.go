package servecmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/buildx/api"
	"github.com/papercomputeco/buildx/pkg/logger"
	"github.com/papercomputeco/buildx/pkg/provider"
	"github.com/papercomputeco/buildx/pkg/workspace"
)

const serveLongDesc string = `Run the buildx API server.

Configuration is read from BUILDX_* environment variables; flags override it.

Examples:
  buildx serve
  buildx serve --listen :9090 --workspace http://workspace:4000
  BUILDX_MODELS="gpt-4o=GPT-4o,claude-3-5-sonnet" buildx serve`

const serveShortDesc string = "Run the API server"

type serveCommander struct {
	listenAddr   string
	providerURL  string
	workspaceURL string
	debug        bool
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.Context(), cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.listenAddr, "listen", "l", "", "Address to listen on (default $BUILDX_LISTEN or :8080)")
	cmd.Flags().StringVar(&cmder.providerURL, "provider-url", "", "OpenAI-compatible upstream URL")
	cmd.Flags().StringVar(&cmder.workspaceURL, "workspace", "", "Workspace service URL")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *serveCommander) run(ctx context.Context, cmd *cobra.Command) error {
	config, err := api.LoadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("listen") {
		config.ListenAddr = c.listenAddr
	}
	if cmd.Flags().Changed("provider-url") {
		config.ProviderURL = c.providerURL
	}
	if cmd.Flags().Changed("workspace") {
		config.WorkspaceURL = c.workspaceURL
	}
	if cmd.Flags().Changed("debug") {
		config.Debug = c.debug
	}

	log := logger.NewLogger(config.Debug)
	defer log.Sync()

	log.Info("buildx server starting",
		zap.String("listen", config.ListenAddr),
		zap.String("workspace", config.WorkspaceURL),
		zap.Bool("debug", config.Debug),
	)

	llmProvider := provider.NewOpenAI(provider.Config{
		APIKey:  config.ProviderAPIKey,
		BaseURL: config.ProviderURL,
	})
	projects := workspace.NewClient(config.WorkspaceURL, log)

	srv, err := api.NewServer(*config, llmProvider, projects, log)
	if err != nil {
		return fmt.Errorf("could not create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		return srv.Shutdown()
	}
}
