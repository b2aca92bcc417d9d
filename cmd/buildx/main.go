package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	editcmder "github.com/papercomputeco/buildx/cmd/buildx/edit"
	generatecmder "github.com/papercomputeco/buildx/cmd/buildx/generate"
	modelscmder "github.com/papercomputeco/buildx/cmd/buildx/models"
	newcmder "github.com/papercomputeco/buildx/cmd/buildx/new"
	refinecmder "github.com/papercomputeco/buildx/cmd/buildx/refine"
	servecmder "github.com/papercomputeco/buildx/cmd/buildx/serve"
	"github.com/papercomputeco/buildx/pkg/client"
	"github.com/papercomputeco/buildx/pkg/intake"
	"github.com/papercomputeco/buildx/pkg/notify"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "buildx",
		Short:         "Turn ideas into running projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(newcmder.NewNewCmd())
	cmd.AddCommand(refinecmder.NewRefineCmd())
	cmd.AddCommand(modelscmder.NewModelsCmd())
	cmd.AddCommand(generatecmder.NewGenerateCmd())
	cmd.AddCommand(editcmder.NewEditCmd())

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		report(notify.New(os.Stderr), err)
		stop()
		os.Exit(1)
	}
}

// report maps errors to the notification the user should see.
func report(note *notify.Notifier, err error) {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		note.Warning("Please sign in to continue (set BUILDX_USER_ID or --user)")
	case errors.Is(err, intake.ErrRejectedPrompt):
		note.Warning("Try again with a different prompt")
	case errors.Is(err, context.Canceled):
		note.Warning("Cancelled")
	case errors.As(err, &apiErr):
		note.Error("%s", apiErr.Message)
	default:
		note.Error("%s", err.Error())
	}
}
