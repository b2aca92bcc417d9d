package modelscmder

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/buildx/cmd/buildx/cliconfig"
	"github.com/papercomputeco/buildx/pkg/notify"
)

const modelsLongDesc string = `List the models available for generation.

The active model is marked with "*".

Examples:
  buildx models
  buildx models use claude-3-5-sonnet`

const modelsShortDesc string = "List models"

type modelsCommander struct {
	config cliconfig.Config
}

func NewModelsCmd() *cobra.Command {
	cmder := &modelsCommander{}

	cmd := &cobra.Command{
		Use:   "models",
		Short: modelsShortDesc,
		Long:  modelsLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.Context(), cmd)
		},
	}

	cliconfig.Bind(cmd, &cmder.config)
	cmd.AddCommand(newUseCmd())

	return cmd
}

func (c *modelsCommander) run(ctx context.Context, cmd *cobra.Command) error {
	log := c.config.Logger()
	defer log.Sync()

	api, err := c.config.Client(log)
	if err != nil {
		return err
	}

	models, err := api.Models(ctx)
	if err != nil {
		return err
	}
	active, err := api.UserModel(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, m := range models {
		marker := " "
		if m.ID == active {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", marker, m.ID, m.DisplayName)
	}
	return tw.Flush()
}

type useCommander struct {
	config cliconfig.Config
}

func newUseCmd() *cobra.Command {
	cmder := &useCommander{}

	cmd := &cobra.Command{
		Use:   "use <model-id>",
		Short: "Select the active model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args[0])
		},
	}

	cliconfig.Bind(cmd, &cmder.config)

	return cmd
}

func (c *useCommander) run(ctx context.Context, cmd *cobra.Command, modelID string) error {
	log := c.config.Logger()
	defer log.Sync()

	api, err := c.config.Client(log)
	if err != nil {
		return err
	}

	if err := api.SetUserModel(ctx, modelID); err != nil {
		return err
	}

	notify.New(cmd.ErrOrStderr()).Success("Now generating with %s", modelID)
	return nil
}
