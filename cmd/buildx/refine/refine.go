package refinecmder

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/buildx/cmd/buildx/cliconfig"
	"github.com/papercomputeco/buildx/pkg/intake"
)

const refineLongDesc string = `Rewrite an idea into a fuller prompt.

The refined prompt is printed and stored as the draft for "buildx new".
Without an idea, the stored draft is refined.

Examples:
  buildx refine todo app
  buildx refine && buildx new`

const refineShortDesc string = "Refine an idea into a prompt"

type refineCommander struct {
	config cliconfig.Config
}

func NewRefineCmd() *cobra.Command {
	cmder := &refineCommander{}

	cmd := &cobra.Command{
		Use:   "refine [idea...]",
		Short: refineShortDesc,
		Long:  refineLongDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, strings.Join(args, " "))
		},
	}

	cliconfig.Bind(cmd, &cmder.config)

	return cmd
}

func (c *refineCommander) run(ctx context.Context, cmd *cobra.Command, idea string) error {
	log := c.config.Logger()
	defer log.Sync()

	api, err := c.config.Client(log)
	if err != nil {
		return err
	}
	drafts, err := c.config.Drafts()
	if err != nil {
		return err
	}
	flow := intake.NewFlow(api, drafts, log)

	if strings.TrimSpace(idea) == "" {
		idea, err = flow.Draft()
		if err != nil {
			return err
		}
	}

	refined, err := flow.Refine(ctx, idea)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), refined)
	return nil
}
