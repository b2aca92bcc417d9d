package newcmder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/buildx/cmd/buildx/cliconfig"
	"github.com/papercomputeco/buildx/pkg/intake"
	"github.com/papercomputeco/buildx/pkg/notify"
)

const newLongDesc string = `Create a project from an idea.

The idea is classified into a framework, a project is provisioned for it and
the editor route is printed. Without an idea, the stored draft is used. The
first message, including any attached image, is kept as the project's history
for "buildx generate --project".

Examples:
  buildx new Build a todo app
  buildx new --image sketch.png "A landing page like this"
  buildx new`

const newShortDesc string = "Create a project from an idea"

type newCommander struct {
	config    cliconfig.Config
	imagePath string
}

func NewNewCmd() *cobra.Command {
	cmder := &newCommander{}

	cmd := &cobra.Command{
		Use:   "new [idea...]",
		Short: newShortDesc,
		Long:  newLongDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, strings.Join(args, " "))
		},
	}

	cliconfig.Bind(cmd, &cmder.config)
	cmd.Flags().StringVarP(&cmder.imagePath, "image", "i", "", "Image to attach to the first message")

	return cmd
}

func (c *newCommander) run(ctx context.Context, cmd *cobra.Command, idea string) error {
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
	projects, err := c.config.Projects()
	if err != nil {
		return err
	}
	flow := intake.NewFlow(api, drafts, log, intake.WithProjectStore(projects))

	if strings.TrimSpace(idea) == "" {
		idea, err = flow.Draft()
		if err != nil {
			return err
		}
	}

	note := notify.New(cmd.ErrOrStderr())

	res, err := flow.Submit(ctx, idea, c.imagePath)
	if errors.Is(err, intake.ErrEmptyPrompt) {
		return errors.New("no idea given and no draft stored")
	}
	if err != nil {
		return err
	}

	note.Success("Created %s project %s", strings.ToLower(string(res.Framework)), res.ProjectID)
	fmt.Fprintln(cmd.OutOrStdout(), res.Route)
	return nil
}
