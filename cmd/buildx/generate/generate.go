package generatecmder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/buildx/cmd/buildx/cliconfig"
	"github.com/papercomputeco/buildx/pkg/intake"
	"github.com/papercomputeco/buildx/pkg/llm"
)

const generateLongDesc string = `Stream generated code for a prompt to stdout.

Pass earlier turns with --history (a JSON array of messages) to continue a
conversation, or --project to continue a project created with "buildx new".
A project's history, including an image attached at creation, is sent with the
prompt and the new turns are recorded after a successful generation.
Ctrl-C cancels the generation.

Examples:
  buildx generate --framework react Build a todo app
  buildx generate -f manim -m gpt-4o Animate a sine wave
  buildx generate --project p1 Add a dark mode toggle`

const generateShortDesc string = "Generate code for a prompt"

type generateCommander struct {
	config      cliconfig.Config
	framework   string
	model       string
	historyPath string
	projectID   string
}

func NewGenerateCmd() *cobra.Command {
	cmder := &generateCommander{}

	cmd := &cobra.Command{
		Use:   "generate [prompt...]",
		Short: generateShortDesc,
		Long:  generateLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, strings.Join(args, " "))
		},
	}

	cliconfig.Bind(cmd, &cmder.config)
	cmd.Flags().StringVarP(&cmder.framework, "framework", "f", "", "Target framework: node, react, nextjs or manim")
	cmd.Flags().StringVarP(&cmder.model, "model", "m", "", "Model to generate with (default: your active model)")
	cmd.Flags().StringVar(&cmder.historyPath, "history", "", "JSON file with earlier conversation messages")
	cmd.Flags().StringVarP(&cmder.projectID, "project", "p", "", "Continue the conversation of a project created with buildx new")
	cmd.MarkFlagsOneRequired("framework", "project")
	cmd.MarkFlagsMutuallyExclusive("history", "project")

	return cmd
}

func (c *generateCommander) run(ctx context.Context, cmd *cobra.Command, prompt string) error {
	var (
		history  []llm.Message
		project  *intake.Project
		projects *intake.ProjectStore
		err      error
	)

	switch {
	case c.projectID != "":
		projects, err = c.config.Projects()
		if err != nil {
			return err
		}
		project, err = projects.Load(c.projectID)
		if err != nil {
			return err
		}
		history = project.Messages
	case c.historyPath != "":
		data, err := os.ReadFile(c.historyPath)
		if err != nil {
			return fmt.Errorf("could not read history: %w", err)
		}
		if err := json.Unmarshal(data, &history); err != nil {
			return fmt.Errorf("could not parse history: %w", err)
		}
	}

	framework := c.framework
	if framework == "" && project != nil {
		framework = string(project.Framework)
	}
	fw, err := llm.ParseFrameworkTag(framework)
	if err != nil {
		return err
	}

	log := c.config.Logger()
	defer log.Sync()

	api, err := c.config.Client(log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	content, err := api.Chat(ctx, llm.ChatRequest{
		Messages:  history,
		Prompt:    prompt,
		Framework: string(fw),
		Model:     c.model,
	}, func(token string) {
		fmt.Fprint(out, token)
	})
	fmt.Fprintln(out)
	if err != nil {
		return err
	}

	if project != nil {
		project.Append(
			llm.TextMessage(llm.RoleUser, prompt),
			llm.TextMessage(llm.RoleAssistant, content),
		)
		if err := projects.Save(project); err != nil {
			return fmt.Errorf("could not record generation: %w", err)
		}
	}
	return nil
}
