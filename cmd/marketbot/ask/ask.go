// Package askcmder provides the ask command for one-shot questions.
package askcmder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/basilio254/market-bot/pkg/cliui"
	"github.com/basilio254/market-bot/pkg/config"
	"github.com/basilio254/market-bot/pkg/conversation"
	"github.com/basilio254/market-bot/pkg/credentials"
	"github.com/basilio254/market-bot/pkg/gemini"
	"github.com/basilio254/market-bot/pkg/logger"
)

type askCommander struct {
	endpoint    string
	model       string
	maxAttempts uint
	debug       bool
	configDir   string
}

const askLongDesc string = `Ask the marketing strategist a single question and exit.

The question is sent with web-search grounding enabled and the answer
is printed with any cited sources. No session state is kept.

Examples:
  marketbot ask "What are the top SEO trends right now?"
  marketbot ask -m gemini-2.5-flash-preview-09-2025 "How do I price retargeting ads?"`

const askShortDesc string = "Ask a single question and exit"

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cmder.configDir = configDir

			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.ClientFlags, []string{
				config.FlagEndpoint,
				config.FlagModel,
				config.FlagMaxAttempts,
			})

			cfg := config.ConfigFromViper(v)
			cmder.endpoint = cfg.Client.Endpoint
			cmder.model = cfg.Client.Model
			cmder.maxAttempts = cfg.Chat.MaxAttempts
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run(strings.Join(args, " "))
		},
	}

	config.AddStringFlag(cmd, config.ClientFlags, config.FlagEndpoint, &cmder.endpoint)
	config.AddStringFlag(cmd, config.ClientFlags, config.FlagModel, &cmder.model)
	config.AddUintFlag(cmd, config.ClientFlags, config.FlagMaxAttempts, &cmder.maxAttempts)

	return cmd
}

func (c *askCommander) run(question string) error {
	log := logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(true),
		logger.WithWriter(os.Stderr),
	)

	creds, err := credentials.NewManager(c.configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	client, err := gemini.NewClient(gemini.Config{
		Endpoint:    c.endpoint,
		Model:       c.model,
		MaxAttempts: c.maxAttempts,
	}, creds, log)
	if err != nil {
		return err
	}

	store := conversation.NewStore()
	store.Append(conversation.NewTurn(conversation.RoleUser, question))

	var reply *gemini.Reply
	err = cliui.Step(os.Stderr, "Consulting the Marketing Expert", func() error {
		reply, err = client.Generate(context.Background(), store)
		return err
	})
	if err != nil {
		return err
	}

	rendered, err := cliui.RenderMarkdown(reply.Text)
	if err != nil {
		rendered = reply.Text
	}
	fmt.Println(strings.TrimRight(rendered, "\n"))

	if len(reply.Sources) > 0 {
		fmt.Printf("\n%s\n", cliui.HeaderStyle.Render("Sources"))
		for i, source := range reply.Sources {
			fmt.Printf("  %d. %s %s\n",
				i+1,
				source.Title,
				cliui.LinkStyle.Render(source.URI),
			)
		}
	}

	return nil
}
