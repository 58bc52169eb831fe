// Package chatcmder provides the chat command for interactive sessions
// with the marketing strategist.
package chatcmder

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/basilio254/market-bot/pkg/cliui"
	"github.com/basilio254/market-bot/pkg/config"
	"github.com/basilio254/market-bot/pkg/conversation"
	"github.com/basilio254/market-bot/pkg/credentials"
	"github.com/basilio254/market-bot/pkg/gemini"
	"github.com/basilio254/market-bot/pkg/logger"
)

var (
	userPrompt      = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true).Render("you> ")
	assistantPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("expert> ")
)

type chatCommander struct {
	endpoint      string
	model         string
	historyWindow uint
	maxAttempts   uint
	plain         bool
	debug         bool
	configDir     string

	log *slog.Logger
}

const chatLongDesc string = `Start an interactive chat session with the marketing strategist.

Messages are sent to the generative-language API with web-search
grounding enabled, so answers can cite current sources. The session
keeps a rolling window of recent turns for context; nothing is
persisted after exit.

By default the session opens a full-screen terminal UI. Use --plain
for a line-oriented prompt that works in dumb terminals and scripts.

Requires a stored API key ("marketbot auth gemini") or the
GEMINI_API_KEY environment variable.

Examples:
  marketbot chat
  marketbot chat --plain
  marketbot chat --model gemini-2.5-flash-preview-09-2025`

const chatShortDesc string = "Interactive chat with the marketing strategist"

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
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
				config.FlagHistoryWindow,
				config.FlagMaxAttempts,
			})

			cfg := config.ConfigFromViper(v)
			cmder.endpoint = cfg.Client.Endpoint
			cmder.model = cfg.Client.Model
			cmder.historyWindow = cfg.Chat.HistoryWindow
			cmder.maxAttempts = cfg.Chat.MaxAttempts
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.ClientFlags, config.FlagEndpoint, &cmder.endpoint)
	config.AddStringFlag(cmd, config.ClientFlags, config.FlagModel, &cmder.model)
	config.AddUintFlag(cmd, config.ClientFlags, config.FlagHistoryWindow, &cmder.historyWindow)
	config.AddUintFlag(cmd, config.ClientFlags, config.FlagMaxAttempts, &cmder.maxAttempts)
	cmd.Flags().BoolVar(&cmder.plain, "plain", false, "Line-oriented prompt instead of the full-screen UI")

	return cmd
}

func (c *chatCommander) run() error {
	// Debug logs go to stderr; stdout belongs to the transcript.
	c.log = logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(true),
		logger.WithWriter(os.Stderr),
	)

	client, err := c.newClient()
	if err != nil {
		return err
	}

	store := conversation.NewStore()
	store.Append(conversation.NewTurn(conversation.RoleSystem, gemini.SystemPrompt))
	store.Append(conversation.NewTurn(conversation.RoleAssistant, gemini.Greeting))

	if c.plain {
		return c.runPlain(client, store)
	}
	return runChatTUI(client, store, c.model)
}

func (c *chatCommander) newClient() (*gemini.Client, error) {
	creds, err := credentials.NewManager(c.configDir)
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	return gemini.NewClient(gemini.Config{
		Endpoint:      c.endpoint,
		Model:         c.model,
		HistoryWindow: c.historyWindow,
		MaxAttempts:   c.maxAttempts,
	}, creds, c.log)
}

// runPlain is a line-oriented chat loop for terminals where the
// full-screen UI is unwanted.
func (c *chatCommander) runPlain(client *gemini.Client, store *conversation.Store) error {
	fmt.Println()
	fmt.Printf("  %s %s\n",
		cliui.KeyStyle.Render("Model:"),
		cliui.NameStyle.Render(c.model),
	)
	fmt.Printf("  %s\n\n", cliui.DimStyle.Render("Type your message and press Enter. /exit or Ctrl+D to quit."))

	fmt.Printf("%s%s\n\n", assistantPrompt, gemini.Greeting)

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(userPrompt)
		if !scanner.Scan() {
			// EOF or error
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/exit" {
			break
		}

		store.Append(conversation.NewTurn(conversation.RoleUser, input))

		turn := requestReply(client, store)
		store.Append(turn)

		rendered, err := cliui.RenderMarkdown(turn.Text)
		if err != nil {
			rendered = turn.Text
		}
		fmt.Printf("%s%s\n", assistantPrompt, strings.TrimRight(rendered, "\n"))

		if len(turn.Sources) > 0 {
			fmt.Printf("\n  %s\n", cliui.HeaderStyle.Render("Sources"))
			for i, source := range turn.Sources {
				fmt.Printf("  %d. %s %s\n",
					i+1,
					source.Title,
					cliui.LinkStyle.Render(source.URI),
				)
			}
		}
		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Println()
	return nil
}

// requestReply calls the API and converts any failure into an assistant
// turn so the session survives transient trouble. The failed exchange
// stays in the transcript like any other turn.
func requestReply(client *gemini.Client, store *conversation.Store) conversation.Turn {
	reply, err := client.Generate(context.Background(), store)
	if err != nil {
		return conversation.NewTurn(conversation.RoleAssistant,
			fmt.Sprintf("Sorry, I encountered an error: %v", err))
	}
	return conversation.NewAssistantTurn(reply.Text, reply.Sources)
}
