// Package marketbotcmder
package marketbotcmder

import (
	"github.com/spf13/cobra"

	askcmder "github.com/basilio254/market-bot/cmd/marketbot/ask"
	authcmder "github.com/basilio254/market-bot/cmd/marketbot/auth"
	chatcmder "github.com/basilio254/market-bot/cmd/marketbot/chat"
	configcmder "github.com/basilio254/market-bot/cmd/marketbot/config"
	versioncmder "github.com/basilio254/market-bot/cmd/version"
)

const marketbotLongDesc string = `Marketbot is a digital marketing strategist in your terminal.

Chat with a search-grounded marketing expert:
  marketbot chat       Start an interactive chat session
  marketbot ask        Ask a single question and exit

Before first use, store your API key:
  marketbot auth gemini`

const marketbotShortDesc string = "Marketbot - AI Digital Marketing Strategist"

func NewMarketbotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marketbot",
		Short: marketbotShortDesc,
		Long:  marketbotLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .marketbot config directory")

	// Add subcommands
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(askcmder.NewAskCmd())
	cmd.AddCommand(authcmder.NewAuthCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
