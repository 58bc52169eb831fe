package main

import (
	"os"

	marketbotcmder "github.com/basilio254/market-bot/cmd/marketbot"
)

func main() {
	cmd := marketbotcmder.NewMarketbotCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
