// Package configcmder provides the config command for managing persistent
// marketbot configuration stored in the .marketbot/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent marketbot configuration.

Configuration is stored as config.toml in the .marketbot/ directory and
provides default values for command flags. CLI flags always take
precedence over config file values, and MARKETBOT_* environment
variables sit between the two.

Keys use dotted notation matching the TOML section structure:
  client.endpoint, client.model,
  chat.history_window, chat.max_attempts

Use subcommands to get, set, or list configuration values:
  marketbot config set <key> <value>    Set a configuration value
  marketbot config get <key>            Get a configuration value
  marketbot config list                 List all configuration values

Examples:
  marketbot config set client.model gemini-2.5-flash-preview-09-2025
  marketbot config set chat.history_window 20
  marketbot config get client.model
  marketbot config list`

const configShortDesc string = "Manage persistent marketbot configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
