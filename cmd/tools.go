package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meusprojetos/minhasferramentas/pkg/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools [command]",
	Short: "List the available tools, or show the one opened by command",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := tools.Catalog()
		if len(args) == 1 {
			t, ok := tools.Find(catalog, args[0])
			if !ok {
				return fmt.Errorf("unknown tool %q", args[0])
			}
			catalog = []tools.Tool{t}
		}
		return tools.Render(cmd.OutOrStdout(), catalog)
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
