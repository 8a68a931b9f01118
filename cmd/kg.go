package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// kgCmd runs a single price-per-kg calculation and records it.
var kgCmd = &cobra.Command{
	Use:     "kg <grams> <price>",
	Aliases: []string{"regratres"},
	Short:   "Calculate the price per kg of a product from its weight in grams and its price",
	Example: "  minhasferramentas kg 250 12.50",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close(ctx)

		out := cmd.OutOrStdout()
		msg, err := s.Calculate(ctx, args[0], args[1])
		fmt.Fprintln(out, msg)
		if err != nil {
			return err
		}
		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			fmt.Fprintln(out)
			fmt.Fprintln(out, s.Render())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(kgCmd)
	kgCmd.Flags().BoolP("quiet", "q", false, "Print only the result, not the history")
}
