package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/meusprojetos/minhasferramentas/internal/utils"
	"github.com/meusprojetos/minhasferramentas/pkg/history"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show, clear, export or import the calculation history",
}

var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the calculation history, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close(ctx)

		fmt.Fprintln(cmd.OutOrStdout(), s.Render())
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every entry of the calculation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close(ctx)

		s.Clear(ctx)
		fmt.Fprintln(cmd.OutOrStdout(), s.Render())
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the calculation history as JSON or as a static HTML page",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close(ctx)

		w := cmd.OutOrStdout()
		if output != "" && output != "-" {
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if err := writeExport(w, format, s.Entries()); err != nil {
			return err
		}
		if output != "" && output != "-" {
			utils.Log.Infof("Exported %d entries to %s", len(s.Entries()), output)
		}
		return nil
	},
}

var historyImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Add the entries of a JSON export to the history",
	Long: `Add the entries of a JSON export to the history.

Entries are added oldest first, so the export's order is kept. The history
bound still applies: only the newest entries survive.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		entries, err := history.ImportJSON(data)
		if err != nil {
			return err
		}

		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close(ctx)

		for i := len(entries) - 1; i >= 0; i-- {
			s.Add(ctx, entries[i])
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.Render())
		return nil
	},
}

func writeExport(w io.Writer, format string, entries []string) error {
	switch format {
	case "json", "":
		data, err := history.ExportJSON(entries)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "html":
		return history.RenderHTML(w, entries)
	}
	return fmt.Errorf("unknown export format %q (available: json, html)", format)
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyImportCmd)

	historyExportCmd.Flags().StringP("format", "f", "json", "Export format: json or html")
	historyExportCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
}
