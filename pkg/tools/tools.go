// Package tools holds the catalog of tools offered by the launcher.
package tools

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Tool is one entry of the launcher. Command names the CLI command that opens it.
type Tool struct {
	Name        string
	Description string
	Command     string
}

// Catalog returns the available tools in display order.
func Catalog() []Tool {
	return []Tool{
		{
			Name:        "Calculadora R$/kg",
			Description: "Calcule valor de preço por kg",
			Command:     "kg",
		},
	}
}

// Find looks a tool up by its command name.
func Find(tools []Tool, command string) (Tool, bool) {
	for _, t := range tools {
		if t.Command == command {
			return t, true
		}
	}
	return Tool{}, false
}

// Render writes one row per tool.
func Render(w io.Writer, tools []Tool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDESCRIPTION\tCOMMAND")
	for _, t := range tools {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Name, t.Description, t.Command)
	}
	return tw.Flush()
}
