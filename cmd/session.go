package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const sessionHelp = `Enter "<grams> <price>" to calculate, e.g. "250 12.50".
Other commands: history, clear (limpar), help, quit (sair).`

// calculator is the part of a session the interactive loop drives.
type calculator interface {
	Calculate(ctx context.Context, rawMass, rawPrice string) (string, error)
	Clear(ctx context.Context)
	Render() string
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Start an interactive price-per-kg session (Ctrl+D to exit)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close(ctx)

		return runSession(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), s)
	},
}

// runSession reads commands line by line until quit or EOF, rendering the
// history after load and after every change.
func runSession(ctx context.Context, in io.Reader, out io.Writer, s calculator) error {
	fmt.Fprintln(out, sessionHelp)
	fmt.Fprintln(out, s.Render())

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit", "sair":
			return nil
		case "help", "ajuda", "?":
			fmt.Fprintln(out, sessionHelp)
			continue
		case "history", "historico", "histórico":
			fmt.Fprintln(out, s.Render())
			continue
		case "clear", "limpar":
			s.Clear(ctx)
			fmt.Fprintln(out, s.Render())
			continue
		}

		// anything but exactly two fields is rejected by the converter
		var mass, price string
		if fields := strings.Fields(line); len(fields) == 2 {
			mass, price = fields[0], fields[1]
		}
		msg, err := s.Calculate(ctx, mass, price)
		fmt.Fprintln(out, msg)
		if err == nil {
			fmt.Fprintln(out, s.Render())
		}
	}
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}
