package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lilt/internal/diagfmt"
	"lilt/internal/lexer"
	"lilt/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.lt",
	Short: "Tokenize a lilt source file",
	Long:  `Tokenize breaks a lilt source file into its token stream`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	set := source.NewSet()
	unit := set.Get(set.Add(path, src, 0))

	scan, lexErr := lexer.Tokenize(unit)
	if lexErr != nil {
		diagfmt.Annotate(set, lexErr, diagfmt.Opts{Color: useColor(cmd, os.Stderr)})
		fmt.Fprintln(os.Stderr, lexErr.Rendered)
		return errors.New("tokenization failed")
	}

	out := cmd.OutOrStdout()
	for _, t := range scan.Tokens {
		start, _ := set.Resolve(t.Span)
		if t.Text == "" {
			fmt.Fprintf(out, "%4d:%-4d %s\n", start.Line, start.Col, t.Kind)
		} else {
			fmt.Fprintf(out, "%4d:%-4d %-12s %q\n", start.Line, start.Col, t.Kind, t.Text)
		}
	}
	return nil
}
