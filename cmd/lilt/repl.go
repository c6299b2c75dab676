package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"lilt/internal/compiler"
	"lilt/internal/diag"
	"lilt/internal/session"
	"lilt/internal/ui"
)

var replCmd = &cobra.Command{
	Use:   "repl [flags]",
	Short: "Interactive lilt shell",
	Long:  "Repl compiles lilt input cell by cell, reusing parse work across cells.",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	replCmd.Flags().String("target", "", "target dialect version (2, 3, 2.7, 3.6, ..., sys)")
	replCmd.Flags().Bool("strict", false, "promote style findings to errors")
}

func runRepl(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errors.New("repl requires a terminal")
	}

	cfg := compiler.DefaultConfig()
	cfg.Mode = "lenient"
	cfg.Color = useColor(cmd, os.Stdout)
	if cmd.Flags().Changed("target") {
		cfg.Target, _ = cmd.Flags().GetString("target")
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict, _ = cmd.Flags().GetBool("strict")
	}

	c, d := compiler.New(cfg)
	if d != nil {
		return fmt.Errorf("%s", d.Message)
	}
	if store, err := session.OpenStore("lilt"); err == nil {
		c.EnablePersistentSessions(store)
	}
	c.EnableIncremental("repl")

	eval := func(src string) (string, *diag.Diagnostic) {
		return c.Compile("repl", src)
	}
	prog := tea.NewProgram(ui.NewReplModel(eval))
	_, err := prog.Run()
	return err
}
