package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lilt/internal/compiler"
	"lilt/internal/driver"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] path...",
	Short: "Compile lilt sources to Python",
	Long:  "Compile translates lilt source files (or every *.lt under a directory) into Python text.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().String("target", "", "target dialect version (2, 3, 2.7, 3.6, ..., sys)")
	compileCmd.Flags().String("mode", "", "compile mode (file|package|sys|block|single|eval|lenient)")
	compileCmd.Flags().Bool("strict", false, "promote style findings to errors")
	compileCmd.Flags().Bool("minify", false, "omit the header and cosmetic blank lines")
	compileCmd.Flags().Bool("line-numbers", false, "append '# line N' comments to emitted lines")
	compileCmd.Flags().Bool("keep-lines", false, "append the original source line to emitted lines")
	compileCmd.Flags().Int("jobs", 0, "parallel workers (0 = number of CPUs)")
	compileCmd.Flags().String("profile", "", "path to a lilt.toml profile")
	compileCmd.Flags().Bool("stdout", false, "write emitted text to stdout instead of *.py files")
}

// resolveConfig layers the profile over the defaults and the changed
// flags over the profile.
func resolveConfig(cmd *cobra.Command) (compiler.Config, error) {
	cfg := compiler.DefaultConfig()

	profile, err := cmd.Flags().GetString("profile")
	if err != nil {
		return cfg, err
	}
	if profile == "" {
		if _, statErr := os.Stat("lilt.toml"); statErr == nil {
			profile = "lilt.toml"
		}
	}
	if profile != "" {
		cfg, err = compiler.LoadProfile(profile)
		if err != nil {
			return cfg, err
		}
	}

	if cmd.Flags().Changed("target") {
		cfg.Target, _ = cmd.Flags().GetString("target")
	}
	if cmd.Flags().Changed("mode") {
		cfg.Mode, _ = cmd.Flags().GetString("mode")
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict, _ = cmd.Flags().GetBool("strict")
	}
	if cmd.Flags().Changed("minify") {
		cfg.Minify, _ = cmd.Flags().GetBool("minify")
	}
	if cmd.Flags().Changed("line-numbers") {
		cfg.LineNumbers, _ = cmd.Flags().GetBool("line-numbers")
	}
	if cmd.Flags().Changed("keep-lines") {
		cfg.KeepLines, _ = cmd.Flags().GetBool("keep-lines")
	}
	cfg.Color = useColor(cmd, os.Stderr)
	return cfg, nil
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}

	// Directories expand to their sorted *.lt files; explicit paths are
	// taken as given.
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		if info.IsDir() {
			dirFiles, err := driver.ListSources(arg)
			if err != nil {
				return err
			}
			files = append(files, dirFiles...)
		} else {
			files = append(files, arg)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", driver.SourceExt)
	}

	results, err := driver.CompileFiles(cmd.Context(), files, cfg, jobs)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
			fmt.Fprintln(os.Stderr, r.Diag.Rendered)
			continue
		}
		if toStdout {
			fmt.Fprint(cmd.OutOrStdout(), r.Output)
		}
	}
	if !toStdout {
		if err := driver.WriteOutputs(results); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
