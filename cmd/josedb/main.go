// Package main contains the cli implementation of the josedb engine's
// line-oriented front end. It uses cobra the way the teacher toolchain
// does: a root command plus subcommands built from small *Flags structs.
// This front end is explicitly out of scope for the core engine — it
// exists only so the embedding contract has one concrete, exercised
// caller — and stays thin: a REPL and a one-shot statement runner, no
// migration/diff/introspection features.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"josedb/internal/config"
	"josedb/internal/engine"
)

type openFlags struct {
	configPath string
}

type execFlags struct {
	file string
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "josedb",
		Short: "A small single-node relational database engine",
	}

	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(execCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openCmd() *cobra.Command {
	flags := &openFlags{}
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Start an interactive REPL against a database file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runOpen(flags)
		},
	}
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Path to a .josedb.toml config file")
	return cmd
}

func runOpen(flags *openFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	ex, err := engine.Open(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		_ = ex.Close()
	}()

	return runREPL(ex, cfg.Prompt(), os.Stdin, os.Stdout)
}

func runREPL(ex *engine.Executor, prompt string, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		case "tables":
			printTableNames(out, ex.ListTableNames())
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "describe ") {
			name := strings.TrimSpace(line[len("describe "):])
			printDescribe(out, ex, name)
			continue
		}

		result, err := ex.Execute(line)
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
			continue
		}
		printResult(out, result)
	}
}

func execCmd() *cobra.Command {
	flags := &execFlags{}
	cmd := &cobra.Command{
		Use:   "exec <statement>",
		Short: "Run one statement non-interactively against a database file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runExec(args[0], flags)
		},
	}
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Path to the database file (required)")
	return cmd
}

func runExec(statement string, flags *execFlags) error {
	if flags.file == "" {
		return fmt.Errorf("--file is required")
	}

	ex, err := engine.Open(flags.file)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		_ = ex.Close()
	}()

	result, err := ex.Execute(statement)
	if err != nil {
		return err
	}
	printResult(os.Stdout, result)
	return nil
}
