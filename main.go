/*
File    : pysh/main.go

Entry point for the pysh shell.

Three ways in:

	pysh                 interactive prompt
	pysh -c 'echo hi'    run one command and exit
	pysh script.sh       run a script file

The --mode flag switches what is emitted for each input line: execute
(default), codegen (IL text), parse (syntax tree), or lex (tokens).
*/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sfuller/pyshlang/repl"
)

// VERSION is the current version of the pysh shell.
var VERSION = "v1.0.0"

// redColor renders fatal startup errors.
var redColor = color.New(color.FgRed)

func main() {
	var modeFlag string
	var commandFlag string

	rootCmd := &cobra.Command{
		Use:           "pysh [file]",
		Short:         "An interactive shell with a bytecode execution pipeline",
		Version:       VERSION,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := repl.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			r := repl.NewRepl(mode)

			if commandFlag != "" {
				os.Exit(r.RunCommand(commandFlag))
			}

			if len(args) == 1 {
				source, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("could not read %s: %w", args[0], err)
				}
				return r.RunScript(string(source))
			}

			return r.RunInteractive()
		},
	}

	rootCmd.Flags().StringVar(&modeFlag, "mode", "execute",
		"what to emit per input: execute, codegen, parse or lex")
	rootCmd.Flags().StringVarP(&commandFlag, "command", "c", "",
		"run one command non-interactively and exit")

	if err := rootCmd.Execute(); err != nil {
		redColor.Fprintf(os.Stderr, "pysh: %s\n", err)
		os.Exit(1)
	}
}
