// Command chadsembler assembles and runs a Chadsembly source file: it reads
// a .csm program, resolves MEMORY/REGISTERS/CLOCK configuration from a TOML
// defaults file, in-source directives, and trailing KEY=VALUE arguments, and
// then drives the full compile pipeline before executing the resulting
// machine image.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chadsembler/chadsembler/codegen"
	"github.com/chadsembler/chadsembler/config"
	"github.com/chadsembler/chadsembler/diag"
	"github.com/chadsembler/chadsembler/parser"
	"github.com/chadsembler/chadsembler/pools"
	"github.com/chadsembler/chadsembler/semantics"
	"github.com/chadsembler/chadsembler/vm"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X main.Version=v1.2.3".
var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "chadsembler PROGRAM.csm [KEY=VALUE ...]",
		Short:   "Assemble and run a Chadsembly program",
		Version: Version,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1:])
		},
		SilenceUsage: true,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, extraArgs []string) error {
	if !strings.EqualFold(filepath.Ext(path), ".csm") {
		fmt.Fprintf(os.Stderr, "warning: %s does not have the conventional .csm extension\n", path)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	table := config.DefaultTable()

	fileDefaults, err := config.LoadFileDefaults(config.ConfigPath())
	if err != nil {
		return err
	}
	fileDefaults.ApplyTo(table)

	if err := config.NewArgumentProcessor().Run(extraArgs, table); err != nil {
		return abort(err)
	}

	if err := config.NewPreprocessor().Run(string(source), table); err != nil {
		return abort(err)
	}

	tokens, err := parser.NewLexer(string(source)).Run()
	if err != nil {
		return abort(err)
	}

	if err := parser.Parse(tokens); err != nil {
		return abort(err)
	}

	symbolPools, err := pools.Run(tokens)
	if err != nil {
		return abort(err)
	}

	if err := semantics.Run(symbolPools); err != nil {
		return abort(err)
	}

	result, err := codegen.Run(symbolPools, table)
	if err != nil {
		return abort(err)
	}

	machine := vm.New(result.Memory, vm.Config{
		NumberGPRs:           table[config.Registers],
		MachineOperationBits: result.MachineOperationBits,
		AddressingModeBits:   result.AddressingModeBits,
		OperandBits:          result.OperandBits,
		Clock:                time.Duration(table[config.Clock]) * time.Millisecond,
	}, os.Stdin, os.Stdout)

	return machine.Run()
}

// abort prints a phase's accumulated diagnostics and ends the process with
// the fixed exit code every fatal error shares: a phase's errors are
// flushed and execution never reaches the next phase.
func abort(err error) error {
	if fatal, ok := err.(*diag.Fatal); ok {
		fatal.Sink.Flush(os.Stderr)
		os.Exit(0)
	}

	return err
}
