/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Command jasm assembles a JASM source file into a ClassFile, reporting any
// lexical, syntactic, or assembly error.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obito-git/lagertha/diagnostic"
	"github.com/obito-git/lagertha/jasm/parser"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "jasm <file>",
		Short:        "Parse a JASM assembly source file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], diagnostic.NewConsoleReporter(os.Stderr))
		},
	}
}

func run(filename string, reporter diagnostic.Reporter) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		reporter.ReportInternal(fmt.Sprintf("reading %s: %s", filename, err))
		os.Exit(1)
	}

	file, err := parser.Parse(string(src))
	if err != nil {
		if d, ok := parser.Diagnose(err); ok {
			reporter.Report(filename, string(src), d)
		} else {
			reporter.ReportInternal(err.Error())
		}
		os.Exit(1)
	}

	cf, err := parser.Assemble(file)
	if err != nil {
		reporter.ReportInternal(err.Error())
		os.Exit(1)
	}

	fmt.Printf("%s: OK (constant pool: %d entries)\n", filename, cf.ConstantPool.Len())
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
