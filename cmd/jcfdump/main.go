/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Command jcfdump decodes a .class file and prints it in javap-like form.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obito-git/lagertha/classfile"
	"github.com/obito-git/lagertha/diagnostic"
	"github.com/obito-git/lagertha/render"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "jcfdump <file>",
		Short:        "Decode and print a .class file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], diagnostic.NewConsoleReporter(os.Stderr))
		},
	}
}

func run(filename string, reporter diagnostic.Reporter) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		reporter.ReportInternal(fmt.Sprintf("reading %s: %s", filename, err))
		os.Exit(1)
	}

	cf, err := classfile.Decode(data)
	if err != nil {
		reporter.ReportInternal(err.Error())
		os.Exit(1)
	}

	out, err := render.ClassFile(cf)
	if err != nil {
		reporter.ReportInternal(err.Error())
		os.Exit(1)
	}

	fmt.Print(out)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
