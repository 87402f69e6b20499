// Copyright 2026 The LC Authors
// SPDX-License-Identifier: MIT

// Command lcgen runs the C back end over module bundles.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/llang/lc"
	"github.com/llang/lc/bundle"
	"github.com/llang/lc/cgen"
)

var version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lcgen: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lcgen",
		Short:         "lcgen generates C99 from L module bundles",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.AddCommand(newGenerateCmd(out), newTagsCmd(errOut), newVersionCmd(out))
	return rootCmd
}

func newGenerateCmd(out io.Writer) *cobra.Command {
	var (
		mode          string
		noLocalPrefix bool
		target        string
		name          string
		dump          bool
	)

	cmd := &cobra.Command{
		Use:   "generate [flags] bundle.yaml...",
		Short: "Generate C99 sources from bundles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cgen.Options{NoLocalPrefix: noLocalPrefix}
			switch mode {
			case "single":
				opts.Mode = cgen.SingleFile
			case "multi":
				opts.Mode = cgen.MultiFile
			default:
				return fmt.Errorf("unknown mode %q (want single or multi)", mode)
			}

			for _, path := range args {
				b, err := bundle.Load(path)
				if err != nil {
					return err
				}
				o := lc.Generate(b, opts)
				if name != "" {
					o.Name = name
				}
				if dump {
					o.Dump(out)
					continue
				}
				dir := filepath.Join("output", b.Name)
				if target != "" {
					dir = filepath.Join("output", target)
				}
				if err := o.WriteFiles(dir); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "single", "emission mode (single or multi)")
	cmd.Flags().BoolVar(&noLocalPrefix, "no-local-prefix", false, "drop the module prefix inside the defining module")
	cmd.Flags().StringVarP(&target, "target", "t", "", "output subdirectory under output/ (default: the bundle name)")
	cmd.Flags().StringVarP(&name, "output", "o", "", "output base filename (default: the bundle name)")
	cmd.Flags().BoolVarP(&dump, "dump", "d", false, "print the generated code instead of writing files")
	return cmd
}

func newTagsCmd(errOut io.Writer) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tags [flags] bundle.yaml...",
		Short: "Write a cross-reference file for bundles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				b, err := bundle.Load(path)
				if err != nil {
					return err
				}
				w := lc.AnalyseTags(b)
				if err := w.Write(b.Name, output); err != nil {
					return err
				}
				fmt.Fprintf(errOut, "lcgen: wrote %s for %s\n", output, b.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "refs", "cross-reference output file")
	return cmd
}

func newVersionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lcgen version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(out, "lcgen %s\n", version)
		},
	}
}
