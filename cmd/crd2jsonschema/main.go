// Package main provides the CLI entry point for crd2jsonschema, a tool that
// extracts the OpenAPI v3 schemas embedded in Kubernetes
// CustomResourceDefinition manifests and writes them as standalone JSON
// Schema files.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/crd2jsonschema/crdschema"
	"go.jacobcolvin.com/crd2jsonschema/log"
	"go.jacobcolvin.com/crd2jsonschema/version"
)

func main() {
	rootCmd := newCommand(os.Stdout, os.Stderr)

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newCommand(stdout, stderr io.Writer) *cobra.Command {
	cfg := crdschema.NewConfig()
	logCfg := log.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "crd2jsonschema [flags] <file.yaml> [file2.yaml ...]",
		Short: "Extract JSON Schema files from Kubernetes CRDs",
		Long: `crd2jsonschema reads YAML files containing CustomResourceDefinitions and
writes one JSON Schema file per kind, group, and version, named
{kind}-{group}-{version}.json, for use with kubeval-style validators.

Existing files are never overwritten. A file with the same content is
reported as already correct; a file with different content is left alone and
a warning is logged.`,
		Version:       version.String(),
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			handler, err := logCfg.NewHandler(stderr)
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(handler))

			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return run(cfg, args, stdout)
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	cfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.PersistentFlags())

	completionErr := cfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(stderr, "register completions: %v\n", completionErr)
	}

	completionErr = logCfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(stderr, "register completions: %v\n", completionErr)
	}

	return rootCmd
}

func run(cfg *crdschema.Config, args []string, stdout io.Writer) error {
	ex, err := cfg.NewExtractor()
	if err != nil {
		return err
	}

	results, err := ex.ProcessFiles(args...)
	if err != nil {
		return err
	}

	if conflicts := crdschema.Conflicts(results); len(conflicts) > 0 {
		slog.Warn("some files were not updated", slog.Int("conflicts", len(conflicts)))
	}

	if cfg.Quiet {
		return nil
	}

	for _, file := range crdschema.Files(results) {
		_, err := fmt.Fprintln(stdout, file)
		if err != nil {
			return fmt.Errorf("%w: %w", crdschema.ErrWriteOutput, err)
		}
	}

	return nil
}
