package crdschema

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for extraction configuration, allowing callers
// to customize flag names while keeping sensible defaults.
type Flags struct {
	OutputDirectory string
	Indent          string
	Quiet           string
}

// Config holds CLI flag values for extraction configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewExtractor] to create an
// [Extractor].
type Config struct {
	Flags           Flags
	OutputDirectory string
	Indent          int
	Quiet           bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		OutputDirectory: "output-directory",
		Indent:          "indent",
		Quiet:           "quiet",
	}

	return &Config{Flags: f, OutputDirectory: ".", Indent: 2}
}

// RegisterFlags adds extraction flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.OutputDirectory, c.Flags.OutputDirectory, ".",
		"write json-schema files to this directory (must exist)")
	flags.IntVar(&c.Indent, c.Flags.Indent, 2,
		"JSON indentation spaces, 0 for compact output")
	flags.BoolVarP(&c.Quiet, c.Flags.Quiet, "q", false,
		"do not print the names of emitted files")
}

// RegisterCompletions registers shell completions for extraction flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.OutputDirectory,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.OutputDirectory, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Indent,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Indent, err)
	}

	return nil
}

// NewExtractor creates an [Extractor] using this [Config]. The output
// directory must already exist.
func (c *Config) NewExtractor() (*Extractor, error) {
	if c.Indent < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidOption, c.Flags.Indent)
	}

	dir := c.OutputDirectory
	if dir == "" {
		dir = "."
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: output directory: %w", ErrWriteOutput, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: output directory %q is not a directory", ErrInvalidOption, dir)
	}

	return NewExtractor(
		WithOutputDirectory(dir),
		WithIndent(c.Indent),
	), nil
}
