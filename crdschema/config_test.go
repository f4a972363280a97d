package crdschema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/crd2jsonschema/crdschema"
)

func TestConfigFlags(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg := crdschema.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cmd.Flags().Parse([]string{"--output-directory", dir, "--indent=4", "-q"}))
	assert.Equal(t, dir, cfg.OutputDirectory)
	assert.Equal(t, 4, cfg.Indent)
	assert.True(t, cfg.Quiet)

	ex, err := cfg.NewExtractor()
	require.NoError(t, err)

	results, err := ex.Process(strings.NewReader(legacyCRD), "flags.yaml")
	require.NoError(t, err)
	require.Len(t, results, 1)

	data, err := os.ReadFile(filepath.Join(dir, results[0].File))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n    \"type\""), string(data))
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := crdschema.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cmd.Flags().Parse(nil))
	assert.Equal(t, ".", cfg.OutputDirectory)
	assert.Equal(t, 2, cfg.Indent)
	assert.False(t, cfg.Quiet)
}

func TestConfigNewExtractorErrors(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	tcs := map[string]struct {
		err    error
		dir    string
		indent int
	}{
		"negative indent": {
			dir:    t.TempDir(),
			indent: -1,
			err:    crdschema.ErrInvalidOption,
		},
		"missing directory": {
			dir: filepath.Join(t.TempDir(), "nope"),
			err: crdschema.ErrWriteOutput,
		},
		"not a directory": {
			dir: file,
			err: crdschema.ErrInvalidOption,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := crdschema.NewConfig()
			cfg.OutputDirectory = tc.dir
			cfg.Indent = tc.indent

			_, err := cfg.NewExtractor()
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestConfigRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := crdschema.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cfg.RegisterCompletions(cmd))

	tcs := map[string]cobra.ShellCompDirective{
		"output-directory": cobra.ShellCompDirectiveFilterDirs,
		"indent":           cobra.ShellCompDirectiveNoFileComp,
	}

	for flag, want := range tcs {
		t.Run(flag, func(t *testing.T) {
			t.Parallel()

			fn, ok := cmd.GetFlagCompletionFunc(flag)
			require.True(t, ok)

			_, directive := fn(cmd, nil, "")
			assert.Equal(t, want, directive)
		})
	}
}

const legacyCRD = `kind: CustomResourceDefinition
spec:
  group: example.com
  version: v1
  names:
    kind: Thing
`
