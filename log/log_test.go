package log_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/crd2jsonschema/log"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		want    log.Level
		wantErr bool
	}{
		"error":            {input: "error", want: log.LevelError},
		"warn":             {input: "warn", want: log.LevelWarn},
		"warning alias":    {input: "warning", want: log.LevelWarn},
		"info":             {input: "info", want: log.LevelInfo},
		"debug":            {input: "debug", want: log.LevelDebug},
		"case insensitive": {input: "DeBuG", want: log.LevelDebug},
		"unknown":          {input: "trace", wantErr: true},
		"empty":            {input: "", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.ParseLevel(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, log.ErrUnknownLogLevel)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		want    log.Format
		wantErr bool
	}{
		"json":             {input: "json", want: log.FormatJSON},
		"logfmt":           {input: "logfmt", want: log.FormatLogfmt},
		"text":             {input: "text", want: log.FormatText},
		"case insensitive": {input: "LOGFMT", want: log.FormatLogfmt},
		"unknown":          {input: "yaml", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.ParseFormat(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, log.ErrUnknownLogFormat)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		check  func(*testing.T, []byte)
		format log.Format
	}{
		"json": {
			format: log.FormatJSON,
			check: func(t *testing.T, out []byte) {
				t.Helper()

				var entry map[string]any

				require.NoError(t, json.Unmarshal(out, &entry))
				assert.Equal(t, "wrote", entry["msg"])
				assert.Equal(t, "INFO", entry["level"])
				assert.Equal(t, "thing-example-v1.json", entry["file"])
			},
		},
		"logfmt": {
			format: log.FormatLogfmt,
			check: func(t *testing.T, out []byte) {
				t.Helper()

				assert.Contains(t, string(out), "level=INFO")
				assert.Contains(t, string(out), "msg=wrote")
				assert.Contains(t, string(out), "file=thing-example-v1.json")
			},
		},
		"text": {
			format: log.FormatText,
			check: func(t *testing.T, out []byte) {
				t.Helper()

				assert.Contains(t, string(out), "INFO")
				assert.Contains(t, string(out), "wrote")
				assert.Contains(t, string(out), "file=thing-example-v1.json")
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			handler := log.NewHandler(&buf, log.LevelInfo, tc.format)
			require.NotNil(t, handler)

			slog.New(handler).Info("wrote", slog.String("file", "thing-example-v1.json"))

			tc.check(t, buf.Bytes())
		})
	}
}

func TestNewHandlerFromStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level   string
		format  string
		wantErr bool
	}{
		"valid":          {level: "debug", format: "json"},
		"invalid level":  {level: "loud", format: "json", wantErr: true},
		"invalid format": {level: "info", format: "xml", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			handler, err := log.NewHandlerFromStrings(&buf, tc.level, tc.format)
			if tc.wantErr {
				require.ErrorIs(t, err, log.ErrInvalidArgument)
				assert.Nil(t, handler)

				return
			}

			require.NoError(t, err)
			slog.New(handler).Debug("reading", slog.String("input", "crds.yaml"))
			assert.Contains(t, buf.String(), "crds.yaml")
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		log   func(*slog.Logger)
		level log.Level
		want  bool
	}{
		"info passes info": {
			level: log.LevelInfo,
			log:   func(l *slog.Logger) { l.Info("msg") },
			want:  true,
		},
		"info blocks debug": {
			level: log.LevelInfo,
			log:   func(l *slog.Logger) { l.Debug("msg") },
			want:  false,
		},
		"warn passes warn": {
			level: log.LevelWarn,
			log:   func(l *slog.Logger) { l.Warn("msg") },
			want:  true,
		},
		"error blocks warn": {
			level: log.LevelError,
			log:   func(l *slog.Logger) { l.Warn("msg") },
			want:  false,
		},
	}

	for name, tc := range tcs {
		for _, format := range []log.Format{log.FormatJSON, log.FormatText} {
			t.Run(name+"/"+string(format), func(t *testing.T) {
				t.Parallel()

				var buf bytes.Buffer

				tc.log(slog.New(log.NewHandler(&buf, tc.level, format)))

				if tc.want {
					assert.Contains(t, buf.String(), "msg")
				} else {
					assert.Empty(t, buf.String())
				}
			})
		}
	}
}

func TestRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := log.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cfg.RegisterCompletions(cmd))

	tcs := map[string][]string{
		"log-level":  log.GetAllLevelStrings(),
		"log-format": log.GetAllFormatStrings(),
	}

	for flag, want := range tcs {
		t.Run(flag, func(t *testing.T) {
			t.Parallel()

			fn, ok := cmd.GetFlagCompletionFunc(flag)
			require.True(t, ok)

			values, directive := fn(cmd, nil, "")
			assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
			assert.Equal(t, want, values)
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := log.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cmd.Flags().Parse([]string{"--log-format=json"}))
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)

	var buf bytes.Buffer

	handler, err := cfg.NewHandler(&buf)
	require.NoError(t, err)

	slog.New(handler).Info("ok")
	assert.Contains(t, buf.String(), `"msg":"ok"`)
}
