package crdschema

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/go-cmp/cmp"

	"go.jacobcolvin.com/crd2jsonschema/tree"
)

const (
	// SchemaURI is written to the $schema key of every emitted schema.
	SchemaURI = "http://json-schema.org/schema#"
	// GVKExtension is the key validators use to match a schema to resources.
	GVKExtension = "x-kubernetes-group-version-kind"
)

// Outcome describes what [Emitter.Emit] did with a schema.
type Outcome int

const (
	// Written means a new file was created.
	Written Outcome = iota
	// AlreadyCorrect means a file with equivalent content already existed.
	AlreadyCorrect
	// Conflict means a file with different content already existed and was
	// left untouched.
	Conflict
)

func (o Outcome) String() string {
	switch o {
	case Written:
		return "written"
	case AlreadyCorrect:
		return "already correct"
	case Conflict:
		return "conflict"
	}

	return "Outcome(" + strconv.Itoa(int(o)) + ")"
}

// Patch annotates schema with its group, version, and kind, and marks it as
// JSON Schema.
func Patch(schema *tree.Mapping, kind, group, version string) {
	gvk := tree.NewMapping()
	gvk.Set("kind", tree.Sequence{tree.String(kind)})
	gvk.Set("version", tree.String(version))
	gvk.Set("group", tree.String(group))

	schema.Set(GVKExtension, tree.Sequence{gvk})
	schema.Set("$schema", tree.String(SchemaURI))
}

// Emitter writes schema files into a directory without overwriting existing
// files.
type Emitter struct {
	// Dir is the output directory. It must exist.
	Dir string
	// Indent is the JSON indentation string.
	Indent string
}

// Emit writes schema as JSON to a new file called name inside [Emitter.Dir].
//
// The file is created exclusively. If it already exists, its content is
// compared with schema: equivalent content (ignoring key and sequence order)
// yields [AlreadyCorrect], anything else yields [Conflict]. Existing files
// are never modified. A schema that cannot be encoded as JSON yields an
// error matching [ErrInvalidSchema] and creates no file. Filesystem failures
// are returned as errors matching [ErrWriteOutput].
//
// Emit does no locking beyond the exclusive create, so concurrent runs that
// target the same file race at the filesystem level.
func (e *Emitter) Emit(name string, schema tree.Node) (Outcome, error) {
	var buf bytes.Buffer

	err := tree.Encode(&buf, schema, e.Indent)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidSchema, name, err)
	}

	path := filepath.Join(e.Dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) //nolint:gosec // Output path from CLI flag is expected.
	if errors.Is(err, fs.ErrExist) {
		return e.compare(path, name, buf.Bytes())
	}

	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	_, err = f.Write(buf.Bytes())
	err = errors.Join(err, f.Close())

	if err != nil {
		removeErr := os.Remove(path)

		return 0, fmt.Errorf("%w: %w", ErrWriteOutput, errors.Join(err, removeErr))
	}

	return Written, nil
}

// compare checks the existing file at path against the encoded schema.
func (e *Emitter) compare(path, name string, encoded []byte) (Outcome, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Output path from CLI flag is expected.
	if err != nil {
		return 0, fmt.Errorf("%w: reading existing file: %w", ErrWriteOutput, err)
	}

	existing, err := tree.Decode(bytes.NewReader(data))
	if err != nil {
		slog.Warn("existing file is not valid json",
			slog.String("file", name),
			slog.Any("error", err),
		)

		return Conflict, nil
	}

	want, err := tree.Decode(bytes.NewReader(encoded))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrWriteOutput, name, err)
	}

	if tree.Equivalent(existing, want) {
		return AlreadyCorrect, nil
	}

	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		slog.Debug("existing file differs",
			slog.String("file", name),
			slog.String("diff", cmp.Diff(tree.ToValue(existing), tree.ToValue(want))),
		)
	}

	return Conflict, nil
}
