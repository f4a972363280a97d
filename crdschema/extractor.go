package crdschema

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.jacobcolvin.com/crd2jsonschema/tree"
)

// Result is the outcome of emitting one schema file.
type Result struct {
	File    string
	Outcome Outcome
}

// Files returns the names of files that were written or already correct,
// in processing order.
func Files(results []Result) []string {
	var files []string

	for _, r := range results {
		if r.Outcome == Written || r.Outcome == AlreadyCorrect {
			files = append(files, r.File)
		}
	}

	return files
}

// Conflicts returns the names of files that already existed with different
// content, in processing order.
func Conflicts(results []Result) []string {
	var files []string

	for _, r := range results {
		if r.Outcome == Conflict {
			files = append(files, r.File)
		}
	}

	return files
}

// Extractor writes the schemas embedded in CRD manifests to JSON Schema
// files.
//
// Create instances with [NewExtractor].
type Extractor struct {
	emitter Emitter
}

// Option configures an [Extractor].
type Option func(*Extractor)

// NewExtractor creates an [Extractor] that writes to the current directory
// with two-space indentation, unless overridden by opts.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		emitter: Emitter{
			Dir:    ".",
			Indent: "  ",
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// WithOutputDirectory sets the directory schema files are written to.
func WithOutputDirectory(dir string) Option {
	return func(e *Extractor) {
		e.emitter.Dir = dir
	}
}

// WithIndent sets the number of spaces used to indent JSON output.
func WithIndent(n int) Option {
	return func(e *Extractor) {
		e.emitter.Indent = strings.Repeat(" ", max(n, 0))
	}
}

// ProcessFiles runs [Extractor.Process] on each file in order and returns
// the combined results. It stops at the first error, returning the results
// gathered so far.
func (e *Extractor) ProcessFiles(paths ...string) ([]Result, error) {
	var results []Result

	for _, path := range paths {
		res, err := e.processFile(path)
		results = append(results, res...)

		if err != nil {
			return results, err
		}
	}

	return results, nil
}

func (e *Extractor) processFile(path string) ([]Result, error) {
	f, err := os.Open(path) //nolint:gosec // Input path from CLI argument is expected.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	defer f.Close() //nolint:errcheck // Read-only file.

	return e.Process(f, path)
}

// Process reads a multi-document YAML stream and emits a schema file for
// every schema declared by the CRDs in it. name identifies the stream in
// logs and errors.
//
// Documents are handled in order, and versions within a CRD in list order.
// Empty documents are skipped. The whole stream is decoded before any file
// is written, so a syntax error ([ErrInvalidYAML]) leaves the output
// directory unchanged. Field, schema, and identity errors stop processing
// at the offending document.
func (e *Extractor) Process(r io.Reader, name string) ([]Result, error) {
	slog.Debug("reading", slog.String("input", name))

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, name, err)
	}

	docs, err := tree.DecodeYAML(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", name, ErrInvalidYAML, err)
	}

	var results []Result

	for i, doc := range docs {
		records, err := Locate(doc)
		if err != nil {
			return results, fmt.Errorf("%s: document %d: %w", name, i, err)
		}

		for _, rec := range records {
			res, err := e.extract(rec)
			if err != nil {
				return results, fmt.Errorf("%s: document %d: %w", name, i, err)
			}

			results = append(results, res)
		}
	}

	return results, nil
}

// extract names, annotates, and emits a single record.
func (e *Extractor) extract(rec Record) (Result, error) {
	name, err := FileName(rec.Identity())
	if err != nil {
		return Result{}, err
	}

	slog.Debug("generated name", slog.String("file", name), slog.String("schema", rec.Path))

	Patch(rec.Schema, rec.Kind, rec.Group, rec.Version)

	outcome, err := e.emitter.Emit(name, rec.Schema)
	if err != nil {
		return Result{}, err
	}

	switch outcome {
	case Written:
		slog.Info("wrote", slog.String("file", name))
	case AlreadyCorrect:
		slog.Info("existing file already correct", slog.String("file", name))
	case Conflict:
		slog.Warn("existing file has different content, delete it to regenerate",
			slog.String("file", name),
		)
	}

	return Result{File: name, Outcome: outcome}, nil
}
