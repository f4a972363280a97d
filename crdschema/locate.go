package crdschema

import (
	"fmt"
	"log/slog"
	"math"

	"go.jacobcolvin.com/crd2jsonschema/tree"
)

// crdKind is the document kind that [Locate] processes.
const crdKind = "CustomResourceDefinition"

// Record is a schema found inside a CRD, together with the identity fields
// needed to name and annotate it.
//
// The schema is owned by the record and is mutated by [Patch].
type Record struct {
	Schema *tree.Mapping
	// Path is where the schema was found, e.g.
	// "spec.versions[0].schema.openAPIV3Schema".
	Path     string
	Kind     string
	Singular string
	Group    string
	Version  string
}

// Identity returns the fields used by [FileName].
func (r Record) Identity() Identity {
	return Identity{
		Kind:     r.Kind,
		Singular: r.Singular,
		Group:    r.Group,
		Version:  r.Version,
	}
}

// Locate returns one [Record] per schema declared by doc.
//
// Documents that are null or whose kind is not CustomResourceDefinition
// yield nothing. Schemas under spec.versions[].schema.openAPIV3Schema are
// returned first, in list order; versions without a schema are skipped. If
// spec.version is set, a record for spec.validation.openAPIV3Schema follows,
// falling back to a permissive object schema when none is declared.
//
// Missing or mistyped identity fields yield a [*FieldError]. Schemas holding
// numbers that JSON cannot represent yield a [*SchemaError].
func Locate(doc tree.Node) ([]Record, error) {
	if tree.IsNull(doc) {
		return nil, nil
	}

	kind, ok := tree.Lookup(doc, "kind")
	if !ok || !isString(kind, crdKind) {
		return nil, nil
	}

	var records []Record

	versions, ok := tree.Lookup(doc, "spec", "versions")
	if ok {
		recs, err := locateVersions(doc, versions)
		if err != nil {
			return nil, err
		}

		records = append(records, recs...)
	}

	if _, ok := tree.Lookup(doc, "spec", "version"); ok {
		rec, err := locateLegacy(doc)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, nil
}

// locateVersions handles the multi-version shape.
func locateVersions(doc, versions tree.Node) ([]Record, error) {
	seq, ok := versions.(tree.Sequence)
	if !ok {
		return nil, &FieldError{Path: "spec.versions", Reason: "expected a sequence"}
	}

	var records []Record

	names := make([]string, 0, len(seq))

	for _, item := range seq {
		if n, ok := tree.Lookup(item, "name"); ok {
			if name, ok := stringValue(n); ok {
				names = append(names, name)
			}
		}
	}

	slog.Debug("found versions", slog.Any("versions", names))

	for i, item := range seq {
		path := fmt.Sprintf("spec.versions[%d]", i)

		if _, ok := item.(*tree.Mapping); !ok {
			return nil, &FieldError{Path: path, Reason: "expected a mapping"}
		}

		schemaPath := path + ".schema.openAPIV3Schema"

		schema, ok, err := optionalMapping(item, schemaPath, "schema", "openAPIV3Schema")
		if err != nil {
			return nil, err
		}

		if !ok {
			if n, found := tree.Lookup(item, "name"); found {
				name, _ := stringValue(n)
				slog.Debug("version has no schema", slog.String("version", name))
			}

			continue
		}

		name, err := requiredString(item, path+".name", "name")
		if err != nil {
			return nil, err
		}

		rec, err := newRecord(doc, schema, schemaPath, name)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, nil
}

// locateLegacy handles the single-version shape.
func locateLegacy(doc tree.Node) (Record, error) {
	version, err := requiredString(doc, "spec.version", "spec", "version")
	if err != nil {
		return Record{}, err
	}

	const schemaPath = "spec.validation.openAPIV3Schema"

	schema, ok, err := optionalMapping(doc, schemaPath, "spec", "validation", "openAPIV3Schema")
	if err != nil {
		return Record{}, err
	}

	if !ok {
		slog.Info("no schema found in spec.validation.openAPIV3Schema",
			slog.String("version", version),
		)

		schema = permissiveSchema()
	}

	return newRecord(doc, schema, schemaPath, version)
}

func newRecord(doc tree.Node, schema *tree.Mapping, path, version string) (Record, error) {
	err := checkNumbers(schema, path)
	if err != nil {
		return Record{}, err
	}

	group, err := requiredString(doc, "spec.group", "spec", "group")
	if err != nil {
		return Record{}, err
	}

	kind, err := requiredString(doc, "spec.names.kind", "spec", "names", "kind")
	if err != nil {
		return Record{}, err
	}

	singular := ""

	n, ok := tree.Lookup(doc, "spec", "names", "singular")
	if ok {
		singular, ok = stringValue(n)
		if !ok {
			return Record{}, &FieldError{Path: "spec.names.singular", Reason: "expected a string"}
		}
	}

	return Record{
		Schema:   schema,
		Path:     path,
		Kind:     kind,
		Singular: singular,
		Group:    group,
		Version:  version,
	}, nil
}

// checkNumbers rejects infinite and NaN floats anywhere under n.
func checkNumbers(n tree.Node, path string) error {
	switch v := n.(type) {
	case *tree.Mapping:
		for _, key := range v.Keys() {
			child, _ := v.Get(key)

			err := checkNumbers(child, path+"."+key)
			if err != nil {
				return err
			}
		}

	case tree.Sequence:
		for i, item := range v {
			err := checkNumbers(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return err
			}
		}

	case tree.Scalar:
		f, ok := v.Value().(float64)
		if ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			return &SchemaError{Path: path, Reason: fmt.Sprintf("%v cannot be represented in JSON", f)}
		}
	}

	return nil
}

// permissiveSchema accepts any object. It stands in for CRDs that declare no
// schema.
func permissiveSchema() *tree.Mapping {
	m := tree.NewMapping()
	m.Set("type", tree.String("object"))
	m.Set("additionalProperties", tree.Bool(true))

	return m
}

func requiredString(n tree.Node, field string, path ...string) (string, error) {
	v, ok := tree.Lookup(n, path...)
	if !ok {
		return "", &FieldError{Path: field}
	}

	s, ok := stringValue(v)
	if !ok {
		return "", &FieldError{Path: field, Reason: "expected a string"}
	}

	return s, nil
}

func optionalMapping(n tree.Node, field string, path ...string) (*tree.Mapping, bool, error) {
	v, ok := tree.Lookup(n, path...)
	if !ok {
		return nil, false, nil
	}

	m, ok := v.(*tree.Mapping)
	if !ok {
		return nil, false, &FieldError{Path: field, Reason: "expected a mapping"}
	}

	return m, true, nil
}

func stringValue(n tree.Node) (string, bool) {
	s, ok := n.(tree.Scalar)
	if !ok {
		return "", false
	}

	return s.Str()
}

func isString(n tree.Node, want string) bool {
	s, ok := stringValue(n)

	return ok && s == want
}
