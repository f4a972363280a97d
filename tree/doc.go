// Package tree models loosely-typed YAML and JSON documents as a tree of
// tagged variants.
//
// Every node is one of [*Mapping], [Sequence], or [Scalar]. Traversal goes
// through type switches and comma-ok accessors such as [Mapping.Get] and
// [Lookup], so an absent field is always an explicit branch rather than a
// panic or a zero value.
//
// YAML streams are read with [DecodeYAML], which walks the node graph of
// [gopkg.in/yaml.v3] so that mapping order and empty documents are kept.
// Aliases and merge keys are expanded. Trees can also be built from decoded values
// with [FromValue], which accepts the shapes produced by
// [github.com/goccy/go-yaml] (including ordered yaml.MapSlice mappings) and
// by [encoding/json]. A [*Mapping] remembers insertion order and marshals to
// JSON in that order.
//
// [Equivalent] compares two trees structurally: mappings by key and value,
// sequences as multisets (ignoring element order), and numbers by value
// regardless of whether they were decoded as integers or floats.
package tree
