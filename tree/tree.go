package tree

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// ErrUnsupportedValue is returned by [FromValue] for Go values that have no
// YAML or JSON representation.
var ErrUnsupportedValue = errors.New("unsupported value")

// Node is a [*Mapping], a [Sequence], or a [Scalar].
type Node interface {
	json.Marshaler

	node()
}

// Mapping is an ordered set of key/value pairs.
//
// Create instances with [NewMapping].
type Mapping struct {
	values map[string]Node
	keys   []string
}

// NewMapping returns an empty [*Mapping].
func NewMapping() *Mapping {
	return &Mapping{values: map[string]Node{}}
}

func (*Mapping) node() {}

// Get returns the value stored under key and whether it is present.
func (m *Mapping) Get(key string) (Node, bool) {
	if m == nil {
		return nil, false
	}

	n, ok := m.values[key]

	return n, ok
}

// Set stores n under key. An existing key keeps its position.
func (m *Mapping) Set(key string, n Node) {
	if n == nil {
		n = Null()
	}

	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = n
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}

	return slices.Clone(m.keys)
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Sequence is an ordered list of nodes.
type Sequence []Node

func (Sequence) node() {}

// Kind identifies the type of value held by a [Scalar].
type Kind int

// Scalar kinds.
const (
	KindNull Kind = iota
	KindBool
	KindString
	KindInt
	KindFloat
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Scalar is a leaf value: null, a boolean, a string, or a number.
// Integers are held as int64, or uint64 when they do not fit.
type Scalar struct {
	v any
}

func (Scalar) node() {}

// Null returns the null scalar.
func Null() Scalar { return Scalar{} }

// Bool returns a boolean scalar.
func Bool(b bool) Scalar { return Scalar{v: b} }

// String returns a string scalar.
func String(s string) Scalar { return Scalar{v: s} }

// Int returns an integer scalar.
func Int(i int64) Scalar { return Scalar{v: i} }

// Uint returns an integer scalar.
func Uint(u uint64) Scalar {
	if u <= 1<<63-1 {
		return Scalar{v: int64(u)}
	}

	return Scalar{v: u}
}

// Float returns a floating point scalar.
func Float(f float64) Scalar { return Scalar{v: f} }

// Kind reports the type of the scalar.
func (s Scalar) Kind() Kind {
	switch s.v.(type) {
	case bool:
		return KindBool
	case string:
		return KindString
	case int64, uint64:
		return KindInt
	case float64:
		return KindFloat
	}

	return KindNull
}

// Str returns the string value and true if s holds a string.
func (s Scalar) Str() (string, bool) {
	str, ok := s.v.(string)

	return str, ok
}

// Value returns the underlying Go value.
func (s Scalar) Value() any {
	return s.v
}

// IsNull reports whether n is nil or the null scalar.
func IsNull(n Node) bool {
	if n == nil {
		return true
	}

	s, ok := n.(Scalar)

	return ok && s.Kind() == KindNull
}

// Lookup walks a chain of mapping keys starting at n. It returns false when
// any step is not a mapping, a key is absent, or the final value is null.
func Lookup(n Node, path ...string) (Node, bool) {
	cur := n

	for _, key := range path {
		m, ok := cur.(*Mapping)
		if !ok {
			return nil, false
		}

		cur, ok = m.Get(key)
		if !ok {
			return nil, false
		}
	}

	if IsNull(cur) {
		return nil, false
	}

	return cur, true
}

// FromValue converts a decoded YAML or JSON value into a [Node].
//
// Plain Go maps are converted with their keys sorted. Ordered
// [yaml.MapSlice] values keep their order; non-string keys are rendered with
// [fmt.Sprint]. Timestamps become RFC 3339 strings and binary values become
// base64 strings, matching their JSON encodings.
func FromValue(v any) (Node, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case Node:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Int(int64(val)), nil
	case int8:
		return Int(int64(val)), nil
	case int16:
		return Int(int64(val)), nil
	case int32:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint:
		return Uint(uint64(val)), nil
	case uint8:
		return Uint(uint64(val)), nil
	case uint16:
		return Uint(uint64(val)), nil
	case uint32:
		return Uint(uint64(val)), nil
	case uint64:
		return Uint(val), nil
	case float32:
		return Float(float64(val)), nil
	case float64:
		return Float(val), nil
	case json.Number:
		return fromNumber(val)
	case time.Time:
		return String(val.Format(time.RFC3339Nano)), nil
	case []byte:
		return String(base64.StdEncoding.EncodeToString(val)), nil
	case []any:
		seq := make(Sequence, 0, len(val))

		for i, item := range val {
			n, err := FromValue(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}

			seq = append(seq, n)
		}

		return seq, nil
	case map[string]any:
		m := NewMapping()

		for _, key := range slices.Sorted(maps.Keys(val)) {
			n, err := FromValue(val[key])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}

			m.Set(key, n)
		}

		return m, nil
	case yaml.MapSlice:
		m := NewMapping()

		for _, item := range val {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}

			n, err := FromValue(item.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}

			m.Set(key, n)
		}

		return m, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

func fromNumber(num json.Number) (Node, error) {
	i, err := num.Int64()
	if err == nil {
		return Int(i), nil
	}

	if !strings.ContainsAny(num.String(), ".eE") {
		u, uerr := strconv.ParseUint(num.String(), 10, 64)
		if uerr == nil {
			return Uint(u), nil
		}
	}

	f, err := num.Float64()
	if err != nil {
		return nil, fmt.Errorf("%w: number %q: %w", ErrUnsupportedValue, num, err)
	}

	return Float(f), nil
}

// ToValue converts n into plain Go values: map[string]any, []any, and the
// scalar's underlying value.
func ToValue(n Node) any {
	switch val := n.(type) {
	case *Mapping:
		out := make(map[string]any, val.Len())
		for _, key := range val.keys {
			out[key] = ToValue(val.values[key])
		}

		return out
	case Sequence:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, ToValue(item))
		}

		return out
	case Scalar:
		return val.v
	}

	return nil
}
