package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrTrailingData is returned by [Decode] when more than one JSON value
// follows in the input.
var ErrTrailingData = errors.New("trailing data after json value")

// MarshalJSON encodes the mapping as a JSON object with keys in insertion
// order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := marshal(key)
		if err != nil {
			return nil, err
		}

		buf.Write(k)
		buf.WriteByte(':')

		v, err := m.values[key].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}

		buf.Write(v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalJSON encodes the sequence as a JSON array.
func (s Sequence) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('[')

	for i, item := range s {
		if i > 0 {
			buf.WriteByte(',')
		}

		if item == nil {
			buf.WriteString("null")
			continue
		}

		v, err := item.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}

		buf.Write(v)
	}

	buf.WriteByte(']')

	return buf.Bytes(), nil
}

// MarshalJSON encodes the scalar as a JSON literal.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return marshal(s.v)
}

// Encode writes n to w as JSON indented with indent, followed by a newline.
// An empty indent writes the value on a single line.
func Encode(w io.Writer, n Node, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)

	err := enc.Encode(n)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

// Decode reads a single JSON value from r. Numbers are kept exact.
func Decode(r io.Reader) (Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any

	err := dec.Decode(&v)
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	_, err = dec.Token()
	if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode json: %w", ErrTrailingData)
	}

	return FromValue(v)
}

// marshal encodes v without escaping HTML characters, so descriptions stay
// readable in the output.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	err := enc.Encode(v)
	if err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
