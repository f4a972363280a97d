package tree_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"go.jacobcolvin.com/crd2jsonschema/tree"
)

func TestDecodeYAML(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  []string
	}{
		"empty stream": {
			input: "",
		},
		"single document": {
			input: "a: 1\n",
			want:  []string{`{"a":1}`},
		},
		"leading empty document": {
			input: "---\n---\na: 1\n",
			want:  []string{`null`, `{"a":1}`},
		},
		"empty document after a single line": {
			input: "kind: ConfigMap\n---\n---\na: 1\n",
			want:  []string{`{"kind":"ConfigMap"}`, `null`, `{"a":1}`},
		},
		"explicit null document": {
			input: "~\n---\na: 1\n",
			want:  []string{`null`, `{"a":1}`},
		},
		"order is kept": {
			input: "z: 1\na: [x, true, 1.5]\nm: {k: null}\n",
			want:  []string{`{"z":1,"a":["x",true,1.5],"m":{"k":null}}`},
		},
		"quoted scalars stay strings": {
			input: "a: \"1\"\nb: 'true'\nc: yes\n",
			want:  []string{`{"a":"1","b":"true","c":"yes"}`},
		},
		"aliases are expanded": {
			input: "base: &b {x: 1}\ncopy: *b\n",
			want:  []string{`{"base":{"x":1},"copy":{"x":1}}`},
		},
		"merge keys add absent keys": {
			input: "base: &b {x: 1, y: 2}\nchild:\n  y: 3\n  <<: *b\n",
			want:  []string{`{"base":{"x":1,"y":2},"child":{"y":3,"x":1}}`},
		},
		"merge sequence": {
			input: "a: &a {x: 1}\nb: &b {x: 2, y: 2}\nc:\n  <<: [*a, *b]\n",
			want:  []string{`{"a":{"x":1},"b":{"x":2,"y":2},"c":{"x":1,"y":2}}`},
		},
		"non-string keys": {
			input: "200: ok\ntrue: yes\n",
			want:  []string{`{"200":"ok","true":"yes"}`},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			docs, err := tree.DecodeYAML(strings.NewReader(tc.input))
			require.NoError(t, err)

			got := make([]string, 0, len(docs))

			for _, doc := range docs {
				out, err := json.Marshal(doc)
				require.NoError(t, err)

				got = append(got, string(out))
			}

			if tc.want == nil {
				assert.Empty(t, got)

				return
			}

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeYAMLErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err   error
		input string
	}{
		"malformed": {
			input: "a: [unclosed\n",
		},
		"malformed after valid document": {
			input: "a: 1\n---\nb: [\n",
		},
		"mapping key": {
			input: "? {a: 1}\n: value\n",
			err:   tree.ErrUnsupportedValue,
		},
		"merge of a scalar": {
			input: "a:\n  <<: 1\n",
			err:   tree.ErrUnsupportedValue,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			docs, err := tree.DecodeYAML(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.Nil(t, docs)

			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestFromYAMLSpecialFloats(t *testing.T) {
	t.Parallel()

	var n yaml.Node

	require.NoError(t, yaml.Unmarshal([]byte("[.inf, -.inf, .nan]"), &n))

	got, err := tree.FromYAML(&n)
	require.NoError(t, err)

	seq, ok := got.(tree.Sequence)
	require.True(t, ok)
	require.Len(t, seq, 3)

	want := []func(float64) bool{
		func(f float64) bool { return math.IsInf(f, 1) },
		func(f float64) bool { return math.IsInf(f, -1) },
		math.IsNaN,
	}

	for i, item := range seq {
		s, ok := item.(tree.Scalar)
		require.True(t, ok)

		f, ok := s.Value().(float64)
		require.True(t, ok, "item %d", i)
		assert.True(t, want[i](f), "item %d: %v", i, f)
	}

	null, err := tree.FromYAML(nil)
	require.NoError(t, err)
	assert.True(t, tree.IsNull(null))
}
