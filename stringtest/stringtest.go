// Package stringtest provides helpers for writing multi-line test fixtures
// inline.
package stringtest

import "strings"

// Input strips one leading and one trailing newline from s and removes the
// indentation common to all non-blank lines. Whitespace-only lines become
// empty. Use it to indent YAML fixtures along with the surrounding code.
//
// Example:
//
//	crd := stringtest.Input(`
//	    kind: CustomResourceDefinition
//	    spec:
//	      group: example.com
//	`) // -> "kind: CustomResourceDefinition\nspec:\n  group: example.com"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	indent := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}

		lines[i] = line[indent:]
	}

	return strings.Join(lines, "\n")
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"thing-example-v1.json",
//		"thing-example-v2.json",
//		"",
//	) // -> "thing-example-v1.json\nthing-example-v2.json\n"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}
