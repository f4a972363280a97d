package crdschema

import (
	"regexp"
	"strings"
)

// dns1123Label matches a single DNS-1123 label, without the length limit.
var dns1123Label = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// Filename components reported by [IdentityError].
const (
	ComponentKind    = "kind"
	ComponentGroup   = "group"
	ComponentVersion = "version"
)

// Identity holds the CRD fields that determine an output filename.
type Identity struct {
	// Kind is spec.names.kind.
	Kind string
	// Singular is spec.names.singular, or empty when not declared.
	Singular string
	// Group is spec.group.
	Group string
	// Version is the version name.
	Version string
}

// FileName returns the schema filename for id, in the layout kubeval and
// kubeconform use to find schemas: "{kind}-{group}-{version}.json".
//
// The kind part is the lowercased singular name, or the lowercased kind when
// no singular name is set. The group part is the first label of the group,
// lowercased, ignoring anything after a "/". The version is used as is.
// Each part must be a DNS-1123 label; otherwise an [*IdentityError] is
// returned.
func FileName(id Identity) (string, error) {
	kind := strings.ToLower(id.Singular)
	if kind == "" {
		kind = strings.ToLower(id.Kind)
	}

	group, _, _ := strings.Cut(id.Group, "/")
	label, _, _ := strings.Cut(group, ".")
	label = strings.ToLower(label)

	parts := []struct {
		component string
		value     string
	}{
		{ComponentKind, kind},
		{ComponentGroup, label},
		{ComponentVersion, id.Version},
	}

	for _, p := range parts {
		if !dns1123Label.MatchString(p.value) {
			return "", &IdentityError{Component: p.component, Value: p.value}
		}
	}

	return kind + "-" + label + "-" + id.Version + ".json", nil
}
