// Package replicator holds the naming conventions for the Replicator API.
package replicator

import (
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	// GroupName is the un-suffixed API group. The served group is
	// GroupName + "." + domain.
	GroupName = "replicator"

	// Kind is the kind of the Replicator declaration.
	Kind = "Replicator"

	// Version is the only served version.
	Version = "v1alpha1"
)

// KindToPlural derives the resource name of a kind by lower-casing it and
// appending "s". Kinds already ending in "s" are returned lower-cased but
// otherwise unchanged; irregular plurals are not supported.
func KindToPlural(kind string) string {
	lower := strings.ToLower(kind)
	if strings.HasSuffix(lower, "s") {
		return lower
	}
	return lower + "s"
}

// Group returns the API group for the given domain, e.g. "replicator.example.com".
func Group(domain string) string {
	return GroupName + "." + domain
}

// GroupVersion returns the served GroupVersion for the given domain.
func GroupVersion(domain string) schema.GroupVersion {
	return schema.GroupVersion{Group: Group(domain), Version: Version}
}

// Resource returns the GroupVersionResource of Replicator declarations for the given domain.
func Resource(domain string) schema.GroupVersionResource {
	return GroupVersion(domain).WithResource(KindToPlural(Kind))
}
