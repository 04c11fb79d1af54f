package store

import (
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
)

// Object is a generic Kubernetes object as seen by the replicator: an
// identity, optional labels and annotations, and an opaque body.
//
// A nil Labels or Annotations map means the field is absent, which is
// different from an empty map.
type Object struct {
	APIVersion string
	Kind       string
	Name       string
	Namespace  string

	Labels      map[string]string
	Annotations map[string]string

	// Body holds every top-level field other than apiVersion, kind,
	// metadata and status.
	Body map[string]any
}

// FromUnstructured extracts an Object from u. Server-populated metadata
// (uid, resourceVersion, managedFields, ...) and status are not carried over.
func FromUnstructured(u *unstructured.Unstructured) (*Object, error) {
	obj := &Object{
		APIVersion: u.GetAPIVersion(),
		Kind:       u.GetKind(),
		Name:       u.GetName(),
		Namespace:  u.GetNamespace(),
	}

	labels, found, err := unstructured.NestedStringMap(u.Object, "metadata", "labels")
	if err != nil {
		return nil, fmt.Errorf("reading labels of %s: %w", obj, err)
	}
	if found {
		obj.Labels = labels
	}
	annotations, found, err := unstructured.NestedStringMap(u.Object, "metadata", "annotations")
	if err != nil {
		return nil, fmt.Errorf("reading annotations of %s: %w", obj, err)
	}
	if found {
		obj.Annotations = annotations
	}

	for k, v := range u.Object {
		switch k {
		case "apiVersion", "kind", "metadata", "status":
			continue
		}
		if obj.Body == nil {
			obj.Body = make(map[string]any)
		}
		obj.Body[k] = runtime.DeepCopyJSONValue(v)
	}
	return obj, nil
}

// Unstructured renders the Object for a write. Labels and annotations are
// only emitted when present.
func (o *Object) Unstructured() *unstructured.Unstructured {
	content := make(map[string]any, len(o.Body)+3)
	for k, v := range o.Body {
		content[k] = runtime.DeepCopyJSONValue(v)
	}

	metadata := map[string]any{"name": o.Name}
	if o.Namespace != "" {
		metadata["namespace"] = o.Namespace
	}
	if o.Labels != nil {
		metadata["labels"] = stringMap(o.Labels)
	}
	if o.Annotations != nil {
		metadata["annotations"] = stringMap(o.Annotations)
	}
	content["metadata"] = metadata

	u := &unstructured.Unstructured{Object: content}
	u.SetAPIVersion(o.APIVersion)
	u.SetKind(o.Kind)
	return u
}

// Identity returns the namespace/name of the Object.
func (o *Object) Identity() types.NamespacedName {
	return types.NamespacedName{Namespace: o.Namespace, Name: o.Name}
}

func (o *Object) String() string {
	return fmt.Sprintf("%s %s/%s", o.Kind, o.Namespace, o.Name)
}

func stringMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
