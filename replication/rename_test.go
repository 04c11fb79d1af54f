package replication

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/imjasonh/replicator/apis/replicator/v1alpha1"
	"github.com/imjasonh/replicator/store"
)

func TestRename(t *testing.T) {
	labels := map[string]string{"app": "web"}
	annotations := map[string]string{"owner": "team-a"}
	body := map[string]any{"data": map[string]any{"k": "v"}}

	tests := []struct {
		name string
		src  *store.Object
		to   *v1alpha1.ResourceQuery
		want *store.Object
	}{{
		name: "nil to keeps identity",
		src:  &store.Object{APIVersion: "v1", Kind: "ConfigMap", Name: "a", Namespace: "ns1", Body: body},
		to:   nil,
		want: &store.Object{APIVersion: "v1", Kind: "ConfigMap", Name: "a", Namespace: "ns1", Body: body},
	}, {
		name: "name only keeps namespace and metadata maps",
		src: &store.Object{
			APIVersion: "v1", Kind: "ConfigMap", Name: "a", Namespace: "ns1",
			Labels: labels, Annotations: annotations, Body: body,
		},
		to: &v1alpha1.ResourceQuery{Name: "b"},
		want: &store.Object{
			APIVersion: "v1", Kind: "ConfigMap", Name: "b", Namespace: "ns1",
			Labels: labels, Annotations: annotations, Body: body,
		},
	}, {
		name: "namespace only",
		src:  &store.Object{APIVersion: "v1", Kind: "Secret", Name: "a", Namespace: "ns1"},
		to:   &v1alpha1.ResourceQuery{Namespace: "ns2"},
		want: &store.Object{APIVersion: "v1", Kind: "Secret", Name: "a", Namespace: "ns2"},
	}, {
		name: "both, kind and version of to are ignored",
		src:  &store.Object{APIVersion: "v1", Kind: "Secret", Name: "a", Namespace: "ns1"},
		to:   &v1alpha1.ResourceQuery{APIVersion: "v2", Kind: "Other", Name: "b", Namespace: "ns2"},
		want: &store.Object{APIVersion: "v1", Kind: "Secret", Name: "b", Namespace: "ns2"},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rename(tt.src, tt.to)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Rename() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenameAbsentMapsStayAbsent(t *testing.T) {
	src := &store.Object{APIVersion: "v1", Kind: "ConfigMap", Name: "a", Namespace: "ns1"}
	got := Rename(src, &v1alpha1.ResourceQuery{Name: "b"})

	if got.Labels != nil || got.Annotations != nil {
		t.Fatalf("expected absent labels and annotations, got %v and %v", got.Labels, got.Annotations)
	}
	md := got.Unstructured().Object["metadata"].(map[string]any)
	if _, ok := md["labels"]; ok {
		t.Error("target must not carry an empty labels field")
	}
	if _, ok := md["annotations"]; ok {
		t.Error("target must not carry an empty annotations field")
	}
}

func TestRenameDoesNotAlias(t *testing.T) {
	src := &store.Object{Name: "a", Labels: map[string]string{"app": "web"}}
	got := Rename(src, nil)
	got.Labels["app"] = "changed"
	if src.Labels["app"] != "web" {
		t.Error("renamed object shares labels with its source")
	}
}

func TestSourceQuery(t *testing.T) {
	r := replicatorFor(&v1alpha1.ResourceQuery{APIVersion: "apps/v1", Kind: "Deployment", Namespace: "prod"}, nil)
	want := store.Query{APIVersion: "apps/v1", Kind: "Deployment", Namespace: "prod"}
	if diff := cmp.Diff(want, SourceQuery(r)); diff != "" {
		t.Errorf("SourceQuery() mismatch (-want +got):\n%s", diff)
	}
}
