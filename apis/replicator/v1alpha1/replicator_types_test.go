package v1alpha1

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
)

func TestIdentity(t *testing.T) {
	r := &Replicator{ObjectMeta: metav1.ObjectMeta{Name: "r1", Namespace: "ns1"}}
	want := types.NamespacedName{Namespace: "ns1", Name: "r1"}
	if got := r.Identity(); got != want {
		t.Errorf("Identity() = %v, want %v", got, want)
	}
	if got := r.Identity().String(); got != "ns1/r1" {
		t.Errorf("Identity().String() = %q, want %q", got, "ns1/r1")
	}
}

func TestDeepCopyDoesNotAlias(t *testing.T) {
	r := &Replicator{
		ObjectMeta: metav1.ObjectMeta{Name: "r1", Namespace: "ns1"},
		Spec: ReplicatorSpec{
			From: &ResourceQuery{Kind: "ConfigMap"},
			To:   &ResourceQuery{Namespace: "ns2"},
		},
	}
	cp := r.DeepCopy()
	if diff := cmp.Diff(r, cp); diff != "" {
		t.Fatalf("copy differs (-orig +copy):\n%s", diff)
	}
	cp.Spec.From.Kind = "Secret"
	cp.Spec.To.Namespace = "ns3"
	if r.Spec.From.Kind != "ConfigMap" || r.Spec.To.Namespace != "ns2" {
		t.Errorf("mutating the copy changed the original: %+v", r.Spec)
	}
}
