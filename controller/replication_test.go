package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/imjasonh/replicator/apis/replicator/v1alpha1"
	"github.com/imjasonh/replicator/metrics"
	"github.com/imjasonh/replicator/replication"
	"github.com/imjasonh/replicator/store"
	"github.com/prometheus/client_golang/prometheus"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/dynamic/fake"
	k8stesting "k8s.io/client-go/testing"
)

// These tests drive the controller with the real replication engine and
// object store, all over one fake cluster.

func newEngineController(t *testing.T, objs ...runtime.Object) (*Controller, *fake.FakeDynamicClient) {
	t.Helper()
	dyn := newFakeDynamic(t, objs...)
	mapper := meta.NewDefaultRESTMapper([]schema.GroupVersion{corev1.SchemeGroupVersion})
	mapper.Add(corev1.SchemeGroupVersion.WithKind("ConfigMap"), meta.RESTScopeNamespace)

	m := metrics.New(prometheus.NewRegistry())
	engine := replication.New(store.New(dyn, mapper), m)
	return New(newReplicatorClient(dyn), engine, &Options{Metrics: m}), dyn
}

func sourceConfigMap(name string) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "ns1"},
		Data:       map[string]string{"name": name},
	}
}

func configMapCreates(dyn *fake.FakeDynamicClient) int {
	n := 0
	for _, a := range dyn.Actions() {
		if a.GetVerb() == "create" && a.GetResource().Resource == "configmaps" {
			n++
		}
	}
	return n
}

func TestReplicateNamespaceListing(t *testing.T) {
	r := testReplicator("r1", 1)
	ctrl, dyn := newEngineController(t, r, sourceConfigMap("a"), sourceConfigMap("b"))
	client := newReplicatorClient(dyn)

	if err := ctrl.Handle(context.Background(), &Event{Type: watch.Added, Object: r.DeepCopy()}); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if got := configMapCreates(dyn); got != 2 {
		t.Errorf("expected 2 writes, got %d", got)
	}

	want := v1alpha1.ReplicatorStatus{Message: "created replicator", Phase: v1alpha1.PhaseSucceeded, Ready: true}
	if diff := cmp.Diff(want, getStatus(t, client, "r1")); diff != "" {
		t.Errorf("unexpected status (-want +got):\n%s", diff)
	}
}

func TestReplicateWriteFailure(t *testing.T) {
	r := testReplicator("r1", 1)
	ctrl, dyn := newEngineController(t, r, sourceConfigMap("a"), sourceConfigMap("b"), sourceConfigMap("c"))
	client := newReplicatorClient(dyn)

	writeErr := errors.New(`configmaps "b" is forbidden: exceeded quota`)
	creates := 0
	dyn.PrependReactor("create", "configmaps", func(k8stesting.Action) (bool, runtime.Object, error) {
		creates++
		if creates == 2 {
			return true, nil, writeErr
		}
		return false, nil, nil
	})

	err := ctrl.Handle(context.Background(), &Event{Type: watch.Added, Object: r.DeepCopy()})
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected write error, got %v", err)
	}
	if creates != 2 {
		t.Errorf("expected exactly 2 writes attempted, got %d", creates)
	}

	want := v1alpha1.ReplicatorStatus{Message: writeErr.Error(), Phase: v1alpha1.PhaseFailed, Ready: false}
	if diff := cmp.Diff(want, getStatus(t, client, "r1")); diff != "" {
		t.Errorf("unexpected status (-want +got):\n%s", diff)
	}
}

func TestReplicateUnchangedGeneration(t *testing.T) {
	r := testReplicator("r1", 1)
	ctrl, dyn := newEngineController(t, r, sourceConfigMap("a"))
	ctx := context.Background()

	if err := ctrl.Handle(ctx, &Event{Type: watch.Added, Object: r.DeepCopy()}); err != nil {
		t.Fatal(err)
	}
	before := len(dyn.Actions())

	annotated := r.DeepCopy()
	annotated.Annotations = map[string]string{"touched": "true"}
	if err := ctrl.Handle(ctx, &Event{Type: watch.Modified, Object: annotated}); err != nil {
		t.Fatal(err)
	}
	if got := len(dyn.Actions()); got != before {
		t.Errorf("expected no API calls for an unchanged generation, got %d", got-before)
	}
}
