//go:build e2e
// +build e2e

package generic

import (
	"context"
	"fmt"
	"testing"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

func e2eConfig(t *testing.T) *rest.Config {
	t.Helper()
	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		clientcmd.NewDefaultClientConfigLoadingRules(),
		&clientcmd.ConfigOverrides{},
	).ClientConfig()
	if err != nil {
		t.Fatalf("failed to load kubeconfig: %v", err)
	}
	return config
}

// TestClientE2E exercises Create, Get, Patch and Inform against a real cluster.
func TestClientE2E(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	config := e2eConfig(t)

	ns := fmt.Sprintf("generic-e2e-%d", time.Now().UnixNano())
	kube := kubernetes.NewForConfigOrDie(config)
	if _, err := kube.CoreV1().Namespaces().Create(ctx, &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: ns}}, metav1.CreateOptions{}); err != nil {
		t.Fatalf("failed to create namespace: %v", err)
	}
	defer kube.CoreV1().Namespaces().Delete(context.Background(), ns, metav1.DeleteOptions{})

	client, err := NewClient[*corev1.ConfigMap](configMapGVR, config)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	added := make(chan string, 10)
	informCtx, stopInform := context.WithCancel(ctx)
	defer stopInform()
	if err := client.Inform(informCtx, InformerHandler[*corev1.ConfigMap]{
		OnAdd: func(key string, cm *corev1.ConfigMap) { added <- key },
	}, &InformOptions{Namespace: ns}); err != nil {
		t.Fatalf("Inform failed: %v", err)
	}

	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "e2e", Namespace: ns},
		Data:       map[string]string{"k": "v"},
	}
	if _, err := client.Create(ctx, ns, cm, nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	select {
	case key := <-added:
		if want := ns + "/e2e"; key != want {
			t.Errorf("added key = %q, want %q", key, want)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for add event")
	}

	patched, err := client.Patch(ctx, ns, "e2e", types.MergePatchType, []byte(`{"data":{"k":"patched"}}`), nil)
	if err != nil {
		t.Fatalf("Patch failed: %v", err)
	}
	if got := patched.Data["k"]; got != "patched" {
		t.Errorf("patched data = %q, want %q", got, "patched")
	}

	got, err := client.Get(ctx, ns, "e2e", nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Data["k"] != "patched" {
		t.Errorf("Get data = %q, want %q", got.Data["k"], "patched")
	}
}
