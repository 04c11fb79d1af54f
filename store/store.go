// Package store reads and writes arbitrary Kubernetes objects identified by
// apiVersion and kind.
package store

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/util/retry"
)

// Query selects objects. An empty Name lists all objects of the kind in
// Namespace.
type Query struct {
	APIVersion string
	Kind       string
	Name       string
	Namespace  string
}

func (q Query) String() string {
	if q.Name == "" {
		return fmt.Sprintf("%s %s/*", q.Kind, q.Namespace)
	}
	return fmt.Sprintf("%s %s/%s", q.Kind, q.Namespace, q.Name)
}

// Store is an object store backed by the dynamic client.
type Store struct {
	dyn    dynamic.Interface
	mapper meta.RESTMapper
}

// New returns a Store that resolves kinds with mapper.
func New(dyn dynamic.Interface, mapper meta.RESTMapper) *Store {
	return &Store{dyn: dyn, mapper: mapper}
}

// NewForConfig returns a Store whose kinds are resolved by a cached
// discovery mapper. The cache is reset when an unknown kind is queried, so
// kinds installed after startup are picked up.
func NewForConfig(config *rest.Config) (*Store, error) {
	dyn, err := dynamic.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("creating dynamic client: %w", err)
	}
	dc, err := discovery.NewDiscoveryClientForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("creating discovery client: %w", err)
	}
	mapper := restmapper.NewDeferredDiscoveryRESTMapper(memory.NewMemCacheClient(dc))
	return New(dyn, mapper), nil
}

// Get returns the objects matching q.
func (s *Store) Get(ctx context.Context, q Query) ([]*Object, error) {
	ri, err := s.resourceFor(ctx, q.APIVersion, q.Kind, q.Namespace)
	if err != nil {
		return nil, err
	}

	if q.Name != "" {
		u, err := ri.Get(ctx, q.Name, metav1.GetOptions{})
		if err != nil {
			return nil, err
		}
		obj, err := q.object(u)
		if err != nil {
			return nil, err
		}
		return []*Object{obj}, nil
	}

	ul, err := ri.List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]*Object, 0, len(ul.Items))
	for i := range ul.Items {
		obj, err := q.object(&ul.Items[i])
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

// object converts an item read for q. List items sent by the server, and
// objects from some clients, omit apiVersion and kind, so the queried ones
// are filled in.
func (q Query) object(u *unstructured.Unstructured) (*Object, error) {
	obj, err := FromUnstructured(u)
	if err != nil {
		return nil, err
	}
	if obj.APIVersion == "" {
		obj.APIVersion = q.APIVersion
	}
	if obj.Kind == "" {
		obj.Kind = q.Kind
	}
	return obj, nil
}

// Apply creates obj, or replaces the existing object with the same
// identity. Conflicting concurrent writes are retried.
func (s *Store) Apply(ctx context.Context, obj *Object) error {
	ri, err := s.resourceFor(ctx, obj.APIVersion, obj.Kind, obj.Namespace)
	if err != nil {
		return err
	}

	return retry.RetryOnConflict(retry.DefaultBackoff, func() error {
		desired := obj.Unstructured()
		existing, err := ri.Get(ctx, obj.Name, metav1.GetOptions{})
		switch {
		case apierrors.IsNotFound(err):
			clog.DebugContext(ctx, "creating object", "object", obj.String())
			_, err = ri.Create(ctx, desired, metav1.CreateOptions{})
			return err
		case err != nil:
			return err
		}

		desired.SetResourceVersion(existing.GetResourceVersion())
		clog.DebugContext(ctx, "updating object",
			"object", obj.String(),
			"resourceVersion", existing.GetResourceVersion())
		_, err = ri.Update(ctx, desired, metav1.UpdateOptions{})
		return err
	})
}

func (s *Store) resourceFor(ctx context.Context, apiVersion, kind, namespace string) (dynamic.ResourceInterface, error) {
	gv, err := schema.ParseGroupVersion(apiVersion)
	if err != nil {
		return nil, fmt.Errorf("parsing apiVersion %q: %w", apiVersion, err)
	}
	gvk := gv.WithKind(kind)

	mapping, err := s.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if meta.IsNoMatchError(err) {
		if rm, ok := s.mapper.(meta.ResettableRESTMapper); ok {
			clog.DebugContext(ctx, "resetting REST mapper", "gvk", gvk.String())
			rm.Reset()
			mapping, err = s.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("mapping %v: %w", gvk, err)
	}

	if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
		return s.dyn.Resource(mapping.Resource).Namespace(namespace), nil
	}
	return s.dyn.Resource(mapping.Resource), nil
}
