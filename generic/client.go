// Package generic provides a type-safe client for a single Kubernetes
// resource, backed by the dynamic client.
package generic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/dynamic/dynamicinformer"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/cache"
)

const resyncPeriod = time.Hour

// Client is a typed client for objects of type T.
type Client[T runtime.Object] interface {
	Get(ctx context.Context, namespace, name string, opts *metav1.GetOptions) (T, error)
	Create(ctx context.Context, namespace string, obj T, opts *metav1.CreateOptions) (T, error)
	Patch(ctx context.Context, namespace, name string, pt types.PatchType, data []byte, opts *metav1.PatchOptions, subresources ...string) (T, error)

	// Inform starts an informer for T and blocks until its cache has synced.
	// Events are delivered to handler until ctx is done.
	Inform(ctx context.Context, handler InformerHandler[T], opts *InformOptions) error
}

// InformerHandler receives typed informer events. Keys are namespace/name.
type InformerHandler[T runtime.Object] struct {
	OnAdd    func(key string, obj T)
	OnUpdate func(key string, oldObj, newObj T)
	OnDelete func(key string, obj T)
	OnError  func(obj any, err error)
}

// InformOptions configures an informer.
type InformOptions struct {
	// Namespace limits the informer to one namespace. Empty means all namespaces.
	Namespace string

	// ListOptions carries label and field selectors applied to list and watch.
	ListOptions metav1.ListOptions

	// ResyncPeriod overrides the default resync period of one hour.
	ResyncPeriod *time.Duration
}

// NewClient creates a generic client for the given GroupVersionResource.
func NewClient[T runtime.Object](gvr schema.GroupVersionResource, config *rest.Config) (Client[T], error) {
	dyn, err := dynamic.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("creating dynamic client: %w", err)
	}
	return NewClientForDynamic[T](gvr, dyn), nil
}

// NewClientForDynamic creates a generic client over an existing dynamic
// client, e.g. a fake one in tests.
func NewClientForDynamic[T runtime.Object](gvr schema.GroupVersionResource, dyn dynamic.Interface) Client[T] {
	return client[T]{gvr: gvr, dyn: dyn}
}

type client[T runtime.Object] struct {
	gvr schema.GroupVersionResource
	dyn dynamic.Interface
}

func (c client[T]) resource(namespace string) dynamic.ResourceInterface {
	return c.dyn.Resource(c.gvr).Namespace(namespace)
}

func (c client[T]) Get(ctx context.Context, namespace, name string, opts *metav1.GetOptions) (T, error) {
	if opts == nil {
		opts = &metav1.GetOptions{}
	}
	u, err := c.resource(namespace).Get(ctx, name, *opts)
	if err != nil {
		var zero T
		return zero, err
	}
	return fromUnstructured[T](u)
}

func (c client[T]) Create(ctx context.Context, namespace string, obj T, opts *metav1.CreateOptions) (T, error) {
	if opts == nil {
		opts = &metav1.CreateOptions{}
	}
	u, err := toUnstructured(obj)
	if err != nil {
		var zero T
		return zero, err
	}
	created, err := c.resource(namespace).Create(ctx, u, *opts)
	if err != nil {
		var zero T
		return zero, err
	}
	return fromUnstructured[T](created)
}

func (c client[T]) Patch(ctx context.Context, namespace, name string, pt types.PatchType, data []byte, opts *metav1.PatchOptions, subresources ...string) (T, error) {
	if opts == nil {
		opts = &metav1.PatchOptions{}
	}
	u, err := c.resource(namespace).Patch(ctx, name, pt, data, *opts, subresources...)
	if err != nil {
		var zero T
		return zero, err
	}
	return fromUnstructured[T](u)
}

func (c client[T]) Inform(ctx context.Context, handler InformerHandler[T], opts *InformOptions) error {
	if opts == nil {
		opts = &InformOptions{}
	}
	resync := resyncPeriod
	if opts.ResyncPeriod != nil {
		resync = *opts.ResyncPeriod
	}
	listOpts := opts.ListOptions
	factory := dynamicinformer.NewFilteredDynamicSharedInformerFactory(c.dyn, resync, opts.Namespace, func(lo *metav1.ListOptions) {
		if listOpts.LabelSelector != "" {
			lo.LabelSelector = listOpts.LabelSelector
		}
		if listOpts.FieldSelector != "" {
			lo.FieldSelector = listOpts.FieldSelector
		}
	})
	inf := factory.ForResource(c.gvr).Informer()

	if _, err := inf.AddEventHandler(c.eventHandler(handler)); err != nil {
		return fmt.Errorf("adding event handler: %w", err)
	}

	go inf.Run(ctx.Done())
	if !cache.WaitForNamedCacheSync(c.gvr.String(), ctx.Done(), inf.HasSynced) {
		return fmt.Errorf("failed to wait for %s cache to sync", c.gvr)
	}
	return nil
}

func (c client[T]) eventHandler(h InformerHandler[T]) cache.ResourceEventHandler {
	onError := func(obj any, err error) {
		if h.OnError != nil {
			h.OnError(obj, err)
		}
	}
	convert := func(obj any) (string, T, bool) {
		var zero T
		key, err := cache.DeletionHandlingMetaNamespaceKeyFunc(obj)
		if err != nil {
			onError(obj, err)
			return "", zero, false
		}
		if tomb, ok := obj.(cache.DeletedFinalStateUnknown); ok {
			obj = tomb.Obj
		}
		u, ok := obj.(*unstructured.Unstructured)
		if !ok {
			onError(obj, fmt.Errorf("unexpected object type %T", obj))
			return "", zero, false
		}
		t, err := fromUnstructured[T](u)
		if err != nil {
			onError(obj, err)
			return "", zero, false
		}
		return key, t, true
	}

	return cache.ResourceEventHandlerFuncs{
		AddFunc: func(obj any) {
			if h.OnAdd == nil {
				return
			}
			if key, t, ok := convert(obj); ok {
				h.OnAdd(key, t)
			}
		},
		UpdateFunc: func(oldObj, newObj any) {
			if h.OnUpdate == nil {
				return
			}
			_, oldT, ok := convert(oldObj)
			if !ok {
				return
			}
			if key, newT, ok := convert(newObj); ok {
				h.OnUpdate(key, oldT, newT)
			}
		},
		DeleteFunc: func(obj any) {
			if h.OnDelete == nil {
				return
			}
			if key, t, ok := convert(obj); ok {
				h.OnDelete(key, t)
			}
		},
	}
}

func fromUnstructured[T runtime.Object](u *unstructured.Unstructured) (T, error) {
	var t T
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(u.Object); err != nil {
		return t, err
	}
	if err := json.NewDecoder(&buf).Decode(&t); err != nil {
		return t, err
	}
	return t, nil
}

func toUnstructured[T runtime.Object](t T) (*unstructured.Unstructured, error) {
	m := map[string]any{}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(t); err != nil {
		return nil, err
	}
	if err := json.NewDecoder(&buf).Decode(&m); err != nil {
		return nil, err
	}
	return &unstructured.Unstructured{Object: m}, nil
}
