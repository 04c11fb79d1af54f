// Package tracker remembers the last-seen version of each watched object so
// that an incoming event can be compared against its predecessor.
package tracker

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
)

// Tracker maps object identity (namespace/name) to the last object seen for it.
//
// A Tracker is not safe for concurrent use. It is meant to be owned by the
// single goroutine that consumes an object's events; to scale out, shard
// events by identity and give each shard its own Tracker.
type Tracker[T metav1.Object] struct {
	seen map[types.NamespacedName]T
}

// New returns an empty Tracker.
func New[T metav1.Object]() *Tracker[T] {
	return &Tracker[T]{seen: make(map[types.NamespacedName]T)}
}

// Rotate stores obj as the latest version of its identity and returns the
// previously stored version. ok is false, and old is the zero value, when
// the identity was never seen before.
func (t *Tracker[T]) Rotate(obj T) (old, cur T, ok bool) {
	key := Key(obj)
	old, ok = t.seen[key]
	t.seen[key] = obj
	return old, obj, ok
}

// Forget drops the entry for key, if any.
func (t *Tracker[T]) Forget(key types.NamespacedName) {
	delete(t.seen, key)
}

// Len returns the number of tracked identities.
func (t *Tracker[T]) Len() int { return len(t.seen) }

// Key returns the identity of obj.
func Key(obj metav1.Object) types.NamespacedName {
	return types.NamespacedName{Namespace: obj.GetNamespace(), Name: obj.GetName()}
}
