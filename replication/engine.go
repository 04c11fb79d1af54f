// Package replication copies the objects selected by a Replicator to their
// target location.
package replication

import (
	"context"
	"maps"

	"github.com/chainguard-dev/clog"
	"github.com/imjasonh/replicator/apis/replicator/v1alpha1"
	"github.com/imjasonh/replicator/metrics"
	"github.com/imjasonh/replicator/store"
	"github.com/prometheus/client_golang/prometheus"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// DefaultAPIVersion is used for From queries that omit apiVersion.
const DefaultAPIVersion = "v1"

// ObjectStore reads source objects and writes target objects.
type ObjectStore interface {
	Get(ctx context.Context, q store.Query) ([]*store.Object, error)
	Apply(ctx context.Context, obj *store.Object) error
}

// Engine performs one replication pass for a Replicator.
type Engine struct {
	store   ObjectStore
	metrics *metrics.Metrics
}

// New returns an Engine over s. A nil m records to a private registry.
func New(s ObjectStore, m *metrics.Metrics) *Engine {
	if m == nil {
		m = metrics.New(prometheus.NewRegistry())
	}
	return &Engine{store: s, metrics: m}
}

// Apply resolves the sources selected by r.Spec.From and writes each of them,
// renamed per r.Spec.To, one at a time in the order the store returned them.
//
// A Replicator without From is a no-op. Failing to read sources is treated
// as there being no sources. The first failed write stops the pass and is
// returned as an *ApplyError; objects after it are not written.
func (e *Engine) Apply(ctx context.Context, r *v1alpha1.Replicator) error {
	if r.Spec.From == nil {
		clog.DebugContext(ctx, "no from query, nothing to replicate")
		return nil
	}

	q := SourceQuery(r)
	sources, err := e.store.Get(ctx, q)
	if err != nil {
		if apierrors.IsNotFound(err) {
			clog.DebugContext(ctx, "no source objects found", "query", q.String())
		} else {
			clog.WarnContext(ctx, "failed to read source objects, treating as empty",
				"query", q.String(),
				"error", err)
		}
		sources = nil
	}

	clog.DebugContext(ctx, "resolved source objects", "query", q.String(), "count", len(sources))
	for _, src := range sources {
		target := Rename(src, r.Spec.To)
		if err := e.store.Apply(ctx, target); err != nil {
			return &ApplyError{Source: src.Identity(), Target: target.Identity(), Kind: target.Kind, Err: err}
		}
		e.metrics.ObjectsApplied.Inc()
		clog.InfoContext(ctx, "replicated object",
			"kind", target.Kind,
			"source", src.Identity().String(),
			"target", target.Identity().String())
	}
	return nil
}

// SourceQuery returns the store query for r's From, defaulting apiVersion
// to DefaultAPIVersion and namespace to r's own namespace.
func SourceQuery(r *v1alpha1.Replicator) store.Query {
	q := store.Query{
		APIVersion: DefaultAPIVersion,
		Namespace:  r.Namespace,
	}
	from := r.Spec.From
	if from == nil {
		return q
	}
	if from.APIVersion != "" {
		q.APIVersion = from.APIVersion
	}
	if from.Namespace != "" {
		q.Namespace = from.Namespace
	}
	q.Kind = from.Kind
	q.Name = from.Name
	return q
}

// Rename returns a copy of src with the name and namespace set by to.
// Fields of to that are empty, or a nil to, keep the source identity.
// Labels and annotations are kept as they are, including their absence.
func Rename(src *store.Object, to *v1alpha1.ResourceQuery) *store.Object {
	out := &store.Object{
		APIVersion:  src.APIVersion,
		Kind:        src.Kind,
		Name:        src.Name,
		Namespace:   src.Namespace,
		Labels:      maps.Clone(src.Labels),
		Annotations: maps.Clone(src.Annotations),
		Body:        maps.Clone(src.Body),
	}
	if to == nil {
		return out
	}
	if to.Name != "" {
		out.Name = to.Name
	}
	if to.Namespace != "" {
		out.Namespace = to.Namespace
	}
	return out
}
