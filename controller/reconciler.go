package controller

import (
	"context"

	"github.com/imjasonh/replicator/apis/replicator/v1alpha1"
)

// Replicator performs one replication pass for a declaration.
// *replication.Engine is the production implementation.
type Replicator interface {
	Apply(ctx context.Context, r *v1alpha1.Replicator) error
}

// ReplicatorFunc is an adapter to allow ordinary functions to be used as Replicators.
type ReplicatorFunc func(ctx context.Context, r *v1alpha1.Replicator) error

// Apply calls f(ctx, r).
func (f ReplicatorFunc) Apply(ctx context.Context, r *v1alpha1.Replicator) error {
	return f(ctx, r)
}
