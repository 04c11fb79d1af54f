// Package controller runs the Replicator reconciliation loop.
//
// The controller watches Replicator declarations through a generic client
// and handles their events one at a time, in arrival order, on a single
// worker:
//
//	client := generic.NewClientForDynamic[*v1alpha1.Replicator](replicator.Resource(domain), dyn)
//	engine := replication.New(store.New(dyn, mapper), m)
//
//	ctrl := controller.New(client, engine, &controller.Options{Metrics: m})
//	ctrl.Run(ctx)
//
// # Events
//
// Added events, and Modified events whose metadata.generation differs from
// the previously seen version, run a replication pass. The status moves to
// Pending before the pass and to Succeeded or Failed after it. Modified
// events that keep the generation (including the controller's own status
// writes) and Deleted events leave everything untouched. Replicated objects
// are not removed when their Replicator is deleted.
//
// # Errors
//
// A failed pass is recorded as Phase=Failed with the error text as the
// status message. Errors escaping an event, including failed status
// patches, are logged and never stop the loop.
package controller
