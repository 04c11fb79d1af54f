package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/imjasonh/replicator/apis/replicator/v1alpha1"
	"github.com/imjasonh/replicator/generic"
	"github.com/imjasonh/replicator/metrics"
	"github.com/imjasonh/replicator/tracker"
	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/util/workqueue"
)

// Options configures a Controller.
type Options struct {
	// Namespace limits the controller to a specific namespace.
	// If empty, the controller watches all namespaces.
	Namespace string

	// Queue is a custom event queue for the controller.
	// If not provided, a plain FIFO workqueue is used.
	Queue workqueue.TypedInterface[*Event]

	// Metrics receives the controller's metrics.
	// If not provided, metrics are recorded to a private registry.
	Metrics *metrics.Metrics
}

// Event is one watch event for a Replicator.
type Event struct {
	Type   watch.EventType
	Object *v1alpha1.Replicator
}

// Controller reconciles Replicator declarations.
//
// Events are processed by exactly one worker, so the tracker and the
// replication passes it drives are never used concurrently.
type Controller struct {
	client     generic.Client[*v1alpha1.Replicator]
	replicator Replicator
	tracker    *tracker.Tracker[*v1alpha1.Replicator]
	queue      workqueue.TypedInterface[*Event]
	namespace  string
	metrics    *metrics.Metrics
}

// New creates a new Controller with the given client, replicator, and options.
func New(client generic.Client[*v1alpha1.Replicator], r Replicator, opts *Options) *Controller {
	// Apply defaults
	if opts == nil {
		opts = &Options{}
	}
	if opts.Queue == nil {
		opts.Queue = workqueue.NewTypedWithConfig(workqueue.TypedQueueConfig[*Event]{Name: "replicators"})
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New(prometheus.NewRegistry())
	}

	return &Controller{
		client:     client,
		replicator: r,
		tracker:    tracker.New[*v1alpha1.Replicator](),
		queue:      opts.Queue,
		namespace:  opts.Namespace,
		metrics:    opts.Metrics,
	}
}

// Run starts the informer and processes events until the context is canceled.
func (c *Controller) Run(ctx context.Context) error {
	defer c.queue.ShutDown()

	clog.InfoContext(ctx, "starting controller", "namespace", c.namespace)

	handler := generic.InformerHandler[*v1alpha1.Replicator]{
		OnAdd: func(key string, obj *v1alpha1.Replicator) {
			clog.DebugContext(ctx, "replicator added", "key", key)
			c.queue.Add(&Event{Type: watch.Added, Object: obj})
		},
		OnUpdate: func(key string, _, newObj *v1alpha1.Replicator) {
			clog.DebugContext(ctx, "replicator updated", "key", key)
			c.queue.Add(&Event{Type: watch.Modified, Object: newObj})
		},
		OnDelete: func(key string, obj *v1alpha1.Replicator) {
			clog.DebugContext(ctx, "replicator deleted", "key", key)
			c.queue.Add(&Event{Type: watch.Deleted, Object: obj})
		},
		OnError: func(obj any, err error) {
			clog.ErrorContext(ctx, "informer error", "error", err, "object", obj)
		},
	}

	if err := c.client.Inform(ctx, handler, &generic.InformOptions{Namespace: c.namespace}); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("starting informer: %w", err)
	}

	go func() {
		<-ctx.Done()
		c.queue.ShutDown()
	}()

	for c.processNextEvent(ctx) {
	}

	clog.InfoContext(ctx, "shutting down controller")
	return nil
}

// processNextEvent handles one event from the queue. It returns false once
// the queue has been shut down.
func (c *Controller) processNextEvent(ctx context.Context) bool {
	ev, quit := c.queue.Get()
	if quit {
		return false
	}
	defer c.queue.Done(ev)

	defer func() {
		if r := recover(); r != nil {
			clog.ErrorContext(ctx, "panic handling event", "event", ev.Type, "panic", r)
		}
	}()

	if err := c.Handle(ctx, ev); err != nil {
		clog.ErrorContext(ctx, describeError(err),
			"replicator", ev.Object.Identity().String(),
			"event", ev.Type)
		clog.DebugContext(ctx, "event error detail", "error", fmt.Sprintf("%+v", err))
	}
	return true
}

// Handle processes a single event. It must only be called from one
// goroutine at a time.
func (c *Controller) Handle(ctx context.Context, ev *Event) error {
	c.metrics.Events.WithLabelValues(string(ev.Type)).Inc()

	old, cur, seen := c.tracker.Rotate(ev.Object)
	ctx = clog.WithLogger(ctx, clog.FromContext(ctx).With(
		"namespace", cur.Namespace,
		"name", cur.Name,
		"event", string(ev.Type),
		"generation", cur.Generation))

	switch ev.Type {
	case watch.Added:
		return c.reconcile(ctx, cur, addedMessages)

	case watch.Modified:
		if seen && old.Generation == cur.Generation {
			clog.DebugContext(ctx, "generation unchanged, skipping")
			c.metrics.ObserveReconcile(metrics.OutcomeSkipped, time.Now())
			return nil
		}
		return c.reconcile(ctx, cur, modifiedMessages)

	case watch.Deleted:
		// Replicated objects are left in place.
		c.tracker.Forget(tracker.Key(cur))
		clog.DebugContext(ctx, "replicator deleted, nothing to do")
		c.metrics.ObserveReconcile(metrics.OutcomeSkipped, time.Now())
		return nil
	}

	clog.DebugContext(ctx, "ignoring event type")
	return nil
}

type phaseMessages struct {
	pending   string
	succeeded string
}

var (
	addedMessages    = phaseMessages{pending: "creating replicator", succeeded: "created replicator"}
	modifiedMessages = phaseMessages{pending: "modifying replicator", succeeded: "modified replicator"}
)

// reconcile runs one replication pass for r, recording its progress in r's status.
func (c *Controller) reconcile(ctx context.Context, r *v1alpha1.Replicator, msgs phaseMessages) error {
	start := time.Now()

	err := c.UpdateStatus(ctx, v1alpha1.ReplicatorStatus{
		Message: msgs.pending,
		Phase:   v1alpha1.PhasePending,
		Ready:   false,
	}, r)
	if err == nil {
		err = c.replicator.Apply(ctx, r)
	}
	if err == nil {
		err = c.UpdateStatus(ctx, v1alpha1.ReplicatorStatus{
			Message: msgs.succeeded,
			Phase:   v1alpha1.PhaseSucceeded,
			Ready:   true,
		}, r)
	}
	if err == nil {
		clog.InfoContext(ctx, msgs.succeeded, "duration", time.Since(start))
		c.metrics.ObserveReconcile(metrics.OutcomeSucceeded, start)
		return nil
	}

	c.metrics.ObserveReconcile(metrics.OutcomeFailed, start)
	if serr := c.UpdateStatus(ctx, v1alpha1.ReplicatorStatus{
		Message: err.Error(),
		Phase:   v1alpha1.PhaseFailed,
		Ready:   false,
	}, r); serr != nil {
		return errors.Join(err, serr)
	}
	return err
}

type jsonPatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// UpdateStatus replaces the /status of r with status using a JSON patch on
// the status subresource. Declarations without a name or namespace are
// ignored. On success r.Status is updated to match.
func (c *Controller) UpdateStatus(ctx context.Context, status v1alpha1.ReplicatorStatus, r *v1alpha1.Replicator) error {
	if r == nil || r.Name == "" || r.Namespace == "" {
		return nil
	}

	// "replace" requires /status to exist; "add" creates or replaces it.
	op := "replace"
	if r.Status == (v1alpha1.ReplicatorStatus{}) {
		op = "add"
	}
	patch, err := json.Marshal([]jsonPatchOp{{Op: op, Path: "/status", Value: status}})
	if err != nil {
		return &StatusError{Phase: status.Phase, Err: err}
	}

	if _, err := c.client.Patch(ctx, r.Namespace, r.Name, types.JSONPatchType, patch, nil, "status"); err != nil {
		c.metrics.StatusErrors.Inc()
		return &StatusError{Phase: status.Phase, Err: err}
	}
	clog.DebugContext(ctx, "updated status", "phase", status.Phase, "ready", status.Ready)
	r.Status = status
	return nil
}
