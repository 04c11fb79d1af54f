package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
)

// ReplicatorSpec defines the desired state of Replicator.
type ReplicatorSpec struct {
	// From selects the source objects to replicate. A Replicator without
	// From has nothing to replicate.
	From *ResourceQuery `json:"from,omitempty"`

	// To optionally overrides the target name and namespace.
	To *ResourceQuery `json:"to,omitempty"`
}

// ResourceQuery identifies one or more objects.
//
// As a From query, an empty Name lists every object of the kind in the
// namespace; a non-empty Name is a point lookup. As a To query, only Name
// and Namespace are used.
type ResourceQuery struct {
	// APIVersion of the resource. Defaults to "v1" for From queries.
	APIVersion string `json:"apiVersion,omitempty"`

	// Kind of the resource.
	Kind string `json:"kind,omitempty"`

	// Name of the resource.
	Name string `json:"name,omitempty"`

	// Namespace of the resource. Defaults to the Replicator's namespace for From queries.
	Namespace string `json:"namespace,omitempty"`
}

// Phase is the coarse state of the most recent reconciliation.
type Phase string

const (
	PhasePending   Phase = "Pending"
	PhaseSucceeded Phase = "Succeeded"
	PhaseFailed    Phase = "Failed"
	PhaseUnknown   Phase = "Unknown"
)

// ReplicatorStatus defines the observed state of Replicator.
type ReplicatorStatus struct {
	Message string `json:"message,omitempty"`

	// Phase is one of Pending, Succeeded, Failed, Unknown.
	Phase Phase `json:"phase,omitempty"`

	Ready bool `json:"ready,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status

// Replicator is the Schema for the replicators API.
type Replicator struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ReplicatorSpec   `json:"spec,omitempty"`
	Status ReplicatorStatus `json:"status,omitempty"`
}

// Identity returns the namespace/name of the Replicator.
func (r *Replicator) Identity() types.NamespacedName {
	return types.NamespacedName{Namespace: r.Namespace, Name: r.Name}
}

// +kubebuilder:object:root=true

// ReplicatorList contains a list of Replicator.
type ReplicatorList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Replicator `json:"items"`
}
