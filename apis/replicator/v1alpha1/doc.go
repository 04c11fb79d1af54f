// Package v1alpha1 contains the v1alpha1 Replicator API.
//
// The API group is not fixed at compile time: it is "replicator.<domain>",
// where the domain is configured when the operator starts. Use AddToScheme
// with that domain to register the types.
// +kubebuilder:object:generate=true
package v1alpha1
