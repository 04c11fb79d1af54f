package v1alpha1

import (
	"github.com/imjasonh/replicator/apis/replicator"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// AddToScheme registers Replicator and ReplicatorList under the group
// derived from domain.
func AddToScheme(scheme *runtime.Scheme, domain string) error {
	gv := replicator.GroupVersion(domain)
	scheme.AddKnownTypes(gv, &Replicator{}, &ReplicatorList{})
	metav1.AddToGroupVersion(scheme, gv)
	return nil
}
