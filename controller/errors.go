package controller

import (
	"errors"
	"fmt"

	"github.com/imjasonh/replicator/apis/replicator/v1alpha1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// StatusError reports a failed status patch.
type StatusError struct {
	Phase v1alpha1.Phase
	Err   error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("updating status to %s: %v", e.Phase, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// IsStatusError reports whether err is, or wraps, a *StatusError.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// describeError renders err for logs, adding the API status reason when err
// came from the API server.
func describeError(err error) string {
	if reason := apierrors.ReasonForError(err); reason != metav1.StatusReasonUnknown {
		return fmt.Sprintf("%v (reason: %s)", err, reason)
	}
	return err.Error()
}
