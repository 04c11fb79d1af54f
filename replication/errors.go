package replication

import (
	"errors"

	"k8s.io/apimachinery/pkg/types"
)

// ApplyError reports a target object that could not be written.
type ApplyError struct {
	Source types.NamespacedName
	Target types.NamespacedName
	Kind   string
	Err    error
}

// Error returns the message of the underlying write error, which is what
// gets surfaced in the Replicator's status.
func (e *ApplyError) Error() string {
	return e.Err.Error()
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// IsApplyError reports whether err is, or wraps, an *ApplyError.
func IsApplyError(err error) bool {
	var ae *ApplyError
	return errors.As(err, &ae)
}
