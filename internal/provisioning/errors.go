package provisioning

import "fmt"

// InvalidRequestError reports run input that is unusable before any
// provisioning starts, such as a non-positive count or parallelism.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Reason
}

// ResolutionError reports an image or network reference that could not be
// resolved to an ID.
type ResolutionError struct {
	Kind string // "image" or "network"
	Ref  string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve %s %q: %v", e.Kind, e.Ref, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// InsufficientCapacityError reports that fewer allocatable nodes exist than
// instances were requested.
type InsufficientCapacityError struct {
	Requested int
	Available int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity: requested %d instances but only %d nodes are allocatable", e.Requested, e.Available)
}

// ControlPlaneError wraps a transport or API failure from the control plane.
// During the parallel phase it is recovered at single-worker granularity and
// becomes that worker's failed outcome; it never aborts sibling workers.
type ControlPlaneError struct {
	Op  string
	Err error
}

func (e *ControlPlaneError) Error() string {
	return fmt.Sprintf("control plane error during %s: %v", e.Op, e.Err)
}

func (e *ControlPlaneError) Unwrap() error {
	return e.Err
}
