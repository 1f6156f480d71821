package tree

import "fmt"

// ValidationError reports empty or otherwise invalid user input. The
// operation was aborted and the tree is unchanged.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// NotFoundError reports an operation that referenced an id absent from the
// tree. The tree is unchanged.
type NotFoundError struct {
	Kind string // "item" or "page"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// IntegrityError reports a broken structural invariant, such as a cycle in
// the parent chain. It should never occur during normal operation; callers
// log it and abort the affected traversal.
type IntegrityError struct {
	Reason string
}

func (e *IntegrityError) Error() string {
	return "integrity: " + e.Reason
}
