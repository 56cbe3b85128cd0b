package paramspace

import "fmt"

//////
// Error taxonomy.
//////
//
// Construction-time errors (DuplicateNameError, UnknownParameterError,
// CyclicDependencyError, InvalidSpecError) reject a malformed space before
// any sampling happens; a failed builder call leaves the space unchanged.
// Per-draw errors (TransformError) abort the whole search run, since a
// buggy transform fails identically on retry. Evaluator errors are the
// caller's own and are propagated unmodified; EvaluationError is the
// conventional type for evaluators that want to attach draw context.

// DuplicateNameError reports an AddParameter call reusing a name already
// present in the space.
type DuplicateNameError struct {
	// Name is the conflicting parameter name.
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("parameter %q already defined", e.Name)
}

// InvalidSpecError reports a ParameterSpec that violates its own domain
// invariant, such as reversed numeric bounds or a categorical parameter
// with no levels.
type InvalidSpecError struct {
	// Name is the offending parameter name.
	Name string

	// Reason describes the violated invariant.
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid spec for parameter %q: %s", e.Name, e.Reason)
}

// UnknownParameterError reports a dependency referencing a parameter name
// that is not in the space.
type UnknownParameterError struct {
	// Name is the missing parameter name.
	Name string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("unknown parameter %q", e.Name)
}

// CyclicDependencyError reports a dependency edge whose insertion would
// close a cycle in the child-to-parent dependency graph.
type CyclicDependencyError struct {
	// Child and Parent identify the rejected edge.
	Child  string
	Parent string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("dependency %q -> %q would create a cycle", e.Child, e.Parent)
}

// TransformError wraps a failure raised by the configured Transform. It
// carries the assignment that triggered the failure, since transform bugs
// tied to inactive parameters only surface on specific branches and the
// offending configuration is the essential clue.
type TransformError struct {
	// Assignment is the raw sample the transform was applied to.
	Assignment Assignment

	// Err is the underlying failure. Panics inside the transform are
	// recovered and reported here too.
	Err error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform failed on %s: %v", e.Assignment, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// EvaluationError is the conventional error type for evaluator callbacks.
// The search driver never constructs or inspects it; whatever the evaluator
// returns is propagated as is and aborts the run.
type EvaluationError struct {
	// Assignment is the configuration whose evaluation failed.
	Assignment Assignment

	// Err is the underlying failure.
	Err error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation failed on %s: %v", e.Assignment, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }
