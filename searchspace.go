package paramspace

import (
	"sync"
)

//////
// Exported functionalities.
//////

// SearchSpace describes a conditional hyperparameter space: a set of named
// parameters, dependency edges gating when each parameter is active, and an
// optional transform applied to every raw sample.
//
// Lifecycle:
//   - Build the space with AddParameter and AddDependency, handling errors
//     as they occur (a failed call leaves the space exactly as it was).
//   - Optionally attach a Transform with SetTransform.
//   - Sample and search. The space is treated as immutable from this point
//     on, except for SetTransform, which may atomically swap the transform
//     at any time.
//
// Thread safety:
//   - SetTransform and ApplyTransform synchronize on an internal RWMutex,
//     so the transform can be swapped while searches are running.
//   - The structural builder calls (AddParameter, AddDependency) are not
//     synchronized against concurrent sampling. Finish construction before
//     handing the space to concurrent workers.
type SearchSpace struct {
	// mu guards transform. Structural fields are write-once during
	// construction and read-only afterwards.
	mu sync.RWMutex

	// specs holds the parameters in insertion order. Insertion order has no
	// semantic meaning; it only makes display and tie-breaking in the
	// topological order deterministic.
	specs []ParameterSpec

	// index maps a parameter name to its position in specs.
	index map[string]int

	// deps maps a child parameter to the dependencies gating it.
	deps map[string][]Dependency

	// topo caches the parents-before-children evaluation order. Recomputed
	// after every successful AddDependency.
	topo []string

	// transform is the optional post-sampling rewrite. Nil means identity.
	transform Transform
}

// New returns an empty search space.
func New() *SearchSpace {
	return &SearchSpace{
		index: make(map[string]int),
		deps:  make(map[string][]Dependency),
	}
}

// AddParameter adds one parameter to the space.
//
// Returns:
// - *DuplicateNameError if the name is already taken
// - *InvalidSpecError if the spec violates its domain invariant
func (s *SearchSpace) AddParameter(spec ParameterSpec) error {
	if err := validateSpec(spec); err != nil {
		return err
	}

	if _, ok := s.index[spec.Name]; ok {
		return &DuplicateNameError{Name: spec.Name}
	}

	s.index[spec.Name] = len(s.specs)
	s.specs = append(s.specs, spec)
	s.topo = append(s.topo, spec.Name)

	return nil
}

// AddDependency declares that child is active only while parent holds the
// given value. A child may have several dependencies; all of them must hold
// for the child to be active. Numeric values are normalized to the sampled
// representation (int64 or float64) before comparison, so callers can pass
// plain ints.
//
// Returns:
// - *UnknownParameterError if either name is not in the space
// - *CyclicDependencyError if the edge would make a parameter its own
//   ancestor
//
// A failed call leaves the space unchanged.
func (s *SearchSpace) AddDependency(child, parent string, value any) error {
	if _, ok := s.index[child]; !ok {
		return &UnknownParameterError{Name: child}
	}

	if _, ok := s.index[parent]; !ok {
		return &UnknownParameterError{Name: parent}
	}

	// The edge child -> parent closes a cycle exactly when parent already
	// reaches child through existing dependency edges (or is child itself).
	if child == parent || s.reaches(parent, child) {
		return &CyclicDependencyError{Child: child, Parent: parent}
	}

	s.deps[child] = append(s.deps[child], Dependency{
		Child:  child,
		Parent: parent,
		Value:  normalizeValue(value),
	})

	s.topo = s.topoOrder()

	return nil
}

// SetTransform replaces the space's transform. Passing nil removes it. The
// swap is atomic with respect to ApplyTransform.
func (s *SearchSpace) SetTransform(fn Transform) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transform = fn
}

// Parameters returns the parameter specs in insertion order. The returned
// slice is a copy.
func (s *SearchSpace) Parameters() []ParameterSpec {
	return append([]ParameterSpec(nil), s.specs...)
}

// Dependencies returns the dependencies gating the named child, in the
// order they were declared. The returned slice is a copy; it is nil for an
// unconditioned or unknown parameter.
func (s *SearchSpace) Dependencies(child string) []Dependency {
	ds, ok := s.deps[child]
	if !ok {
		return nil
	}

	return append([]Dependency(nil), ds...)
}

// Len returns the number of parameters in the space.
func (s *SearchSpace) Len() int {
	return len(s.specs)
}

//////
// Helpers.
//////

// validateSpec checks a spec's domain invariant: non-empty levels for
// categorical parameters, ordered bounds for numeric ones.
func validateSpec(spec ParameterSpec) error {
	if spec.Name == "" {
		return &InvalidSpecError{Name: spec.Name, Reason: "empty name"}
	}

	switch spec.Kind {
	case KindCategorical:
		if len(spec.Levels) == 0 {
			return &InvalidSpecError{Name: spec.Name, Reason: "categorical parameter needs at least one level"}
		}
	case KindInteger, KindReal:
		if spec.Lower > spec.Upper {
			return &InvalidSpecError{Name: spec.Name, Reason: "lower bound exceeds upper bound"}
		}
	default:
		return &InvalidSpecError{Name: spec.Name, Reason: "unknown parameter kind"}
	}

	return nil
}

// reaches reports whether target is reachable from start by following
// child-to-parent dependency edges. Used for the insertion-time cycle
// check.
func (s *SearchSpace) reaches(start, target string) bool {
	seen := make(map[string]bool, len(s.specs))

	var walk func(name string) bool
	walk = func(name string) bool {
		if name == target {
			return true
		}

		if seen[name] {
			return false
		}
		seen[name] = true

		for _, dep := range s.deps[name] {
			if walk(dep.Parent) {
				return true
			}
		}

		return false
	}

	return walk(start)
}

// topoOrder computes a parents-before-children order over all parameters
// using Kahn's algorithm. Parameters that are ready at the same time keep
// their insertion order, which makes the result deterministic.
func (s *SearchSpace) topoOrder() []string {
	indegree := make(map[string]int, len(s.specs))
	children := make(map[string][]string, len(s.specs))

	for child, ds := range s.deps {
		indegree[child] = len(ds)
		for _, dep := range ds {
			children[dep.Parent] = append(children[dep.Parent], child)
		}
	}

	order := make([]string, 0, len(s.specs))
	emitted := make(map[string]bool, len(s.specs))

	for len(order) < len(s.specs) {
		progressed := false

		for _, spec := range s.specs {
			if emitted[spec.Name] || indegree[spec.Name] > 0 {
				continue
			}

			emitted[spec.Name] = true
			order = append(order, spec.Name)
			progressed = true

			for _, child := range children[spec.Name] {
				indegree[child]--
			}
		}

		// Unreachable while AddDependency rejects cycles; guards against a
		// hand-built space.
		if !progressed {
			break
		}
	}

	return order
}
