package paramspace

import (
	"iter"
	"math/rand"
)

//////
// Exported functionalities.
//////

// Draw produces the raw assignment for one draw index under the given
// seed. Every parameter is first drawn independently and uniformly over its
// domain (categorical: uniform over levels; integer: uniform over
// [lower, upper] inclusive; real: uniform over [lower, upper)). Dependencies
// are then evaluated parents-first, and every inactive parameter is removed
// from the assignment.
//
// Determinism: the draw at index k is a pure function of (space structure,
// seed, k). Each index gets its own random source derived from seed and
// index, so draw k is identical whether it is reached by iterating Sample
// or requested directly, and a set of draws can be dispatched to workers in
// any order without changing the values.
func (s *SearchSpace) Draw(seed int64, index int) Assignment {
	rng := rand.New(rand.NewSource(mixSeed(seed, int64(index))))

	a := make(Assignment, len(s.specs))

	// Step 1: draw a candidate value for every parameter.
	for _, spec := range s.specs {
		switch spec.Kind {
		case KindCategorical:
			a[spec.Name] = spec.Levels[rng.Intn(len(spec.Levels))]
		case KindInteger:
			lower := int64(spec.Lower)
			upper := int64(spec.Upper)
			a[spec.Name] = lower + rng.Int63n(upper-lower+1)
		case KindReal:
			a[spec.Name] = spec.Lower + rng.Float64()*(spec.Upper-spec.Lower)
		}
	}

	// Step 2: deactivate gated parameters, parents before children. A
	// dependency holds only when the parent is still present and carries
	// the required value, so deactivating a parent cascades to everything
	// gated on it in a single pass.
	for _, name := range s.topo {
		for _, dep := range s.deps[name] {
			parentValue, ok := a[dep.Parent]
			if !ok || parentValue != dep.Value {
				delete(a, name)
				break
			}
		}
	}

	return a
}

// Sample returns a lazy sequence of n raw assignments keyed by draw index.
// The sequence is finite and restartable: ranging over it twice, or calling
// Sample again with the same arguments, yields identical assignments.
//
// Usage example:
//
//	for i, a := range space.Sample(20, 42) {
//	    fmt.Println(i, a)
//	}
func (s *SearchSpace) Sample(n int, seed int64) iter.Seq2[int, Assignment] {
	return func(yield func(int, Assignment) bool) {
		for i := 0; i < n; i++ {
			if !yield(i, s.Draw(seed, i)) {
				return
			}
		}
	}
}
