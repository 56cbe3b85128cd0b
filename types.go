package paramspace

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/constraints"
)

//////
// Const, vars, types.
//////

// ParameterKind identifies the domain shape of a parameter.
type ParameterKind int

const (
	// KindCategorical parameters take one value out of a fixed, ordered set
	// of string levels.
	KindCategorical ParameterKind = iota

	// KindInteger parameters take an integer value from an inclusive range.
	KindInteger

	// KindReal parameters take a floating-point value from a half-open range
	// [lower, upper).
	KindReal
)

// String returns a human-readable name for the kind.
func (k ParameterKind) String() string {
	switch k {
	case KindCategorical:
		return "categorical"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	default:
		return fmt.Sprintf("ParameterKind(%d)", int(k))
	}
}

// ParameterSpec declares the name, kind, and domain of one tunable value.
// Specs are plain values; they become part of a space via
// SearchSpace.AddParameter, which is where their invariants are checked.
//
// Fields:
// - Name: Unique key for the parameter within a SearchSpace
// - Kind: Domain shape (categorical, integer, or real)
// - Levels: Ordered set of string levels (categorical only, must be non-empty)
// - Lower, Upper: Numeric bounds (integer and real only, Lower <= Upper)
//
// Usage:
//
//	// Example 1: Model branch selector with two levels
//	branch := Categorical("branch", "svm", "rf")
//
//	// Example 2: Tree count from 1 to 500 (inclusive on both ends)
//	trees := Int("num.trees", 1, 500)
//
//	// Example 3: Log-scale cost exponent, sampled from [-10, 10)
//	cost := Real("cost_trafo", -10, 10)
//
// Validation:
// - Numeric kinds require Lower <= Upper
// - Categorical kinds require at least one level
//
// Note:
//   - Integer bounds are carried as float64 internally and are exact for
//     magnitudes up to 2^53, which covers any realistic tuning range.
type ParameterSpec struct {
	// Name is the unique key for this parameter. Sampled values appear in
	// Assignments under this key.
	Name string

	// Kind selects the domain shape and therefore which of the remaining
	// fields are meaningful.
	Kind ParameterKind

	// Levels holds the allowed values for categorical parameters, in the
	// order they were declared. Ignored for numeric kinds.
	Levels []string

	// Lower is the inclusive lower bound for numeric kinds.
	Lower float64

	// Upper is the upper bound for numeric kinds. Inclusive for integers,
	// exclusive for reals.
	Upper float64
}

// Categorical builds a spec for a parameter drawn uniformly from the given
// levels. Level order is preserved for display and for deterministic
// sampling.
func Categorical(name string, levels ...string) ParameterSpec {
	return ParameterSpec{
		Name:   name,
		Kind:   KindCategorical,
		Levels: append([]string(nil), levels...),
	}
}

// Int builds a spec for an integer parameter drawn uniformly from the
// inclusive range [lower, upper].
func Int(name string, lower, upper int64) ParameterSpec {
	return ParameterSpec{
		Name:  name,
		Kind:  KindInteger,
		Lower: float64(lower),
		Upper: float64(upper),
	}
}

// Real builds a spec for a floating-point parameter drawn uniformly from the
// half-open range [lower, upper).
func Real(name string, lower, upper float64) ParameterSpec {
	return ParameterSpec{
		Name:  name,
		Kind:  KindReal,
		Lower: lower,
		Upper: upper,
	}
}

// Numeric builds an integer or real spec depending on the bound type. It is
// a convenience for generic callers that carry their tuning ranges as a
// single numeric type.
//
// Usage:
//
//	intSpec := Numeric("workers", 1, 32)     // KindInteger
//	realSpec := Numeric("rate", 0.0001, 0.1) // KindReal
func Numeric[T constraints.Integer | constraints.Float](name string, lower, upper T) ParameterSpec {
	switch any(lower).(type) {
	case float32, float64:
		return Real(name, float64(lower), float64(upper))
	default:
		return Int(name, int64(lower), int64(upper))
	}
}

// Dependency gates a parameter on the value of another one. The child
// parameter is active in a sampled Assignment only while every dependency
// declared for it holds. Multiple dependencies on the same child combine
// with logical AND.
type Dependency struct {
	// Child is the gated parameter.
	Child string

	// Parent is the parameter whose value controls the child.
	Parent string

	// Value is the parent value required for the child to be active.
	// Compared with == against the sampled representation: string for
	// categorical, int64 for integer, float64 for real parameters.
	Value any
}

// Assignment is one concrete set of parameter values. Keys are parameter
// names; values are string (categorical), int64 (integer), or float64
// (real). A parameter that is absent from an Assignment is inactive for
// this configuration. Absence is the only representation of inactivity;
// values are never nil.
//
// Transforms receive an Assignment, may add, rename, or drop keys, and must
// use Has (or the two-value accessors) before dereferencing a key, because
// a gated parameter may simply not be there.
type Assignment map[string]any

// Has reports whether the parameter is active in this assignment.
func (a Assignment) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Get returns the raw value for name and whether it is present.
func (a Assignment) Get(name string) (any, bool) {
	v, ok := a[name]
	return v, ok
}

// Level returns the categorical value for name. The second return is false
// when the parameter is absent or not a string.
func (a Assignment) Level(name string) (string, bool) {
	v, ok := a[name].(string)
	return v, ok
}

// Int returns the integer value for name. The second return is false when
// the parameter is absent or not an integer.
func (a Assignment) Int(name string) (int64, bool) {
	v, ok := a[name].(int64)
	return v, ok
}

// Float returns the numeric value for name as a float64, converting integer
// values. The second return is false when the parameter is absent or not
// numeric.
func (a Assignment) Float(name string) (float64, bool) {
	switch v := a[name].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Delete removes a parameter from the assignment. Removing an absent key is
// a no-op, so transforms can drop keys without a presence check.
func (a Assignment) Delete(name string) {
	delete(a, name)
}

// Clone returns an independent shallow copy of the assignment.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Keys returns the active parameter names in lexical order.
func (a Assignment) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the assignment deterministically as "k=v" pairs in lexical
// key order, for logs and error messages.
func (a Assignment) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range a.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, a[k])
	}
	b.WriteByte('}')
	return b.String()
}

// Number returns the value for name converted to the requested numeric
// type. The second return is false when the parameter is absent or not
// numeric.
//
// Usage example:
//
//	mtry, ok := Number[int](a, "mtry")
//	if !ok {
//	    // "mtry" is inactive in this assignment
//	}
func Number[T constraints.Integer | constraints.Float](a Assignment, name string) (T, bool) {
	switch v := a[name].(type) {
	case int64:
		return T(v), true
	case float64:
		return T(v), true
	default:
		return 0, false
	}
}

// Transform is a pure function applied to every raw Assignment after
// sampling and before evaluation. It may rewrite values, derive new keys,
// or drop keys, and must not depend on external state.
//
// A transform author must check key presence before dereferencing, because
// inactive parameters are absent rather than nil. The engine performs no
// implicit presence check on the transform's behalf; a transform that
// assumes every parameter was sampled fails only on the draws where the
// gated parameter happens to be inactive, which makes the bug intermittent.
//
// Usage example:
//
//	space.SetTransform(func(a Assignment) (Assignment, error) {
//	    if exp, ok := a.Float("cost_trafo"); ok {
//	        a["cost"] = math.Pow(2, exp)
//	        a.Delete("cost_trafo")
//	    }
//	    return a, nil
//	})
type Transform func(Assignment) (Assignment, error)

// EvaluateFunc scores one transformed Assignment. Lower scores are better.
// The search driver calls it once per draw and propagates any returned
// error unmodified, aborting the run.
//
// The context is the one passed to the driver; long-running evaluators
// should honor its cancellation.
type EvaluateFunc func(ctx context.Context, a Assignment) (float64, error)

// Record pairs one evaluated Assignment with its score.
type Record struct {
	// Draw is the zero-based draw index within the run. It also identifies
	// the deterministic RNG stream partition the assignment came from.
	Draw int

	// Assignment is the transformed configuration that was evaluated.
	Assignment Assignment

	// Score is the evaluator's result. Lower is better.
	Score float64
}

// SearchResult holds the outcome of one search run.
type SearchResult struct {
	// Records lists every evaluation in draw order.
	Records []Record

	// Best is the lowest-scoring record. Ties break to the earliest draw.
	// Best.Draw is -1 when the budget was zero.
	Best Record
}

// ProgressUpdate reports the state of a running search. Updates are sent on
// SearchConfig.ProgressChan with a non-blocking send, so a slow consumer
// loses updates rather than stalling the search.
type ProgressUpdate struct {
	// Draw is the index of the evaluation this update reports.
	Draw int

	// Budget is the total number of evaluations the run will perform.
	Budget int

	// Assignment is the configuration that was just evaluated.
	Assignment Assignment

	// Score is the evaluation result for Assignment.
	Score float64

	// BestScore is the best score seen so far in this run.
	BestScore float64

	// BestDraw is the draw index that produced BestScore.
	BestDraw int
}

// SearchConfig controls a search run.
//
// Usage example:
//
//	cfg := DefaultConfig()
//	cfg.Budget = 100
//	cfg.Seed = 42 // fixed seed for a reproducible run
type SearchConfig struct {
	// Budget is the number of evaluations to perform. The run stops after
	// exactly Budget draws; there is no other terminator.
	Budget int

	// Seed keys the pseudo-random stream. Two runs over the same space with
	// the same Seed and Budget evaluate identical assignments in identical
	// order, regardless of whether they run sequentially or in parallel.
	Seed int64

	// ProgressChan receives per-evaluation updates when non-nil. Sends are
	// non-blocking.
	ProgressChan chan<- ProgressUpdate
}
