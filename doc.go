// Package paramspace models conditional hyperparameter search spaces and
// drives random search over them. It separates the description of a space
// (parameters, the dependencies gating them, an optional value transform)
// from sampling and from the external evaluator that scores each sampled
// configuration.
//
// # Features
//
// The package includes the following key features:
//
//   - Conditional Parameters: Any parameter can be gated on the value of
//     another parameter, forming a dependency DAG; inactive parameters are
//     absent from the sampled configuration rather than null
//   - Deterministic Sampling: The stream of draws is keyed by seed and draw
//     index, so runs are exactly reproducible and can be partitioned across
//     workers without changing the results
//   - Value Transforms: A pure function rewrites each raw sample before
//     evaluation, for derived values such as log-scale parameters
//   - Decoupled Evaluation: The engine knows nothing about models or
//     training; it calls a single evaluate callback and records scores
//   - Fail-fast Construction: Duplicate names, unknown references, and
//     dependency cycles are rejected at build time, before any sampling
//   - Optional Parallel Mode: Independent draws can be evaluated
//     concurrently with identical results to the sequential run
//   - Progress Monitoring: Real-time updates on search progress via
//     channels
//
// # Installation
//
// To install the package, use:
//
//	go get github.com/thalesfsp/paramspace
//
// # Defining a space
//
// A space is built programmatically. This example gates each branch's
// parameters on a selector and derives a log-scale cost:
//
//	space := paramspace.New()
//
//	_ = space.AddParameter(paramspace.Categorical("branch", "svm", "rf"))
//	_ = space.AddParameter(paramspace.Int("mtry", 1, 20))
//	_ = space.AddParameter(paramspace.Real("cost_trafo", -10, 10))
//
//	_ = space.AddDependency("mtry", "branch", "rf")
//	_ = space.AddDependency("cost_trafo", "branch", "svm")
//
//	space.SetTransform(func(a paramspace.Assignment) (paramspace.Assignment, error) {
//	    if exp, ok := a.Float("cost_trafo"); ok {
//	        a["cost"] = math.Pow(2, exp)
//	        a.Delete("cost_trafo")
//	    }
//	    return a, nil
//	})
//
// When "branch" draws "rf", the configuration contains branch and mtry and
// no cost keys at all. Transforms must therefore check presence before
// dereferencing a gated key; the engine deliberately performs no implicit
// check, and a transform that skips its own check fails only on the draws
// where the key is absent.
//
// # Running a search
//
//	result, err := paramspace.RunSearch(ctx, space, 100,
//	    func(ctx context.Context, a paramspace.Assignment) (float64, error) {
//	        return trainAndValidate(ctx, a) // lower is better
//	    })
//
// RunSearch returns every (assignment, score) record in draw order plus the
// best record. Evaluator errors abort the run and propagate unmodified.
//
// # Thread Safety
//
// A fully constructed space is immutable apart from SetTransform, which
// swaps the transform atomically. Each draw is self-contained, so draws may
// be dispatched to concurrent workers; RunSearchParallel does exactly that
// while keeping results identical to the sequential run.
package paramspace
