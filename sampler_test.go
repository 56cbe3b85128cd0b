package paramspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(space *SearchSpace, n int, seed int64) []Assignment {
	out := make([]Assignment, 0, n)
	for _, a := range space.Sample(n, seed) {
		out = append(out, a)
	}

	return out
}

func TestSampleDeterministic(t *testing.T) {
	space := buildBranchSpace(t)

	first := collect(space, 50, 42)
	second := collect(space, 50, 42)

	require.Equal(t, first, second)

	// A different seed produces a different sequence. Comparing the whole
	// sequences keeps the check robust against individual collisions.
	other := collect(space, 50, 43)
	assert.NotEqual(t, first, other)
}

func TestSampleIsRestartable(t *testing.T) {
	space := buildBranchSpace(t)

	// Abandon the sequence early, then range over it again in full.
	var partial []Assignment
	for i, a := range space.Sample(20, 7) {
		if i == 5 {
			break
		}
		partial = append(partial, a)
	}

	full := collect(space, 20, 7)

	require.Equal(t, partial, full[:5])
}

func TestDrawMatchesSample(t *testing.T) {
	space := buildBranchSpace(t)

	sampled := collect(space, 20, 99)

	// Direct draws by index must reproduce the sequential stream, which is
	// what lets workers pick up arbitrary indices.
	for i := range sampled {
		assert.Equal(t, sampled[i], space.Draw(99, i))
	}
}

func TestSampledValuesStayInBounds(t *testing.T) {
	space := New()

	require.NoError(t, space.AddParameter(Categorical("kernel", "linear", "radial")))
	require.NoError(t, space.AddParameter(Int("degree", 2, 5)))
	require.NoError(t, space.AddParameter(Real("gamma", 0.001, 1.0)))

	for _, a := range space.Sample(200, 1) {
		kernel, ok := a.Level("kernel")
		require.True(t, ok)
		assert.Contains(t, []string{"linear", "radial"}, kernel)

		degree, ok := a.Int("degree")
		require.True(t, ok)
		assert.GreaterOrEqual(t, degree, int64(2))
		assert.LessOrEqual(t, degree, int64(5))

		gamma, ok := a.Float("gamma")
		require.True(t, ok)
		assert.GreaterOrEqual(t, gamma, 0.001)
		assert.Less(t, gamma, 1.0)
	}
}

func TestDependencyGating(t *testing.T) {
	space := buildBranchSpace(t)

	seenRF := false
	seenSVM := false

	for _, a := range space.Sample(200, 3) {
		branch, ok := a.Level("branch")
		require.True(t, ok, "the unconditioned selector must always be active")

		switch branch {
		case "rf":
			seenRF = true
			assert.True(t, a.Has("mtry"), "mtry is gated on branch=rf: %s", a)
			assert.False(t, a.Has("cost_trafo"), "cost_trafo must be inactive on the rf branch: %s", a)
		case "svm":
			seenSVM = true
			assert.True(t, a.Has("cost_trafo"), "cost_trafo is gated on branch=svm: %s", a)
			assert.False(t, a.Has("mtry"), "mtry must be inactive on the svm branch: %s", a)
		default:
			t.Fatalf("unexpected branch level %q", branch)
		}
	}

	assert.True(t, seenRF, "200 draws should hit the rf branch")
	assert.True(t, seenSVM, "200 draws should hit the svm branch")
}

func TestChainedDependenciesResolveTopDown(t *testing.T) {
	space := New()

	require.NoError(t, space.AddParameter(Categorical("model", "tree", "knn")))
	require.NoError(t, space.AddParameter(Categorical("splitter", "gini", "entropy")))
	require.NoError(t, space.AddParameter(Int("min_split", 2, 10)))

	// min_split depends on splitter, which itself depends on model. When
	// the model draw deactivates splitter, min_split must go with it even
	// though its own condition never mentions model.
	require.NoError(t, space.AddDependency("splitter", "model", "tree"))
	require.NoError(t, space.AddDependency("min_split", "splitter", "gini"))

	for _, a := range space.Sample(200, 11) {
		model, _ := a.Level("model")
		splitter, hasSplitter := a.Level("splitter")

		if model == "knn" {
			assert.False(t, hasSplitter, "splitter gated on model=tree: %s", a)
			assert.False(t, a.Has("min_split"), "min_split must cascade off with splitter: %s", a)
			continue
		}

		assert.True(t, hasSplitter)
		assert.Equal(t, splitter == "gini", a.Has("min_split"), "min_split active iff splitter=gini: %s", a)
	}
}

func TestMultipleDependenciesAreConjunctive(t *testing.T) {
	space := New()

	require.NoError(t, space.AddParameter(Categorical("stage", "fit", "tune")))
	require.NoError(t, space.AddParameter(Categorical("method", "grid", "random")))
	require.NoError(t, space.AddParameter(Int("folds", 2, 10)))

	// folds requires both stage=tune and method=grid.
	require.NoError(t, space.AddDependency("folds", "stage", "tune"))
	require.NoError(t, space.AddDependency("folds", "method", "grid"))

	for _, a := range space.Sample(200, 5) {
		stage, _ := a.Level("stage")
		method, _ := a.Level("method")

		want := stage == "tune" && method == "grid"
		assert.Equal(t, want, a.Has("folds"), "folds requires both conditions: %s", a)
	}
}

func TestNumericDependencyValues(t *testing.T) {
	space := New()

	require.NoError(t, space.AddParameter(Int("layers", 1, 2)))
	require.NoError(t, space.AddParameter(Real("dropout", 0, 0.5)))

	// The required value is passed as a plain int and must still match the
	// sampler's int64 representation.
	require.NoError(t, space.AddDependency("dropout", "layers", 2))

	for _, a := range space.Sample(100, 13) {
		layers, ok := a.Int("layers")
		require.True(t, ok)

		assert.Equal(t, layers == 2, a.Has("dropout"), "dropout gated on layers=2: %s", a)
	}
}
