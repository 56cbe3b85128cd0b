package paramspace

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTransformIdentityWhenUnset(t *testing.T) {
	space := buildBranchSpace(t)

	in := Assignment{"branch": "rf", "mtry": int64(4)}

	out, err := space.ApplyTransform(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestTransformDerivesCost(t *testing.T) {
	space := buildBranchSpace(t)
	space.SetTransform(costTransform)

	// svm branch with cost_trafo=3 becomes cost=2^3, and the raw exponent
	// key disappears.
	out, err := space.ApplyTransform(Assignment{"branch": "svm", "cost_trafo": float64(3)})
	require.NoError(t, err)

	cost, ok := out.Float("cost")
	require.True(t, ok)
	assert.InDelta(t, 8.0, cost, 1e-12)
	assert.False(t, out.Has("cost_trafo"))

	branch, ok := out.Level("branch")
	require.True(t, ok)
	assert.Equal(t, "svm", branch)

	// rf branch has no cost_trafo; a presence-checked transform passes it
	// through untouched.
	out, err = space.ApplyTransform(Assignment{"branch": "rf", "mtry": int64(7)})
	require.NoError(t, err)
	assert.Equal(t, Assignment{"branch": "rf", "mtry": int64(7)}, out)
	assert.False(t, out.Has("cost"))
	assert.False(t, out.Has("cost_trafo"))
}

func TestTransformErrorWrapsCause(t *testing.T) {
	space := buildBranchSpace(t)

	cause := errors.New("bad derived value")
	space.SetTransform(func(a Assignment) (Assignment, error) {
		return nil, cause
	})

	in := Assignment{"branch": "rf", "mtry": int64(2)}

	out, err := space.ApplyTransform(in)
	assert.Nil(t, out)

	var terr *TransformError
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, cause)

	// The failure must report the assignment that triggered it.
	assert.Equal(t, in, terr.Assignment)
	assert.Contains(t, err.Error(), "branch=rf")
}

// A transform that dereferences a gated key without checking presence is
// the canonical intermittent bug: it only blows up on the draws where that
// branch is inactive. The engine must surface the panic as a TransformError
// instead of crashing, and must not mask it on the healthy branch.
func TestBuggyTransformFailsOnlyOnInactiveBranch(t *testing.T) {
	space := buildBranchSpace(t)

	space.SetTransform(func(a Assignment) (Assignment, error) {
		// Missing presence check: panics with an interface conversion
		// error whenever cost_trafo was not sampled.
		exp := a["cost_trafo"].(float64)
		a["cost"] = exp * 2
		a.Delete("cost_trafo")
		return a, nil
	})

	// On the svm branch the key exists and the transform succeeds.
	out, err := space.ApplyTransform(Assignment{"branch": "svm", "cost_trafo": float64(1.5)})
	require.NoError(t, err)
	assert.True(t, out.Has("cost"))

	// On the rf branch the key is absent and the same transform fails.
	in := Assignment{"branch": "rf", "mtry": int64(3)}

	out, err = space.ApplyTransform(in)
	assert.Nil(t, out)

	var terr *TransformError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, in, terr.Assignment)
}

// The same bug observed through sampling: whether a draw fails is decided
// entirely by which branch the selector happens to take.
func TestBuggyTransformIsIntermittentAcrossDraws(t *testing.T) {
	space := buildBranchSpace(t)

	space.SetTransform(func(a Assignment) (Assignment, error) {
		a["cost"] = a["cost_trafo"].(float64) * 2
		return a, nil
	})

	failures := 0
	successes := 0

	for _, raw := range space.Sample(100, 21) {
		branch, _ := raw.Level("branch")

		_, err := space.ApplyTransform(raw)
		if branch == "rf" {
			var terr *TransformError
			require.ErrorAs(t, err, &terr, "rf draws lack cost_trafo and must fail")
			failures++
		} else {
			require.NoError(t, err, "svm draws carry cost_trafo and must succeed")
			successes++
		}
	}

	assert.Positive(t, failures)
	assert.Positive(t, successes)
}
