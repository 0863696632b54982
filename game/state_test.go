package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func testBoard(t *testing.T) *Board {
	t.Helper()
	board, err := Build(13, 4, DefaultWeights())
	require.NoError(t, err)
	return board
}

func TestPlaceEnforcesFeasibility(t *testing.T) {
	board := testBoard(t)
	st := NewState(board)

	require.NoError(t, st.Place(1, 0))

	t.Run("occupied vertex is rejected", func(t *testing.T) {
		require.Error(t, st.Clone().Place(2, 0))
	})

	t.Run("adjacent vertex is rejected for any player", func(t *testing.T) {
		for _, v := range board.Neighbors(0) {
			require.Error(t, st.Clone().Place(2, v), "vertex %d", v)
			require.Error(t, st.Clone().Place(1, v), "vertex %d", v)
		}
	})

	t.Run("distant vertex is accepted", func(t *testing.T) {
		require.NoError(t, st.Clone().Place(2, 30))
	})

	t.Run("unknown player is rejected", func(t *testing.T) {
		require.Error(t, st.Clone().Place(5, 30))
		require.Error(t, st.Clone().Place(0, 30))
	})

	t.Run("out of range vertex is rejected", func(t *testing.T) {
		require.Error(t, st.Clone().Place(2, NumVertices))
		require.Error(t, st.Clone().Place(2, -1))
	})
}

func TestCloneIsIndependent(t *testing.T) {
	board := testBoard(t)
	parent := NewState(board)
	require.NoError(t, parent.Place(1, 10))

	child := parent.Clone()
	require.NoError(t, child.Place(2, 30))

	require.True(t, parent.IsFeasible(30), "parent must not see the child's placement")
	require.Equal(t, []int{10}, parent.Houses(1))
	require.Empty(t, parent.Houses(2))
	require.Equal(t, []int{30}, child.Houses(2))
}

func TestFeasibleVerticesExcludesClosedNeighborhoods(t *testing.T) {
	board := testBoard(t)
	st := NewState(board)
	require.NoError(t, st.Place(1, 20))

	feasible := st.FeasibleVertices()
	blocked := map[int]bool{20: true}
	for _, v := range board.Neighbors(20) {
		blocked[v] = true
	}

	for _, v := range feasible {
		require.False(t, blocked[v], "vertex %d should be excluded", v)
	}
	require.Len(t, feasible, NumVertices-len(blocked))
}

func TestOccupiedMaskIsOrderIndependent(t *testing.T) {
	board := testBoard(t)

	a := NewState(board)
	require.NoError(t, a.Place(1, 3))
	require.NoError(t, a.Place(2, 30))

	b := NewState(board)
	require.NoError(t, b.Place(2, 30))
	require.NoError(t, b.Place(1, 3))

	require.Equal(t, a.OccupiedMask(), b.OccupiedMask())
	require.NotZero(t, a.OccupiedMask())
}

func TestUpperBoundMatchesExhaustiveMaximum(t *testing.T) {
	board := testBoard(t)
	st := NewState(board)
	require.NoError(t, st.Place(2, 31))
	require.NoError(t, st.Place(3, 47))

	for _, first := range st.FeasibleVertices() {
		want := math.Inf(-1)
		for v := 0; v < NumVertices; v++ {
			if v == first || !st.IsFeasible(v) {
				continue
			}
			if adjacent(first, v) {
				continue
			}
			if q := board.PairQuality(1, first, v); q > want {
				want = q
			}
		}
		require.Equal(t, want, st.UpperBound(1, first), "first vertex %d", first)
	}
}

// The bound assumes no future player claims anything, so it must dominate
// the value of every completion that is actually playable.
func TestUpperBoundSoundAgainstCompletions(t *testing.T) {
	board := testBoard(t)
	st := NewState(board)
	require.NoError(t, st.Place(2, 12))

	for _, first := range st.FeasibleVertices() {
		ub := st.UpperBound(1, first)

		after := st.Clone()
		require.NoError(t, after.Place(1, first))
		// Simulate arbitrary future contention, then check any remaining
		// second choice is still bounded.
		for _, blocker := range after.FeasibleVertices() {
			contested := after.Clone()
			require.NoError(t, contested.Place(3, blocker))
			for _, second := range contested.FeasibleVertices() {
				require.LessOrEqual(t, board.PairQuality(1, first, second), ub,
					"first %d blocker %d second %d", first, blocker, second)
			}
		}
	}
}

func TestUpperBoundNoSecondLeft(t *testing.T) {
	board := testBoard(t)
	st := NewState(board)

	// Fill everything except vertex 4 so no second placement can remain.
	for v := 0; v < NumVertices; v++ {
		if v == 4 {
			continue
		}
		st.owner[v] = 1
		st.occupied |= 1 << uint(v)
	}

	require.True(t, math.IsInf(st.UpperBound(1, 4), -1))
}
