package game

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildRejectsBadConfig(t *testing.T) {
	t.Run("player count below range", func(t *testing.T) {
		_, err := Build(1, 1, DefaultWeights())
		require.ErrorIs(t, err, ErrPlayerCount)
	})

	t.Run("player count above range", func(t *testing.T) {
		_, err := Build(1, 5, DefaultWeights())
		require.ErrorIs(t, err, ErrPlayerCount)
	})

	t.Run("negative weight", func(t *testing.T) {
		_, err := Build(1, 4, Weights{Resources: -1, ExpectedCards: 1, ProbAtLeastOne: 1})
		require.ErrorIs(t, err, ErrWeights)
	})

	t.Run("zero weight sum", func(t *testing.T) {
		_, err := Build(1, 4, Weights{})
		require.ErrorIs(t, err, ErrWeights)
	})
}

func TestBuildDistributions(t *testing.T) {
	board, err := Build(42, 4, DefaultWeights())
	require.NoError(t, err)

	counts := map[Resource]int{}
	tokens := map[int]int{}
	for _, tile := range board.Tiles {
		counts[tile.Resource]++
		if tile.Resource == Desert {
			require.Zero(t, tile.Number, "desert should carry no number token")
			continue
		}
		require.GreaterOrEqual(t, tile.Number, 2)
		require.LessOrEqual(t, tile.Number, 12)
		require.NotEqual(t, 7, tile.Number, "7 is never a token")
		tokens[tile.Number]++
	}

	require.Equal(t, map[Resource]int{
		Wood:   4,
		Brick:  3,
		Wheat:  4,
		Ore:    3,
		Sheep:  4,
		Desert: 1,
	}, counts)

	want := map[int]int{}
	for _, n := range numberTokens {
		want[n]++
	}
	require.Equal(t, want, tokens)
}

func TestBuildDeterministicForSeed(t *testing.T) {
	b1, err := Build(7, 3, DefaultWeights())
	require.NoError(t, err)
	b2, err := Build(7, 3, DefaultWeights())
	require.NoError(t, err)

	require.Equal(t, b1.Tiles, b2.Tiles)
	for v := 0; v < NumVertices; v++ {
		require.Equal(t, b1.SingleQuality(v), b2.SingleQuality(v))
	}
}

func TestPairQualitySymmetry(t *testing.T) {
	board, err := Build(3, 4, DefaultWeights())
	require.NoError(t, err)

	for p := 1; p <= board.Players; p++ {
		for v1 := 0; v1 < NumVertices; v1++ {
			require.True(t, math.IsInf(board.PairQuality(p, v1, v1), -1),
				"diagonal must be -Inf")
			for v2 := v1 + 1; v2 < NumVertices; v2++ {
				require.Equal(t, board.PairQuality(p, v1, v2), board.PairQuality(p, v2, v1))
			}
		}
	}
}

func TestWeightNormalizationEquivalence(t *testing.T) {
	b1, err := Build(11, 4, Weights{Resources: 5, ExpectedCards: 3, ProbAtLeastOne: 2})
	require.NoError(t, err)
	b2, err := Build(11, 4, Weights{Resources: 0.5, ExpectedCards: 0.3, ProbAtLeastOne: 0.2})
	require.NoError(t, err)

	for v := 0; v < NumVertices; v++ {
		require.InDelta(t, b1.SingleQuality(v), b2.SingleQuality(v), 1e-12)
	}
	for v1 := 0; v1 < NumVertices; v1++ {
		for v2 := v1 + 1; v2 < NumVertices; v2++ {
			require.InDelta(t, b1.PairQuality(1, v1, v2), b2.PairQuality(1, v1, v2), 1e-12)
		}
	}
}

func TestDiceProbabilities(t *testing.T) {
	board, err := Build(1, 2, DefaultWeights())
	require.NoError(t, err)

	require.InDelta(t, 1.0/36, board.diceProb[2], 1e-15)
	require.InDelta(t, 6.0/36, board.diceProb[7], 1e-15)
	require.InDelta(t, 1.0/36, board.diceProb[12], 1e-15)

	total := 0.0
	for sum := 2; sum <= 12; sum++ {
		total += board.diceProb[sum]
	}
	require.InDelta(t, 1.0, total, 1e-15)
}

func TestTopologyTables(t *testing.T) {
	require.NoError(t, validateTopology())

	// No vertex of the fixed hex layout touches exactly 4 tiles.
	for v := 0; v < NumVertices; v++ {
		n := len(vertexTiles[v])
		require.GreaterOrEqual(t, n, 1, "vertex %d", v)
		require.LessOrEqual(t, n, 3, "vertex %d", v)
	}
}

func TestValidateTopologyDetectsAsymmetry(t *testing.T) {
	original := vertexNeighbors[0]
	vertexNeighbors[0] = []int{2} // 2 does not list 0 back
	defer func() { vertexNeighbors[0] = original }()

	_, err := Build(1, 4, DefaultWeights())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTopology))
}
