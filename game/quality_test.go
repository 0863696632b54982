package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// singleTileBoard builds a board by hand so the sub-scores have closed-form
// values: tile 0 is wood with a 6 token, everything else desert. Vertices 4
// and 5 touch tile 0 and nothing else.
func singleTileBoard(t *testing.T, weights Weights) *Board {
	t.Helper()
	normalized, err := weights.normalized()
	require.NoError(t, err)

	b := &Board{Players: 2, weights: normalized}
	b.computeDiceProbabilities()
	for id := range b.Tiles {
		b.Tiles[id] = Tile{ID: id, Resource: Desert}
	}
	b.Tiles[0] = Tile{ID: 0, Resource: Wood, Number: 6}
	return b
}

func TestSubScoresSingleProducingTile(t *testing.T) {
	b := singleTileBoard(t, DefaultWeights())
	tiles := []Tile{b.Tiles[0]}

	t.Run("expected cards equals the dice probability of a 6", func(t *testing.T) {
		require.InDelta(t, 5.0/36, b.expectedCards(tiles), 1e-15)
	})

	t.Run("resource score counts one kind and one tile", func(t *testing.T) {
		require.InDelta(t, 2.0+0.5, resourceScore(tiles), 1e-15)
	})

	t.Run("prob at least one equals the single-tile hit probability", func(t *testing.T) {
		require.InDelta(t, 5.0/36, b.probAtLeastOne(tiles), 1e-15)
	})

	t.Run("combined score is the weighted sum", func(t *testing.T) {
		want := (2.5 + 5.0/36 + 5.0/36) / 3
		require.InDelta(t, want, b.qualityOf(4), 1e-12)
	})
}

func TestSubScoresDesertOnly(t *testing.T) {
	b := singleTileBoard(t, DefaultWeights())
	desert := []Tile{b.Tiles[1]}

	require.Zero(t, resourceScore(desert))
	require.Zero(t, b.expectedCards(desert))
	require.Zero(t, b.probAtLeastOne(desert))
}

func TestPairQualityUnionsSharedTiles(t *testing.T) {
	board, err := Build(5, 2, DefaultWeights())
	require.NoError(t, err)

	// Vertices 0 and 1 share tiles 0 and 1; the union is {0, 1, 4}.
	union := []Tile{board.Tiles[0], board.Tiles[1], board.Tiles[4]}
	want := board.weights.Resources*resourceScore(union) +
		board.weights.ExpectedCards*board.expectedCards(union) +
		board.weights.ProbAtLeastOne*board.probAtLeastOne(union)

	require.InDelta(t, want, board.PairQuality(1, 0, 1), 1e-12)
}

func TestSingleQualityMatchesDirectEvaluation(t *testing.T) {
	board, err := Build(9, 2, DefaultWeights())
	require.NoError(t, err)

	for v := 0; v < NumVertices; v++ {
		require.Equal(t, board.qualityOf(v), board.SingleQuality(v))
	}
}
