package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"catan/game"
	"catan/solver"
)

func TestBoardOutput(t *testing.T) {
	board, err := game.Build(1, 2, game.DefaultWeights())
	require.NoError(t, err)

	var buf bytes.Buffer
	Board(&buf, board)
	out := buf.String()

	require.Contains(t, out, "Board layout:")
	require.Equal(t, 19, strings.Count(out, "["), "one cell per tile")
	require.Equal(t, 6, strings.Count(out, "\n"), "header plus five rows")
}

func TestSolutionOutput(t *testing.T) {
	board, err := game.Build(1, 2, game.DefaultWeights())
	require.NoError(t, err)
	solution, _, err := solver.New(board).Solve()
	require.NoError(t, err)

	var buf bytes.Buffer
	Solution(&buf, board, solution)
	out := buf.String()

	require.Contains(t, out, "Player 1 [R]")
	require.Contains(t, out, "Player 2 [U]")
	require.Contains(t, out, "quality")
}
