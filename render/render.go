// Package render draws a board and a solved placement as text. It only reads
// the board and the final assignment; nothing here is consulted by the
// solver.
package render

import (
	"fmt"
	"io"
	"strings"

	"catan/game"
	"catan/solver"
)

var resourceSymbols = map[game.Resource]string{
	game.Wood:   "W",
	game.Brick:  "B",
	game.Wheat:  "G", // Grain
	game.Ore:    "O",
	game.Sheep:  "S",
	game.Desert: "D",
}

var playerSymbols = []string{"R", "U", "G", "Y"}

// Board writes the 19 tiles in their 3-4-5-4-3 hexagonal layout, one letter
// per resource plus the number token.
func Board(w io.Writer, b *game.Board) {
	fmt.Fprintln(w, "Board layout:")

	var rows [5][]game.Tile
	for _, tile := range b.Tiles {
		rows[tile.Row] = append(rows[tile.Row], tile)
	}

	for _, row := range rows {
		indent := strings.Repeat("  ", 5-len(row))
		fmt.Fprint(w, indent)
		for _, tile := range row {
			symbol := resourceSymbols[tile.Resource]
			if tile.Resource == game.Desert {
				fmt.Fprintf(w, "[%s   ] ", symbol)
			} else {
				fmt.Fprintf(w, "[%s %2d] ", symbol, tile.Number)
			}
		}
		fmt.Fprintln(w)
	}
}

// Solution writes each player's settlement pair with its realized quality
// and the tiles each settlement touches.
func Solution(w io.Writer, b *game.Board, solution *solver.Solution) {
	fmt.Fprintln(w, "Settlements:")
	for i, p := range solution.Placements {
		fmt.Fprintf(w, "  Player %d [%s]: vertices %d and %d, quality %.4f\n",
			p.Player, playerSymbols[i], p.First, p.Second, solution.Qualities[i])
		describeVertex(w, b, p.First)
		describeVertex(w, b, p.Second)
	}
}

func describeVertex(w io.Writer, b *game.Board, v int) {
	parts := make([]string, 0, 3)
	for _, t := range b.VertexTiles(v) {
		tile := b.Tiles[t]
		if tile.Resource == game.Desert {
			parts = append(parts, "desert")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d", tile.Resource, tile.Number))
	}
	fmt.Fprintf(w, "    vertex %2d: %s\n", v, strings.Join(parts, ", "))
}
