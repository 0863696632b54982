package game

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

var (
	ErrPlayerCount = errors.New("player count must be between 2 and 4")
	ErrWeights     = errors.New("quality weights must be non-negative with a positive sum")
	ErrTopology    = errors.New("board topology is inconsistent")
)

type Resource uint8

const (
	Wood Resource = iota
	Brick
	Wheat
	Ore
	Sheep
	Desert
)

func (r Resource) String() string {
	switch r {
	case Wood:
		return "wood"
	case Brick:
		return "brick"
	case Wheat:
		return "wheat"
	case Ore:
		return "ore"
	case Sheep:
		return "sheep"
	case Desert:
		return "desert"
	}
	return "unknown"
}

// Tile is one hex of the board. Number is the token value (2-12), 0 for the
// desert. Immutable once the board is built.
type Tile struct {
	ID       int
	Row      int
	Col      int
	Resource Resource
	Number   int
}

// Standard resource distribution: 4 wood, 3 brick, 4 wheat, 3 ore, 4 sheep,
// 1 desert. Held as an ordered slice so shuffles are reproducible for a seed.
var resourceCounts = []struct {
	resource Resource
	count    int
}{
	{Wood, 4},
	{Brick, 3},
	{Wheat, 4},
	{Ore, 3},
	{Sheep, 4},
	{Desert, 1},
}

// Standard number token distribution (desert receives none).
var numberTokens = []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}

// Board is a generated board instance: the random resource/number assignment
// plus the precomputed quality tables. Read-only for its whole lifetime once
// Build returns, so it may be shared across solver runs and goroutines.
type Board struct {
	Players int
	Tiles   [NumTiles]Tile

	weights       Weights
	diceProb      [13]float64
	singleQuality [NumVertices]float64
	// pairQuality[p][v1][v2], indexed by zero-based player. Identical across
	// players for now but kept per player so preference functions can diverge
	// later without touching the solver.
	pairQuality [][NumVertices][NumVertices]float64
}

// Build generates a board: deterministic for a given seed. Weights are
// normalized to sum to 1 before the quality tables are computed. Fails fast
// on a bad player count, malformed weights, or a topology violation, without
// creating any partial state.
func Build(seed uint64, players int, weights Weights) (*Board, error) {
	if players < 2 || players > 4 {
		return nil, fmt.Errorf("%w: got %d", ErrPlayerCount, players)
	}
	weights, err := weights.normalized()
	if err != nil {
		return nil, err
	}
	if err := validateTopology(); err != nil {
		return nil, err
	}

	b := &Board{
		Players: players,
		weights: weights,
	}
	b.computeDiceProbabilities()

	rng := rand.New(rand.NewSource(seed))
	b.assignResources(rng)
	b.assignNumberTokens(rng)

	b.precomputeSingleQuality()
	b.precomputePairQuality()
	return b, nil
}

// computeDiceProbabilities fills the two-dice sum distribution: 2 and 12 at
// 1/36 up to 7 at 6/36.
func (b *Board) computeDiceProbabilities() {
	for sum := 2; sum <= 12; sum++ {
		ways := sum - 1
		if sum > 7 {
			ways = 13 - sum
		}
		b.diceProb[sum] = float64(ways) / 36.0
	}
}

func (b *Board) assignResources(rng *rand.Rand) {
	resources := make([]Resource, 0, NumTiles)
	for _, rc := range resourceCounts {
		for i := 0; i < rc.count; i++ {
			resources = append(resources, rc.resource)
		}
	}
	rng.Shuffle(len(resources), func(i, j int) {
		resources[i], resources[j] = resources[j], resources[i]
	})

	for id := range b.Tiles {
		b.Tiles[id] = Tile{
			ID:       id,
			Row:      tileRows[id][0],
			Col:      tileRows[id][1],
			Resource: resources[id],
		}
	}
}

func (b *Board) assignNumberTokens(rng *rand.Rand) {
	tokens := make([]int, len(numberTokens))
	copy(tokens, numberTokens)
	rng.Shuffle(len(tokens), func(i, j int) {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	})

	next := 0
	for id := range b.Tiles {
		if b.Tiles[id].Resource == Desert {
			continue
		}
		b.Tiles[id].Number = tokens[next]
		next++
	}
}

func (b *Board) precomputeSingleQuality() {
	for v := 0; v < NumVertices; v++ {
		b.singleQuality[v] = b.qualityOf(v)
	}
}

func (b *Board) precomputePairQuality() {
	b.pairQuality = make([][NumVertices][NumVertices]float64, b.Players)
	for p := range b.pairQuality {
		for v1 := 0; v1 < NumVertices; v1++ {
			b.pairQuality[p][v1][v1] = math.Inf(-1)
			for v2 := v1 + 1; v2 < NumVertices; v2++ {
				q := b.qualityOf(v1, v2)
				b.pairQuality[p][v1][v2] = q
				b.pairQuality[p][v2][v1] = q
			}
		}
	}
}

// SingleQuality returns the precomputed quality of a lone settlement at v.
func (b *Board) SingleQuality(v int) float64 {
	return b.singleQuality[v]
}

// PairQuality returns the precomputed quality of player's settlements at v1
// and v2. Symmetric in v1 and v2; the diagonal is -Inf. Player is 1-based.
func (b *Board) PairQuality(player, v1, v2 int) float64 {
	return b.pairQuality[player-1][v1][v2]
}

// VertexTiles returns the tiles incident to v. The returned slice is shared
// static data and must not be modified.
func (b *Board) VertexTiles(v int) []int {
	return vertexTiles[v]
}

// Neighbors returns the vertices adjacent to v. Shared static data.
func (b *Board) Neighbors(v int) []int {
	return vertexNeighbors[v]
}
