package game

import "fmt"

// Weights balances the three quality sub-scores. The triple is normalized to
// sum to 1 before use, so (5,3,2) and (0.5,0.3,0.2) produce identical tables.
type Weights struct {
	Resources      float64
	ExpectedCards  float64
	ProbAtLeastOne float64
}

// DefaultWeights gives each sub-score equal influence.
func DefaultWeights() Weights {
	return Weights{Resources: 1, ExpectedCards: 1, ProbAtLeastOne: 1}
}

func (w Weights) normalized() (Weights, error) {
	if w.Resources < 0 || w.ExpectedCards < 0 || w.ProbAtLeastOne < 0 {
		return Weights{}, fmt.Errorf("%w: got %+v", ErrWeights, w)
	}
	total := w.Resources + w.ExpectedCards + w.ProbAtLeastOne
	if total <= 0 {
		return Weights{}, fmt.Errorf("%w: got %+v", ErrWeights, w)
	}
	return Weights{
		Resources:      w.Resources / total,
		ExpectedCards:  w.ExpectedCards / total,
		ProbAtLeastOne: w.ProbAtLeastOne / total,
	}, nil
}

// qualityOf scores a settlement set (one or two vertices) as the weighted
// combination of resource diversity, expected cards per turn, and the
// probability of producing at least one card per turn. The incident tile
// sets are unioned first so a tile shared by both vertices counts once.
// Called in bulk during board construction only; the search reads tables.
func (b *Board) qualityOf(vertices ...int) float64 {
	var seen [NumTiles]bool
	tiles := make([]Tile, 0, 6)
	for _, v := range vertices {
		for _, t := range vertexTiles[v] {
			if !seen[t] {
				seen[t] = true
				tiles = append(tiles, b.Tiles[t])
			}
		}
	}

	return b.weights.Resources*resourceScore(tiles) +
		b.weights.ExpectedCards*b.expectedCards(tiles) +
		b.weights.ProbAtLeastOne*b.probAtLeastOne(tiles)
}

// resourceScore rewards coverage of distinct resource kinds, plus a smaller
// reward per producing tile. Desert tiles produce nothing and count for
// neither term.
func resourceScore(tiles []Tile) float64 {
	var kinds [Desert]bool
	producing := 0
	for _, t := range tiles {
		if t.Resource == Desert {
			continue
		}
		kinds[t.Resource] = true
		producing++
	}

	distinct := 0
	for _, present := range kinds {
		if present {
			distinct++
		}
	}
	return float64(distinct)*2.0 + float64(producing)*0.5
}

// expectedCards sums each producing tile's roll probability: the expected
// number of resource cards received per turn.
func (b *Board) expectedCards(tiles []Tile) float64 {
	expected := 0.0
	for _, t := range tiles {
		if t.Resource == Desert {
			continue
		}
		expected += b.diceProb[t.Number]
	}
	return expected
}

// probAtLeastOne is the probability that a turn produces at least one card,
// treating tiles as independent trigger events: the complement of every tile
// missing at once.
func (b *Board) probAtLeastOne(tiles []Tile) float64 {
	missAll := 1.0
	producing := false
	for _, t := range tiles {
		if t.Resource == Desert {
			continue
		}
		producing = true
		missAll *= 1.0 - b.diceProb[t.Number]
	}
	if !producing {
		return 0.0
	}
	return 1.0 - missAll
}
