package game

import (
	"fmt"
	"math"
)

// State is the placement state at one search node: which vertices are
// occupied and by whom. A child state is produced by Clone then Place; a
// state is never mutated after a child has been derived from it, so every
// node in the search tree owns a distinct value.
type State struct {
	board *Board
	// owner[v] is the 1-based player occupying v, 0 if empty.
	owner [NumVertices]int8
	// occupied mirrors owner as a bitmask. 54 vertices fit a uint64, which
	// makes the mask an order-independent canonical form of the occupied set.
	occupied uint64
	// houses[p-1] lists player p's settlement vertices in placement order.
	houses [][]int
}

func NewState(b *Board) *State {
	return &State{
		board:  b,
		houses: make([][]int, b.Players),
	}
}

func (s *State) Board() *Board {
	return s.board
}

func (s *State) Clone() *State {
	c := &State{
		board:    s.board,
		owner:    s.owner,
		occupied: s.occupied,
		houses:   make([][]int, len(s.houses)),
	}
	for p, hs := range s.houses {
		c.houses[p] = append([]int(nil), hs...)
	}
	return c
}

// IsFeasible reports whether a settlement may be placed at v: the vertex is
// unoccupied and no adjacent vertex is occupied, regardless of owner.
func (s *State) IsFeasible(v int) bool {
	if s.owner[v] != 0 {
		return false
	}
	for _, u := range vertexNeighbors[v] {
		if s.owner[u] != 0 {
			return false
		}
	}
	return true
}

// Place occupies v for player. The caller is expected to have checked
// feasibility; an infeasible placement is rejected to protect the invariants.
func (s *State) Place(player, v int) error {
	if player < 1 || player > s.board.Players {
		return fmt.Errorf("unknown player %d", player)
	}
	if v < 0 || v >= NumVertices {
		return fmt.Errorf("unknown vertex %d", v)
	}
	if !s.IsFeasible(v) {
		return fmt.Errorf("vertex %d violates the distance rule", v)
	}
	s.owner[v] = int8(player)
	s.occupied |= 1 << uint(v)
	s.houses[player-1] = append(s.houses[player-1], v)
	return nil
}

// Houses returns player's settlement vertices in placement order. The
// returned slice is owned by the state.
func (s *State) Houses(player int) []int {
	return s.houses[player-1]
}

// OccupiedMask returns the occupied-vertex set as a bitmask. Two states that
// occupy the same vertices yield the same mask regardless of the order the
// placements happened in, which is what makes it usable as a memo key.
func (s *State) OccupiedMask() uint64 {
	return s.occupied
}

// FeasibleVertices returns every vertex where a settlement may currently be
// placed, in ascending vertex order.
func (s *State) FeasibleVertices() []int {
	feasible := make([]int, 0, NumVertices)
	for v := 0; v < NumVertices; v++ {
		if s.IsFeasible(v) {
			feasible = append(feasible, v)
		}
	}
	return feasible
}

// UpperBound is the best pair quality player could reach with a first
// settlement at first, assuming no later placement takes any vertex: the max
// over vertices currently feasible, excluding first and its neighbors. An
// optimistic relaxation, so it can only overestimate the true achievable
// value. Returns -Inf when no second vertex would remain.
func (s *State) UpperBound(player, first int) float64 {
	best := math.Inf(-1)
	for v := 0; v < NumVertices; v++ {
		if v == first || adjacent(first, v) || !s.IsFeasible(v) {
			continue
		}
		if q := s.board.PairQuality(player, first, v); q > best {
			best = q
		}
	}
	return best
}
