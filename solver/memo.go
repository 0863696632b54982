package solver

import "catan/game"

// Phase marks which of a player's two snake placements a node is about.
type Phase uint8

const (
	PhaseFirst Phase = iota
	PhaseSecond
)

// key identifies a subgame for memoization: the player to act, the phase,
// and the occupied-vertex set. The set is encoded as a bitmask, so two
// search paths that occupy the same vertices in different orders produce the
// same key. Ownership of the occupied vertices is deliberately not part of
// the key: at a first-phase node the subtree value depends only on which
// vertices are blocked, not on who blocked them.
type key struct {
	player   uint8
	phase    Phase
	occupied uint64
}

func makeKey(player int, phase Phase, st *game.State) key {
	return key{
		player:   uint8(player),
		phase:    phase,
		occupied: st.OccupiedMask(),
	}
}

// entry is a solved subtree: the acting player's best achievable value and
// the placements of every player from that node down, so a hit can skip the
// recursion entirely and still reconstruct the full assignment. dead marks
// subgames with no feasible completion.
type entry struct {
	value float64
	tail  []Placement
	dead  bool
}

type memoTable map[key]entry
