package solver

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"catan/game"
)

// ErrNoFeasiblePlacement reports that some player who must still place a
// settlement has no vertex left that satisfies the distance rule. Cannot
// happen on a standard board with at most 4 players, but the contract holds
// for arbitrary configurations.
var ErrNoFeasiblePlacement = errors.New("no feasible placement remains")

// Placement is one player's final pair of settlement vertices.
type Placement struct {
	Player int
	First  int
	Second int
}

// Solution is a complete optimal assignment: two vertices and the realized
// quality per player, both indexed by zero-based player.
type Solution struct {
	Placements []Placement
	Qualities  []float64
}

type Option func(*Solver)

// WithoutMemo disables memoization. The solution is unchanged, only the
// performance counters differ.
func WithoutMemo() Option {
	return func(s *Solver) {
		s.useMemo = false
	}
}

// WithoutUpperBound disables upper-bound pruning. Candidates are then
// ordered by single-vertex quality instead of by bound.
func WithoutUpperBound() Option {
	return func(s *Solver) {
		s.useUpperBound = false
	}
}

func WithMetrics() Option {
	return func(s *Solver) {
		s.metrics = NewCollector()
	}
}

// Solver finds the optimal initial placements for every player by depth-first
// backward induction over the snake order: players 1..N choose their first
// settlement in increasing order, then their second in decreasing order, each
// maximizing only their own two-settlement value. A Solver instance owns all
// of its mutable state, so concurrent runs need one instance each.
type Solver struct {
	board         *game.Board
	useMemo       bool
	useUpperBound bool
	memo          memoTable
	metrics       Collector
}

func New(board *game.Board, options ...Option) *Solver {
	s := &Solver{ // Default values
		board:         board,
		useMemo:       true,
		useUpperBound: true,
		metrics:       NewNoCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Solve runs the search and returns the optimal assignment together with the
// run's metrics. Deterministic for a given board. The memo table is rebuilt
// per call, so a Solver may be reused across runs.
func (s *Solver) Solve() (*Solution, Metrics, error) {
	s.memo = make(memoTable)
	s.metrics.Start()

	_, tail, err := s.dfs(1, game.NewState(s.board))

	s.metrics.SetMemoSize(len(s.memo))
	metrics := s.metrics.Complete()
	if err != nil {
		return nil, metrics, err
	}

	solution := &Solution{
		Placements: make([]Placement, s.board.Players),
		Qualities:  make([]float64, s.board.Players),
	}
	for _, p := range tail {
		solution.Placements[p.Player-1] = p
		solution.Qualities[p.Player-1] = s.board.PairQuality(p.Player, p.First, p.Second)
	}
	return solution, metrics, nil
}

// dfs solves the subgame where player is about to choose their first
// settlement. It returns the acting player's best achievable value and the
// placements (both settlements) of players player..N under optimal play.
func (s *Solver) dfs(player int, st *game.State) (float64, []Placement, error) {
	s.metrics.AddCall()

	if player > s.board.Players { // All first settlements placed
		return 0, nil, nil
	}

	var k key
	if s.useMemo {
		k = makeKey(player, PhaseFirst, st)
		if e, ok := s.memo[k]; ok {
			s.metrics.AddMemoHit()
			if e.dead {
				return 0, nil, fmt.Errorf("player %d: %w", player, ErrNoFeasiblePlacement)
			}
			return e.value, e.tail, nil
		}
		s.metrics.AddMemoMiss()
	}

	candidates := s.orderCandidates(player, st)
	if len(candidates) == 0 {
		if s.useMemo {
			s.memo[k] = entry{dead: true}
		}
		return 0, nil, fmt.Errorf("player %d: %w", player, ErrNoFeasiblePlacement)
	}

	best := math.Inf(-1) // Local lower bound
	var bestTail []Placement

	for _, c := range candidates {
		// c.score is the candidate's upper bound when UB pruning is on. A
		// branch whose bound cannot beat the best sibling is not worth
		// descending into.
		if s.useUpperBound && c.score <= best {
			s.metrics.AddUpperBoundPruning()
			continue
		}

		child := st.Clone()
		if err := child.Place(player, c.vertex); err != nil {
			return 0, nil, err
		}

		_, subTail, err := s.dfs(player+1, child)
		if err != nil {
			if errors.Is(err, ErrNoFeasiblePlacement) {
				continue // Dead branch, not a failure of this node
			}
			return 0, nil, err
		}

		// Replay the subtree's placements to see the board as it stands when
		// the snake comes back around to this player.
		unwound := child.Clone()
		if err := applyTail(unwound, subTail); err != nil {
			return 0, nil, err
		}

		second, value, ok := s.bestSecond(unwound, player, c.vertex)
		if !ok {
			continue
		}

		if value > best {
			best = value
			bestTail = make([]Placement, 0, 1+len(subTail))
			bestTail = append(bestTail, Placement{Player: player, First: c.vertex, Second: second})
			bestTail = append(bestTail, subTail...)
		}
	}

	if bestTail == nil {
		if s.useMemo {
			s.memo[k] = entry{dead: true}
		}
		return 0, nil, fmt.Errorf("player %d: %w", player, ErrNoFeasiblePlacement)
	}

	if s.useMemo {
		s.memo[k] = entry{value: best, tail: bestTail}
	}
	return best, bestTail, nil
}

type candidate struct {
	vertex int
	score  float64
}

// orderCandidates enumerates the feasible first-settlement vertices for
// player and sorts them best first, by upper bound when UB pruning is on and
// by single-vertex quality otherwise. Surfacing a strong candidate early
// tightens the lower bound sooner. Ties break toward the lower vertex id so
// every configuration is deterministic.
func (s *Solver) orderCandidates(player int, st *game.State) []candidate {
	candidates := make([]candidate, 0, game.NumVertices)
	for v := 0; v < game.NumVertices; v++ {
		if !st.IsFeasible(v) {
			s.metrics.AddFeasibilityPruning()
			continue
		}
		score := s.board.SingleQuality(v)
		if s.useUpperBound {
			score = st.UpperBound(player, v)
		}
		candidates = append(candidates, candidate{vertex: v, score: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].vertex < candidates[j].vertex
	})
	return candidates
}

// bestSecond picks player's second settlement: a direct maximization of pair
// quality over the currently feasible vertices. No bound pruning here, the
// option set is fully determined.
func (s *Solver) bestSecond(st *game.State, player, first int) (int, float64, bool) {
	bestVertex := -1
	bestQuality := math.Inf(-1)
	for v := 0; v < game.NumVertices; v++ {
		if v == first {
			continue
		}
		if !st.IsFeasible(v) {
			s.metrics.AddFeasibilityPruning()
			continue
		}
		if q := s.board.PairQuality(player, first, v); q > bestQuality {
			bestQuality = q
			bestVertex = v
		}
	}
	if bestVertex < 0 {
		return 0, 0, false
	}
	return bestVertex, bestQuality, true
}

// applyTail replays a solved subtree's placements onto st. The placements
// form a pairwise non-adjacent set, and the distance rule does not depend on
// order, so replaying them pair by pair is always feasible.
func applyTail(st *game.State, tail []Placement) error {
	for _, p := range tail {
		if err := st.Place(p.Player, p.First); err != nil {
			return err
		}
		if err := st.Place(p.Player, p.Second); err != nil {
			return err
		}
	}
	return nil
}
