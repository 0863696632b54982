package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"catan/experiments"
	"catan/game"
	"catan/render"
	"catan/solver"
)

func main() {
	var (
		seed       = flag.Int64("seed", -1, "board seed (negative for time-based)")
		players    = flag.Int("players", 4, "number of players (2-4)")
		weightsArg = flag.String("weights", "1,1,1", "quality weights: resources,expected-cards,prob-at-least-one")
		compare    = flag.Bool("compare", false, "also solve with feasibility pruning only and compare")
		experiment = flag.Bool("experiment", false, "run the pruning-modality comparison instead of a single solve")
		numBoards  = flag.Int("boards", experiments.DefaultBoards, "boards to generate in experiment mode")
		timeout    = flag.Duration("timeout", experiments.DefaultTimeout, "per-run time limit in experiment mode")
	)
	flag.Parse()

	if *experiment {
		if err := experiments.RunPruningComparison(*numBoards, *players, *timeout); err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		return
	}

	weights, err := parseWeights(*weightsArg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid weights")
	}

	boardSeed := uint64(*seed)
	if *seed < 0 {
		boardSeed = uint64(time.Now().UnixNano())
	}

	board, err := game.Build(boardSeed, *players, weights)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build board")
	}
	fmt.Printf("Board seed %d, %d players\n\n", boardSeed, *players)
	render.Board(os.Stdout, board)
	fmt.Println()

	solution, metrics, err := solver.New(board, solver.WithMetrics()).Solve()
	if err != nil {
		log.Fatal().Err(err).Msg("solve failed")
	}

	render.Solution(os.Stdout, board, solution)
	fmt.Println()
	printMetrics("all prunings", metrics)

	if *compare {
		runComparison(board, solution, metrics)
	}
}

// runComparison re-solves the same board with feasibility pruning only and
// checks that the assignment is unchanged. Only the counters should differ.
func runComparison(board *game.Board, solution *solver.Solution, pruned solver.Metrics) {
	fmt.Println("Re-solving with feasibility pruning only...")
	baselineSolver := solver.New(board,
		solver.WithMetrics(),
		solver.WithoutMemo(),
		solver.WithoutUpperBound(),
	)
	baseline, baselineMetrics, err := baselineSolver.Solve()
	if err != nil {
		log.Fatal().Err(err).Msg("baseline solve failed")
	}

	match := true
	for i := range solution.Placements {
		if solution.Placements[i] != baseline.Placements[i] {
			match = false
		}
	}
	if match {
		fmt.Println("Solutions match.")
	} else {
		fmt.Println("WARNING: solutions differ!")
	}
	fmt.Println()
	printMetrics("feasibility only", baselineMetrics)

	if pruned.Elapsed > 0 {
		fmt.Printf("Speedup: %.2fx\n", baselineMetrics.Elapsed.Seconds()/pruned.Elapsed.Seconds())
	}
	if baselineMetrics.RecursiveCalls > 0 {
		reduction := 1 - float64(pruned.RecursiveCalls)/float64(baselineMetrics.RecursiveCalls)
		fmt.Printf("Recursive call reduction: %.2f%%\n", reduction*100)
	}
}

func printMetrics(name string, m solver.Metrics) {
	fmt.Printf("Metrics (%s):\n", name)
	fmt.Printf("  Elapsed:              %s\n", m.Elapsed)
	fmt.Printf("  Recursive calls:      %d\n", m.RecursiveCalls)
	fmt.Printf("  Feasibility prunings: %d\n", m.FeasibilityPrunings)
	fmt.Printf("  Upper bound prunings: %d\n", m.UpperBoundPrunings)
	fmt.Printf("  Memo hits:            %d\n", m.MemoHits)
	fmt.Printf("  Memo misses:          %d\n", m.MemoMisses)
	fmt.Printf("  Memo size:            %d\n", m.MemoSize)
	if m.MemoHits+m.MemoMisses > 0 {
		fmt.Printf("  Memo hit rate:        %.2f%%\n", m.MemoHitRate()*100)
	}
	fmt.Println()
}

func parseWeights(arg string) (game.Weights, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 3 {
		return game.Weights{}, fmt.Errorf("expected three comma-separated weights, got %q", arg)
	}
	values := make([]float64, 3)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return game.Weights{}, fmt.Errorf("bad weight %q: %w", part, err)
		}
		values[i] = v
	}
	return game.Weights{
		Resources:      values[0],
		ExpectedCards:  values[1],
		ProbAtLeastOne: values[2],
	}, nil
}
