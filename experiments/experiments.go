// Package experiments compares the solver's pruning modalities across a set
// of reproducible boards: feasibility pruning alone, feasibility plus
// memoization, and all prunings together. Every run gets a fresh solver, so
// an abandoned (timed out) run cannot leak state into the next one.
package experiments

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"catan/experiments/metrics"
	"catan/game"
	"catan/solver"
)

const (
	DefaultBoards  = 10
	DefaultTimeout = 25 * time.Second
)

var modalityConfigs = []metrics.ModalityConfig{
	{ID: 1, Name: "feasibility", UpperBound: false, Memo: false},
	{ID: 2, Name: "feasibility+memo", UpperBound: false, Memo: true},
	{ID: 3, Name: "feasibility+upper_bound+memo", UpperBound: true, Memo: true},
}

// RunPruningComparison generates numBoards seeded boards, solves each under
// every modality with a wall-clock limit per run, logs a per-modality
// summary, and stores the records as CSV.
func RunPruningComparison(numBoards, players int, timeout time.Duration) error {
	log.Info().Msgf("starting pruning comparison: %d boards, %d players, %s timeout per run", numBoards, players, timeout)

	boards, err := generateBoards(numBoards, players)
	if err != nil {
		return fmt.Errorf("failed to generate boards: %w", err)
	}
	log.Info().Msgf("generated %d boards", len(boards))

	records := []metrics.RunRecord{}
	summaries := make([]summary, 0, len(modalityConfigs))

	for _, config := range modalityConfigs {
		log.Info().Msgf("starting modality %q...", config.Name)
		sum := summary{config: config, minTime: math.Inf(1)}

		for i, board := range boards {
			record := runSolve(i, board, config, timeout)
			records = append(records, record)
			sum.add(record)

			switch {
			case record.TimedOut:
				log.Warn().Msgf("board %d: timed out after %s", i, timeout)
			case !record.Completed:
				log.Warn().Msgf("board %d: no solution", i)
			default:
				log.Info().Msgf("board %d: %s, %d recursive calls, %d prunings, %d memo hits",
					i, record.Elapsed, record.RecursiveCalls, record.TotalPrunings(), record.MemoHits)
			}
		}

		sum.log()
		summaries = append(summaries, sum)
	}

	logSpeedups(summaries)

	writer, err := metrics.NewWriter("pruning_modalities")
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteModalityConfigs(modalityConfigs); err != nil {
		return fmt.Errorf("failed to store modality configs: %w", err)
	}
	if err := writer.WriteRunRecords(records); err != nil {
		return fmt.Errorf("failed to store run records: %w", err)
	}
	log.Info().Msg("stored experiment records")
	return nil
}

// generateBoards builds one board per seed 0..num-1. Board construction is
// dominated by the pair-quality precomputation and boards are independent,
// so they are built concurrently.
func generateBoards(num, players int) ([]*game.Board, error) {
	boards := make([]*game.Board, num)
	g := new(errgroup.Group)
	for i := range boards {
		i := i
		g.Go(func() error {
			board, err := game.Build(uint64(i), players, game.DefaultWeights())
			if err != nil {
				return err
			}
			boards[i] = board
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return boards, nil
}

type runResult struct {
	solution *solver.Solution
	metrics  solver.Metrics
	err      error
}

// runSolve executes a single solve under the given modality, abandoning it
// at the timeout. The solver's state is owned by its instance, so an
// abandoned run is simply left to finish in the background and dropped.
func runSolve(boardID int, board *game.Board, config metrics.ModalityConfig, timeout time.Duration) metrics.RunRecord {
	record := metrics.RunRecord{
		Board:    boardID,
		Seed:     uint64(boardID),
		Modality: config.ID,
	}

	s := solver.New(board, solverOptions(config)...)
	done := make(chan runResult, 1)
	go func() {
		solution, m, err := s.Solve()
		done <- runResult{solution: solution, metrics: m, err: err}
	}()

	select {
	case result := <-done:
		record.Metrics = result.metrics
		if result.err != nil {
			return record
		}
		record.Completed = true
		record.Player1Quality = result.solution.Qualities[0]
	case <-time.After(timeout):
		record.TimedOut = true
	}
	return record
}

func solverOptions(config metrics.ModalityConfig) []solver.Option {
	options := []solver.Option{solver.WithMetrics()}
	if !config.Memo {
		options = append(options, solver.WithoutMemo())
	}
	if !config.UpperBound {
		options = append(options, solver.WithoutUpperBound())
	}
	return options
}

type summary struct {
	config    metrics.ModalityConfig
	completed int
	timeouts  int
	total     int
	totalTime time.Duration
	minTime   float64
	maxTime   float64
}

func (s *summary) add(record metrics.RunRecord) {
	s.total++
	if record.TimedOut {
		s.timeouts++
		return
	}
	if !record.Completed {
		return
	}
	s.completed++
	s.totalTime += record.Elapsed
	seconds := record.Elapsed.Seconds()
	if seconds < s.minTime {
		s.minTime = seconds
	}
	if seconds > s.maxTime {
		s.maxTime = seconds
	}
}

func (s *summary) averageSeconds() float64 {
	if s.completed == 0 {
		return math.Inf(1)
	}
	return s.totalTime.Seconds() / float64(s.completed)
}

func (s *summary) log() {
	if s.completed == 0 {
		log.Info().Msgf("modality %q: 0/%d completed, %d timeouts", s.config.Name, s.total, s.timeouts)
		return
	}
	log.Info().Msgf("modality %q: %d/%d completed, %d timeouts, avg %.4fs, min %.4fs, max %.4fs",
		s.config.Name, s.completed, s.total, s.timeouts, s.averageSeconds(), s.minTime, s.maxTime)
}

// logSpeedups reports each modality's average time relative to the first
// (feasibility-only) modality.
func logSpeedups(summaries []summary) {
	if len(summaries) < 2 || summaries[0].completed == 0 {
		return
	}
	baseline := summaries[0].averageSeconds()
	for _, s := range summaries[1:] {
		if s.completed == 0 {
			continue
		}
		log.Info().Msgf("modality %q: %.2fx faster than %q", s.config.Name, baseline/s.averageSeconds(), summaries[0].config.Name)
	}
}
