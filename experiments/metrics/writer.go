package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"catan/solver"
)

// ModalityConfig identifies one pruning configuration under comparison.
// Feasibility pruning is always on; the toggles cover the other two.
type ModalityConfig struct {
	ID         int
	Name       string
	UpperBound bool
	Memo       bool
}

// RunRecord is the outcome of one (board, modality) solve.
type RunRecord struct {
	Board          int
	Seed           uint64
	Modality       int // ModalityConfig.ID
	Completed      bool
	TimedOut       bool
	Player1Quality float64
	solver.Metrics
}

type Writer struct {
	baseDir string
}

func NewWriter(name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("experiments", name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) WriteModalityConfigs(configs []ModalityConfig) error {
	path := filepath.Join(w.baseDir, "modality_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create modality configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "name", "upper_bound", "memo"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write modality configs header: %w", err)
	}

	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			config.Name,
			strconv.FormatBool(config.UpperBound),
			strconv.FormatBool(config.Memo),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write modality config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteRunRecords(records []RunRecord) error {
	path := filepath.Join(w.baseDir, "run_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create run records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{
		"board", "seed", "modality", "completed", "timed_out",
		"player1_quality", "recursive_calls", "feasibility_prunings",
		"upper_bound_prunings", "memo_hits", "memo_misses", "memo_size",
		"elapsed",
	}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write run records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Board),
			strconv.FormatUint(record.Seed, 10),
			strconv.Itoa(record.Modality),
			strconv.FormatBool(record.Completed),
			strconv.FormatBool(record.TimedOut),
			strconv.FormatFloat(record.Player1Quality, 'f', 6, 64),
			strconv.FormatInt(record.RecursiveCalls, 10),
			strconv.FormatInt(record.FeasibilityPrunings, 10),
			strconv.FormatInt(record.UpperBoundPrunings, 10),
			strconv.FormatInt(record.MemoHits, 10),
			strconv.FormatInt(record.MemoMisses, 10),
			strconv.FormatInt(record.MemoSize, 10),
			record.Elapsed.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write run record row: %w", err)
		}
	}

	return nil
}
