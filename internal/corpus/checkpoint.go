package corpus

import (
	"encoding/csv"
	"fmt"
	"os"
)

// LoadOrInit seeds the job state for a run. When a checkpoint exists at
// outPath its translatedText/status values are carried over by id; the input
// table stays authoritative for membership, order and every other column, so
// ids only present in the checkpoint are dropped. A missing, unreadable or
// corrupt checkpoint silently starts the job fresh. With overwrite set, any
// prior results are discarded.
func LoadOrInit(input *Table, outPath string, overwrite bool) *Table {
	if overwrite {
		input.ClearResults()
		return input
	}

	checkpoint, err := loadCheckpoint(outPath)
	if err != nil {
		return input
	}

	for i := range input.rows {
		j, ok := checkpoint.lookup(input.ID(i))
		if !ok {
			continue
		}
		input.SetResult(i, checkpoint.Translated(j), checkpoint.Status(j))
	}

	return input
}

// loadCheckpoint reads a previously saved output table. Unlike LoadInput it
// returns an error instead of synthesizing columns: a checkpoint that lacks
// the expected columns is treated as absent.
func loadCheckpoint(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("checkpoint %s is empty", path)
	}

	t := &Table{header: records[0], rows: records[1:]}
	t.locateColumns()
	if t.id < 0 || t.translated < 0 || t.status < 0 {
		return nil, fmt.Errorf("checkpoint %s is missing required columns", path)
	}

	if err := t.buildIndex(); err != nil {
		return nil, err
	}

	return t, nil
}

// Save durably writes the whole table to path. The data goes to a temporary
// sibling first and is renamed onto path afterwards, so a crash mid-write
// leaves the previous checkpoint untouched.
func (t *Table) Save(path string) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.header); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := w.WriteAll(t.rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to sync checkpoint: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close checkpoint: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to commit checkpoint: %w", err)
	}

	return nil
}
