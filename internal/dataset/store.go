// Package dataset persists forecast tables as CSV files.
package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"datapoint-forecast/internal/table"

	"github.com/spf13/afero"
)

// emptyField is a single-column row holding a missing cell
const emptyField = "\"\"\n"

// PersistenceError reports a filesystem failure while reading or writing a dataset
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Store reads and writes CSV datasets on a filesystem
type Store struct {
	fs     afero.Fs
	logger *slog.Logger
}

// NewStore creates a dataset store on fs
func NewStore(fs afero.Fs, logger *slog.Logger) *Store {
	return &Store{
		fs:     fs,
		logger: logger.With("component", "dataset-store"),
	}
}

// Write serializes t to path with a header row and no index column. Missing
// cells are written as empty fields. Parent directories are created first.
func (s *Store) Write(t *table.Table, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return &PersistenceError{Op: "create directory", Path: dir, Err: err}
		}
	}

	f, err := s.fs.Create(path)
	if err != nil {
		return &PersistenceError{Op: "create", Path: path, Err: err}
	}

	if err := writeCSV(f, t); err != nil {
		_ = f.Close()
		return &PersistenceError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &PersistenceError{Op: "close", Path: path, Err: err}
	}

	s.logger.Info("wrote dataset", "path", path, "rows", t.Len(), "columns", len(t.Columns()))
	return nil
}

func writeCSV(w io.Writer, t *table.Table) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)
	if err := cw.Write(t.Columns()); err != nil {
		return err
	}

	record := make([]string, len(t.Columns()))
	for i := 0; i < t.Len(); i++ {
		for j, c := range t.Row(i) {
			record[j] = c.String()
		}

		// csv.Writer emits a lone empty field as a blank line, which readers skip
		if len(record) == 1 && record[0] == "" {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
			if _, err := bw.WriteString(emptyField); err != nil {
				return err
			}
			continue
		}

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// Read loads a dataset written by Write. Empty fields read back as missing. A
// file holding only a blank header line reads back as a table with no columns.
func (s *Store) Read(path string) (*table.Table, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, &PersistenceError{Op: "open", Path: path, Err: err}
	}
	defer func(f afero.File) {
		_ = f.Close()
	}(f)

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		// Write emits a bare newline for a table with no columns
		if info, statErr := f.Stat(); statErr == nil && info.Size() > 0 {
			s.logger.Debug("read dataset", "path", path, "rows", 0)
			return table.New()
		}
		err = errors.New("missing header row")
	}
	if err != nil {
		return nil, &PersistenceError{Op: "read", Path: path, Err: err}
	}

	t, err := table.New(header...)
	if err != nil {
		return nil, &PersistenceError{Op: "read", Path: path, Err: err}
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &PersistenceError{Op: "read", Path: path, Err: err}
		}

		cells := make([]table.Cell, len(record))
		for i, v := range record {
			if v == "" {
				cells[i] = table.Missing
			} else {
				cells[i] = table.Text(v)
			}
		}
		if err := t.AppendRow(cells); err != nil {
			return nil, &PersistenceError{Op: "read", Path: path, Err: err}
		}
	}

	s.logger.Debug("read dataset", "path", path, "rows", t.Len())
	return t, nil
}
