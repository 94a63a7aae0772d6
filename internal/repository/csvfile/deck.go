// Package csvfile stores the vocabulary as a comma-separated table with a
// Face1,Face2,weight header. Every save rewrites the whole file through a
// temporary file in the same directory followed by a rename.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"flashcards/internal/domain"
)

const (
	ColumnFront  = "Face1"
	ColumnBack   = "Face2"
	ColumnWeight = "weight"
)

// DeckFile implements repository.DeckRepository on top of a CSV file
type DeckFile struct {
	path string
}

// NewDeckFile creates a CSV deck bound to path
func NewDeckFile(path string) *DeckFile {
	return &DeckFile{path: path}
}

// Source returns the file path
func (f *DeckFile) Source() string {
	return f.path
}

// Init writes a header-only table if the file does not exist yet
func (f *DeckFile) Init() (bool, error) {
	_, err := os.Stat(f.path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", f.path, err)
	}
	if err := f.Save(nil); err != nil {
		return false, err
	}
	return true, nil
}

// Load reads every row of the table in file order
func (f *DeckFile) Load() ([]domain.WordPair, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, domain.NewStoreLoadError(f.path, err)
	}
	defer file.Close()

	pairs, err := parse(file)
	if err != nil {
		return nil, domain.NewStoreLoadError(f.path, err)
	}
	return pairs, nil
}

type columns struct {
	front, back, weight int
}

func (c columns) width() int {
	w := c.front
	if c.back > w {
		w = c.back
	}
	return w + 1
}

func locateColumns(header []string) (columns, error) {
	cols := columns{front: -1, back: -1, weight: -1}
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case ColumnFront:
			cols.front = i
		case ColumnBack:
			cols.back = i
		case ColumnWeight:
			cols.weight = i
		}
	}

	var missing []string
	if cols.front < 0 {
		missing = append(missing, ColumnFront)
	}
	if cols.back < 0 {
		missing = append(missing, ColumnBack)
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parse(r io.Reader) ([]domain.WordPair, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable column count

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var pairs []domain.WordPair
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		if len(record) < cols.width() {
			return nil, fmt.Errorf("row %d: expected at least %d fields, got %d", line, cols.width(), len(record))
		}

		weight := domain.DefaultWeight
		if cols.weight >= 0 && cols.weight < len(record) {
			if raw := strings.TrimSpace(record[cols.weight]); raw != "" {
				weight, err = strconv.Atoi(raw)
				if err != nil {
					return nil, fmt.Errorf("row %d: invalid weight %q", line, raw)
				}
			}
		}

		pairs = append(pairs, domain.WordPair{
			Front:  record[cols.front],
			Back:   record[cols.back],
			Weight: weight,
		})
	}

	return pairs, nil
}

// Save rewrites the whole table
func (f *DeckFile) Save(pairs []domain.WordPair) error {
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := write(tmp, pairs); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

func write(w io.Writer, pairs []domain.WordPair) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{ColumnFront, ColumnBack, ColumnWeight}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range pairs {
		if err := writer.Write([]string{p.Front, p.Back, strconv.Itoa(p.Weight)}); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}
	return nil
}
