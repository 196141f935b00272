package evaluator

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrMissingColumn is returned by ReadPairs when a CSV header lacks a
// requested column.
var ErrMissingColumn = errors.New("missing column")

// Pairs holds reference and generated texts read from CSV, row aligned.
type Pairs struct {
	References []string
	Generated  []string
}

// ReadPairs reads refCol and genCol from a CSV file, or from every .csv
// file in a directory in name order. Each file must start with a header row.
func ReadPairs(path, refCol, genCol string) (Pairs, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Pairs{}, fmt.Errorf("stat %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return Pairs{}, fmt.Errorf("read dir: %w", err)
		}
		files = files[:0]
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
				files = append(files, filepath.Join(path, e.Name()))
			}
		}
		sort.Strings(files)
	}

	var out Pairs
	for _, f := range files {
		if err := readPairsFile(f, refCol, genCol, &out); err != nil {
			return Pairs{}, err
		}
	}
	return out, nil
}

func readPairsFile(path, refCol, genCol string, out *Pairs) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return decodePairs(f, refCol, genCol, out)
}

func decodePairs(r io.Reader, refCol, genCol string, out *Pairs) error {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}

	refIdx, genIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case refCol:
			refIdx = i
		case genCol:
			genIdx = i
		}
	}
	if refIdx < 0 {
		return fmt.Errorf("%w: %q", ErrMissingColumn, refCol)
	}
	if genIdx < 0 {
		return fmt.Errorf("%w: %q", ErrMissingColumn, genCol)
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read csv row: %w", err)
		}
		out.References = append(out.References, rec[refIdx])
		out.Generated = append(out.Generated, rec[genIdx])
	}
}
