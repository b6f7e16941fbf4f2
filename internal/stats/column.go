package stats

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/NamanBalaji/fman/internal/errors"
	"github.com/NamanBalaji/fman/internal/lines"
	"github.com/NamanBalaji/fman/internal/logger"
)

var (
	ErrInvalidColumn = errors.New("column index must not be negative")
	ErrNoValues      = errors.New("no numeric values found for the selected column")
)

// Column summarizes the numeric values of column col (0-based) of the file at
// path. A first line containing a comma selects CSV parsing, anything else
// splits on whitespace. Rows without the column or with a non-numeric value
// are skipped.
func Column(path string, col int) (*Summary, error) {
	if col < 0 {
		return nil, errors.NewConfigError(fmt.Errorf("%w: %d", ErrInvalidColumn, col), path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError(err, errors.PhaseReadInput, path)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	first, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.NewIOError(err, errors.PhaseReadInput, path)
	}
	r := io.MultiReader(strings.NewReader(first), br)

	s, err := NewSummary()
	if err != nil {
		return nil, err
	}

	if strings.Contains(first, ",") {
		logger.Debugf("Reading %s as CSV, column %d", path, col)
		err = s.addCSV(r, col)
	} else {
		logger.Debugf("Reading %s as whitespace-separated text, column %d", path, col)
		err = s.addFields(r, col)
	}
	if err != nil {
		return s, errors.NewIOError(err, errors.PhaseReadInput, path)
	}

	return s, nil
}

func (s *Summary) addCSV(r io.Reader, col int) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				logger.Debugf("Skipping malformed CSV row: %v", err)
				continue
			}
			return err
		}
		if col < len(row) {
			s.addText(row[col])
		}
	}
}

func (s *Summary) addFields(r io.Reader, col int) error {
	in := lines.NewReader(r)
	for line := range in.All() {
		if fields := strings.Fields(line); col < len(fields) {
			s.addText(fields[col])
		}
	}
	return in.Err()
}

func (s *Summary) addText(v string) {
	x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return
	}
	if err := s.Add(x); err != nil {
		logger.Debugf("Skipping value %v: %v", x, err)
	}
}
