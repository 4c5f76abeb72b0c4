package tableread

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gyeh/subvalidate/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVLoader reads delimited text files.
type CSVLoader struct{}

// Load opens the file at source and parses it with ReadCSV.
func (CSVLoader) Load(_ context.Context, source string, opts Options) (*model.Table, error) {
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	t, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", source, err)
	}
	t.Source = source
	return t, nil
}

// ReadCSV parses delimited text into a Table. The first record is the header.
// Blank lines are skipped, short records are padded with missing values and
// records longer than the header are an error.
func ReadCSV(r io.Reader, opts Options) (*model.Table, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.Comma = opts.separator()
	cr.Comment = opts.commentRune()
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = opts.SkipInitialSpace
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	na := opts.naSet()
	width := len(header)
	cells := make([][]rawCell, width)
	nrows := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if len(rec) > width {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, width, len(rec))
		}
		for j := 0; j < width; j++ {
			if j >= len(rec) {
				cells[j] = append(cells[j], rawCell{null: true})
				continue
			}
			cells[j] = append(cells[j], rawCell{s: rec[j], null: na[rec[j]]})
		}
		nrows++
	}

	names := mangleHeaders(header)
	blank := make([]bool, width)
	cols := make([]model.Column, width)
	for j := range cols {
		blank[j] = strings.TrimSpace(header[j]) == ""
		cols[j] = inferColumn(names[j], cells[j], opts.parsesDates(j, names[j]))
	}
	return splitIndex("", cols, blank, nrows, opts)
}
