package tableread

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gyeh/subvalidate/internal/model"
)

// mangleHeaders names blank headers "Unnamed: <pos>" and suffixes repeated
// names with ".1", ".2", ... so every column is addressable.
func mangleHeaders(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	counts := make(map[string]int, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		for used[name] {
			counts[h]++
			name = h + "." + strconv.Itoa(counts[h])
		}
		used[name] = true
		out[i] = name
	}
	return out
}

// splitIndex pulls the identifier column selected by opts out of cols.
// blank reports, per column, whether its header cell was empty; an
// identifier column with an empty header keeps an empty name. Without an
// identifier column the row positions are used.
func splitIndex(source string, cols []model.Column, blank []bool, nrows int, opts Options) (*model.Table, error) {
	t := &model.Table{Source: source}
	if !opts.IndexCol.IsSet() {
		t.Index = rangeIndex(nrows)
		t.Columns = cols
		return t, t.Check()
	}

	pos := -1
	if opts.IndexCol.ByName() {
		for i, c := range cols {
			if c.Name == opts.IndexCol.Name {
				pos = i
				break
			}
		}
		if pos < 0 {
			return nil, fmt.Errorf("%w: index column %q not found", ErrInvalidOptions, opts.IndexCol.Name)
		}
	} else {
		pos = opts.IndexCol.Position
		if pos >= len(cols) {
			return nil, fmt.Errorf("%w: index_col %d out of range for %d columns", ErrInvalidOptions, pos, len(cols))
		}
	}

	t.Index = cols[pos]
	if blank != nil && blank[pos] {
		t.Index.Name = ""
	}
	t.Columns = make([]model.Column, 0, len(cols)-1)
	t.Columns = append(t.Columns, cols[:pos]...)
	t.Columns = append(t.Columns, cols[pos+1:]...)
	return t, t.Check()
}

func rangeIndex(n int) model.Column {
	idx := model.Column{DType: model.DTypeInteger, Values: make([]model.Value, n)}
	for i := range idx.Values {
		idx.Values[i] = model.IntValue(int64(i))
	}
	return idx
}
