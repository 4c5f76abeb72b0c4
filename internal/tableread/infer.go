package tableread

import (
	"strconv"
	"strings"
	"time"

	"github.com/gyeh/subvalidate/internal/model"
)

// defaultNAValues are the cell strings read as missing unless keep_default_na is false.
var defaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

var boolLiterals = map[string]bool{
	"True": true, "TRUE": true, "true": true,
	"False": false, "FALSE": false, "false": false,
}

// Date layouts accepted for parse_dates columns, most specific first.
var dateFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"20060102",
}

// rawCell is an unparsed text cell. null is decided against the NA set.
type rawCell struct {
	s    string
	null bool
}

// ParseDate attempts each known layout in turn.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseInt(s string) (int64, bool) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return i, err == nil
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "_xX") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// out-of-range literals still count as numbers
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// inferColumn decides a dtype for a text column and converts its cells.
// Rules, in order: no rows → text; all null → float; parse_dates column
// where every cell parses → datetime; all integers → integer (float when
// nulls are present); all numeric → float; all boolean literals → boolean
// (text when nulls are present); anything else → text.
func inferColumn(name string, cells []rawCell, asDate bool) model.Column {
	col := model.Column{Name: name, Values: make([]model.Value, len(cells))}
	if len(cells) == 0 {
		col.DType = model.DTypeText
		return col
	}

	var nonNull, nulls int
	for _, c := range cells {
		if c.null {
			nulls++
		} else {
			nonNull++
		}
	}
	if nonNull == 0 {
		col.DType = model.DTypeFloat
		for i := range cells {
			col.Values[i] = model.NullValue()
		}
		return col
	}

	if asDate && convertAll(cells, col.Values, func(s string) (model.Value, bool) {
		t, ok := ParseDate(s)
		return model.TimeValue(t), ok
	}) {
		col.DType = model.DTypeDatetime
		return col
	}

	if convertAll(cells, col.Values, func(s string) (model.Value, bool) {
		i, ok := parseInt(s)
		return model.IntValue(i), ok
	}) {
		col.DType = model.DTypeInteger
		widenForNulls(&col)
		return col
	}

	if convertAll(cells, col.Values, func(s string) (model.Value, bool) {
		f, ok := parseFloat(s)
		return model.FloatValue(f), ok
	}) {
		col.DType = model.DTypeFloat
		return col
	}

	if nulls == 0 && convertAll(cells, col.Values, func(s string) (model.Value, bool) {
		b, ok := boolLiterals[strings.TrimSpace(s)]
		return model.BoolValue(b), ok
	}) {
		col.DType = model.DTypeBoolean
		return col
	}

	col.DType = model.DTypeText
	for i, c := range cells {
		if c.null {
			col.Values[i] = model.NullValue()
		} else {
			col.Values[i] = model.TextValue(c.s)
		}
	}
	return col
}

// convertAll fills out with parse(cell) for every non-null cell and reports
// whether all of them parsed.
func convertAll(cells []rawCell, out []model.Value, parse func(string) (model.Value, bool)) bool {
	for i, c := range cells {
		if c.null {
			out[i] = model.NullValue()
			continue
		}
		v, ok := parse(c.s)
		if !ok {
			return false
		}
		out[i] = v
	}
	return true
}

// widenForNulls applies the missing-value promotion rules to a typed column:
// integer columns holding nulls become float and boolean columns holding
// nulls become text, so every loader reports the same dtype for the same data.
func widenForNulls(col *model.Column) {
	if !col.HasNulls() {
		return
	}
	switch col.DType {
	case model.DTypeInteger:
		col.DType = model.DTypeFloat
		for i, v := range col.Values {
			if !v.Null {
				col.Values[i] = model.FloatValue(float64(v.Int))
			}
		}
	case model.DTypeBoolean:
		col.DType = model.DTypeText
		for i, v := range col.Values {
			if !v.Null {
				col.Values[i] = model.TextValue(v.String())
			}
		}
	}
}
