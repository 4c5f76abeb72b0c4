package tableread

import (
	"errors"
	"testing"
)

func TestParseOptions_EmptyUsesDefaults(t *testing.T) {
	for _, doc := range []string{"", "{}", "\n"} {
		o, err := ParseOptions([]byte(doc))
		if err != nil {
			t.Fatalf("ParseOptions(%q): %v", doc, err)
		}
		if !o.IndexCol.IsSet() || o.IndexCol.ByName() || o.IndexCol.Position != 0 {
			t.Errorf("ParseOptions(%q): index_col = %v, want 0", doc, o.IndexCol)
		}
		if !o.SkipInitialSpace {
			t.Errorf("ParseOptions(%q): skipinitialspace should default to true", doc)
		}
	}
}

func TestParseOptions_ReplacesDefaults(t *testing.T) {
	o, err := ParseOptions([]byte(`{"sep": ";"}`))
	if err != nil {
		t.Fatalf("ParseOptions: %v", err)
	}
	if o.IndexCol.IsSet() {
		t.Errorf("index_col = %v, want none", o.IndexCol)
	}
	if o.SkipInitialSpace {
		t.Error("skipinitialspace should be false when not given")
	}
	if o.separator() != ';' {
		t.Errorf("separator = %q, want ';'", o.separator())
	}
}

func TestParseOptions_IndexCol(t *testing.T) {
	tests := []struct {
		doc    string
		set    bool
		byName bool
		pos    int
		name   string
	}{
		{`{"index_col": 2}`, true, false, 2, ""},
		{`{"index_col": "row_id"}`, true, true, 0, "row_id"},
		{`{"index_col": false}`, false, false, 0, ""},
		{`{"index_col": null}`, false, false, 0, ""},
		{"index_col: id\nskipinitialspace: true\n", true, true, 0, "id"},
	}
	for _, tt := range tests {
		o, err := ParseOptions([]byte(tt.doc))
		if err != nil {
			t.Fatalf("ParseOptions(%q): %v", tt.doc, err)
		}
		c := o.IndexCol
		if c.IsSet() != tt.set || c.ByName() != tt.byName || c.Position != tt.pos || c.Name != tt.name {
			t.Errorf("ParseOptions(%q): index_col = %+v", tt.doc, c)
		}
	}
}

func TestParseOptions_ParseDates(t *testing.T) {
	o, err := ParseOptions([]byte(`{"parse_dates": [1, "when"]}`))
	if err != nil {
		t.Fatalf("ParseOptions: %v", err)
	}
	if len(o.ParseDates) != 2 {
		t.Fatalf("parse_dates = %+v, want 2 entries", o.ParseDates)
	}
	if !o.parsesDates(1, "1") || !o.parsesDates(1, "other") {
		t.Error("position 1 should parse dates whatever its header")
	}
	if o.parsesDates(2, "1") {
		t.Error("a header named \"1\" is not position 1")
	}
	if !o.parsesDates(3, "when") {
		t.Error("column named when should parse dates")
	}
}

func TestOptionsIsZero(t *testing.T) {
	if !(Options{}).IsZero() {
		t.Error("Options{} should be zero")
	}
	if DefaultOptions().IsZero() {
		t.Error("DefaultOptions should not be zero")
	}
	o, err := ParseOptions([]byte(`{"index_col": false}`))
	if err != nil {
		t.Fatalf("ParseOptions: %v", err)
	}
	if o.IsZero() {
		t.Error("an explicit configuration should not be zero")
	}
}

func TestParseOptions_Errors(t *testing.T) {
	docs := []string{
		`{"index_col": true}`,
		`{"index_col": -1}`,
		`{"index_col": [0, 1]}`,
		`{"sep": "||"}`,
		`{"comment": "##"}`,
		`{"usecols": ["a"]}`,
		`{"parse_dates": [true]}`,
		`{"parse_dates": [-1]}`,
		`{"parse_dates": [[0, 1]]}`,
		`[1, 2]`,
	}
	for _, doc := range docs {
		_, err := ParseOptions([]byte(doc))
		if err == nil {
			t.Errorf("ParseOptions(%q): expected error", doc)
			continue
		}
		if !errors.Is(err, ErrInvalidOptions) {
			t.Errorf("ParseOptions(%q): error %v does not wrap ErrInvalidOptions", doc, err)
		}
	}
}

func TestOptionsNASet(t *testing.T) {
	keep := false
	o := Options{NAValues: []string{"-"}, KeepDefaultNA: &keep}
	na := o.naSet()
	if na["NA"] || na[""] {
		t.Error("default markers should be dropped when keep_default_na is false")
	}
	if !na["-"] {
		t.Error("extra marker missing")
	}

	na = Options{NAValues: []string{"-"}}.naSet()
	if !na["NA"] || !na[""] || !na["-"] {
		t.Error("expected defaults plus extras")
	}
}
