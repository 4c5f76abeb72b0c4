package tableread

import (
	"context"
	"errors"
	"testing"

	"github.com/gyeh/subvalidate/internal/model"
)

type recordingLoader struct {
	name    string
	sources []string
}

func (l *recordingLoader) Load(_ context.Context, source string, _ Options) (*model.Table, error) {
	l.sources = append(l.sources, source)
	return &model.Table{Source: l.name}, nil
}

func TestRouter_Dispatch(t *testing.T) {
	csvL := &recordingLoader{name: "csv"}
	pqL := &recordingLoader{name: "parquet"}
	pgL := &recordingLoader{name: "pg"}
	r := &Router{CSV: csvL, Parquet: pqL, Postgres: pgL}

	cases := map[string]string{
		"sub.csv":          "csv",
		"sub.tsv":          "csv",
		"data/sub.parquet": "parquet",
		"SUB.PARQUET":      "parquet",
		"pg:public.format": "pg",
	}
	for source, want := range cases {
		tbl, err := r.Load(context.Background(), source, DefaultOptions())
		if err != nil {
			t.Fatalf("Load(%q): %v", source, err)
		}
		if tbl.Source != want {
			t.Errorf("Load(%q) went to %s, want %s", source, tbl.Source, want)
		}
	}
}

func TestRouter_DatabaseWithoutPool(t *testing.T) {
	r := NewRouter(nil)
	_, err := r.Load(context.Background(), "pg:format", DefaultOptions())
	if !errors.Is(err, ErrUnknownSource) {
		t.Fatalf("err = %v, want ErrUnknownSource", err)
	}
}

func TestSameSource(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"a.csv", "a.csv", true},
		{"./a.csv", "a.csv", true},
		{"dir/../a.csv", "a.csv", true},
		{"a.csv", "b.csv", false},
		{"pg:t", "pg:t", true},
		{"pg:t", "t", false},
	}
	for _, tt := range tests {
		if got := SameSource(tt.a, tt.b); got != tt.want {
			t.Errorf("SameSource(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
