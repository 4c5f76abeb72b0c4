package model

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestValueEqual(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"ints", IntValue(3), IntValue(3), true},
		{"ints differ", IntValue(3), IntValue(4), false},
		{"int vs float", IntValue(3), FloatValue(3.0), true},
		{"int vs float fraction", IntValue(3), FloatValue(3.5), false},
		{"text", TextValue("a"), TextValue("a"), true},
		{"text vs int", TextValue("3"), IntValue(3), false},
		{"both null", NullValue(), NullValue(), true},
		{"null vs value", NullValue(), IntValue(0), false},
		{"bools", BoolValue(true), BoolValue(true), true},
		{"bool vs int", BoolValue(true), IntValue(1), false},
		{"times", TimeValue(now), TimeValue(now.In(time.FixedZone("x", 3600))), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v (reversed)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	cases := map[string]Value{
		"7":     IntValue(7),
		"0.25":  FloatValue(0.25),
		`"abc"`: TextValue("abc"),
		"True":  BoolValue(true),
		"nan":   NullValue(),
	}
	for want, v := range cases {
		if got := v.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func sampleTable() *Table {
	return &Table{
		Index: Column{Name: "id", DType: DTypeInteger, Values: []Value{IntValue(1), IntValue(2), IntValue(3)}},
		Columns: []Column{
			{Name: "a", DType: DTypeFloat, Values: []Value{FloatValue(1), NullValue(), FloatValue(3)}},
			{Name: "b", DType: DTypeText, Values: []Value{TextValue("x"), TextValue("y"), NullValue()}},
		},
	}
}

func TestTableHeadersAndDTypes(t *testing.T) {
	tbl := sampleTable()
	if diff := cmp.Diff([]string{"id", "a", "b"}, tbl.Headers()); diff != "" {
		t.Errorf("Headers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]DType{DTypeFloat, DTypeText}, tbl.DTypes()); diff != "" {
		t.Errorf("DTypes mismatch (-want +got):\n%s", diff)
	}
	if tbl.NumRows() != 3 {
		t.Errorf("NumRows = %d, want 3", tbl.NumRows())
	}
	if tbl.Column("b") == nil || tbl.Column("missing") != nil {
		t.Error("Column lookup returned unexpected result")
	}
}

func TestTableNullRowIDs(t *testing.T) {
	tbl := sampleTable()
	if !tbl.HasNulls() {
		t.Fatal("expected nulls")
	}
	want := []Value{IntValue(2), IntValue(3)}
	if diff := cmp.Diff(want, tbl.NullRowIDs()); diff != "" {
		t.Errorf("NullRowIDs mismatch (-want +got):\n%s", diff)
	}
}

func TestTableNullIndexCounts(t *testing.T) {
	tbl := &Table{
		Index:   Column{Name: "id", DType: DTypeFloat, Values: []Value{FloatValue(1), NullValue()}},
		Columns: []Column{{Name: "a", DType: DTypeInteger, Values: []Value{IntValue(1), IntValue(2)}}},
	}
	if !tbl.HasNulls() {
		t.Fatal("null index cell should count as a null")
	}
	ids := tbl.NullRowIDs()
	if len(ids) != 1 || !ids[0].Null {
		t.Errorf("NullRowIDs = %v, want [nan]", ids)
	}
}

func TestTableCheck(t *testing.T) {
	tbl := sampleTable()
	if err := tbl.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
	tbl.Columns[1].Values = tbl.Columns[1].Values[:2]
	if err := tbl.Check(); err == nil {
		t.Fatal("expected error for ragged column")
	}
}

func TestDTypeByName(t *testing.T) {
	for _, d := range AllDTypes {
		got, ok := DTypeByName(d.String())
		if !ok || got != d {
			t.Errorf("DTypeByName(%q) = %v, %v", d.String(), got, ok)
		}
	}
	if _, ok := DTypeByName("object"); ok {
		t.Error("expected unknown name to fail")
	}
}
