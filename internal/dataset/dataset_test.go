package dataset

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{1.5, "1.5"},
		{-2, "-2"},
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1000000, "1000000"},
		{0.1, "0.1"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
		{2.5e-10, "2.5e-10"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1", 1, true},
		{" 2.5 ", 2.5, true},
		{"-3e2", -300, true},
		{".5", 0.5, true},
		{"Infinity", math.Inf(1), true},
		{"-Infinity", math.Inf(-1), true},
		{"", 0, false},
		{"12abc", 0, false},
		{"NaN", 0, false},
		{"inf", 0, false},
		{"0x10", 0, false},
		{"1_000", 0, false},
		{"x", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseNumber(c.in)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("ParseNumber(%q) = %v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestCellStringAndCoercion(t *testing.T) {
	if Null().String() != "" {
		t.Fatalf("null should stringify empty")
	}
	if Bool(true).String() != "true" || Bool(false).ToNumber() != 0 {
		t.Fatalf("bool conversions wrong")
	}
	if !math.IsNaN(Null().ToNumber()) || !math.IsNaN(Text("abc").ToNumber()) {
		t.Fatalf("null and non-numeric text must coerce to NaN")
	}
	if Text(" 4 ").ToNumber() != 4 {
		t.Fatalf("numeric text should coerce")
	}
	if !Text("").IsMissing() || !Null().IsMissing() || Text(" ").IsMissing() || Number(0).IsMissing() {
		t.Fatalf("IsMissing mismatch")
	}
	if Number(1).Equal(Text("1")) {
		t.Fatalf("cells of different kinds must not be equal")
	}
}

func TestNewRejectsDuplicateColumns(t *testing.T) {
	_, err := New([]string{"a", "b", "a"}, nil)
	if !errors.Is(err, ErrDuplicateColumn) {
		t.Fatalf("err = %v, want ErrDuplicateColumn", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d, err := New([]string{"a"}, []Row{{"a": Number(1)}})
	if err != nil {
		t.Fatal(err)
	}
	c := d.Clone()
	c.Rows[0]["a"] = Number(2)
	c.Columns[0] = "z"
	if d.Rows[0]["a"].Float() != 1 || d.Columns[0] != "a" {
		t.Fatalf("clone aliases original")
	}
}

func TestProject(t *testing.T) {
	d := &Dataset{
		Columns: []string{"a", "b", "c"},
		Rows: []Row{
			{"a": Number(1), "b": Text("x"), "c": Bool(true)},
			{"a": Number(2), "b": Text("y"), "c": Null()},
		},
		SourceName: "s.csv",
	}
	p, err := Project(d, []string{"c", "a"})
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if diff := cmp.Diff([]string{"c", "a"}, p.Columns); diff != "" {
		t.Fatalf("columns (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(d.Rows, p.Rows); diff != "" {
		t.Fatalf("rows must keep every key (-want +got):\n%s", diff)
	}
	back, err := Project(p, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("re-project: %v", err)
	}
	if diff := cmp.Diff(d.Columns, back.Columns); diff != "" {
		t.Fatalf("re-projection should restore columns (-want +got):\n%s", diff)
	}
	if back.SourceName != "s.csv" {
		t.Fatalf("source name lost")
	}
}

func TestProjectErrors(t *testing.T) {
	d := &Dataset{Columns: []string{"a"}, Rows: []Row{{"a": Number(1)}}}
	_, err := Project(d, []string{"nope"})
	var ce *ColumnError
	if !errors.As(err, &ce) || ce.Column != "nope" || !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("err = %v, want ColumnError for nope", err)
	}
	if _, err := Project(d, []string{"a", "a"}); !errors.Is(err, ErrDuplicateColumn) {
		t.Fatalf("err = %v, want ErrDuplicateColumn", err)
	}
}
