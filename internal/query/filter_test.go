package query_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
	"github.com/KaramelBytes/dataforge-cli/internal/parser"
	"github.com/KaramelBytes/dataforge-cli/internal/query"
)

func mustParse(t *testing.T, text string) *dataset.Dataset {
	t.Helper()
	d, err := parser.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return d
}

func TestApplyFiltersGreaterScenario(t *testing.T) {
	d := mustParse(t, "a,b\n1,x\n2,y\n,z\n")
	out, err := query.ApplyFilters(d, []query.Filter{{Column: "a", Operator: query.OpGreater, Value: "1"}})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	want := []dataset.Row{{"a": dataset.Number(2), "b": dataset.Text("y")}}
	if diff := cmp.Diff(want, out.Rows); diff != "" {
		t.Fatalf("rows (-want +got):\n%s", diff)
	}
	if d.Len() != 3 {
		t.Fatalf("input mutated: %d rows", d.Len())
	}
}

func TestFilterOperators(t *testing.T) {
	d := mustParse(t, "name,score\nAlice,10\nbob,\nALINA,7.5\ncarl,n/a\n")
	cases := []struct {
		name string
		f    query.Filter
		want []string
	}{
		{"equals", query.Filter{Column: "name", Operator: query.OpEquals, Value: "bob"}, []string{"bob"}},
		{"equals empty matches null", query.Filter{Column: "score", Operator: query.OpEquals, Value: ""}, []string{"bob"}},
		{"equals number string form", query.Filter{Column: "score", Operator: query.OpEquals, Value: "7.5"}, []string{"ALINA"}},
		{"contains ignores case", query.Filter{Column: "name", Operator: query.OpContains, Value: "al"}, []string{"Alice", "ALINA"}},
		{"less skips non-numeric", query.Filter{Column: "score", Operator: query.OpLess, Value: "9"}, []string{"ALINA"}},
		{"greater with bad value", query.Filter{Column: "score", Operator: query.OpGreater, Value: "abc"}, nil},
		{"notNull", query.Filter{Column: "score", Operator: query.OpNotNull}, []string{"Alice", "ALINA", "carl"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := query.ApplyFilters(d, []query.Filter{tc.f})
			if err != nil {
				t.Fatalf("filter: %v", err)
			}
			var got []string
			for _, r := range out.Rows {
				got = append(got, r.Get("name").String())
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("names (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyFiltersOrderIndependent(t *testing.T) {
	d := mustParse(t, "a,b\n1,x\n2,y\n3,xy\n4,z\n")
	f1 := query.Filter{Column: "a", Operator: query.OpGreater, Value: "1"}
	f2 := query.Filter{Column: "b", Operator: query.OpContains, Value: "x"}
	ab, err := query.ApplyFilters(d, []query.Filter{f1, f2})
	if err != nil {
		t.Fatal(err)
	}
	ba, err := query.ApplyFilters(d, []query.Filter{f2, f1})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ab.Rows, ba.Rows); diff != "" {
		t.Fatalf("order changed result (-ab +ba):\n%s", diff)
	}
	if len(ab.Rows) != 1 || ab.Rows[0].Get("a").Float() != 3 {
		t.Fatalf("unexpected rows: %v", ab.Rows)
	}
}

func TestApplyFiltersEmptyListKeepsAll(t *testing.T) {
	d := mustParse(t, "a\n1\n2\n")
	out, err := query.ApplyFilters(d, nil)
	if err != nil || out.Len() != 2 {
		t.Fatalf("got %v rows, err %v", out, err)
	}
}

func TestApplyFiltersErrors(t *testing.T) {
	d := mustParse(t, "a\n1\n")
	if _, err := query.ApplyFilters(d, []query.Filter{{Column: "nope", Operator: query.OpEquals}}); !errors.Is(err, dataset.ErrUnknownColumn) {
		t.Fatalf("err = %v, want ErrUnknownColumn", err)
	}
	if _, err := query.ApplyFilters(d, []query.Filter{{Column: "a", Operator: "between"}}); err == nil {
		t.Fatalf("expected error for unknown operator")
	}
}

func TestParseFilter(t *testing.T) {
	f, err := query.ParseFilter("url:contains:http://x")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(query.Filter{Column: "url", Operator: query.OpContains, Value: "http://x"}, f); diff != "" {
		t.Fatalf("filter (-want +got):\n%s", diff)
	}
	f, err = query.ParseFilter("a:notNull")
	if err != nil || f.Operator != query.OpNotNull || f.String() != "a:notNull" {
		t.Fatalf("notNull parse = %+v, %v", f, err)
	}
	for _, bad := range []string{"a", ":equals:1", "a:like:1"} {
		if _, err := query.ParseFilter(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
