package transform_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
	"github.com/KaramelBytes/dataforge-cli/internal/parser"
	"github.com/KaramelBytes/dataforge-cli/internal/transform"
)

func fixture(t *testing.T) *dataset.Dataset {
	t.Helper()
	d, err := parser.Parse("n,s\n10,Hello\n20,\n30,wOrLd\nx,1.5\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return d
}

func TestNormalize(t *testing.T) {
	d := fixture(t)
	out, err := transform.Apply(d, "n", transform.Normalize)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := []dataset.Cell{dataset.Number(0), dataset.Number(0.5), dataset.Number(1), dataset.Text("x")}
	if diff := cmp.Diff(want, out.Values("n")); diff != "" {
		t.Fatalf("normalized (-want +got):\n%s", diff)
	}
	if d.Rows[0].Get("n").Float() != 10 {
		t.Fatalf("input mutated")
	}
}

func TestNormalizeConstantColumnYieldsZero(t *testing.T) {
	d, _ := parser.Parse("v\n5\n5\nz\n")
	out, err := transform.Apply(d, "v", transform.Normalize)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	for i, c := range out.Values("v")[:2] {
		if c.Float() != 0 || math.IsNaN(c.Float()) {
			t.Fatalf("row %d = %v, want 0", i, c)
		}
	}
}

func TestCaseTransformsWidenToText(t *testing.T) {
	d := fixture(t)
	up, err := transform.Apply(d, "s", transform.Uppercase)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := []dataset.Cell{dataset.Text("HELLO"), dataset.Null(), dataset.Text("WORLD"), dataset.Text("1.5")}
	if diff := cmp.Diff(want, up.Values("s")); diff != "" {
		t.Fatalf("uppercase (-want +got):\n%s", diff)
	}
	low, _ := transform.Apply(d, "n", transform.Lowercase)
	if got := low.Rows[0].Get("n"); got.Kind() != dataset.KindText || got.Str() != "10" {
		t.Fatalf("lowercase number = %v (%s)", got, got.Kind())
	}
}

func TestRemoveNulls(t *testing.T) {
	d := fixture(t)
	d.Rows[0]["s"] = dataset.Text("")
	out, err := transform.Apply(d, "s", transform.RemoveNulls)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := []dataset.Cell{dataset.Number(0), dataset.Number(0), dataset.Text("wOrLd"), dataset.Number(1.5)}
	if diff := cmp.Diff(want, out.Values("s")); diff != "" {
		t.Fatalf("removeNulls (-want +got):\n%s", diff)
	}
	if d.Rows[1].Get("s").Kind() != dataset.KindNull {
		t.Fatalf("input mutated")
	}
}

func TestOtherColumnsUntouched(t *testing.T) {
	d := fixture(t)
	out, err := transform.Apply(d, "s", transform.Uppercase)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if diff := cmp.Diff(d.Values("n"), out.Values("n")); diff != "" {
		t.Fatalf("column n changed (-in +out):\n%s", diff)
	}
	if diff := cmp.Diff(d.Columns, out.Columns); diff != "" {
		t.Fatalf("columns changed (-in +out):\n%s", diff)
	}
}

func TestApplyErrors(t *testing.T) {
	d := fixture(t)
	if _, err := transform.Apply(d, "missing", transform.Normalize); !errors.Is(err, dataset.ErrUnknownColumn) {
		t.Fatalf("err = %v, want ErrUnknownColumn", err)
	}
	if _, err := transform.Apply(d, "n", "reverse"); err == nil {
		t.Fatalf("expected unknown transform error")
	}
	if _, err := transform.ParseKind("removeNulls"); err != nil {
		t.Fatalf("ParseKind: %v", err)
	}
}

func TestApplySteps(t *testing.T) {
	d := fixture(t)
	out, err := transform.ApplySteps(d, []transform.Step{
		{Column: "s", Kind: transform.RemoveNulls},
		{Column: "s", Kind: transform.Uppercase},
	})
	if err != nil {
		t.Fatalf("steps: %v", err)
	}
	if got := out.Rows[1].Get("s"); got.Kind() != dataset.KindText || got.Str() != "0" {
		t.Fatalf("chained result = %v", got)
	}
	if _, err := transform.ApplySteps(d, []transform.Step{{Column: "zz", Kind: transform.Uppercase}}); err == nil {
		t.Fatalf("expected error")
	}
}
