package analysis

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
)

var profileScores = []float64{10, 11, 9.5, 10.5, 9.8, 10.2, 8.8, 9.7, 50}

func profileFixture() *dataset.Dataset {
	groups := []string{"A", "A", "B", "A", "B", "B", "A", "B", "A"}
	rows := make([]dataset.Row, len(profileScores))
	for i := range profileScores {
		rows[i] = dataset.Row{"group": dataset.Text(groups[i]), "score": dataset.Number(profileScores[i])}
	}
	return &dataset.Dataset{Columns: []string{"group", "score"}, Rows: rows, SourceName: "metrics.csv"}
}

func TestProfileAndMarkdown(t *testing.T) {
	opt := DefaultOptions()
	opt.SampleRows = 3
	rep := Profile(profileFixture(), opt)

	if rep.Name != "metrics.csv" || rep.Rows != 9 || len(rep.Cols) != 2 {
		t.Fatalf("report header = %+v", rep)
	}
	if len(rep.Samples) != 3 {
		t.Fatalf("samples = %d, want 3", len(rep.Samples))
	}
	if diff := cmp.Diff([]string{"A", "10"}, rep.Samples[0]); diff != "" {
		t.Fatalf("first sample (-want +got):\n%s", diff)
	}

	score := rep.Cols[1]
	if score.Type != TypeNumeric || score.OutliersCount != 1 || score.OutlierThreshold != 3.5 {
		t.Fatalf("score summary = %+v", score)
	}
	if score.Min != 8.8 || score.Max != 50 {
		t.Fatalf("score min/max = %v/%v", score.Min, score.Max)
	}
	var sum, sq float64
	for _, v := range profileScores {
		sum += v
	}
	mean := sum / float64(len(profileScores))
	for _, v := range profileScores {
		sq += (v - mean) * (v - mean)
	}
	if std := math.Sqrt(sq / float64(len(profileScores)-1)); math.Abs(score.Std-std) > 1e-9 {
		t.Fatalf("std = %v, want %v", score.Std, std)
	}

	group := rep.Cols[0]
	want := []CategoryCount{{"A", 5}, {"B", 4}}
	if diff := cmp.Diff(want, group.TopValues); diff != "" {
		t.Fatalf("top values (-want +got):\n%s", diff)
	}

	md := rep.Markdown()
	for _, frag := range []string{
		"[DATASET SUMMARY]",
		"File: metrics.csv",
		"Rows: 9",
		"Columns: 2 (numeric 1, categorical 1)",
		"- group: categorical (count 9, missing 0.0%) — top: A(5), B(4); unique=2",
		"- score: numeric",
		"outliers: 1 above |z|>3.5",
		"[HEAD AND SAMPLE ROWS]",
		"| group | score |",
		"[QUALITY]",
		"Data quality score: 100.0%",
	} {
		if !strings.Contains(md, frag) {
			t.Fatalf("markdown missing %q:\n%s", frag, md)
		}
	}
	if strings.Contains(md, "[NOTES]") {
		t.Fatalf("unexpected notes section:\n%s", md)
	}
}

func TestProfileWarnsOnMixedNumericColumn(t *testing.T) {
	d := &dataset.Dataset{
		Columns: []string{"v"},
		Rows:    []dataset.Row{{"v": dataset.Number(1)}, {"v": dataset.Text("oops")}},
	}
	opt := DefaultOptions()
	opt.SampleRows = 0
	rep := Profile(d, opt)
	if rep.Cols[0].MixedText != 1 || len(rep.Warnings) != 1 {
		t.Fatalf("expected mixed-column warning, got %+v", rep)
	}
	md := rep.Markdown()
	if !strings.Contains(md, "[NOTES]") || strings.Contains(md, "[HEAD AND SAMPLE ROWS]") {
		t.Fatalf("markdown sections wrong:\n%s", md)
	}
}

func TestMarkdownTruncatesSamplesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 90)
	d := &dataset.Dataset{Columns: []string{"s"}, Rows: []dataset.Row{{"s": dataset.Text(long)}}}
	md := Profile(d, DefaultOptions()).Markdown()
	if !utf8.ValidString(md) {
		t.Fatalf("markdown is not valid UTF-8")
	}
	if want := "| " + strings.Repeat("é", 77) + "... |"; !strings.Contains(md, want) {
		t.Fatalf("sample row not truncated to 77 runes:\n%s", md)
	}
}

func TestMedianMAD(t *testing.T) {
	median, mad := medianMAD([]float64{1, 2, 3, 4, 100})
	if median != 3 || mad != 1 {
		t.Fatalf("median=%v mad=%v, want 3 and 1", median, mad)
	}
	if m, d := medianMAD(nil); m != 0 || d != 0 {
		t.Fatalf("empty medianMAD = %v,%v", m, d)
	}
}
