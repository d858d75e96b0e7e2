package analysis

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/KaramelBytes/dataforge-cli/internal/dataset"
)

func scenario() *dataset.Dataset {
	return &dataset.Dataset{
		Columns: []string{"a", "b"},
		Rows: []dataset.Row{
			{"a": dataset.Number(1), "b": dataset.Text("x")},
			{"a": dataset.Number(2), "b": dataset.Text("y")},
			{"a": dataset.Null(), "b": dataset.Text("z")},
		},
		SourceName: "scenario.csv",
	}
}

func TestColumnStatsNumericScenario(t *testing.T) {
	s, err := ColumnStats(scenario(), "a")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if s.Type != TypeNumeric || s.Count != 3 || s.NullCount != 1 {
		t.Fatalf("stats = %+v", s)
	}
	if s.Mean != 1.5 || s.Min != 1 || s.Max != 2 || s.NumericCount != 2 {
		t.Fatalf("numeric summary = %+v", s)
	}
}

func TestColumnStatsCategorical(t *testing.T) {
	d := &dataset.Dataset{
		Columns: []string{"c"},
		Rows: []dataset.Row{
			{"c": dataset.Text("x")},
			{"c": dataset.Text("y")},
			{"c": dataset.Text("x")},
			{"c": dataset.Text("")},
			{"c": dataset.Null()},
			{},
			{"c": dataset.Bool(true)},
			{"c": dataset.Text("true")},
		},
	}
	s, err := ColumnStats(d, "c")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if s.Type != TypeCategorical {
		t.Fatalf("type = %s", s.Type)
	}
	if s.Count != 8 || s.NullCount != 3 || s.Unique != 4 {
		t.Fatalf("stats = %+v, want count 8 nulls 3 unique 4", s)
	}
	if !math.IsNaN(s.Mean) {
		t.Fatalf("categorical mean should be NaN, got %v", s.Mean)
	}
}

func TestColumnStatsSingleNumberMakesColumnNumeric(t *testing.T) {
	d := &dataset.Dataset{
		Columns: []string{"m"},
		Rows: []dataset.Row{
			{"m": dataset.Text("n/a")},
			{"m": dataset.Text("unknown")},
			{"m": dataset.Number(42)},
			{"m": dataset.Text("?")},
		},
	}
	s, err := ColumnStats(d, "m")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if s.Type != TypeNumeric || s.Mean != 42 || s.Min != 42 || s.Max != 42 || s.Count != 4 {
		t.Fatalf("stats = %+v", s)
	}
}

func TestColumnStatsAllNullAndEmptyColumns(t *testing.T) {
	d := &dataset.Dataset{Columns: []string{"n"}, Rows: []dataset.Row{{"n": dataset.Null()}, {"n": dataset.Null()}}}
	s, err := ColumnStats(d, "n")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if s.Type != TypeCategorical || s.NullCount != 2 || s.Unique != 0 || !math.IsNaN(s.Mean) {
		t.Fatalf("all-null column stats = %+v", s)
	}

	empty := &dataset.Dataset{Columns: []string{"n"}}
	s, err = ColumnStats(empty, "n")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if s.Count != 0 || s.Type != TypeCategorical {
		t.Fatalf("empty dataset stats = %+v", s)
	}
}

func TestColumnStatsUnknownColumn(t *testing.T) {
	_, err := ColumnStats(scenario(), "zzz")
	if !errors.Is(err, dataset.ErrUnknownColumn) {
		t.Fatalf("err = %v, want ErrUnknownColumn", err)
	}
}

func TestColumnStatsClassificationProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for iter := 0; iter < 200; iter++ {
		n := rng.IntN(10)
		rows := make([]dataset.Row, n)
		hasNumber := false
		missing := 0
		for i := range rows {
			var c dataset.Cell
			switch rng.IntN(5) {
			case 0:
				c = dataset.Null()
			case 1:
				c = dataset.Text("")
			case 2:
				c = dataset.Number(rng.Float64())
				hasNumber = true
			case 3:
				c = dataset.Bool(rng.IntN(2) == 0)
			default:
				c = dataset.Text("t")
			}
			if c.IsMissing() {
				missing++
			}
			rows[i] = dataset.Row{"v": c}
		}
		s, err := ColumnStats(&dataset.Dataset{Columns: []string{"v"}, Rows: rows}, "v")
		if err != nil {
			t.Fatalf("stats: %v", err)
		}
		if (s.Type == TypeNumeric) != hasNumber {
			t.Fatalf("iter %d: type %s but hasNumber=%v", iter, s.Type, hasNumber)
		}
		if s.NullCount != missing {
			t.Fatalf("iter %d: nullCount %d, want %d", iter, s.NullCount, missing)
		}
	}
}

func TestAllStatsFollowsColumnOrder(t *testing.T) {
	all := AllStats(scenario())
	if len(all) != 2 || all[0].Column != "a" || all[1].Column != "b" {
		t.Fatalf("AllStats = %+v", all)
	}
	if all[1].Type != TypeCategorical || all[1].Unique != 3 {
		t.Fatalf("b stats = %+v", all[1])
	}
}
