package profile

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/battyone/beyond-correlation/domain/frame"
)

func TestFrameProfilesNumericColumn(t *testing.T) {
	f, err := frame.New(
		frame.NewNumericColumn("x", []float64{1, 2, 3, 4, math.NaN()}),
	)
	if err != nil {
		t.Fatal(err)
	}

	profiles := Frame(f)
	if len(profiles) != 1 {
		t.Fatalf("got %d profiles", len(profiles))
	}
	p := profiles[0]
	if p.Name != "x" || !p.Numeric {
		t.Fatalf("profile = %+v", p)
	}
	if p.Rows != 5 || p.Missing != 1 {
		t.Errorf("rows=%d missing=%d", p.Rows, p.Missing)
	}
	if p.Distinct != 4 {
		t.Errorf("distinct = %d, want 4", p.Distinct)
	}
	if p.Mean != 2.5 {
		t.Errorf("mean = %f, want 2.5", p.Mean)
	}
	if p.Min != 1 || p.Max != 4 {
		t.Errorf("min=%f max=%f", p.Min, p.Max)
	}
}

func TestFrameProfilesCategoricalColumn(t *testing.T) {
	f, err := frame.New(
		frame.NewCategoricalColumn("c", []string{"a", "b", "a", ""}),
	)
	if err != nil {
		t.Fatal(err)
	}

	p := Frame(f)[0]
	if p.Numeric {
		t.Error("categorical column must not be numeric")
	}
	if p.Distinct != 2 || p.Missing != 1 {
		t.Errorf("distinct=%d missing=%d", p.Distinct, p.Missing)
	}
}

func TestFrameProfilesAllMissingNumeric(t *testing.T) {
	f, err := frame.New(
		frame.NewNumericColumn("x", []float64{math.NaN(), math.NaN()}),
	)
	if err != nil {
		t.Fatal(err)
	}
	p := Frame(f)[0]
	// no categorical cells, so the column still counts as numeric with no stats
	if !math.IsNaN(p.Mean) || !math.IsNaN(p.StdDev) {
		t.Errorf("stats over no observations should be NaN: %+v", p)
	}
	if p.Missing != 2 {
		t.Errorf("missing = %d", p.Missing)
	}
}

func TestColumnProfileJSONSkipsNaN(t *testing.T) {
	f, _ := frame.New(frame.NewNumericColumn("x", []float64{math.NaN()}))
	data, err := json.Marshal(Frame(f))
	if err != nil {
		t.Fatalf("NaN statistics must not break encoding: %v", err)
	}
	if strings.Contains(string(data), "mean") {
		t.Errorf("undefined statistics should be omitted: %s", data)
	}
}

func TestFrameNil(t *testing.T) {
	if profiles := Frame(nil); profiles != nil {
		t.Errorf("nil frame should profile to nil, got %v", profiles)
	}
}
