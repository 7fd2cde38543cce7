package remap

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wgdzlh/rastool/grid"
	"github.com/wgdzlh/rastool/log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func mustMemory(t *testing.T, pt grid.PixelType, bands ...[][]float64) *grid.Memory {
	t.Helper()
	bs := make([]grid.Band, len(bands))
	for i, b := range bands {
		bs[i] = grid.FromRows(b)
	}
	m, err := grid.NewMemory(grid.Meta{PixelType: pt, Driver: "MEM", GeoTransform: [6]float64{0, 1, 0, 0, 0, -1}}, bs...)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func mustRules(t *testing.T, ops, ins, outs string) RuleSet {
	t.Helper()
	rs, err := CompileLists(ops, ins, outs)
	if err != nil {
		t.Fatal(err)
	}
	return rs
}

func rows(bands []grid.Band) [][][]float64 {
	out := make([][][]float64, len(bands))
	for i, b := range bands {
		out[i] = b.ToRows()
	}
	return out
}

func TestEmptyRulesIsIdentity(t *testing.T) {
	src := mustMemory(t, grid.Float32, [][]float64{{1, 2}, {3, 4}}, [][]float64{{-1, 0.5}, {math.Inf(1), 8}})
	out, err := Pipeline{Bands: grid.AllBands()}.Process(src)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(rows(src.Bands), rows(out)); diff != "" {
		t.Fatalf("output differs from input (-in +out):\n%s", diff)
	}
}

func TestUnselectedBandsPassThrough(t *testing.T) {
	src := mustMemory(t, grid.Int16,
		[][]float64{{1, 20}, {30, 4}},
		[][]float64{{50, 60}, {7, 8}},
		[][]float64{{90, 1}, {11, 12}},
	)
	rules := mustRules(t, ">", "0", "-1")
	out, err := Pipeline{Rules: rules, Bands: grid.Bands(2)}.Process(src)
	if err != nil {
		t.Fatal(err)
	}
	want := [][][]float64{
		{{1, 20}, {30, 4}},
		{{-1, -1}, {-1, -1}},
		{{90, 1}, {11, 12}},
	}
	if diff := cmp.Diff(want, rows(out)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	none, err := Pipeline{Rules: rules, Bands: grid.Bands()}.Process(src)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(rows(src.Bands), rows(none)); diff != "" {
		t.Fatalf("empty band set changed the raster (-in +out):\n%s", diff)
	}
}

func TestLaterRuleWins(t *testing.T) {
	src := mustMemory(t, grid.Float64, [][]float64{{7, 4, 12}})
	out, err := Pipeline{Rules: mustRules(t, ">,<", "5,10", "99,1"), Bands: grid.AllBands()}.Process(src)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][]float64{{1, 1, 99}}, out[0].ToRows()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestOwnBandUsesPreMutationValues(t *testing.T) {
	// Rule 1 turns 7 into 1; rule 2 must still see 7, not 1.
	src := mustMemory(t, grid.Float64, [][]float64{{7, 2}})
	out, err := Pipeline{Rules: mustRules(t, ">,<", "5,3", "1,100"), Bands: grid.AllBands()}.Process(src)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][]float64{{1, 100}}, out[0].ToRows()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFixedBandIgnoresTargetValues(t *testing.T) {
	ref := grid.FromRows([][]float64{{0, 1}, {1, 0}})
	rules := mustRules(t, "==", "1", "5")
	p := Pipeline{Rules: rules, Bands: grid.AllBands(), Source: FixedBand{Index: 1, Band: ref}}

	a := mustMemory(t, grid.Byte, [][]float64{{10, 20}, {30, 40}}, [][]float64{{1, 1}, {1, 1}})
	b := mustMemory(t, grid.Byte, [][]float64{{0, 0}, {0, 0}}, [][]float64{{9, 9}, {9, 9}})
	ga, err := p.Process(a)
	if err != nil {
		t.Fatal(err)
	}
	gb, err := p.Process(b)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][][]float64{{{10, 5}, {5, 40}}, {{1, 5}, {5, 1}}}, rows(ga)); diff != "" {
		t.Fatalf("raster a mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][][]float64{{{0, 5}, {5, 0}}, {{9, 5}, {5, 9}}}, rows(gb)); diff != "" {
		t.Fatalf("raster b mismatch (-want +got):\n%s", diff)
	}
}

func TestPerBandReference(t *testing.T) {
	src := mustMemory(t, grid.Int32, [][]float64{{1, 1}}, [][]float64{{2, 2}})
	ref := mustMemory(t, grid.Int32, [][]float64{{0, 9}}, [][]float64{{9, 0}})
	out, err := Pipeline{Rules: mustRules(t, ">", "5", "-7"), Bands: grid.AllBands(), Source: PerBand{Ref: ref}}.Process(src)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][][]float64{{{1, -7}}, {{-7, 2}}}, rows(out)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPerBandReferenceTooFewBands(t *testing.T) {
	src := mustMemory(t, grid.Int32, [][]float64{{1}}, [][]float64{{2}}, [][]float64{{3}})
	ref := mustMemory(t, grid.Int32, [][]float64{{0}})
	rules := mustRules(t, ">", "5", "0")

	_, err := Pipeline{Rules: rules, Bands: grid.AllBands(), Source: PerBand{Ref: ref}}.Process(src)
	var be *BandCountMismatchError
	if !errors.As(err, &be) || be.Band != 2 || be.Have != 1 {
		t.Fatalf("expected BandCountMismatchError for band 2, got %v", err)
	}

	// Bands passed through never need the reference.
	if _, err = (Pipeline{Rules: rules, Bands: grid.Bands(1), Source: PerBand{Ref: ref}}).Process(src); err != nil {
		t.Fatalf("pass-through bands touched the reference: %v", err)
	}
}

func TestReferenceShapeMismatch(t *testing.T) {
	src := mustMemory(t, grid.Int32, [][]float64{{1, 2}})
	ref := grid.FromRows([][]float64{{1}, {2}})
	_, err := Pipeline{Rules: mustRules(t, ">", "0", "0"), Bands: grid.AllBands(), Source: FixedBand{Index: 1, Band: ref}}.Process(src)
	if !errors.Is(err, grid.ErrShapeMismatch) {
		t.Fatalf("expected shape mismatch, got %v", err)
	}
}

func TestOutputValueUsesStorageType(t *testing.T) {
	src := mustMemory(t, grid.Byte, [][]float64{{1, 200}})
	out, err := Pipeline{Rules: mustRules(t, ">,<", "100,100", "999,2.7"), Bands: grid.AllBands()}.Process(src)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][]float64{{2, 255}}, out[0].ToRows()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestBandsProcessedInOrder(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	defer log.ReplaceLogger(zap.New(core))()

	src := mustMemory(t, grid.Byte, [][]float64{{1}}, [][]float64{{2}}, [][]float64{{3}})
	if _, err := (Pipeline{Rules: mustRules(t, ">", "0", "0"), Bands: grid.Bands(1, 3, 9)}).Process(src); err != nil {
		t.Fatal(err)
	}
	var got []int64
	for _, e := range logs.FilterMessage(logTag + "working on band").All() {
		got = append(got, e.ContextMap()["band"].(int64))
	}
	if diff := cmp.Diff([]int64{1, 2, 3}, got); diff != "" {
		t.Fatalf("band order mismatch (-want +got):\n%s", diff)
	}
	if n := logs.FilterMessage(logTag + "ignore bands not in raster").Len(); n != 1 {
		t.Fatalf("expected one warning for band 9, got %d", n)
	}
}

func TestResolveSource(t *testing.T) {
	input := mustMemory(t, grid.Byte, [][]float64{{1}}, [][]float64{{2}})
	ref := mustMemory(t, grid.Byte, [][]float64{{5}}, [][]float64{{6}}, [][]float64{{7}})

	tests := []struct {
		name     string
		ref      grid.Raster
		calcBand int
		want     ConditionSource
	}{
		{"own", nil, 0, OwnBand{}},
		{"input band", nil, 2, FixedBand{Index: 2, Band: grid.FromRows([][]float64{{2}})}},
		{"per band", ref, 0, PerBand{Ref: ref}},
		{"ref band", ref, 3, FixedBand{Index: 3, Band: grid.FromRows([][]float64{{7}})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSource(input, tt.ref, tt.calcBand)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("source mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := ResolveSource(input, nil, 3); !errors.Is(err, grid.ErrBandOutOfRange) {
		t.Fatalf("expected ErrBandOutOfRange, got %v", err)
	}
}
