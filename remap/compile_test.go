package remap

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseOpAliases(t *testing.T) {
	tests := []struct {
		tok  string
		want Op
	}{
		{">", GT},
		{"<", LT},
		{"<=", LE},
		{"=<", LE},
		{" >= ", GE},
		{"=>", GE},
		{"==", EQ},
		{"=", EQ},
		{"!=", NE},
		{"= !", NE},
	}
	for _, tt := range tests {
		got, err := ParseOp(tt.tok)
		if err != nil {
			t.Fatalf("ParseOp(%q): %v", tt.tok, err)
		}
		if got != tt.want {
			t.Errorf("ParseOp(%q) = %v, want %v", tt.tok, got, tt.want)
		}
	}
}

func TestParseOpUnrecognized(t *testing.T) {
	for _, tok := range []string{"~", "", "=>=", "gt", "<>"} {
		_, err := ParseOp(tok)
		var ue *UnrecognizedOperatorError
		if !errors.As(err, &ue) || ue.Token != tok {
			t.Errorf("ParseOp(%q) error = %v, want UnrecognizedOperatorError", tok, err)
		}
		if !errors.Is(err, ErrUnrecognizedOperator) {
			t.Errorf("ParseOp(%q) error does not match ErrUnrecognizedOperator", tok)
		}
	}
}

func TestAliasesGiveEqualMasks(t *testing.T) {
	a := []float64{0, 1, 1.5, 2, 3}
	canonical, err := CompilePredicate("<=", "1.5")
	if err != nil {
		t.Fatal(err)
	}
	alias, err := CompilePredicate("=<", "1.5")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(canonical.Mask(a), alias.Mask(a)); diff != "" {
		t.Fatalf("alias mask differs (-canonical +alias):\n%s", diff)
	}
}

func TestConjunction(t *testing.T) {
	p, err := CompilePredicate(">+<", "5+10")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]bool{false, true, true, false}, p.Mask([]float64{3, 6, 9, 12})); diff != "" {
		t.Fatalf("mask mismatch (-want +got):\n%s", diff)
	}
	if p.String() != ">5+<10" {
		t.Fatalf("String() = %q", p.String())
	}
}

func TestFloatEqualityIsExact(t *testing.T) {
	p, err := CompilePredicate("==", "0.3")
	if err != nil {
		t.Fatal(err)
	}
	a, b := 0.1, 0.2
	if p.Match(a + b) {
		t.Fatal("== must not apply a tolerance")
	}
	ne, _ := CompilePredicate("!=", "1")
	if !ne.Match(math.NaN()) {
		t.Fatal("NaN != 1 must hold")
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name           string
		ops, ins, outs []string
		want           error
	}{
		{"bad operator", []string{"~"}, []string{"1"}, []string{"2"}, ErrUnrecognizedOperator},
		{"bad operator in group", []string{">+~"}, []string{"1+2"}, []string{"2"}, ErrUnrecognizedOperator},
		{"bad threshold", []string{">"}, []string{"abc"}, []string{"2"}, ErrMalformedValue},
		{"empty threshold", []string{">"}, []string{""}, []string{"2"}, ErrMalformedValue},
		{"bad output", []string{">"}, []string{"1"}, []string{"x"}, ErrMalformedValue},
		{"rule count", []string{">", "<"}, []string{"1"}, []string{"2"}, ErrArity},
		{"group count", []string{">+<"}, []string{"1"}, []string{"2"}, ErrArity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := Compile(tt.ops, tt.ins, tt.outs)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Compile error = %v, want %v", err, tt.want)
			}
			if rs != nil {
				t.Fatalf("partial rule set returned: %v", rs)
			}
		})
	}
}

func TestMalformedValueNamesToken(t *testing.T) {
	_, err := Compile([]string{">"}, []string{"1o"}, []string{"2"})
	var me *MalformedValueError
	if !errors.As(err, &me) {
		t.Fatalf("expected MalformedValueError, got %v", err)
	}
	if me.Token != "1o" || me.Kind != "threshold" {
		t.Fatalf("unexpected error fields %+v", me)
	}
}

func TestCompileLists(t *testing.T) {
	rs, err := CompileLists(">, <=", "10,1", "999,0")
	if err != nil {
		t.Fatal(err)
	}
	want := RuleSet{
		{When: Predicate{{Op: GT, Threshold: 10}}, Value: 999},
		{When: Predicate{{Op: LE, Threshold: 1}}, Value: 0},
	}
	if diff := cmp.Diff(want, rs); diff != "" {
		t.Fatalf("rule set mismatch (-want +got):\n%s", diff)
	}
	if _, err := CompileLists(">10,<=1", "10,1", "999,0"); !errors.Is(err, ErrUnrecognizedOperator) {
		t.Fatalf("threshold packed into operator: err = %v", err)
	}
	empty, err := CompileLists("", "", "")
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty lists = %v, %v", empty, err)
	}
}
