package remap

import (
	"strconv"
	"strings"

	"github.com/wgdzlh/rastool/utils"
)

const (
	RuleSep  = ","
	GroupSep = "+"
)

// CompilePredicate builds the conjunction described by "+"-joined operator
// and threshold groups, e.g. ">+<" with "5+10".
func CompilePredicate(ops, thresholds string) (Predicate, error) {
	opToks := strings.Split(ops, GroupSep)
	valToks := strings.Split(thresholds, GroupSep)
	if len(opToks) != len(valToks) {
		return nil, &ArityError{What: "operators " + strconv.Quote(ops) + " and thresholds " + strconv.Quote(thresholds), Counts: []int{len(opToks), len(valToks)}}
	}
	p := make(Predicate, len(opToks))
	for i, tok := range opToks {
		op, err := ParseOp(tok)
		if err != nil {
			return nil, err
		}
		th, err := parseNumber("threshold", valToks[i])
		if err != nil {
			return nil, err
		}
		p[i] = Comparison{Op: op, Threshold: th}
	}
	return p, nil
}

// Compile builds a rule set from three parallel lists, one item per rule.
// Nothing is read or written; a bad token fails the whole set.
func Compile(ops, thresholds, outputs []string) (RuleSet, error) {
	if len(ops) != len(thresholds) || len(ops) != len(outputs) {
		return nil, &ArityError{What: "operators, thresholds and output values", Counts: []int{len(ops), len(thresholds), len(outputs)}}
	}
	rs := make(RuleSet, len(ops))
	for i := range ops {
		p, err := CompilePredicate(ops[i], thresholds[i])
		if err != nil {
			return nil, err
		}
		v, err := parseNumber("output value", outputs[i])
		if err != nil {
			return nil, err
		}
		rs[i] = Rule{When: p, Value: v}
	}
	return rs, nil
}

// CompileLists is Compile over comma-separated lists as typed on a command line.
func CompileLists(ops, thresholds, outputs string) (RuleSet, error) {
	return Compile(
		utils.SplitList(ops, RuleSep),
		utils.SplitList(thresholds, RuleSep),
		utils.SplitList(outputs, RuleSep),
	)
}

func parseNumber(kind, tok string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil {
		return 0, &MalformedValueError{Kind: kind, Token: tok, Err: err}
	}
	return v, nil
}
