package remap

import "strings"

// Op is one of the six comparison operators.
type Op uint8

const (
	GT Op = iota + 1
	LT
	LE
	GE
	EQ
	NE
)

var opText = map[Op]string{
	GT: ">",
	LT: "<",
	LE: "<=",
	GE: ">=",
	EQ: "==",
	NE: "!=",
}

var opTokens = map[string]Op{
	">":  GT,
	"<":  LT,
	"<=": LE,
	"=<": LE,
	">=": GE,
	"=>": GE,
	"==": EQ,
	"=":  EQ,
	"!=": NE,
	"=!": NE,
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return "?"
}

// ParseOp normalizes case and whitespace, then resolves aliases.
func ParseOp(token string) (Op, error) {
	norm := strings.ToLower(strings.Join(strings.Fields(token), ""))
	if o, ok := opTokens[norm]; ok {
		return o, nil
	}
	return 0, &UnrecognizedOperatorError{Token: token}
}

// Compare evaluates v <o> threshold with plain IEEE semantics:
// == and != compare exactly, and any comparison with NaN is false except !=.
func (o Op) Compare(v, threshold float64) bool {
	switch o {
	case GT:
		return v > threshold
	case LT:
		return v < threshold
	case LE:
		return v <= threshold
	case GE:
		return v >= threshold
	case EQ:
		return v == threshold
	case NE:
		return v != threshold
	}
	return false
}
