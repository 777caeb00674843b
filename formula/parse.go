package formula

import (
	"maps"
	"slices"
	"strings"
)

const Prefix = "="

// Formula is the immutable result of parsing a formula: its postfix tokens
// and the distinct references (single cells or ranges) it mentions.
type Formula struct {
	Postfix []Token
	refs    map[string]struct{}
}

func IsFormula(raw string) bool {
	return strings.HasPrefix(raw, Prefix)
}

// Parse parses a raw formula. raw must start with '='.
func Parse(raw string) (*Formula, error) {
	if !IsFormula(raw) {
		return nil, syntaxError(-1, "formula must start with '%s'", Prefix)
	}
	infix, err := Tokenize(raw[len(Prefix):])
	if err != nil {
		return nil, err
	}
	postfix, err := Postfix(infix)
	if err != nil {
		return nil, err
	}
	f := Formula{
		Postfix: postfix,
		refs:    make(map[string]struct{}),
	}
	for _, tok := range infix {
		if tok.Type == CellRef {
			f.refs[tok.Literal] = struct{}{}
		}
	}
	return &f, nil
}

// References returns the references of the formula in lexical order. A
// range appears as written (A1:B2) and is never expanded here.
func (f *Formula) References() []string {
	return slices.Sorted(maps.Keys(f.refs))
}

func (f *Formula) String() string {
	return Dump(f.Postfix)
}
