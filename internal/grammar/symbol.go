// Package grammar holds the context-free grammar model and the stages that
// prepare a grammar for top-down parsing: building it from production
// statements, eliminating direct left recursion, left factoring, and the
// computation of FIRST and FOLLOW sets.
package grammar

import (
	"strings"
)

// Kind is the type of a Symbol.
type Kind int

const (
	KindTerminal Kind = iota
	KindNonTerminal
	KindEpsilon
	KindEndMarker
)

func (k Kind) String() string {
	switch k {
	case KindTerminal:
		return "terminal"
	case KindNonTerminal:
		return "non-terminal"
	case KindEpsilon:
		return "epsilon"
	case KindEndMarker:
		return "end-marker"
	default:
		return "unknown"
	}
}

// Symbol is a single grammar symbol. Terminals hold exactly one input
// character, non-terminals hold their name. Epsilon and EndMarker carry no
// value.
type Symbol struct {
	Kind  Kind
	Value string
}

var (
	// Epsilon is the empty string. An Alternative consisting of only Epsilon
	// derives nothing.
	Epsilon = Symbol{Kind: KindEpsilon}

	// EndMarker is the end-of-input marker. It only ever appears in FOLLOW
	// sets.
	EndMarker = Symbol{Kind: KindEndMarker}
)

// EndMarkerChar is how EndMarker is displayed. It cannot be used as a terminal
// in production statements.
const EndMarkerChar = '$'

// Term returns the terminal symbol for the given input character.
func Term(ch rune) Symbol {
	return Symbol{Kind: KindTerminal, Value: string(ch)}
}

// NonTerm returns the non-terminal symbol with the given name.
func NonTerm(name string) Symbol {
	return Symbol{Kind: KindNonTerminal, Value: name}
}

// IsTerminal returns whether the symbol is a terminal.
func (s Symbol) IsTerminal() bool {
	return s.Kind == KindTerminal
}

// IsNonTerminal returns whether the symbol is a non-terminal.
func (s Symbol) IsNonTerminal() bool {
	return s.Kind == KindNonTerminal
}

// IsEpsilon returns whether the symbol is the empty string.
func (s Symbol) IsEpsilon() bool {
	return s.Kind == KindEpsilon
}

func (s Symbol) String() string {
	switch s.Kind {
	case KindEpsilon:
		return "ε"
	case KindEndMarker:
		return string(EndMarkerChar)
	default:
		return s.Value
	}
}

// key gives a string unique to the symbol's kind and value.
func (s Symbol) key() string {
	return string(rune('0'+s.Kind)) + s.Value
}

// compareSymbols orders symbols by their displayed text, with the kind as a
// tie-breaker. It is usable as a gods comparator.
func compareSymbols(a, b interface{}) int {
	s1 := a.(Symbol)
	s2 := b.(Symbol)

	if c := strings.Compare(s1.String(), s2.String()); c != 0 {
		return c
	}
	if s1.Kind < s2.Kind {
		return -1
	} else if s1.Kind > s2.Kind {
		return 1
	}
	return 0
}

// Alternative is one right-hand side of a production. It is never empty; the
// empty alternative is represented as the single symbol Epsilon.
type Alternative []Symbol

// Copy returns a duplicate of the alternative that shares no memory with it.
func (alt Alternative) Copy() Alternative {
	cp := make(Alternative, len(alt))
	copy(cp, alt)
	return cp
}

// Equal returns whether the two alternatives hold the same symbols in the same
// order.
func (alt Alternative) Equal(o Alternative) bool {
	if len(alt) != len(o) {
		return false
	}
	for i := range alt {
		if alt[i] != o[i] {
			return false
		}
	}
	return true
}

// IsEpsilon returns whether the alternative is the empty alternative.
func (alt Alternative) IsEpsilon() bool {
	return len(alt) == 1 && alt[0].IsEpsilon()
}

// Leading returns the first symbol of the alternative.
func (alt Alternative) Leading() Symbol {
	if len(alt) == 0 {
		return Epsilon
	}
	return alt[0]
}

// String shows the symbols of the alternative. Symbols are separated by a
// space only where a multi-character non-terminal name would otherwise make
// the output ambiguous.
func (alt Alternative) String() string {
	var sb strings.Builder
	for i, sym := range alt {
		if i > 0 && (len(sym.Value) > 1 || len(alt[i-1].Value) > 1) {
			sb.WriteRune(' ')
		}
		sb.WriteString(sym.String())
	}
	return sb.String()
}

func (alt Alternative) key() string {
	keys := make([]string, len(alt))
	for i := range alt {
		keys[i] = alt[i].key()
	}
	return strings.Join(keys, "\x1f")
}

// Rule is the production set of a single non-terminal: all of its
// alternatives in the order they were first defined.
type Rule struct {
	NonTerminal  string
	Alternatives []Alternative
}

// Copy returns a deep-copied duplicate of the given Rule.
func (r Rule) Copy() Rule {
	cp := Rule{
		NonTerminal:  r.NonTerminal,
		Alternatives: make([]Alternative, len(r.Alternatives)),
	}
	for i := range r.Alternatives {
		cp.Alternatives[i] = r.Alternatives[i].Copy()
	}
	return cp
}

// HasAlternative returns whether the rule already contains an alternative of
// exactly the given symbols.
func (r Rule) HasAlternative(alt Alternative) bool {
	for i := range r.Alternatives {
		if r.Alternatives[i].Equal(alt) {
			return true
		}
	}
	return false
}

func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteString(r.NonTerminal)
	sb.WriteString(" -> ")
	for i := range r.Alternatives {
		if i > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(r.Alternatives[i].String())
	}
	return sb.String()
}

// dedupeAlternatives removes repeated alternatives, keeping the first
// occurrence of each.
func dedupeAlternatives(alts []Alternative) []Alternative {
	seen := map[string]bool{}
	var out []Alternative
	for _, alt := range alts {
		k := alt.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, alt)
	}
	return out
}
