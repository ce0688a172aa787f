package grammar

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// DefaultEpsilon is the character that stands for the empty alternative in
// production statements unless another is configured.
const DefaultEpsilon = '_'

var statementRegex = regexp.MustCompile(`^[A-Z]:\s*[^|\s]+[^|]*(\s*\|\s*[^|\s]+[^|]*)*\s*$`)

// ValidStatement returns whether line is a production statement of the form
// "A: alt1 | alt2 | ...". The left-hand side is a single uppercase letter, and
// every alternative must contain at least one symbol. The epsilon character
// may only appear as an alternative by itself, and EndMarkerChar may not appear
// at all.
func ValidStatement(line string, epsilon rune) bool {
	if !statementRegex.MatchString(line) {
		return false
	}
	if strings.ContainsRune(line, EndMarkerChar) {
		return false
	}

	_, alts := splitStatement(line)
	for _, alt := range alts {
		if strings.ContainsRune(alt, epsilon) && alt != string(epsilon) {
			return false
		}
	}
	return true
}

// ParseStatement splits a production statement into its left-hand side and
// its alternatives, each converted into symbols. Uppercase letters become
// non-terminals, the epsilon character becomes Epsilon, and every other
// character is a terminal. Whitespace inside an alternative is ignored.
func ParseStatement(line string, epsilon rune) (lhs string, alts []Alternative, err error) {
	if !ValidStatement(line, epsilon) {
		return "", nil, ErrSyntax
	}

	lhs, rawAlts := splitStatement(line)
	seen := map[string]bool{}
	for _, raw := range rawAlts {
		// identity of an alternative is its text
		if seen[raw] {
			continue
		}
		seen[raw] = true
		alts = append(alts, parseAlternative(raw, epsilon))
	}
	return lhs, alts, nil
}

// Build creates the initial Grammar from production statements. Statements
// for a non-terminal that was already defined add to its alternatives.
// Alternatives identical to one already given for the same non-terminal are
// dropped.
func Build(statements []string, epsilon rune) (Grammar, error) {
	var g Grammar
	for i, stmt := range statements {
		lhs, alts, err := ParseStatement(stmt, epsilon)
		if err != nil {
			return Grammar{}, SyntaxError{Statement: stmt, Index: i}
		}
		g.AddRule(lhs, alts...)
	}
	return g, nil
}

// MustBuild is Build but panics if there is an error.
func MustBuild(epsilon rune, statements ...string) Grammar {
	g, err := Build(statements, epsilon)
	if err != nil {
		panic(fmt.Sprintf("building grammar: %s", err.Error()))
	}
	return g
}

// splitStatement gives the left-hand side and the whitespace-stripped
// alternatives of a statement. It does not check the statement's format.
func splitStatement(line string) (string, []string) {
	sides := strings.SplitN(line, ":", 2)
	lhs := strings.TrimSpace(sides[0])
	if len(sides) < 2 {
		return lhs, nil
	}

	var alts []string
	for _, raw := range strings.Split(sides[1], "|") {
		alts = append(alts, stripSpace(raw))
	}
	return lhs, alts
}

func parseAlternative(raw string, epsilon rune) Alternative {
	if raw == string(epsilon) {
		return Alternative{Epsilon}
	}

	var alt Alternative
	for _, ch := range raw {
		if ch >= 'A' && ch <= 'Z' {
			alt = append(alt, NonTerm(string(ch)))
		} else {
			alt = append(alt, Term(ch))
		}
	}
	return alt
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
