package grammar

import (
	"errors"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

// alt makes an Alternative from space-separated symbols. "ε" is Epsilon, a
// symbol starting with an uppercase letter is a non-terminal, and anything
// else is a terminal.
func alt(s string) Alternative {
	var a Alternative
	for _, sym := range strings.Fields(s) {
		if sym == "ε" {
			a = append(a, Epsilon)
		} else if unicode.IsUpper([]rune(sym)[0]) {
			a = append(a, NonTerm(sym))
		} else {
			a = append(a, Term([]rune(sym)[0]))
		}
	}
	return a
}

// rule makes a Rule from the name of a non-terminal and the space-separated
// symbols of each alternative.
func rule(nt string, alts ...string) Rule {
	r := Rule{NonTerminal: nt}
	for _, a := range alts {
		r.Alternatives = append(r.Alternatives, alt(a))
	}
	return r
}

func Test_ValidStatement(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect bool
	}{
		{name: "single alternative", input: "T: i", expect: true},
		{name: "multiple alternatives", input: "E: E+T | T", expect: true},
		{name: "no spaces", input: "E:E+T|T", expect: true},
		{name: "epsilon alternative", input: "A: a | _", expect: true},
		{name: "space inside alternative", input: "A: a b", expect: true},
		{name: "lowercase lhs", input: "e: a", expect: false},
		{name: "multi-letter lhs", input: "EE: a", expect: false},
		{name: "missing colon", input: "E a", expect: false},
		{name: "no alternatives", input: "E:", expect: false},
		{name: "trailing bar", input: "E: a |", expect: false},
		{name: "empty alternative between bars", input: "E: a | | b", expect: false},
		{name: "epsilon inside longer alternative", input: "E: a_ | b", expect: false},
		{name: "blank", input: "", expect: false},
		{name: "end marker as terminal", input: "S: a$", expect: false},
		{name: "end marker as alternative", input: "S: a | $", expect: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := ValidStatement(tc.input, DefaultEpsilon)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Build(t *testing.T) {
	testCases := []struct {
		name        string
		input       []string
		expect      []Rule
		expectStart string
		expectErr   error
	}{
		{
			name:        "expression grammar",
			input:       []string{"E: E+T | T", "T: i"},
			expect:      []Rule{rule("E", "E + T", "T"), rule("T", "i")},
			expectStart: "E",
		},
		{
			name:        "duplicate alternatives are dropped",
			input:       []string{"A: a | a | b"},
			expect:      []Rule{rule("A", "a", "b")},
			expectStart: "A",
		},
		{
			name:        "repeated lhs adds alternatives",
			input:       []string{"A: a | b", "B: c", "A: b | d"},
			expect:      []Rule{rule("A", "a", "b", "d"), rule("B", "c")},
			expectStart: "A",
		},
		{
			name:        "epsilon and whitespace",
			input:       []string{"S: A b", "A: a |   _  "},
			expect:      []Rule{rule("S", "A b"), rule("A", "a", "ε")},
			expectStart: "S",
		},
		{
			name:      "invalid statement",
			input:     []string{"S: a", "s: b"},
			expectErr: ErrSyntax,
		},
		{
			name:      "end marker terminal",
			input:     []string{"S: A$", "A: a"},
			expectErr: ErrSyntax,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Build(tc.input, DefaultEpsilon)

			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expect, actual.Rules())
			assert.Equal(tc.expectStart, actual.Start)
		})
	}
}

func Test_Build_SyntaxErrorIndex(t *testing.T) {
	assert := assert.New(t)

	_, err := Build([]string{"S: a", "S: b", "bad"}, DefaultEpsilon)

	var synErr SyntaxError
	if !assert.True(errors.As(err, &synErr)) {
		return
	}
	assert.Equal(2, synErr.Index)
	assert.Equal("bad", synErr.Statement)
}

func Test_Build_CustomEpsilon(t *testing.T) {
	assert := assert.New(t)

	g, err := Build([]string{"A: a | #"}, '#')

	assert.NoError(err)
	assert.Equal([]Rule{rule("A", "a", "ε")}, g.Rules())
}

func Test_Grammar_Validate(t *testing.T) {
	testCases := []struct {
		name          string
		input         []string
		expectErr     error
		expectMissing []string
	}{
		{
			name:      "empty grammar",
			expectErr: ErrEmpty,
		},
		{
			name:  "all declared",
			input: []string{"S: aA", "A: b"},
		},
		{
			name:          "undeclared non-terminal",
			input:         []string{"S: aA | B", "A: bC"},
			expectErr:     ErrUndeclared,
			expectMissing: []string{"B", "C"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := MustBuild(DefaultEpsilon, tc.input...)

			err := g.Validate()

			if tc.expectErr == nil {
				assert.NoError(err)
				return
			}
			assert.ErrorIs(err, tc.expectErr)

			if tc.expectMissing != nil {
				var undeclared UndeclaredError
				if assert.True(errors.As(err, &undeclared)) {
					assert.Equal(tc.expectMissing, undeclared.Missing)
				}
			}
		})
	}
}

func Test_Grammar_GenerateUniqueName(t *testing.T) {
	assert := assert.New(t)

	var g Grammar
	g.AddRule("E", alt("a"))
	g.AddRule("E_rr", alt("b"))

	assert.Equal("E_rr_rr", g.GenerateUniqueName("E", "_rr"))
	assert.Equal("E'", g.GenerateUniqueName("E", "'"))
}
