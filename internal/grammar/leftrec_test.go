package grammar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_RemoveLeftRecursion(t *testing.T) {
	testCases := []struct {
		name        string
		input       []string
		expect      []Rule
		expectStart string
		expectErr   error
	}{
		{
			name:  "expression grammar",
			input: []string{"E: E+T | T", "T: i"},
			expect: []Rule{
				rule("E'", "E"),
				rule("E", "T E_rr"),
				rule("E_rr", "+ T E_rr", "ε"),
				rule("T", "i"),
			},
			expectStart: "E'",
		},
		{
			name:  "no left recursion",
			input: []string{"S: aS | b"},
			expect: []Rule{
				rule("S'", "S"),
				rule("S", "a S", "b"),
			},
			expectStart: "S'",
		},
		{
			name:  "epsilon base alternative",
			input: []string{"A: Aa | _"},
			expect: []Rule{
				rule("A'", "A"),
				rule("A", "A_rr"),
				rule("A_rr", "a A_rr", "ε"),
			},
			expectStart: "A'",
		},
		{
			name:  "multiple recursive and base alternatives",
			input: []string{"A: Ax | Ay | b | c"},
			expect: []Rule{
				rule("A'", "A"),
				rule("A", "b A_rr", "c A_rr"),
				rule("A_rr", "x A_rr", "y A_rr", "ε"),
			},
			expectStart: "A'",
		},
		{
			name:  "self unit alternative is dropped",
			input: []string{"A: A | b"},
			expect: []Rule{
				rule("A'", "A"),
				rule("A", "b"),
			},
			expectStart: "A'",
		},
		{
			name:  "two recursive non-terminals",
			input: []string{"E: E+T | T", "T: T*F | F", "F: i"},
			expect: []Rule{
				rule("E'", "E"),
				rule("E", "T E_rr"),
				rule("E_rr", "+ T E_rr", "ε"),
				rule("T", "F T_rr"),
				rule("T_rr", "* F T_rr", "ε"),
				rule("F", "i"),
			},
			expectStart: "E'",
		},
		{
			name:      "no base alternative",
			input:     []string{"A: Ax | Ay"},
			expectErr: ErrDegenerateRecursion,
		},
		{
			name:      "only a self unit",
			input:     []string{"S: aA", "A: A"},
			expectErr: ErrDegenerateRecursion,
		},
		{
			name:      "empty grammar",
			expectErr: ErrEmpty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := MustBuild(DefaultEpsilon, tc.input...)

			actual, err := g.RemoveLeftRecursion()

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

func Test_Grammar_RemoveLeftRecursion_NamesDegenerateNonTerminal(t *testing.T) {
	assert := assert.New(t)

	g := MustBuild(DefaultEpsilon, "S: aB", "B: Bx | By")

	_, err := g.RemoveLeftRecursion()

	var degenErr DegenerateRecursionError
	if assert.True(errors.As(err, &degenErr)) {
		assert.Equal("B", degenErr.NonTerminal)
	}
}

func Test_Grammar_RemoveLeftRecursion_NoDirectRecursionRemains(t *testing.T) {
	grammars := [][]string{
		{"E: E+T | T", "T: T*F | F", "F: (E) | i"},
		{"S: Sa | Sb | c | _"},
		{"A: Ab | B", "B: Bc | d"},
	}

	for _, input := range grammars {
		g := MustBuild(DefaultEpsilon, input...)

		actual, err := g.RemoveLeftRecursion()
		if !assert.NoError(t, err) {
			continue
		}

		for _, r := range actual.Rules() {
			for _, a := range r.Alternatives {
				assert.NotEqual(t, NonTerm(r.NonTerminal), a.Leading(), "%s has left-recursive alternative %s", r.NonTerminal, a)
			}
		}
	}
}

func Test_Grammar_RemoveLeftRecursion_DoesNotModifyReceiver(t *testing.T) {
	assert := assert.New(t)

	g := MustBuild(DefaultEpsilon, "E: E+T | T", "T: i")
	before := g.Copy()

	_, err := g.RemoveLeftRecursion()

	assert.NoError(err)
	assert.Equal(before, g)
}
