package grammar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_FOLLOW(t *testing.T) {
	testCases := []struct {
		name   string
		input  []string
		expect map[string][]Symbol
	}{
		{
			name:  "expression grammar after left-recursion removal",
			input: []string{"E: E+T | T", "T: i"},
			expect: map[string][]Symbol{
				"E'":   syms("$"),
				"E":    syms("$"),
				"E_rr": syms("$"),
				"T":    syms("+ $"),
			},
		},
		{
			name:  "concrete successor",
			input: []string{"S: Ab", "A: a | _"},
			expect: map[string][]Symbol{
				"S'": syms("$"),
				"S":  syms("$"),
				"A":  syms("b"),
			},
		},
		{
			name:  "nullable successor defers to lhs",
			input: []string{"S: ABc", "A: a", "B: b | _"},
			expect: map[string][]Symbol{
				"S'": syms("$"),
				"S":  syms("$"),
				"A":  syms("b $"),
				"B":  syms("c"),
			},
		},
		{
			name:  "last symbol defers to lhs",
			input: []string{"S: ABc | AB", "A: a", "B: b | _"},
			expect: map[string][]Symbol{
				"S'": syms("$"),
				"S":  syms("$"),
				"A":  syms("b $"),
				"B":  syms("c $"),
			},
		},
		{
			name:  "chain of deferrals",
			input: []string{"S: Ax", "A: aB", "B: bC", "C: c"},
			expect: map[string][]Symbol{
				"S'": syms("$"),
				"S":  syms("$"),
				"A":  syms("x"),
				"B":  syms("x"),
				"C":  syms("x"),
			},
		},
		{
			name:  "full expression grammar",
			input: []string{"E: E+T | T", "T: T*F | F", "F: (E) | i"},
			expect: map[string][]Symbol{
				"E'":   syms("$"),
				"E":    syms("$ )"),
				"E_rr": syms("$ )"),
				"T":    syms("+ $ )"),
				"T_rr": syms("+ $ )"),
				"F":    syms("* + $ )"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g, err := MustBuild(DefaultEpsilon, tc.input...).RemoveLeftRecursion()
			if !assert.NoError(err) {
				return
			}
			first, err := g.FIRST(DefaultPassFactor)
			if !assert.NoError(err) {
				return
			}

			actual, err := g.FOLLOW(first, DefaultPassFactor)

			if !assert.NoError(err) {
				return
			}
			assert.Equal(g.NonTerminals(), actual.NonTerminals())
			for nt, expectSet := range tc.expect {
				assert.ElementsMatch(expectSet, actual.Get(nt), "FOLLOW(%s)", nt)
			}
		})
	}
}

func Test_Grammar_FOLLOW_MutualDeferral(t *testing.T) {
	testCases := []struct {
		name        string
		input       []string
		expectCycle []string
	}{
		{
			name:        "two non-terminals ending each other",
			input:       []string{"S: aA | b", "A: cS | d"},
			expectCycle: []string{"S", "A", "S"},
		},
		{
			name:        "through nullable alternatives",
			input:       []string{"S: aA", "A: bB | _", "B: cA | _"},
			expectCycle: []string{"A", "B", "A"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g, err := MustBuild(DefaultEpsilon, tc.input...).RemoveLeftRecursion()
			if !assert.NoError(err) {
				return
			}
			first, err := g.FIRST(DefaultPassFactor)
			if !assert.NoError(err) {
				return
			}

			_, err = g.FOLLOW(first, DefaultPassFactor)

			assert.ErrorIs(err, ErrNonConvergence)
			var ncErr NonConvergenceError
			if assert.True(errors.As(err, &ncErr)) {
				assert.Equal("FOLLOW", ncErr.Stage)
				assert.Equal(tc.expectCycle, ncErr.Cycle)
			}
		})
	}
}

func Test_Grammar_FOLLOW_NeverContainsEpsilon(t *testing.T) {
	assert := assert.New(t)

	g, err := MustBuild(DefaultEpsilon, "S: ABC", "A: a | _", "B: b | _", "C: c | _").RemoveLeftRecursion()
	if !assert.NoError(err) {
		return
	}
	first, err := g.FIRST(DefaultPassFactor)
	if !assert.NoError(err) {
		return
	}

	actual, err := g.FOLLOW(first, DefaultPassFactor)
	if !assert.NoError(err) {
		return
	}

	for _, nt := range actual.NonTerminals() {
		assert.False(actual.Contains(nt, Epsilon), "FOLLOW(%s) contains ε", nt)
		for _, sym := range actual.Get(nt) {
			assert.False(sym.IsNonTerminal(), "FOLLOW(%s) contains non-terminal %s", nt, sym)
		}
	}
	assert.ElementsMatch(syms("b $"), actual.Get("A"))
	assert.ElementsMatch(syms("c $"), actual.Get("B"))
	assert.ElementsMatch(syms("$"), actual.Get("C"))
}
