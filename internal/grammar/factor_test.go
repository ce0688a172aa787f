package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_LeftFactor(t *testing.T) {
	testCases := []struct {
		name           string
		input          []string
		keepOtherTails bool
		expect         []Rule
		expectWarnings int
	}{
		{
			name:  "common leading terminal",
			input: []string{"A: aB | aC | d", "B: b", "C: c"},
			expect: []Rule{
				rule("A", "a A_lf", "d"),
				rule("A_lf", "B", "C"),
				rule("B", "b"),
				rule("C", "c"),
			},
		},
		{
			name:  "nothing to factor",
			input: []string{"A: aB | bC", "B: b", "C: c"},
			expect: []Rule{
				rule("A", "a B", "b C"),
				rule("B", "b"),
				rule("C", "c"),
			},
		},
		{
			name:  "longer common prefix is factored repeatedly",
			input: []string{"A: abc | abd | e"},
			expect: []Rule{
				rule("A", "a A_lf", "e"),
				rule("A_lf", "b A_lf_lf"),
				rule("A_lf_lf", "c", "d"),
			},
		},
		{
			name:  "empty tail becomes epsilon",
			input: []string{"A: a | ab"},
			expect: []Rule{
				rule("A", "a A_lf"),
				rule("A_lf", "ε", "b"),
			},
		},
		{
			name:  "first shared symbol in sorted order is chosen",
			input: []string{"A: bX | bY | aP | aQ", "X: x", "Y: y", "P: p", "Q: q"},
			expect: []Rule{
				rule("A", "a A_lf", "b"),
				rule("A_lf", "P", "Q"),
				rule("X", "x"),
				rule("Y", "y"),
				rule("P", "p"),
				rule("Q", "q"),
			},
			expectWarnings: 2,
		},
		{
			name:  "other alternatives reduced to leading symbol",
			input: []string{"A: aB | aC | bD", "B: b", "C: c", "D: d"},
			expect: []Rule{
				rule("A", "a A_lf", "b"),
				rule("A_lf", "B", "C"),
				rule("B", "b"),
				rule("C", "c"),
				rule("D", "d"),
			},
			expectWarnings: 1,
		},
		{
			name:           "other alternatives kept whole",
			input:          []string{"A: aB | aC | bD", "B: b", "C: c", "D: d"},
			keepOtherTails: true,
			expect: []Rule{
				rule("A", "a A_lf", "b D"),
				rule("A_lf", "B", "C"),
				rule("B", "b"),
				rule("C", "c"),
				rule("D", "d"),
			},
		},
		{
			name:           "second group left unfactored when kept whole",
			input:          []string{"A: aB | aC | bD | bE", "B: b", "C: c", "D: d", "E: e"},
			keepOtherTails: true,
			expect: []Rule{
				rule("A", "a A_lf", "b D", "b E"),
				rule("A_lf", "B", "C"),
				rule("B", "b"),
				rule("C", "c"),
				rule("D", "d"),
				rule("E", "e"),
			},
			expectWarnings: 1,
		},
		{
			name:  "non-terminal leading symbol",
			input: []string{"S: Ab | Ac", "A: a"},
			expect: []Rule{
				rule("S", "A S_lf"),
				rule("S_lf", "b", "c"),
				rule("A", "a"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := MustBuild(DefaultEpsilon, tc.input...)

			actual, warnings, err := g.LeftFactor(tc.keepOtherTails)

			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, actual.Rules())
			assert.Len(warnings, tc.expectWarnings)
		})
	}
}

func Test_Grammar_LeftFactor_Idempotent(t *testing.T) {
	grammars := [][]string{
		{"A: aB | aC | d", "B: b", "C: c"},
		{"A: abc | abd | e"},
		{"S: iEtS | iEtSeS | a", "E: b"},
		{"A: bX | bY | aP | aQ", "X: x", "Y: y", "P: p", "Q: q"},
	}

	for _, input := range grammars {
		g := MustBuild(DefaultEpsilon, input...)

		once, _, err := g.LeftFactor(false)
		if !assert.NoError(t, err) {
			continue
		}
		twice, warnings, err := once.LeftFactor(false)
		if !assert.NoError(t, err) {
			continue
		}

		assert.Equal(t, once.Rules(), twice.Rules())
		assert.Empty(t, warnings)
		assert.Empty(t, twice.UnfactoredNonTerminals())
	}
}

func Test_Grammar_UnfactoredNonTerminals(t *testing.T) {
	assert := assert.New(t)

	g := MustBuild(DefaultEpsilon, "A: ab | ac", "B: b | c", "C: cB | cA")

	assert.Equal([]string{"A", "C"}, g.UnfactoredNonTerminals())
}
