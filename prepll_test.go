package prepll

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dekarrin/prepll/internal/config"
	"github.com/dekarrin/prepll/internal/gfile"
	"github.com/stretchr/testify/assert"
)

func runEngine(t *testing.T, cfg config.Config, in string) (string, error) {
	var out bytes.Buffer
	eng, err := New(strings.NewReader(in), &out, cfg, false)
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	defer eng.Close()

	err = eng.Run()
	return out.String(), err
}

func Test_Engine_Run(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		showSets    bool
		expectOut   []string
		expectNot   []string
		expectErr   error
		expectCount map[string]int
	}{
		{
			name:  "expression grammar",
			input: "E: E+T | T\nT: i\ndone\ni+i\n",
			expectOut: []string{
				"Please enter your productions in the following format:",
				"S: A'Ab | _",
				promptFirstProduction,
				promptNextProduction,
				promptWord,
				"Word to be parsed: i+i",
				"Grammar without left recursion:\n  E' -> E\n  E -> T E_rr\n  E_rr -> +T E_rr | ε\n  T -> i\n",
				"Grammar after left factoring:\n",
			},
			expectNot: []string{"FIRST", "FOLLOW"},
		},
		{
			name:     "sets shown",
			input:    "E: E+T | T\nT: i\nDONE\ni\n",
			showSets: true,
			expectOut: []string{
				"FIRST",
				"FOLLOW",
				"{+, ε}",
				"{+, $}",
			},
		},
		{
			name:  "invalid productions are asked for again",
			input: "done\nE = a\nE: a\nE: a |\ndone\n\n",
			expectOut: []string{
				"No valid production found for done. Please try again.",
				"No valid production found for E = a. Please try again.",
				"No valid production found for E: a |. Please try again.",
				"E -> a\n",
			},
			expectCount: map[string]int{
				promptFirstProduction: 3,
				promptNextProduction:  2,
			},
		},
		{
			name:  "end of input finishes productions",
			input: "S: aS | b",
			expectOut: []string{
				"S' -> S",
				"S -> aS | b",
			},
		},
		{
			name:  "left factoring warnings",
			input: "A: aB | aC | bB\nB: b\nC: c\ndone\nab\n",
			expectOut: []string{
				"A -> a A_lf | b",
				"1 warning:",
				"reduced to its leading symbol",
			},
		},
		{
			name:      "degenerate recursion",
			input:     "S: A\nA: Ax | Ay\ndone\nx\n",
			expectOut: []string{"ERROR: Every alternative of A begins with A"},
			expectNot: []string{"Grammar without left recursion"},
			expectErr: ErrGrammar,
		},
		{
			name:      "undeclared non-terminal",
			input:     "S: aB\ndone\nab\n",
			expectOut: []string{"ERROR: The non-terminal B is used but never defined."},
			expectErr: ErrGrammar,
		},
		{
			name:      "no input at all",
			input:     "",
			expectErr: io.EOF,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			cfg := config.Default()
			cfg.ShowSets = tc.showSets

			actual, err := runEngine(t, cfg, tc.input)

			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
			} else {
				assert.NoError(err)
			}
			for _, s := range tc.expectOut {
				assert.Contains(actual, s)
			}
			for _, s := range tc.expectNot {
				assert.NotContains(actual, s)
			}
			for s, count := range tc.expectCount {
				assert.Equal(count, strings.Count(actual, s), "count of %q", s)
			}
		})
	}
}

func Test_Engine_Run_CustomEpsilon(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	cfg.Epsilon = "#"

	actual, err := runEngine(t, cfg, "S: Ab\nA: a | #\ndone\nab\n")

	assert.NoError(err)
	assert.Contains(actual, "S: A'Ab | #")
	assert.Contains(actual, "A -> a | ε")
}

func Test_Engine_RunFile(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	eng, err := New(strings.NewReader(""), &out, config.Default(), true)
	if !assert.NoError(err) {
		return
	}
	defer eng.Close()

	err = eng.RunFile(gfile.GrammarData{
		Productions: []string{"A: aB | aC | d", "B: b", "C: c"},
		Word:        "ab",
	})

	assert.NoError(err)
	actual := out.String()
	assert.Contains(actual, "Productions:\n  A: aB | aC | d\n")
	assert.Contains(actual, "Word to be parsed: ab")
	assert.Contains(actual, "A -> a A_lf | d\n  A_lf -> B | C\n")
	assert.NotContains(actual, promptFirstProduction)
}

func Test_Engine_RunFile_GrammarError(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	eng, err := New(strings.NewReader(""), &out, config.Default(), true)
	if !assert.NoError(err) {
		return
	}
	defer eng.Close()

	err = eng.RunFile(gfile.GrammarData{
		Productions: []string{"A: Bx | y", "B: Ay | z"},
	})

	assert.True(errors.Is(err, ErrGrammar))
	assert.Contains(out.String(), "left-recursive")
}

func Test_New_InvalidConfig(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	cfg.Width = 0

	_, err := New(strings.NewReader(""), &bytes.Buffer{}, cfg, false)

	assert.Error(err)
}
