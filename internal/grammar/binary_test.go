package grammar

import (
	"encoding"
	"strings"
	"testing"

	"github.com/dekarrin/rezi"
	"github.com/stretchr/testify/assert"
)

func Test_Analysis_MarshalUnmarshalBinary(t *testing.T) {
	testCases := []struct {
		name  string
		input []string
	}{
		{name: "expression grammar", input: []string{"E: E+T | T", "T: T*F | F", "F: (E) | i"}},
		{name: "with warnings", input: []string{"A: aB | aC | bB", "B: b", "C: c | _"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			input, err := Run(tc.input, DefaultOptions())
			if !assert.NoError(err) {
				return
			}

			data, err := input.MarshalBinary()
			if !assert.NoError(err) {
				return
			}

			var actual Analysis
			err = actual.UnmarshalBinary(data)

			assert.NoError(err)
			assert.Equal(input, actual)
		})
	}
}

func Test_Analysis_UnmarshalBinary_Truncated(t *testing.T) {
	assert := assert.New(t)

	input, err := Run([]string{"S: aS | b"}, DefaultOptions())
	if !assert.NoError(err) {
		return
	}
	data, err := input.MarshalBinary()
	if !assert.NoError(err) {
		return
	}

	var actual Analysis
	err = actual.UnmarshalBinary(data[:len(data)/2])

	assert.Error(err)
}

func Test_UnmarshalBinary_NegativeCount(t *testing.T) {
	cat := func(parts ...[]byte) []byte {
		var data []byte
		for _, p := range parts {
			data = append(data, p...)
		}
		return data
	}

	noWarnings, err := Run([]string{"S: a"}, DefaultOptions())
	if !assert.NoError(t, err) {
		return
	}
	analysisData, err := noWarnings.MarshalBinary()
	if !assert.NoError(t, err) {
		return
	}
	// the warning count is the final byte when there are no warnings
	analysisData = cat(analysisData[:len(analysisData)-1], rezi.EncInt(-1))

	testCases := []struct {
		name   string
		target encoding.BinaryUnmarshaler
		data   []byte
	}{
		{
			name:   "grammar rules",
			target: &Grammar{},
			data:   cat(rezi.EncString("S"), rezi.EncInt(-1)),
		},
		{
			name:   "grammar alternatives",
			target: &Grammar{},
			data:   cat(rezi.EncString("S"), rezi.EncInt(1), rezi.EncString("S"), rezi.EncInt(-1)),
		},
		{
			name:   "alternative symbols",
			target: &Grammar{},
			data:   cat(rezi.EncString("S"), rezi.EncInt(1), rezi.EncString("S"), rezi.EncInt(1), rezi.EncInt(-1)),
		},
		{
			name:   "table entries",
			target: &FirstTable{},
			data:   rezi.EncInt(-2),
		},
		{
			name:   "table set members",
			target: &FollowTable{},
			data:   cat(rezi.EncInt(1), rezi.EncString("S"), rezi.EncInt(-1)),
		},
		{
			name:   "analysis warnings",
			target: &Analysis{},
			data:   analysisData,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			var err error
			assert.NotPanics(func() {
				err = tc.target.UnmarshalBinary(tc.data)
			})

			if assert.Error(err) {
				assert.Contains(err.Error(), "negative count")
			}
		})
	}
}

func Test_FirstTable_String(t *testing.T) {
	assert := assert.New(t)

	a, err := Run([]string{"E: E+T | T", "T: i"}, DefaultOptions())
	if !assert.NoError(err) {
		return
	}

	actual := a.First.String()

	assert.True(strings.Contains(actual, "FIRST"))
	assert.True(strings.Contains(actual, "E_rr"))
	assert.True(strings.Contains(actual, "{+, ε}"))
}

func Test_FollowTable_Render(t *testing.T) {
	assert := assert.New(t)

	a, err := Run([]string{"E: E+T | T", "T: i"}, DefaultOptions())
	if !assert.NoError(err) {
		return
	}

	actual := a.Follow.Render("FOLLOW", 60)

	assert.True(strings.Contains(actual, "FOLLOW"))
	assert.True(strings.Contains(actual, "{+, $}"))
	for _, line := range strings.Split(actual, "\n") {
		assert.LessOrEqual(len([]rune(line)), 60)
	}
}
