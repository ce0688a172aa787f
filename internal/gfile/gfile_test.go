package gfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/prepll/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func writeFiles(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("creating dir for %s: %v", name, err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

func Test_LoadGrammarBundle(t *testing.T) {
	testCases := []struct {
		name      string
		files     map[string]string
		load      string
		expect    GrammarData
		expectErr error
		anyErr    bool
	}{
		{
			name: "single grammar file",
			files: map[string]string{
				"expr.toml": `format = "PREPLL"
type = "GRAMMAR"
productions = ["E: E+T | T", "T: i"]
word = "i+i"
`,
			},
			load: "expr.toml",
			expect: GrammarData{
				Productions: []string{"E: E+T | T", "T: i"},
				Word:        "i+i",
			},
		},
		{
			name: "manifest combines files in order",
			files: map[string]string{
				"manifest.toml": `format = "PREPLL"
type = "MANIFEST"
files = ["e.toml", "sub/t.toml"]
`,
				"e.toml": `format = "PREPLL"
type = "GRAMMAR"
productions = ["E: E+T | T"]
`,
				"sub/t.toml": `format = "PREPLL"
type = "GRAMMAR"
productions = ["T: i"]
word = "i"
`,
			},
			load: "manifest.toml",
			expect: GrammarData{
				Productions: []string{"E: E+T | T", "T: i"},
				Word:        "i",
			},
		},
		{
			name: "circular manifest",
			files: map[string]string{
				"a.toml": `format = "PREPLL"
type = "MANIFEST"
files = ["b.toml", "g.toml"]
`,
				"b.toml": `format = "PREPLL"
type = "MANIFEST"
files = ["a.toml"]
`,
				"g.toml": `format = "PREPLL"
type = "GRAMMAR"
productions = ["S: a"]
`,
			},
			load:      "a.toml",
			expectErr: ErrManifestCircularRef,
		},
		{
			name: "manifest including itself",
			files: map[string]string{
				"a.toml": `format = "PREPLL"
type = "MANIFEST"
files = ["g.toml", "./a.toml"]
`,
				"g.toml": `format = "PREPLL"
type = "GRAMMAR"
productions = ["S: a"]
`,
			},
			load:      "a.toml",
			expectErr: ErrManifestCircularRef,
		},
		{
			name: "same file included twice is not circular",
			files: map[string]string{
				"a.toml": `format = "PREPLL"
type = "MANIFEST"
files = ["b.toml", "b.toml"]
`,
				"b.toml": `format = "PREPLL"
type = "MANIFEST"
files = ["g.toml"]
`,
				"g.toml": `format = "PREPLL"
type = "GRAMMAR"
productions = ["S: a"]
`,
			},
			load: "a.toml",
			expect: GrammarData{
				Productions: []string{"S: a", "S: a"},
			},
		},
		{
			name: "empty manifest",
			files: map[string]string{
				"m.toml": `format = "PREPLL"
type = "MANIFEST"
files = []
`,
			},
			load:      "m.toml",
			expectErr: ErrManifestEmpty,
		},
		{
			name: "invalid production",
			files: map[string]string{
				"g.toml": `format = "PREPLL"
type = "GRAMMAR"
productions = ["S: a", "S = b"]
`,
			},
			load:      "g.toml",
			expectErr: grammar.ErrSyntax,
		},
		{
			name: "no productions",
			files: map[string]string{
				"g.toml": `format = "PREPLL"
type = "GRAMMAR"
`,
			},
			load:      "g.toml",
			expectErr: ErrNoProductions,
		},
		{
			name: "wrong format",
			files: map[string]string{
				"g.toml": `format = "TUNA"
type = "GRAMMAR"
productions = ["S: a"]
`,
			},
			load:   "g.toml",
			anyErr: true,
		},
		{
			name:   "missing file",
			files:  map[string]string{},
			load:   "nope.toml",
			anyErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			dir := writeFiles(t, tc.files)

			actual, err := LoadGrammarBundle(filepath.Join(dir, tc.load), grammar.DefaultEpsilon)

			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}
			if tc.anyErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_LoadGrammarFile_RejectsManifest(t *testing.T) {
	assert := assert.New(t)

	dir := writeFiles(t, map[string]string{
		"m.toml": `format = "PREPLL"
type = "MANIFEST"
files = ["g.toml"]
`,
	})

	_, err := LoadGrammarFile(filepath.Join(dir, "m.toml"), grammar.DefaultEpsilon)

	assert.Error(err)
}

func Test_ScanFileInfo(t *testing.T) {
	assert := assert.New(t)

	data := []byte(`format = "PREPLL"
type = "GRAMMAR"

[extra]
thing = 1
`)

	actual, err := ScanFileInfo(data)

	assert.NoError(err)
	assert.Equal(FileInfo{Format: "PREPLL", Type: "GRAMMAR"}, actual)
}
