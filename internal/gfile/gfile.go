// Package gfile has functions for loading grammars from PGF (Prepll Grammar
// File) files, a TOML-based format that lists production statements and the
// word to be parsed so that a grammar can be prepared without typing it in.
//
// A file of type "GRAMMAR" holds productions directly:
//
//	format = "PREPLL"
//	type = "GRAMMAR"
//	productions = ["E: E+T | T", "T: i"]
//	word = "i+i"
//
// A file of type "MANIFEST" lists other files, relative to itself, whose
// productions are combined in the order given:
//
//	format = "PREPLL"
//	type = "MANIFEST"
//	files = ["expr.toml", "term.toml"]
package gfile

import (
	"errors"
	"os"
	"unicode"

	"github.com/BurntSushi/toml"
)

const MaxManifestRecursionDepth = 32

var (
	// ErrManifestEmpty is the error returned when a manifest file is read
	// successfully but specifies no additional files to load.
	ErrManifestEmpty = errors.New("does not list any valid files to include")

	// ErrManifestStackOverflow is the error returned when the recursion level
	// of MaxManifestRecursionDepth is reached and an additional Manifest is
	// then specified, which would cause recursion to go deeper.
	ErrManifestStackOverflow = errors.New("too many manifests deep")

	// ErrManifestCircularRef is the error returned when a manifest specifies
	// any series of files that with their own manifests refer back to the
	// original manifest, and therefore cannot be followed.
	ErrManifestCircularRef = errors.New("manifest inclusion chain refers back to itself")

	// ErrNoProductions is the error returned when a bundle is loaded
	// successfully but contains no productions.
	ErrNoProductions = errors.New("no productions are defined")
)

// GrammarData contains data loaded from one or more PGF files.
type GrammarData struct {
	// Productions is every production statement in the order it was defined.
	// All of them are valid statements.
	Productions []string

	// Word is the word to be parsed. It is empty if none was given.
	Word string
}

// FileInfo contains the essential information all PGF format files must
// contain. It can be obtained from a file by reading it into memory and calling
// ScanFileInfo on the bytes.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// LoadGrammarBundle loads a grammar from the given PGF file. The file's type is
// auto-detected; it can either be "GRAMMAR" type or "MANIFEST" type. If it's
// manifest type, the files listed in it relative to it will also be loaded,
// recursively. All productions are combined into one list before being
// checked against the statement syntax that uses epsilon as the empty
// alternative.
func LoadGrammarBundle(path string, epsilon rune) (GrammarData, error) {
	unmarshaled, err := recursiveUnmarshalResource(path, nil)
	if err != nil {
		return GrammarData{}, err
	}

	return parseGrammarData(unmarshaled, epsilon)
}

// LoadGrammarFile loads a grammar from a single PGF file of type "GRAMMAR".
func LoadGrammarFile(path string, epsilon rune) (GrammarData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GrammarData{}, err
	}

	unmarshaled, err := unmarshalGrammarData(data)
	if err != nil {
		return GrammarData{}, err
	}

	return parseGrammarData(unmarshaled, epsilon)
}

// ScanFileInfo takes the given data bytes and attempts to read the PGF format
// common header info from it. The bytes are read up to the first instance of a
// table definition header and those bytes are parsed for the info. If there
// is an error reading the info, returns a non-nil error.
func ScanFileInfo(data []byte) (FileInfo, error) {
	// only run the toml parser up to the end of the top-level table
	var topLevelEnd int = -1
	var onNewLine bool
	for b := range data {
		if onNewLine {
			if data[b] == '[' {
				topLevelEnd = b
				break
			}
		}

		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var info FileInfo
	err := toml.Unmarshal(scanData, &info)
	return info, err
}
