package gfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/prepll/internal/grammar"
)

type topLevelManifest struct {
	Format string   `toml:"format"`
	Type   string   `toml:"type"`
	Files  []string `toml:"files"`
	Word   string   `toml:"word"`
}

// topLevelGrammarData is the top-level structure containing all keys in a
// complete PGF 'GRAMMAR' type file.
type topLevelGrammarData struct {
	Format      string   `toml:"format"`
	Type        string   `toml:"type"`
	Productions []string `toml:"productions"`
	Word        string   `toml:"word"`

	// sources gives the file each production came from, for error messages.
	sources []string
}

// manifStack is for two reasons ->
// * detect circular deps (returned as ErrManifestCircularRef)
// * avoid infinite recursion (allow up to MaxManifestRecursionDepth levels)
//
// Returns ErrManifestEmpty if and only if the first manifest in the stack is
// empty, otherwise it is not an error.
func recursiveUnmarshalResource(path string, manifStack []string) (data topLevelGrammarData, err error) {
	path = filepath.Clean(path)

	fileData, loadErr := os.ReadFile(path)
	if loadErr != nil {
		return topLevelGrammarData{}, fmt.Errorf("%q: reading from disk: %w", path, loadErr)
	}

	fileInfo, err := ScanFileInfo(fileData)
	if err != nil {
		return topLevelGrammarData{}, fmt.Errorf("%q: detecting file type: %w", path, err)
	}

	if strings.ToUpper(fileInfo.Format) != "PREPLL" {
		return topLevelGrammarData{}, fmt.Errorf("%q: file does not have a 'format = \"PREPLL\"' entry", path)
	}

	fileType := strings.ToUpper(fileInfo.Type)
	switch fileType {
	case "GRAMMAR":
		unmarshaled, err := unmarshalGrammarData(fileData)
		if err != nil {
			return unmarshaled, fmt.Errorf("grammar file %q: %w", path, err)
		}
		unmarshaled.sources = make([]string, len(unmarshaled.Productions))
		for i := range unmarshaled.sources {
			unmarshaled.sources[i] = path
		}
		return unmarshaled, nil
	case "MANIFEST":
		// check the stack to be sure we havent recursed too far and to be sure
		// we aren't about to re-scan a circular-ref'd manifest file we've
		// already brought in.
		if len(manifStack) >= MaxManifestRecursionDepth {
			return topLevelGrammarData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestStackOverflow)
		}
		for i := range manifStack {
			if manifStack[i] == path {
				return topLevelGrammarData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestCircularRef)
			}
		}

		manif, err := unmarshalManifest(fileData)
		if err != nil {
			return topLevelGrammarData{}, fmt.Errorf("manifest file %q: %w", path, err)
		}

		// the len of manifStack is included in the check because an empty
		// manifest error is really only a problem for the very first manifest.
		if len(manif.Files) < 1 && len(manifStack) == 0 {
			return topLevelGrammarData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}

		unmarshaled := topLevelGrammarData{Word: manif.Word}

		// copy the manif stack into a new value and add self to it for recursive calls
		manifSubStack := make([]string, len(manifStack)+1)
		copy(manifSubStack, manifStack)
		manifSubStack[len(manifSubStack)-1] = path

		manifDir := filepath.Dir(path)

		for _, manifRelPath := range manif.Files {
			includedFilePath := filepath.Join(manifDir, manifRelPath)

			included, err := recursiveUnmarshalResource(includedFilePath, manifSubStack)
			if err != nil {
				return topLevelGrammarData{}, fmt.Errorf("in file referred to by manifest file:\n    %q\n%w", path, err)
			}

			unmarshaled.Productions = append(unmarshaled.Productions, included.Productions...)
			unmarshaled.sources = append(unmarshaled.sources, included.sources...)
			if included.Word != "" {
				if unmarshaled.Word != "" && unmarshaled.Word != included.Word {
					return topLevelGrammarData{}, fmt.Errorf("grammar file %q: duplicate word; word has already been defined as %q", includedFilePath, unmarshaled.Word)
				}
				unmarshaled.Word = included.Word
			}
		}

		return unmarshaled, nil

	default:
		return topLevelGrammarData{}, fmt.Errorf("%q: file does not have 'type = ' entry set to either \"GRAMMAR\" or \"MANIFEST\"", path)
	}
}

// unmarshalGrammarData unmarshals grammar data from the given bytes. It does
// not check the productions.
func unmarshalGrammarData(tomlData []byte) (topLevelGrammarData, error) {
	var pgf topLevelGrammarData
	if tomlErr := toml.Unmarshal(tomlData, &pgf); tomlErr != nil {
		return pgf, tomlErr
	}

	if strings.ToUpper(pgf.Format) != "PREPLL" {
		return pgf, fmt.Errorf("in header: 'format' key must exist and be set to 'PREPLL'")
	}
	if strings.ToUpper(pgf.Type) != "GRAMMAR" {
		return pgf, fmt.Errorf("in header: 'type' must exist and be set to 'GRAMMAR'")
	}

	return pgf, nil
}

// unmarshalManifest unmarshals a PGF manifest from the given bytes.
func unmarshalManifest(tomlData []byte) (topLevelManifest, error) {
	var pgf topLevelManifest
	if tomlErr := toml.Unmarshal(tomlData, &pgf); tomlErr != nil {
		return pgf, tomlErr
	}

	if strings.ToUpper(pgf.Format) != "PREPLL" {
		return pgf, fmt.Errorf("in header: 'format' key must exist and be set to 'PREPLL'")
	}
	if strings.ToUpper(pgf.Type) != "MANIFEST" {
		return pgf, fmt.Errorf("in header: 'type' must exist and be set to 'MANIFEST'")
	}

	return pgf, nil
}

// parseGrammarData checks every production and gives the finished
// GrammarData.
func parseGrammarData(pgf topLevelGrammarData, epsilon rune) (GrammarData, error) {
	if len(pgf.Productions) < 1 {
		return GrammarData{}, ErrNoProductions
	}

	gd := GrammarData{
		Word: strings.TrimSpace(pgf.Word),
	}
	for i, p := range pgf.Productions {
		p = strings.TrimSpace(p)
		if !grammar.ValidStatement(p, epsilon) {
			src := ""
			if i < len(pgf.sources) {
				src = fmt.Sprintf("%q: ", pgf.sources[i])
			}
			return GrammarData{}, fmt.Errorf("%sproductions[%d]: %q: %w", src, i, p, grammar.ErrSyntax)
		}
		gd.Productions = append(gd.Productions, p)
	}

	return gd, nil
}
