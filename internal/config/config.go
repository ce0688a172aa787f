// Package config loads prepll settings from TOML files.
//
// An example file with every key set to its default:
//
//	epsilon = "_"
//	width = 80
//	pass_factor = 4
//	keep_other_tails = false
//	show_sets = false
//
//	[server]
//	listen_address = "localhost:8080"
//	database = "inmem"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/prepll/internal/grammar"
)

// DefaultPath is the file that settings are read from if no other is given.
const DefaultPath = "prepll.toml"

const minWidth = 20

// Config holds all settings.
type Config struct {
	// Epsilon is the single character that denotes the empty alternative in
	// production statements.
	Epsilon string `toml:"epsilon"`

	// Width is the number of columns output is wrapped to.
	Width int `toml:"width"`

	// PassFactor bounds the fixed-point passes when computing FIRST and
	// FOLLOW sets, as a multiple of the number of non-terminals.
	PassFactor int `toml:"pass_factor"`

	// KeepOtherTails keeps the full alternatives that are not factored when
	// left factoring instead of only their leading symbol.
	KeepOtherTails bool `toml:"keep_other_tails"`

	// ShowSets prints the FIRST and FOLLOW tables after the grammar.
	ShowSets bool `toml:"show_sets"`

	Server Server `toml:"server"`
}

// Server holds settings for the HTTP server.
type Server struct {
	// ListenAddress is the address the server binds to.
	ListenAddress string `toml:"listen_address"`

	// Database is where analyses are kept. It is either "inmem" or
	// "sqlite:" followed by the directory to keep the database file in.
	Database string `toml:"database"`
}

// Default returns the settings used when no file gives any.
func Default() Config {
	return Config{
		Epsilon:    string(grammar.DefaultEpsilon),
		Width:      80,
		PassFactor: grammar.DefaultPassFactor,
		Server: Server{
			ListenAddress: "localhost:8080",
			Database:      "inmem",
		},
	}
}

// Load reads settings from the TOML file at path. Keys that are not in the
// file keep their default value. If the file does not exist and mustExist is
// false, the defaults are returned with no error.
func Load(path string, mustExist bool) (Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !mustExist {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("%q: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i := range undecoded {
			keys[i] = undecoded[i].String()
		}
		return Config{}, fmt.Errorf("%q: unknown key(s): %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%q: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that every setting has a usable value.
func (cfg Config) Validate() error {
	if utf8.RuneCountInString(cfg.Epsilon) != 1 {
		return fmt.Errorf("epsilon: must be exactly one character, not %q", cfg.Epsilon)
	}
	eps := cfg.EpsilonRune()
	if (eps >= 'A' && eps <= 'Z') || unicode.IsSpace(eps) || eps == '|' || eps == ':' || eps == grammar.EndMarkerChar {
		return fmt.Errorf("epsilon: %q cannot be used; it has another meaning in productions", cfg.Epsilon)
	}

	if cfg.Width < minWidth {
		return fmt.Errorf("width: must be at least %d", minWidth)
	}

	if cfg.PassFactor < 1 {
		return fmt.Errorf("pass_factor: must be at least 1")
	}

	if cfg.Server.Database != "inmem" && !strings.HasPrefix(cfg.Server.Database, "sqlite:") {
		return fmt.Errorf("server.database: must be \"inmem\" or start with \"sqlite:\"")
	}

	return nil
}

// EpsilonRune gives the epsilon setting as a single character.
func (cfg Config) EpsilonRune() rune {
	r, _ := utf8.DecodeRuneInString(cfg.Epsilon)
	return r
}

// GrammarOptions gives the options to prepare grammars with.
func (cfg Config) GrammarOptions() grammar.Options {
	return grammar.Options{
		Epsilon:        cfg.EpsilonRune(),
		PassFactor:     cfg.PassFactor,
		KeepOtherTails: cfg.KeepOtherTails,
	}
}
