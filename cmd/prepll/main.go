/*
Prepll reads a context-free grammar and prepares it for top-down parsing.

It asks for productions one at a time until "done" is entered, then for the word
to be parsed. The grammar is then shown with direct left recursion removed and
after left factoring. Optionally, the FIRST and FOLLOW sets of every
non-terminal are shown as well.

Usage:

	prepll [flags]

Productions are entered in the form "S: A'Ab | _", where uppercase letters are
non-terminals, every other character is a terminal, and an alternative
consisting only of "_" is the empty string.

The flags are:

	-v, --version
		Give the current version of prepll and then exit.

	-c, --config FILE
		Read settings from the given TOML file. Defaults to "prepll.toml" in
		the current working directory; if that file does not exist, the
		default settings are used.

	-f, --file FILE
		Read productions and the word from the given grammar file instead of
		asking for them. The file may also be a manifest listing other grammar
		files.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading input even if launched in a tty
		with stdin and stdout.

	-s, --sets
		Show the FIRST and FOLLOW sets after the prepared grammar.

	--keep-tails
		When left factoring, keep the whole of the alternatives that do not
		share the factored symbol instead of only their leading symbol.
*/
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dekarrin/prepll"
	"github.com/dekarrin/prepll/internal/config"
	"github.com/dekarrin/prepll/internal/gfile"
	"github.com/dekarrin/prepll/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitGrammarError indicates an unsuccessful program execution due to a
	// grammar that could not be prepared or a failure while running.
	ExitGrammarError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the engine.
	ExitInitError
)

var (
	returnCode int = ExitSuccess

	flagVersion   = pflag.BoolP("version", "v", false, "Give the current version of prepll and then exit.")
	flagConfig    = pflag.StringP("config", "c", config.DefaultPath, "Read settings from the given TOML file.")
	flagFile      = pflag.StringP("file", "f", "", "Read productions from the given grammar file instead of asking for them.")
	flagDirect    = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
	flagSets      = pflag.BoolP("sets", "s", false, "Show the FIRST and FOLLOW sets.")
	flagKeepTails = pflag.Bool("keep-tails", false, "Keep whole alternatives that are not factored when left factoring.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(panicErr)
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: too many arguments\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	cfg, err := config.Load(*flagConfig, pflag.Lookup("config").Changed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: loading config: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	if pflag.Lookup("sets").Changed {
		cfg.ShowSets = *flagSets
	}
	if pflag.Lookup("keep-tails").Changed {
		cfg.KeepOtherTails = *flagKeepTails
	}

	var fileData gfile.GrammarData
	if *flagFile != "" {
		fileData, err = gfile.LoadGrammarBundle(*flagFile, cfg.EpsilonRune())
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: loading grammar file: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
	}

	eng, initErr := prepll.New(os.Stdin, os.Stdout, cfg, *flagDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	if *flagFile != "" {
		err = eng.RunFile(fileData)
	} else {
		err = eng.Run()
	}
	if err != nil {
		// grammar errors have already been explained in the output
		if !errors.Is(err, prepll.ErrGrammar) {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		}
		returnCode = ExitGrammarError
		return
	}
}
