// Package prepll contains a CLI-driven engine for reading a context-free
// grammar one production at a time and showing it prepared for top-down
// parsing: with left recursion removed, left factored, and with its FIRST and
// FOLLOW sets.
package prepll

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/prepll/internal/config"
	"github.com/dekarrin/prepll/internal/gfile"
	"github.com/dekarrin/prepll/internal/grammar"
	"github.com/dekarrin/prepll/internal/input"
	"github.com/dekarrin/prepll/internal/plerrors"
	"github.com/dekarrin/prepll/internal/util"
	"github.com/dekarrin/rosed"
)

const (
	promptFirstProduction = "Enter a production: "
	promptNextProduction  = "Enter another production or type \"done\": "
	promptWord            = "Please enter the word to be parsed: "

	doneKeyword = "done"
)

// ErrGrammar is returned by errors.Is for an error returned from Run or
// RunFile when the entered grammar could not be prepared.
var ErrGrammar = errors.New("grammar could not be prepared")

type grammarFailure struct {
	cause error
}

func (e grammarFailure) Error() string {
	return e.cause.Error()
}

func (e grammarFailure) Unwrap() error {
	return e.cause
}

func (e grammarFailure) Is(target error) bool {
	return target == ErrGrammar
}

// Engine contains the things needed to prepare a grammar from an interactive
// shell attached to an input stream and an output stream.
type Engine struct {
	in          input.Reader
	out         *bufio.Writer
	cfg         config.Config
	forceDirect bool
	useReadline bool
	running     bool
}

// New creates a new engine ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream and a
// buffered writer on the output stream.
//
// If nil is given for the input stream, stdin is used. If nil is given for the
// output stream, stdout is used. Readline is used for input only when reading
// from stdin and writing to stdout, and forceDirectInput is not set.
func New(inputStream io.Reader, outputStream io.Writer, cfg config.Config, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	eng := &Engine{
		out:         bufio.NewWriter(outputStream),
		cfg:         cfg,
		forceDirect: forceDirectInput,
		useReadline: !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout,
	}

	if eng.useReadline {
		var err error
		eng.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	err := eng.in.Close()
	if err != nil {
		return fmt.Errorf("close input reader: %w", err)
	}

	return nil
}

// Run shows instructions, then reads productions until "done" is entered,
// followed by the word to be parsed. A line that is not a valid production is
// rejected and asked for again. The prepared grammar is then written to the
// output.
//
// If the grammar cannot be prepared, the reason is written to the output and
// an error that errors.Is considers ErrGrammar is returned.
func (eng *Engine) Run() error {
	eng.running = true
	defer func() {
		eng.running = false
	}()

	intro := "Please enter your productions in the following format:\n"
	intro += "\n"
	intro += fmt.Sprintf("S → A'Ab | ε   corresponds to   S: A'Ab | %c\n", eng.cfg.EpsilonRune())
	intro += "\n"
	intro += "Please type in the productions one after the other and confirm each one with ENTER\n"
	if eng.forceDirect {
		intro += "(direct input mode)\n"
	}
	if err := eng.write(intro); err != nil {
		return err
	}

	productions, err := eng.readProductions()
	if err != nil {
		return err
	}

	word, err := eng.readLine(promptWord, true)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("get word to parse: %w", err)
	}

	return eng.prepare(productions, word)
}

// RunFile prepares the grammar in the given grammar file data without
// reading any input and writes the result to the output.
//
// If the grammar cannot be prepared, the reason is written to the output and
// an error that errors.Is considers ErrGrammar is returned.
func (eng *Engine) RunFile(data gfile.GrammarData) error {
	eng.running = true
	defer func() {
		eng.running = false
	}()

	var sb strings.Builder
	sb.WriteString("Productions:\n")
	for _, p := range data.Productions {
		sb.WriteString("  " + p + "\n")
	}
	if err := eng.write(sb.String()); err != nil {
		return err
	}

	return eng.prepare(data.Productions, data.Word)
}

// readProductions gets production statements until the user types the done
// keyword. At least one production must be entered first. End of input after
// at least one production is treated as done.
func (eng *Engine) readProductions() ([]string, error) {
	var productions []string

	prompt := promptFirstProduction
	for {
		line, err := eng.readLine(prompt, false)
		if err != nil {
			if errors.Is(err, io.EOF) && len(productions) > 0 {
				return productions, nil
			}
			return nil, fmt.Errorf("get production: %w", err)
		}

		if len(productions) > 0 && strings.EqualFold(line, doneKeyword) {
			return productions, nil
		}

		if !grammar.ValidStatement(line, eng.cfg.EpsilonRune()) {
			msg := plerrors.DisplayMessage(grammar.SyntaxError{Statement: line})
			if err := eng.write(eng.wrap(msg) + "\n"); err != nil {
				return nil, err
			}
			continue
		}

		productions = append(productions, line)
		prompt = promptNextProduction
	}
}

// prepare runs the grammar through every stage and writes out the result.
func (eng *Engine) prepare(productions []string, word string) error {
	analysis, err := grammar.Run(productions, eng.cfg.GrammarOptions())
	if err != nil {
		msg := "ERROR: " + plerrors.DisplayMessage(err)
		if writeErr := eng.write(eng.wrap(msg) + "\n"); writeErr != nil {
			return writeErr
		}
		return grammarFailure{cause: err}
	}

	return eng.write(eng.report(analysis, word))
}

func (eng *Engine) report(a grammar.Analysis, word string) string {
	var sb strings.Builder

	sb.WriteString("\n")
	if word != "" {
		sb.WriteString(fmt.Sprintf("Word to be parsed: %s\n\n", word))
	}

	sb.WriteString("Grammar without left recursion:\n")
	sb.WriteString(indent(a.NoLeftRecursion.String()))
	sb.WriteString("\n")

	sb.WriteString("Grammar after left factoring:\n")
	sb.WriteString(indent(a.Factored.String()))

	if len(a.Warnings) > 0 {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%d %s:\n", len(a.Warnings), util.Plural(len(a.Warnings), "warning", "warnings")))
		for _, w := range a.Warnings {
			sb.WriteString(eng.wrap("  - "+w) + "\n")
		}
	}

	if eng.cfg.ShowSets {
		sb.WriteString("\n")
		sb.WriteString(a.First.Render("FIRST", eng.cfg.Width))
		sb.WriteString("\n\n")
		sb.WriteString(a.Follow.Render("FOLLOW", eng.cfg.Width))
		sb.WriteString("\n")
	}

	return sb.String()
}

// readLine shows the prompt and reads a single line of input.
func (eng *Engine) readLine(prompt string, allowBlank bool) (string, error) {
	var oldPrompt string
	var ilr *input.InteractiveLineReader
	if eng.useReadline {
		ilr = eng.in.(*input.InteractiveLineReader)
		oldPrompt = ilr.GetPrompt()
		ilr.SetPrompt(prompt)
	} else if prompt != "" {
		if err := eng.write(prompt); err != nil {
			return "", err
		}
	}

	eng.in.AllowBlank(allowBlank)
	line, err := eng.in.ReadLine()
	eng.in.AllowBlank(false)

	if eng.useReadline {
		ilr.SetPrompt(oldPrompt)
	}
	return line, err
}

func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

func (eng *Engine) wrap(s string) string {
	return rosed.Edit(s).Wrap(eng.cfg.Width).String()
}

func indent(s string) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i := range lines {
		lines[i] = "  " + lines[i]
	}
	return strings.Join(lines, "\n") + "\n"
}
