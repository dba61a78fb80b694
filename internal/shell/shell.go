// Package shell embeds an interactive Starlark session. The launcher
// hands it two namespaces and the session options; line editing, key
// bindings, and history persistence are delegated to readline, and
// evaluation to go.starlark.net.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"go.starlark.net/repl"
	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"golang.org/x/term"
)

// Options configures one interactive session.
type Options struct {
	// ViMode selects Vi-style key bindings instead of Emacs.
	ViMode bool
	// NoColors suppresses ANSI color in diagnostics and the banner.
	NoColors bool
	// HistoryFile is where readline loads and persists line history.
	HistoryFile string
	// Version is shown in the welcome banner.
	Version string
}

// errInterrupt reports that the user cancelled the current input line.
var errInterrupt = errors.New("interrupted")

func init() {
	// Chunks typed at the prompt may redefine globals, use set
	// literals, and recurse.
	resolve.AllowSet = true
	resolve.AllowGlobalReassign = true
	resolve.AllowRecursion = true
}

// Embed runs an interactive evaluation loop against the given
// namespaces and returns when the user ends the session. The
// namespaces are owned by the session for its duration; globals are
// seeded first, locals layered on top.
func Embed(globals, locals starlark.StringDict, opts Options) error {
	if !opts.NoColors && !term.IsTerminal(int(os.Stdout.Fd())) {
		opts.NoColors = true
	}

	s := newSession(globals, locals, opts, os.Stdout, os.Stderr)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptText,
		HistoryFile:     opts.HistoryFile,
		VimMode:         opts.ViMode,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    &completer{s: s},
	})
	if err != nil {
		return fmt.Errorf("initialize line editor: %w", err)
	}
	defer rl.Close()

	s.read = func(prompt string) (string, error) {
		rl.SetPrompt(prompt)
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			return "", errInterrupt
		}
		return line, err
	}

	s.banner()
	return s.loop()
}

const (
	promptText = ">>> "
	contPrompt = "... "
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiReset  = "\x1b[0m"
)

// session holds the state of one interactive run. The read callback is
// injected so the loop can be driven without a terminal in tests.
type session struct {
	thread *starlark.Thread
	env    starlark.StringDict
	opts   Options
	out    io.Writer
	errOut io.Writer
	read   func(prompt string) (string, error)
}

func newSession(globals, locals starlark.StringDict, opts Options, out, errOut io.Writer) *session {
	env := make(starlark.StringDict, len(globals)+len(locals))
	for k, v := range globals {
		env[k] = v
	}
	for k, v := range locals {
		env[k] = v
	}

	s := &session{
		env:    env,
		opts:   opts,
		out:    out,
		errOut: errOut,
	}
	s.thread = &starlark.Thread{
		Name: "starsh",
		Load: repl.MakeLoad(),
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(s.out, msg)
		},
	}
	return s
}

func (s *session) banner() {
	text := fmt.Sprintf("starsh %s (Starlark). Ctrl-D exits.", s.opts.Version)
	if s.opts.NoColors {
		fmt.Fprintln(s.out, text)
		return
	}
	fmt.Fprintf(s.out, "%s%s%s\n", ansiGreen, text, ansiReset)
}

// loop reads and evaluates statements until EOF. A cancelled line
// resets the prompt; everything else keeps the session alive.
func (s *session) loop() error {
	for {
		err := s.readEvalPrint()
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, errInterrupt):
			fmt.Fprintln(s.out, "KeyboardInterrupt")
		default:
			return err
		}
	}
}

func (s *session) printError(err error) {
	msg := err.Error()
	if evalErr, ok := err.(*starlark.EvalError); ok {
		msg = evalErr.Backtrace()
	}
	if s.opts.NoColors {
		fmt.Fprintln(s.errOut, msg)
		return
	}
	fmt.Fprintf(s.errOut, "%s%s%s\n", ansiRed, msg, ansiReset)
}
