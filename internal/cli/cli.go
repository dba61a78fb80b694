// Package cli implements the starsh launcher — it parses the argument
// vector into a session configuration and hands control to the
// embedded shell exactly once.
package cli

import (
	"fmt"
	"os"

	"go.starlark.net/starlark"

	"starsh/internal/config"
	"starsh/internal/shell"
)

// Action is what the parsed arguments ask Run to do.
type Action int

const (
	ActionRun Action = iota
	ActionHelp
	ActionVersion
)

// Flags records the options that appeared on the command line. Only
// flags that were given override the defaults file, so History keeps
// its raw (unexpanded) value here.
type Flags struct {
	Vi       bool
	NoColors bool
	History  string
}

// embedFn is swapped out by tests to observe launcher behavior
// without starting an interactive session.
var embedFn = shell.Embed

// Run parses args, resolves the configuration, and starts the
// embedded session. It returns the process exit code: 0 on help,
// version, or normal session end; 1 when the session fails; 2 on
// malformed arguments.
func Run(args []string, version string) int {
	action, flags, err := Parse(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "starsh: %v\n", err)
		fmt.Fprint(os.Stderr, usageText)
		return 2
	}

	switch action {
	case ActionHelp:
		PrintUsage()
		return 0
	case ActionVersion:
		fmt.Printf("starsh %s\n", version)
		return 0
	}

	cfg, err := Resolve(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "starsh: %v\n", err)
		return 1
	}

	globals := make(starlark.StringDict)
	locals := make(starlark.StringDict)

	opts := shell.Options{
		ViMode:      cfg.ViMode,
		NoColors:    cfg.NoColors,
		HistoryFile: cfg.HistoryFile,
		Version:     version,
	}
	if err := embedFn(globals, locals, opts); err != nil {
		fmt.Fprintf(os.Stderr, "starsh: %v\n", err)
		return 1
	}
	return 0
}

// Parse matches args against the flag grammar. It is a pure function
// of the argument vector: no I/O, no home-directory expansion.
func Parse(args []string) (Action, Flags, error) {
	var f Flags
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "-h", "--help":
			return ActionHelp, f, nil
		case "--version":
			return ActionVersion, f, nil
		case "--vi":
			f.Vi = true
		case "--no-colors":
			f.NoColors = true
		case "--history":
			i++
			if i == len(args) {
				return ActionRun, f, fmt.Errorf("--history requires a FILENAME")
			}
			f.History = args[i]
		default:
			return ActionRun, f, fmt.Errorf("unknown option %q", arg)
		}
	}
	return ActionRun, f, nil
}

// Resolve layers the command-line flags over the defaults file and
// the built-in defaults, expanding a leading ~ in the history path.
func Resolve(f Flags) (config.Config, error) {
	cfg, err := config.Load(config.FilePath())
	if err != nil {
		return cfg, err
	}
	if f.Vi {
		cfg.ViMode = true
	}
	if f.NoColors {
		cfg.NoColors = true
	}
	if f.History != "" {
		cfg.HistoryFile = config.ExpandHome(f.History)
	}
	return cfg, nil
}

// PrintUsage displays the help text.
func PrintUsage() {
	fmt.Print(usageText)
}

const usageText = `starsh — an interactive Starlark shell

Usage:
  starsh [--vi] [--no-colors] [--history FILENAME]
  starsh -h | --help
  starsh --version

Options:
  --vi                 Enable Vi key bindings.
  --no-colors          Do not use colored output.
  --history FILENAME   Path to the history file
                       (default: ~/` + config.DefaultHistoryName + `).
  -h, --help           Show this help and exit.
  --version            Print the version and exit.

Defaults may be set in ~/.config/starsh/config.yaml with the keys
vi, no-colors, and history. Command-line flags take precedence.
`
