package shell

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// readEvalPrint handles one statement: a blank line, a !shell escape,
// or a (possibly multi-line) Starlark chunk. io.EOF ends the session;
// errInterrupt cancels the current line.
func (s *session) readEvalPrint() error {
	line, err := s.read(promptText)
	if err != nil {
		return err
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "!") {
		s.shellCommand(strings.TrimPrefix(trimmed, "!"))
		return nil
	}

	// Feed the first line, then continuation lines, into the parser.
	// EOF or an interrupt mid-statement abandons the chunk.
	first := true
	var readErr error
	readline := func() ([]byte, error) {
		if first {
			first = false
			return []byte(line + "\n"), nil
		}
		next, err := s.read(contPrompt)
		if err != nil {
			readErr = err
			return nil, err
		}
		return []byte(next + "\n"), nil
	}

	f, err := syntax.ParseCompoundStmt("<stdin>", readline)
	if readErr != nil {
		return readErr
	}
	if err != nil {
		s.printError(err)
		return nil
	}

	if expr := soleExpr(f); expr != nil {
		v, err := starlark.EvalExpr(s.thread, expr, s.env)
		if err != nil {
			s.printError(err)
			return nil
		}
		if v != starlark.None {
			s.env["_"] = v
			fmt.Fprintln(s.out, v.String())
		}
		return nil
	}

	if err := starlark.ExecREPLChunk(f, s.thread, s.env); err != nil {
		s.printError(err)
	}
	return nil
}

// soleExpr returns the expression when the chunk is a single
// expression statement, so its value can be echoed.
func soleExpr(f *syntax.File) syntax.Expr {
	if len(f.Stmts) == 1 {
		if stmt, ok := f.Stmts[0].(*syntax.ExprStmt); ok {
			return stmt.X
		}
	}
	return nil
}

// shellCommand runs a !-escaped line through the system shell with
// the session's stdio. A non-zero exit is already visible to the user
// through the command's own output, so only launch failures are
// reported.
func (s *session) shellCommand(command string) {
	if strings.TrimSpace(command) == "" {
		return
	}
	cmd := exec.Command("/bin/sh", "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = s.out
	cmd.Stderr = s.errOut
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return
		}
		s.printError(err)
	}
}
