package driver

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ztrue/tracerr"
)

// Banner is printed once when the REPL starts, unless disabled in lox.yml.
const Banner = "Lox interpreter. Type 'exit' to exit the interpreter."

// RunPrompt reads lines until "exit" or end of input and runs each one. The
// error flags are cleared after every line so a mistake never ends the loop.
// It reads from the same buffer as the input() native.
func (s *Session) RunPrompt() error {
	if s.cfg.Banner {
		fmt.Fprintln(s.out, Banner)
	}
	for {
		fmt.Fprint(s.out, s.cfg.Prompt)
		line, err := s.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return tracerr.Wrap(err)
		}
		if line == "" && err != nil {
			fmt.Fprintln(s.out)
			return nil
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "exit" {
			return nil
		}
		s.Run(line)
		s.ResetErrors()
		if err != nil {
			fmt.Fprintln(s.out)
			return nil
		}
	}
}
