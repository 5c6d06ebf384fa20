package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"lox/interpreter-go/pkg/driver"
)

const cliToolVersion = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// runner carries the process streams into the command actions and collects
// the exit status they decide on.
type runner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	trace  bool
	code   int
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	r := &runner{stdin: stdin, stdout: stdout, stderr: stderr}
	app := r.newApp()
	if err := app.Run(append([]string{app.Name}, args...)); err != nil {
		// Flag parsing failures land here; cli has already printed help.
		fmt.Fprintf(stderr, "lox: %v\n", err)
		return driver.ExitUsage
	}
	return r.code
}

func (r *runner) newApp() *cli.App {
	return &cli.App{
		Name:      "lox",
		Usage:     "run Lox scripts or start an interactive prompt",
		UsageText: "lox [global options] [script]\n   lox [global options] command [arguments...]",
		Version:   cliToolVersion,
		Reader:    r.stdin,
		Writer:    r.stdout,
		ErrWriter: r.stderr,
		// Exit codes are decided by run, never by cli.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "load `FILE` instead of searching for lox.yml",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "trace pipeline stages and print error stack traces",
			},
			&cli.IntFlag{
				Name:  "max-call-depth",
				Usage: "override the maximum call depth (0 keeps the configured value)",
			},
		},
		Action: r.runDefault,
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run a script",
				ArgsUsage: "<script>",
				Action:    r.runScript,
			},
			{
				Name:   "repl",
				Usage:  "start the interactive prompt",
				Action: r.runPrompt,
			},
			{
				Name:      "check",
				Usage:     "scan, parse and resolve a script without running it",
				ArgsUsage: "<script>",
				Action:    r.runCheck,
			},
			{
				Name:      "tokens",
				Usage:     "print the tokens of a script",
				ArgsUsage: "<script>",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "repr", Usage: "print Go values instead of one token per line"}},
				Action:    r.runTokens,
			},
			{
				Name:      "ast",
				Usage:     "print the syntax tree of a script",
				ArgsUsage: "<script>",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "repr", Usage: "print Go values instead of s-expressions"}},
				Action:    r.runAST,
			},
		},
	}
}

// runDefault mirrors the classic entry point: no argument starts the prompt,
// one argument runs that script.
func (r *runner) runDefault(c *cli.Context) error {
	switch c.NArg() {
	case 0:
		return r.runPrompt(c)
	case 1:
		return r.runScript(c)
	}
	return r.usage("Usage: lox [script]")
}

func (r *runner) runScript(c *cli.Context) error {
	path, ok := r.scriptArg(c)
	if !ok {
		return nil
	}
	session, ok := r.session(c)
	if !ok {
		return nil
	}
	if err := session.RunFile(path); err != nil {
		return r.fail(c, driver.ExitIOErr, err)
	}
	r.code = session.ExitCode()
	return nil
}

func (r *runner) runPrompt(c *cli.Context) error {
	if c.NArg() > 0 && c.Command != nil && c.Command.Name == "repl" {
		return r.usage("Usage: lox repl")
	}
	session, ok := r.session(c)
	if !ok {
		return nil
	}
	if err := session.RunPrompt(); err != nil {
		return r.fail(c, driver.ExitIOErr, err)
	}
	r.code = driver.ExitOK
	return nil
}

func (r *runner) runCheck(c *cli.Context) error {
	return r.withSource(c, func(session *driver.Session, source string) {
		session.Check(source)
	})
}

func (r *runner) runTokens(c *cli.Context) error {
	return r.withSource(c, func(session *driver.Session, source string) {
		session.DumpTokens(source, c.Bool("repr"))
	})
}

func (r *runner) runAST(c *cli.Context) error {
	return r.withSource(c, func(session *driver.Session, source string) {
		session.DumpAST(source, c.Bool("repr"))
	})
}

func (r *runner) withSource(c *cli.Context, fn func(*driver.Session, string)) error {
	path, ok := r.scriptArg(c)
	if !ok {
		return nil
	}
	session, ok := r.session(c)
	if !ok {
		return nil
	}
	source, err := driver.ReadSource(path)
	if err != nil {
		return r.fail(c, driver.ExitIOErr, err)
	}
	fn(session, source)
	r.code = session.ExitCode()
	return nil
}

func (r *runner) scriptArg(c *cli.Context) (string, bool) {
	if c.NArg() != 1 {
		name := "lox"
		if c.Command != nil && c.Command.Name != "" {
			name += " " + c.Command.Name
		}
		r.usage(fmt.Sprintf("Usage: %s <script>", name))
		return "", false
	}
	return c.Args().First(), true
}

// session loads configuration, applies flag overrides and switches tracing
// on or off to match.
func (r *runner) session(c *cli.Context) (*driver.Session, bool) {
	cfg, err := driver.ResolveConfig(c.String("config"), ".")
	if err != nil {
		r.fail(c, driver.ExitIOErr, err)
		return nil, false
	}
	if c.Bool("trace") {
		cfg.Trace = true
	}
	if depth := c.Int("max-call-depth"); depth > 0 {
		cfg.MaxCallDepth = depth
	}
	session := driver.NewSession(cfg, driver.SessionOptions{
		Stdin:  r.stdin,
		Stdout: r.stdout,
		Stderr: r.stderr,
	})
	r.trace = session.Config().Trace
	driver.EnableTracing(r.trace)
	return session, true
}

func (r *runner) usage(message string) error {
	fmt.Fprintln(r.stderr, message)
	r.code = driver.ExitUsage
	return nil
}

// fail prints err, with its stack trace when tracing, and records code.
// Before a config is loaded only the flag can turn tracing on.
func (r *runner) fail(c *cli.Context, code int, err error) error {
	if r.trace || c.Bool("trace") {
		fmt.Fprintln(r.stderr, tracerr.SprintSourceColor(err))
	} else {
		fmt.Fprintf(r.stderr, "lox: %v\n", err)
	}
	r.code = code
	return nil
}
