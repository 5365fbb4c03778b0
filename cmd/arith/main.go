package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/zephyrtronium/arith"
	"github.com/zephyrtronium/arith/internal/batch"
)

const usage = `usage: arith <command> [arguments]

commands:
  parse [-j N] [-v] [-trace] FILE   evaluate expressions from FILE, one per line ("-" for stdin)
  eval [-trace] [--] EXPR...        evaluate one expression (use -- before a leading minus)
  repl [-trace]                     read and evaluate expressions interactively
  help                              show this help message
  credits                           show credits
`

const credits = `arith: arithmetic expression evaluator
supports + - * /, brackets, unary minus, log, and sqrt
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes a command and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "arith: ", 0)
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return 0
	}
	switch cmd, args := args[0], args[1:]; cmd {
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	case "credits":
		fmt.Fprint(stdout, credits)
		return 0
	case "parse":
		return parseCmd(args, stdin, stdout, stderr, logger)
	case "eval":
		return evalCmd(args, stdout, stderr, logger)
	case "repl":
		return replCmd(args, stdin, stdout, stderr, logger)
	default:
		logger.Printf("unknown command: %s", cmd)
		fmt.Fprint(stderr, usage)
		return 2
	}
}

func parseCmd(args []string, stdin io.Reader, stdout, stderr io.Writer, logger *log.Logger) int {
	var (
		workers int
		verbose bool
		trace   bool
	)
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&workers, "j", 0, "number of lines to evaluate at once (default one per CPU)")
	fs.BoolVar(&verbose, "v", false, "log debugging information")
	fs.BoolVar(&trace, "trace", false, "print operand and operator traces")
	if err := fs.Parse(args); err != nil {
		return flagStatus(err)
	}
	if fs.NArg() != 1 {
		logger.Print("parse: provide the name of a file to parse")
		return 2
	}

	in, closer, err := infile(fs.Arg(0), stdin)
	if err != nil {
		logger.Printf("could not open file: %v", err)
		return 1
	}
	defer closer()

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	r := batch.New(
		batch.WithWorkers(workers),
		batch.WithLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	)
	err = r.Run(context.Background(), in, func(l batch.Line) error {
		s := l.String()
		if trace && l.Err == nil {
			s += "  " + l.Result.String()
		}
		_, err := fmt.Fprintln(stdout, s)
		return err
	})
	if err != nil {
		logger.Printf("parse %s: %v", fs.Arg(0), err)
		return 1
	}
	return 0
}

func evalCmd(args []string, stdout, stderr io.Writer, logger *log.Logger) int {
	var trace bool
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&trace, "trace", false, "print operand and operator traces")
	if err := fs.Parse(args); err != nil {
		return flagStatus(err)
	}
	src := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(src) == "" {
		logger.Print("eval: provide an expression to evaluate")
		return 2
	}
	r, err := arith.Eval(src)
	if err != nil {
		logger.Print(err)
		return 1
	}
	fmt.Fprintln(stdout, format(r, trace))
	return 0
}

func replCmd(args []string, stdin io.Reader, stdout, stderr io.Writer, logger *log.Logger) int {
	var trace bool
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&trace, "trace", false, "print operand and operator traces")
	if err := fs.Parse(args); err != nil {
		return flagStatus(err)
	}
	if fs.NArg() != 0 {
		logger.Print("repl: unexpected arguments")
		return 2
	}

	var err error
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		err = interactive(f, stdout, trace)
	} else {
		err = repl(scanLines(stdin), stdout, trace)
	}
	if err != nil {
		logger.Printf("repl: %v", err)
		return 1
	}
	return 0
}

// infile opens the named input. "-" names stdin.
func infile(name string, stdin io.Reader) (io.Reader, func(), error) {
	if name == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// format renders a result as its value, or with its trace if trace is set.
func format(r *arith.Result, trace bool) string {
	if trace {
		return r.String()
	}
	return strconv.FormatFloat(r.Value, 'g', -1, 64)
}

func flagStatus(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 2
}
