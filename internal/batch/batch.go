// Package batch evaluates files of expressions, one per line.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/arith"
)

// Line is the outcome of evaluating one line of input.
type Line struct {
	// N is the 1-based line number.
	N int
	// Text is the line with surrounding whitespace removed.
	Text string
	// Result is the result of evaluating Text, or nil if Err is set.
	Result *arith.Result
	// Err is the evaluation error, if any.
	Err error
}

// String formats the line as "Line N: text = value" or
// "Line N: text -> Error: message".
func (l Line) String() string {
	if l.Err != nil {
		return "Line " + strconv.Itoa(l.N) + ": " + l.Text + " -> Error: " + l.Err.Error()
	}
	return "Line " + strconv.Itoa(l.N) + ": " + l.Text + " = " + strconv.FormatFloat(l.Result.Value, 'g', -1, 64)
}

// Runner evaluates lines of input concurrently and reports them in order.
type Runner struct {
	workers int
	logger  *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets the maximum number of lines evaluated at once. Values
// below 1 select the number of CPUs.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		r.workers = n
	}
}

// WithLogger sets the handler for diagnostic logs.
func WithLogger(handler slog.Handler) Option {
	return func(r *Runner) {
		if handler != nil {
			r.logger = slog.New(handler)
		}
	}
}

// New creates a Runner. By default it uses one worker per CPU and discards
// logs.
func New(opts ...Option) *Runner {
	r := &Runner{
		workers: runtime.NumCPU(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads every line of in, skipping blank lines, evaluates them, and calls
// emit with each in input order. Evaluation failures are reported through
// Line.Err and do not stop the run. Run returns the first error from reading
// in, from emit, or from ctx.
func (r *Runner) Run(ctx context.Context, in io.Reader, emit func(Line) error) error {
	lines, err := r.read(in)
	if err != nil {
		return err
	}
	r.logger.DebugContext(ctx, "read input", slog.Int("lines", len(lines)), slog.Int("workers", r.workers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := range lines {
		l := &lines[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			l.Result, l.Err = arith.Eval(l.Text)
			if l.Err != nil {
				r.logger.DebugContext(ctx, "invalid expression", slog.Int("line", l.N), slog.String("err", l.Err.Error()))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, l := range lines {
		if l.Err != nil {
			failed++
		}
		if err := emit(l); err != nil {
			return fmt.Errorf("emitting line %d: %w", l.N, err)
		}
	}
	if failed > 0 {
		r.logger.WarnContext(ctx, "some expressions were invalid", slog.Int("failed", failed), slog.Int("total", len(lines)))
	}
	return nil
}

// read scans the non-blank lines of in.
func (r *Runner) read(in io.Reader) ([]Line, error) {
	var lines []Line
	sc := bufio.NewScanner(in)
	// Expressions may be arbitrarily long.
	sc.Buffer(nil, 1<<30)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		lines = append(lines, Line{N: n, Text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", n+1, err)
	}
	return lines, nil
}
