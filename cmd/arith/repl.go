package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/zephyrtronium/arith"
)

// lineReader reads one line of input at a time. *term.Terminal is a
// lineReader.
type lineReader interface {
	ReadLine() (string, error)
}

type scanner struct {
	sc *bufio.Scanner
}

func scanLines(r io.Reader) lineReader {
	return scanner{sc: bufio.NewScanner(r)}
}

func (s scanner) ReadLine() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// interactive runs the REPL on a terminal with line editing and history.
func interactive(f *os.File, w io.Writer, trace bool) error {
	fd := int(f.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, old)
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{f, w}, "> ")
	return repl(t, t, trace)
}

// repl evaluates each line from in and writes the results to out until EOF
// or a line reading "quit" or "exit".
func repl(in lineReader, out io.Writer, trace bool) error {
	for {
		line, err := in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		}
		r, err := arith.Eval(line)
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}
		fmt.Fprintln(out, format(r, trace))
	}
}
