// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl implements an interactive shell for the wes assembler: a
// command loop, built atop the same command-tree dispatch and
// prefix-tree settings registry the teacher's debugger host uses for its
// CPU-emulation commands, generalized here to assembler concerns
// (target selection, output format, one-shot and repeated assembly).
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/beevik/cmd"
	"github.com/beevik/wes/asm"
	"github.com/beevik/wes/term"
)

// Shell is an interactive wes command loop. It owns no target-specific
// state beyond the currently selected TargetConfig name; every assemble
// command looks up a fresh TargetConfig, matching the way the CLI
// resolves one per invocation.
type Shell struct {
	input    *bufio.Scanner
	output   *bufio.Writer
	opts     *settings
	lastCmd  *cmd.Selection
	quitting bool
}

// NewShell creates an interactive shell reading commands from r and
// writing output to w.
func NewShell(r io.Reader, w io.Writer) *Shell {
	return &Shell{
		input:  bufio.NewScanner(r),
		output: bufio.NewWriter(w),
		opts:   newSettings(),
	}
}

// Run executes the command loop until the user quits or input is
// exhausted. When stdin is a terminal, raw input mode is enabled for the
// duration of the loop so that Ctrl-C can be handled by the caller
// instead of killing the process outright, mirroring the teacher's
// main.go EnableRawMode/Break pattern.
func (s *Shell) Run(interactive bool) {
	var restore *term.State
	if interactive && term.IsTerminal(int(os.Stdin.Fd())) {
		if st, err := term.MakeRawInput(int(os.Stdin.Fd())); err == nil {
			restore = st
			defer term.Restore(int(os.Stdin.Fd()), restore)
		}
	}

	if interactive {
		s.println()
	}

	for !s.quitting {
		if interactive {
			s.printf("wes> ")
		}

		line, err := s.getLine()
		if err != nil {
			break
		}
		if err := s.process(line); err != nil {
			s.printf("ERROR: %v\n", err)
		}
	}
}

func (s *Shell) process(line string) error {
	var sel cmd.Selection
	if line != "" {
		var err error
		sel, err = cmds.Lookup(line)
		switch {
		case err == cmd.ErrNotFound:
			s.println("Command not found.")
			return nil
		case err == cmd.ErrAmbiguous:
			s.println("Command is ambiguous.")
			return nil
		case err != nil:
			s.printf("%v\n", err)
			return nil
		}
	} else if s.lastCmd != nil {
		sel = *s.lastCmd
	}

	if sel.Command == nil {
		return nil
	}
	if sel.Command.Data == nil && sel.Command.Subtree != nil {
		s.displayCommands(sel.Command.Subtree, sel.Command)
		return nil
	}

	s.lastCmd = &sel
	handler := sel.Command.Data.(func(*Shell, cmd.Selection) error)
	return handler(s, sel)
}

// assembleFile assembles the named file against the shell's current
// target and format and writes the result to the shell's output stream.
func (s *Shell) assembleFile(filename string) error {
	target, err := targetByName(s.opts.Target)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	code, err := asm.CompileSource(target, string(src))
	if err != nil {
		if d, ok := err.(*asm.Diagnostic); ok {
			s.println(d.Render(string(src)))
			return nil
		}
		return err
	}

	if s.opts.Verbose {
		s.printf("assembled %d bytes.\n", len(code))
	}
	return writeFormatted(s.output, code, s.opts.Format)
}

func targetByName(name string) (asm.TargetConfig, error) {
	switch name {
	case "sap":
		return asm.NewSAPTarget(), nil
	case "w65c02s":
		return asm.NewW65C02STarget(), nil
	default:
		return asm.TargetConfig{}, fmt.Errorf("unrecognized target architecture %q", name)
	}
}

func writeFormatted(w io.Writer, code []byte, format string) error {
	switch format {
	case "binary":
		_, err := w.Write(code)
		return err
	case "binary_text":
		for i, b := range code {
			if _, err := fmt.Fprintf(w, "%04b: %04b %04b\n", i, b>>4, b&0x0f); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unrecognized output format %q", format)
	}
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.output, format, args...)
	s.output.Flush()
}

func (s *Shell) println(args ...any) {
	fmt.Fprintln(s.output, args...)
	s.output.Flush()
}

func (s *Shell) getLine() (string, error) {
	if s.input.Scan() {
		return s.input.Text(), nil
	}
	if s.input.Err() != nil {
		return "", s.input.Err()
	}
	return "", io.EOF
}
