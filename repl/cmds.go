// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repl

import (
	"strings"

	"github.com/beevik/cmd"
)

var cmds *cmd.Tree

func init() {
	root := cmd.NewTree("wes")

	root.AddCommand(cmd.Command{
		Name:        "assemble",
		Brief:       "Assemble a source file",
		Description: "Assemble the named file using the current target and format, and write the result to standard output.",
		Usage:       "assemble <filename>",
		Data:        (*Shell).cmdAssemble,
	})
	root.AddCommand(cmd.Command{
		Name:        "target",
		Brief:       "Select the target architecture",
		Description: "Select the target architecture used by subsequent assemble commands. Valid targets are 'sap' and 'w65c02s'. With no argument, displays the current target.",
		Usage:       "target [sap|w65c02s]",
		Data:        (*Shell).cmdTarget,
	})
	root.AddCommand(cmd.Command{
		Name:        "format",
		Brief:       "Select the output format",
		Description: "Select the output format used by subsequent assemble commands. Valid formats are 'binary' and 'binary_text'. With no argument, displays the current format.",
		Usage:       "format [binary|binary_text]",
		Data:        (*Shell).cmdFormat,
	})
	root.AddCommand(cmd.Command{
		Name:        "set",
		Brief:       "Set a shell variable",
		Description: "Set the value of a shell variable. With no arguments, displays the values of all shell variables.",
		Usage:       "set [<var> <value>]",
		Data:        (*Shell).cmdSet,
	})
	root.AddCommand(cmd.Command{
		Name:        "show",
		Brief:       "Display current shell variables",
		Description: "Display the current values of all shell variables.",
		Usage:       "show",
		Data:        (*Shell).cmdShow,
	})
	root.AddCommand(cmd.Command{
		Name:        "help",
		Brief:       "Display help for a command",
		Description: "Display help for a command, or list all commands if none is given.",
		Usage:       "help [<command>]",
		Data:        (*Shell).cmdHelp,
	})
	root.AddCommand(cmd.Command{
		Name:        "quit",
		Brief:       "Quit the shell",
		Description: "Quit the interactive shell.",
		Usage:       "quit",
		Data:        (*Shell).cmdQuit,
	})

	root.AddShortcut("a", "assemble")
	root.AddShortcut("t", "target")
	root.AddShortcut("f", "format")
	root.AddShortcut("s", "set")
	root.AddShortcut("?", "help")
	root.AddShortcut("q", "quit")

	cmds = root
}

func (s *Shell) cmdAssemble(c cmd.Selection) error {
	if len(c.Args) != 1 {
		s.displayUsage(c.Command)
		return nil
	}
	return s.assembleFile(c.Args[0])
}

func (s *Shell) cmdTarget(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		s.printf("target: %s\n", s.opts.Target)
	case 1:
		if _, err := targetByName(c.Args[0]); err != nil {
			s.printf("%v\n", err)
			return nil
		}
		s.opts.Target = c.Args[0]
		s.printf("target set to '%s'.\n", s.opts.Target)
	default:
		s.displayUsage(c.Command)
	}
	return nil
}

func (s *Shell) cmdFormat(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		s.printf("format: %s\n", s.opts.Format)
	case 1:
		switch c.Args[0] {
		case "binary", "binary_text":
			s.opts.Format = c.Args[0]
			s.printf("format set to '%s'.\n", s.opts.Format)
		default:
			s.printf("unrecognized output format %q\n", c.Args[0])
		}
	default:
		s.displayUsage(c.Command)
	}
	return nil
}

func (s *Shell) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		s.opts.Display(s.output)
	case 1:
		s.displayUsage(c.Command)
	default:
		key, value := c.Args[0], strings.Join(c.Args[1:], " ")
		if err := s.opts.Set(key, value); err != nil {
			s.printf("%v\n", err)
		} else {
			s.println("Setting updated.")
		}
	}
	return nil
}

func (s *Shell) cmdShow(c cmd.Selection) error {
	s.opts.Display(s.output)
	return nil
}

func (s *Shell) cmdHelp(c cmd.Selection) error {
	switch {
	case len(c.Args) == 0:
		s.displayCommands(cmds, nil)
	default:
		sel, err := cmds.Lookup(strings.Join(c.Args, " "))
		if err != nil {
			s.printf("%v\n", err)
			return nil
		}
		if sel.Command.Usage != "" {
			s.printf("Usage: %s\n\n", sel.Command.Usage)
		}
		switch {
		case sel.Command.Description != "":
			s.printf("%s\n\n", sel.Command.Description)
		case sel.Command.Brief != "":
			s.printf("%s.\n\n", sel.Command.Brief)
		}
		if len(sel.Command.Shortcuts) > 0 {
			s.printf("Shortcuts: %s\n\n", strings.Join(sel.Command.Shortcuts, ", "))
		}
	}
	return nil
}

func (s *Shell) cmdQuit(c cmd.Selection) error {
	s.quitting = true
	return nil
}

func (s *Shell) displayUsage(c *cmd.Command) {
	if c.Usage != "" {
		s.printf("Usage: %s\n", c.Usage)
	}
}

func (s *Shell) displayCommands(commands *cmd.Tree, parent *cmd.Command) {
	s.printf("%s commands:\n", commands.Title)
	for _, c := range commands.Commands {
		if c.Brief != "" {
			s.printf("    %-10s  %s\n", c.Name, c.Brief)
		}
	}
	s.println()
}
