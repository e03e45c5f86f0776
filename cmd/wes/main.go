// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/beevik/wes/asm"
)

var (
	target = flag.String("a", "sap", "target architecture (sap, w65c02s)")
	format = flag.String("f", "binary", "output format (binary, binary_text)")
)

func init() {
	flag.CommandLine.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wes [-a target] [-f format] [file]")
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	cfg, err := targetConfig(*target)
	if err != nil {
		exitOnError(err)
	}

	src, err := readSource(flag.Args())
	if err != nil {
		exitOnError(err)
	}

	code, err := asm.CompileSource(cfg, src)
	if err != nil {
		exitOnDiagnostic(err, src)
	}

	if err := writeOutput(os.Stdout, code, *format); err != nil {
		exitOnError(err)
	}
}

func targetConfig(name string) (asm.TargetConfig, error) {
	switch name {
	case "sap":
		return asm.NewSAPTarget(), nil
	case "w65c02s":
		return asm.NewW65C02STarget(), nil
	default:
		return asm.TargetConfig{}, fmt.Errorf("unrecognized target architecture %q", name)
	}
}

func readSource(args []string) (string, error) {
	if len(args) > 0 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func writeOutput(w io.Writer, code []byte, format string) error {
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

// exitOnDiagnostic renders a compiler diagnostic against the original
// source text, the same way the interactive assembler does.
func exitOnDiagnostic(err error, src string) {
	if d, ok := err.(*asm.Diagnostic); ok {
		fmt.Fprintln(os.Stderr, d.Render(src))
	} else {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	}
	os.Exit(1)
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
