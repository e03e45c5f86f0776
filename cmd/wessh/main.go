// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/beevik/wes/repl"
)

func main() {
	repl.NewShell(os.Stdin, os.Stdout).Run(true)
}
