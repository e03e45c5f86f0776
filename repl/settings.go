// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repl

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// settings holds the shell's configurable options. Fields are tagged with
// a "doc" string displayed by the show command, the same way the
// teacher's debugger settings struct documents itself.
type settings struct {
	Target  string `doc:"target architecture (sap, w65c02s)"`
	Format  string `doc:"output format (binary, binary_text)"`
	Verbose bool   `doc:"report the number of bytes assembled"`
}

func newSettings() *settings {
	return &settings{
		Target: "sap",
		Format: "binary_text",
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	t := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, t.NumField())
	for i := range settingsFields {
		f := t.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

// Display writes every setting and its current value to w.
func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var rendered string
		switch f.kind {
		case reflect.String:
			rendered = fmt.Sprintf("    %-10s %q", f.name, v.String())
		case reflect.Bool:
			rendered = fmt.Sprintf("    %-10s %v", f.name, v.Bool())
		default:
			rendered = fmt.Sprintf("    %-10s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-28s (%s)\n", rendered, f.doc)
	}
}

// Set looks up key by unambiguous prefix and assigns value to it.
func (s *settings) Set(key, value string) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	vOut := reflect.ValueOf(s).Elem().Field(f.index)
	switch f.kind {
	case reflect.Bool:
		switch strings.ToLower(value) {
		case "true", "1", "on":
			vOut.SetBool(true)
		case "false", "0", "off":
			vOut.SetBool(false)
		default:
			return errors.New("invalid boolean value")
		}
	case reflect.String:
		vOut.SetString(value)
	default:
		return errors.New("unsupported setting type")
	}
	return nil
}
