// Mgmt
// Copyright (C) James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.
//
// Additional permission under GNU GPL version 3 section 7
//
// If you modify this program, or any covered work, by linking or combining it
// with embedded mcl code and modules (and that the embedded mcl code and
// modules which link with this program, contain a copy of their source code in
// the authoritative form) containing parts covered by the terms of any other
// license, the licensors of this program grant you additional permission to
// convey the resulting work. Furthermore, the licensors of this program grant
// the original author, James Shubin, additional permission to update this
// additional permission if he deems it necessary to achieve the goals of this
// additional permission.

package util

import (
	"reflect"
	"strings"
)

// LookupSubcommand returns the name of the subcommand in the obj, of a struct.
// This is useful for determining the name of the subcommand that was activated.
// It returns an empty string if a specific name was not found.
func LookupSubcommand(obj interface{}, st interface{}) string {
	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr { // max one de-referencing
		val = val.Elem()
	}

	v := reflect.ValueOf(st) // value of the struct
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := val.Field(i) // value of the field
		if f.Kind() != reflect.Ptr || f.Interface() != v.Interface() {
			continue
		}

		field := typ.Field(i)
		alias, ok := field.Tag.Lookup("arg")
		if !ok {
			continue
		}

		for _, s := range strings.Split(alias, ",") {
			split := strings.SplitN(s, ":", 2)
			if len(split) == 2 && split[0] == "subcommand" {
				return split[1] // found
			}
		}
	}
	return "" // not found
}

// LangArgs are the flags shared by every command which loads a definition.
type LangArgs struct {
	// Input is the path to a definition file, or the definition itself.
	Input string `arg:"positional,required" help:"definition file"`

	MaxIterations int `arg:"--max-iterations,env:PARTIALFIX_MAX_ITERATIONS" help:"override the number of iterates used for induction (0 uses the definition or the default)"`

	MaxDepth int `arg:"--max-depth,env:PARTIALFIX_MAX_DEPTH" help:"override the limit of nested calls when evaluating (0 uses the definition or the default)"`

	Debug bool `arg:"--debug" help:"enable debug logging"`
}
