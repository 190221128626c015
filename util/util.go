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

// Package util contains a collection of miscellaneous utility functions.
package util

import (
	"strings"
)

// Error is a constant error type that implements error.
type Error string

// Error fulfills the error interface of this type.
func (e Error) Error() string { return string(e) }

// StrInList returns true if a string exists inside a list, otherwise false.
func StrInList(needle string, haystack []string) bool {
	for _, x := range haystack {
		if needle == x {
			return true
		}
	}
	return false
}

// Code takes a code block as a backtick enclosed `heredoc` and removes any
// common indentation from each line. This helps inline definitions as strings
// in tests without carrying the surrounding tabs into the yaml parser, which
// rejects them. It also drops the very first line if it has zero length, and
// empties any line which only contains whitespace.
func Code(code string) string {
	output := []string{}
	lines := strings.Split(code, "\n")
	var found bool
	var strip string // prefix to remove
	for i, x := range lines {
		if !found && len(x) > 0 {
			for j := 0; j < len(x); j++ {
				if x[j] != '\t' {
					break
				}
				strip += "\t"
			}
			found = true
		}
		if i == 0 && len(x) == 0 { // drop first line if it's empty
			continue
		}
		if strings.TrimSpace(x) == "" {
			x = ""
		}
		output = append(output, strings.TrimPrefix(x, strip))
	}

	return strings.Join(output, "\n")
}

// Indent prefixes every non-empty line of a block of text with a tab. It is
// used to nest derivation traces and other multi-line diagnostics.
func Indent(str string) string {
	lines := strings.Split(str, "\n")
	for i, x := range lines {
		if x == "" {
			continue
		}
		lines[i] = "\t" + x
	}
	return strings.Join(lines, "\n")
}
