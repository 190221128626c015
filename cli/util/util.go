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

// Package util has some CLI related utility code.
package util

import (
	"log"
	"strings"

	"github.com/purpleidea/partialfix/util/errwrap"
)

// CliParseError returns a consistent error if we have a CLI parsing issue.
func CliParseError(err error) error {
	return errwrap.Wrapf(err, "cli parse error")
}

// Flags are some constant flags which are used throughout the program.
type Flags struct {
	Debug bool // add additional log messages
}

// Data is a struct of values that we usually pass to the main CLI function.
type Data struct {
	Program string
	Version string
	Tagline string
	Flags   Flags
	Args    []string // os.Args usually
}

// Logf returns a logging function which prefixes every message with the name
// of the component it belongs to.
func Logf(name string) func(format string, v ...interface{}) {
	return func(format string, v ...interface{}) {
		log.Printf(name+": "+format, v...)
	}
}

// SafeProgram returns the correct program string when given a buggy variant.
// The arg parser appends the sub command name after a space, so only the first
// word is kept.
func SafeProgram(program string) string {
	split := strings.Split(program, " ")
	return split[0]
}

// Hello logs the program banner.
func Hello(program, version string) {
	if program == "" {
		program = "<unknown>"
	}
	log.Printf("This is: %s, version: %s", program, version)
}
