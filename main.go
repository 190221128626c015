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

// Package main is the entry point of the partialfix command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/purpleidea/partialfix/cli"
	cliUtil "github.com/purpleidea/partialfix/cli/util"
)

const (
	tagline = "least fixpoints of monotone recursive definitions"

	// Debug adds additional log messages.
	Debug = false
)

// set at compile time
var (
	program = "partialfix"
	version = "0.0.0-dev"
)

func main() {
	if Debug {
		cliUtil.Hello(program, version)
	}
	data := &cliUtil.Data{
		Program: cliUtil.SafeProgram(program),
		Version: version,
		Tagline: tagline,
		Flags: cliUtil.Flags{
			Debug: Debug,
		},
		Args: os.Args,
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := cli.CLI(ctx, data); err != nil {
		cancel()
		fmt.Println(err)
		os.Exit(1)
		return
	}
}
