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

package cli

import (
	"context"
	"fmt"

	cliUtil "github.com/purpleidea/partialfix/cli/util"
	"github.com/purpleidea/partialfix/fix"
	"github.com/purpleidea/partialfix/util/errwrap"
)

// EvalArgs is the CLI parsing structure and type of the parsed result. This
// particular one contains all the common flags for the `eval` subcommand.
type EvalArgs struct {
	cliUtil.LangArgs // embedded (can't be a pointer)

	Args []int64 `arg:"--arg,separate" help:"argument to evaluate at, may be repeated (defaults to the domain)"`
}

// Run executes the correct subcommand. It errors if there's ever an error. It
// returns true if we did activate one of the subcommands. It returns false if
// we did not.
func (obj *EvalArgs) Run(ctx context.Context, data *cliUtil.Data, name string) (bool, error) {
	l, err := load(data, name, obj.LangArgs)
	if err != nil {
		return false, err
	}
	args := obj.Args
	if len(args) == 0 {
		args = l.Definition().Domain
	}
	if len(args) == 0 {
		return false, fmt.Errorf("no arguments, and the definition has no domain")
	}
	for _, x := range args {
		r, err := l.Call(x)
		if err != nil && errwrap.Cause(err) == fix.ErrExhausted {
			// it may have no value, but we can't know that for sure
			fmt.Printf("%s(%d) = %s (%v)\n", l.Definition().Name, x, r, fix.ErrExhausted)
			continue
		}
		if err != nil {
			return false, err
		}
		fmt.Printf("%s(%d) = %s\n", l.Definition().Name, x, r)
	}
	return true, nil
}
