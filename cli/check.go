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
	"github.com/purpleidea/partialfix/util/errwrap"
	"github.com/purpleidea/partialfix/util/recwatch"
)

// CheckArgs is the CLI parsing structure and type of the parsed result. This
// particular one contains all the common flags for the `check` subcommand.
type CheckArgs struct {
	cliUtil.LangArgs // embedded (can't be a pointer)

	Trace bool `arg:"--trace" help:"print the derivation of the body"`

	Watch bool `arg:"--watch" help:"check again every time the input file changes"`
}

// Run executes the correct subcommand. It errors if there's ever an error. It
// returns true if we did activate one of the subcommands. It returns false if
// we did not.
func (obj *CheckArgs) Run(ctx context.Context, data *cliUtil.Data, name string) (bool, error) {
	if !obj.Watch {
		if err := obj.check(data, name); err != nil {
			return false, err
		}
		return true, nil
	}

	watcher := &recwatch.FileWatcher{
		Path:  obj.Input,
		Debug: obj.Debug || data.Flags.Debug,
		Logf:  cliUtil.Logf(name + ": watch"),
	}
	if err := watcher.Init(); err != nil {
		return false, errwrap.Wrapf(err, "could not watch %s", obj.Input)
	}
	defer watcher.Close()

	for {
		// an edit in progress shouldn't end the watch, so just report it
		if err := obj.check(data, name); err != nil {
			fmt.Printf("%s\n", err)
		}

		select {
		case event, ok := <-watcher.Events():
			if !ok {
				return true, nil
			}
			if err := event.Error; err != nil {
				return false, errwrap.Wrapf(err, "watch failed")
			}

		case <-ctx.Done():
			return true, nil
		}
	}
}

func (obj *CheckArgs) check(data *cliUtil.Data, name string) error {
	l, err := load(data, name, obj.LangArgs)
	if err != nil {
		return err
	}
	if obj.Trace {
		fmt.Printf("%s\n", l.Derivation())
	}
	if err := l.Check(); err != nil {
		return err
	}
	fmt.Printf("%s: ok\n", l.Definition().Name)
	return nil
}
