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

//go:build !root

package util

import (
	"testing"
)

func TestStrInList0(t *testing.T) {
	if !StrInList("fix", []string{"lfp", "fix"}) {
		t.Errorf("expected to find needle")
	}
	if StrInList("gfp", []string{"lfp", "fix"}) {
		t.Errorf("did not expect to find needle")
	}
	if StrInList("", nil) {
		t.Errorf("empty haystack can't contain anything")
	}
}

func TestCode0(t *testing.T) {
	code := Code(`
	name: find
	body:
		call: n
	`)
	exp := "name: find\nbody:\n\tcall: n\n"
	if code != exp {
		t.Errorf("unexpected code: %q", code)
	}
}

func TestCode1(t *testing.T) {
	code := Code(`
		name: find
		body:
		  call: n
	`)
	exp := "name: find\nbody:\n  call: n\n"
	if code != exp {
		t.Errorf("unexpected code: %q", code)
	}
}

func TestIndent0(t *testing.T) {
	if s := Indent("a\n\nb"); s != "\ta\n\n\tb" {
		t.Errorf("unexpected indent: %q", s)
	}
}

func TestError0(t *testing.T) {
	const err = Error("boom")
	if err.Error() != "boom" {
		t.Errorf("unexpected error string: %s", err)
	}
}
