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
	"path"
	"strings"

	"github.com/spf13/afero"
)

// FsTree returns a string representation of the file system tree rooted at
// name, similar to the output of the `tree` command. Entries are sorted by
// name and directories have a trailing slash.
func FsTree(fs afero.Fs, name string) (string, error) {
	b := &strings.Builder{}
	b.WriteString(".\n") // top level dir
	if err := tree(b, fs, path.Clean(name), ""); err != nil {
		return "", err
	}
	return b.String(), nil
}

func tree(b *strings.Builder, fs afero.Fs, name, prefix string) error {
	files, err := afero.ReadDir(fs, name) // sorted by name
	if err != nil {
		return err
	}
	for i, fi := range files {
		header, indent := "├── ", "│   "
		if i == len(files)-1 { // if last
			header, indent = "└── ", "    "
		}
		p := fi.Name()
		if fi.IsDir() {
			p += "/" // identify as a dir
		}
		b.WriteString(prefix + header + p + "\n")
		if !fi.IsDir() {
			continue
		}
		if err := tree(b, fs, path.Join(name, fi.Name()), prefix+indent); err != nil {
			return err
		}
	}
	return nil
}
