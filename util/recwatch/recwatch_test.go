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

package recwatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcher0(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.yaml")
	if err := os.WriteFile(file, []byte("name: a\n"), 0644); err != nil {
		t.Errorf("write failed: %+v", err)
		return
	}

	obj := &FileWatcher{
		Path: file,
		Logf: t.Logf,
	}
	if err := obj.Init(); err != nil {
		t.Errorf("init failed: %+v", err)
		return
	}
	defer obj.Close()

	// some other file in the same dir must not trigger an event
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644); err != nil {
		t.Errorf("write failed: %+v", err)
		return
	}
	if err := os.WriteFile(file, []byte("name: b\n"), 0644); err != nil {
		t.Errorf("write failed: %+v", err)
		return
	}

	select {
	case event, ok := <-obj.Events():
		if !ok {
			t.Errorf("channel closed")
			return
		}
		if event.Error != nil {
			t.Errorf("watcher failed: %+v", event.Error)
			return
		}
		if filepath.Clean(event.Body.Name) != file {
			t.Errorf("unexpected event for: %s", event.Body.Name)
		}
	case <-time.After(10 * time.Second):
		t.Errorf("timeout waiting for an event")
	}
}

func TestFileWatcherInit0(t *testing.T) {
	obj := &FileWatcher{
		Path: filepath.Join(t.TempDir(), "missing", "main.yaml"),
		Logf: t.Logf,
	}
	if err := obj.Init(); err == nil {
		obj.Close()
		t.Errorf("expected a missing dir to fail")
	}
	if err := (&FileWatcher{Path: "x"}).Init(); err == nil {
		t.Errorf("expected a missing Logf to fail")
	}
}
