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

// Package recwatch provides file watching events via fsnotify.
package recwatch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Event represents a watcher event. These can include errors.
type Event struct {
	Error error
	Body  *fsnotify.Event
}

// FileWatcher sends an event every time a single file changes. It watches the
// parent directory, so that it keeps working when an editor replaces the file
// by renaming a new one over it. Run Init() on it.
type FileWatcher struct {
	// Path is the file that we're watching.
	Path string

	Debug bool
	Logf  func(format string, v ...interface{})

	safename string // clean absolute path
	watcher  *fsnotify.Watcher
	events   chan Event // one channel for events and err...
	closed   bool       // is the events channel closed?
	mutex    sync.Mutex // lock guarding the channel closing
	wg       sync.WaitGroup
	exit     chan struct{}
}

// Init starts the file watcher.
func (obj *FileWatcher) Init() error {
	if obj.Path == "" {
		return fmt.Errorf("the Path is empty")
	}
	if obj.Logf == nil {
		return fmt.Errorf("the Logf function is missing")
	}
	p, err := filepath.Abs(obj.Path)
	if err != nil {
		return err
	}
	obj.safename = filepath.Clean(p)
	obj.events = make(chan Event)
	obj.exit = make(chan struct{})

	obj.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dir := filepath.Dir(obj.safename)
	if obj.Debug {
		obj.Logf("watching: %s", dir)
	}
	if err := obj.watcher.Add(dir); err != nil {
		obj.watcher.Close()
		return fmt.Errorf("can't watch %s: %v", dir, err)
	}

	obj.wg.Add(1)
	go func() {
		defer obj.wg.Done()
		if err := obj.watch(); err != nil {
			obj.mutex.Lock()
			if !obj.closed {
				select {
				case obj.events <- Event{Error: err}:
				case <-obj.exit:
					// pass
				}
			}
			obj.mutex.Unlock()
		}
	}()
	return nil
}

// Close shuts down the watcher.
func (obj *FileWatcher) Close() error {
	close(obj.exit) // send exit signal
	obj.wg.Wait()
	var err error
	if obj.watcher != nil {
		err = obj.watcher.Close()
		obj.watcher = nil
	}
	obj.mutex.Lock()
	obj.closed = true
	close(obj.events)
	obj.mutex.Unlock()
	return err
}

// Events returns a channel of events. These include events for errors.
func (obj *FileWatcher) Events() <-chan Event { return obj.events }

func (obj *FileWatcher) watch() error {
	for {
		select {
		case event, ok := <-obj.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != obj.safename {
				continue // some other file in the dir
			}
			if event.Op&fsnotify.Chmod == fsnotify.Chmod && event.Op == fsnotify.Chmod {
				continue // contents didn't change
			}
			if obj.Debug {
				obj.Logf("event(%s): %v", event.Name, event.Op)
			}
			ev := event // copy
			select {
			case obj.events <- Event{Body: &ev}:
			case <-obj.exit:
				return nil
			}

		case err, ok := <-obj.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("unknown watcher error: %v", err)

		case <-obj.exit:
			return nil
		}
	}
}
