// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gitlab.com/tozd/go/errors"
)

// JournalName returns the log file name for a run started at t
func JournalName(t time.Time) string {
	return fmt.Sprintf("filter_%s.txt", t.Format("20060102_150405"))
}

// 📝 Journal is the per-run rename log
type Journal struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// OpenJournal creates a new journal file named for now in the existing dir
func OpenJournal(dir string, now time.Time) (*Journal, error) {
	path := filepath.Join(dir, JournalName(now))
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Errorf("creating log file: %w", err)
	}
	return &Journal{path: path, f: f}, nil
}

// Path returns the journal file path
func (j *Journal) Path() string {
	return j.path
}

func (j *Journal) writeLine(format string, args ...any) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := fmt.Fprintf(j.f, format+"\n", args...); err != nil {
		return errors.Errorf("writing log file: %w", err)
	}
	return nil
}

// Renamed records a successful rename using bare file names
func (j *Journal) Renamed(from, to string) error {
	return j.writeLine("Renamed: %s -> %s", from, to)
}

// Failed records a failed rename
func (j *Journal) Failed(err error) error {
	var collision *NameCollisionError
	if errors.As(err, &collision) {
		return j.writeLine("Error: %s", collision.Error())
	}
	return j.writeLine("Error: %v", err)
}

// Close flushes and closes the journal
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.f.Close(); err != nil {
		return errors.Errorf("closing log file: %w", err)
	}
	return nil
}
