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

package status

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents the outcome of a batch step on one item
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusModified             // Content was rewritten
	StatusUnchanged            // Nothing matched, file left alone
	StatusRenamed              // File was renamed
	StatusCopied               // File or folder was copied
	StatusCollision            // Rename target already existed
	StatusFailed               // Step failed, see FileInfo.Error
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusRenamed:
		return "renamed"
	case StatusCopied:
		return "copied"
	case StatusCollision:
		return "collision"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsFailure reports whether the status counts against the batch
func (s FileStatus) IsFailure() bool {
	return s == StatusFailed || s == StatusCollision
}

// ErrSameFile is returned when a copy's source and destination are one file
var ErrSameFile = errors.New("source and destination are the same file")

// 📄 FileInfo contains the tracked outcome for one item
type FileInfo struct {
	Path   string     // Item the step ran on
	Target string     // Rename or copy destination, if any
	Status FileStatus // Outcome
	Detail string     // Short human readable detail
	Error  error      // Any error associated with this item
}

// 🔧 Manager performs file I/O for a batch and tracks each item's outcome
type Manager struct {
	baseDir   string          // Base directory for relative paths
	logger    *zerolog.Logger // Logger for status updates
	formatter FileFormatter   // Formatter for status messages

	mu    sync.RWMutex
	files map[string]FileInfo
	order []string

	total     int
	processed int
}

// 🏭 New creates a new status manager. Relative paths resolve against baseDir.
func New(baseDir string, logger *zerolog.Logger) *Manager {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Manager{
		baseDir:   filepath.Clean(baseDir),
		logger:    logger,
		formatter: NewDefaultFileFormatter(),
		files:     make(map[string]FileInfo),
	}
}

// 🔒 getAbsPath returns the path to operate on
func (m *Manager) getAbsPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.baseDir, path)
}

// WriteFile truncates path and writes content directly. An interrupted write
// can leave the file truncated.
func (m *Manager) WriteFile(ctx context.Context, path string, content []byte) error {
	absPath := m.getAbsPath(path)

	if err := os.WriteFile(absPath, content, fileMode(absPath)); err != nil {
		return errors.Errorf("writing file: %w", err)
	}
	return nil
}

// WriteFileAtomic writes content to a temp file next to path and renames it
// over path, keeping the original permissions.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	absPath := m.getAbsPath(path)
	mode := fileMode(absPath)

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting temp file mode: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.getAbsPath(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(m.getAbsPath(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

func (m *Manager) CreateDir(ctx context.Context, path string) error {
	if err := os.MkdirAll(m.getAbsPath(path), 0755); err != nil {
		return errors.Errorf("creating directory: %w", err)
	}
	return nil
}

func (m *Manager) BackupFile(ctx context.Context, path string) error {
	absPath := m.getAbsPath(path)
	backupPath := absPath + ".bak"

	// Only backup if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return errors.Errorf("checking file existence: %w", err)
	}

	if err := copyFile(absPath, backupPath); err != nil {
		return errors.Errorf("creating backup: %w", err)
	}

	return nil
}

func (m *Manager) RestoreFile(ctx context.Context, path string) error {
	absPath := m.getAbsPath(path)
	backupPath := absPath + ".bak"

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return errors.Errorf("backup file does not exist")
	} else if err != nil {
		return errors.Errorf("checking backup existence: %w", err)
	}

	if err := copyFile(backupPath, absPath); err != nil {
		return errors.Errorf("restoring from backup: %w", err)
	}

	if err := os.Remove(backupPath); err != nil {
		return errors.Errorf("removing backup: %w", err)
	}

	return nil
}

// CopyFile copies src to dst, overwriting dst and creating parent directories
func (m *Manager) CopyFile(ctx context.Context, src, dst string) error {
	dst = m.getAbsPath(dst)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}
	return copyFile(m.getAbsPath(src), dst)
}

// CopyDir copies the tree under src into dst, overwriting existing files.
// Entries for which skip returns true (slash separated, relative to src) are left out.
func (m *Manager) CopyDir(ctx context.Context, src, dst string, skip func(rel string) bool) error {
	src = m.getAbsPath(src)
	dst = m.getAbsPath(dst)

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Errorf("resolving %s: %w", path, err)
		}
		target := filepath.Join(dst, rel)

		if rel != "." && skip != nil && skip(filepath.ToSlash(rel)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.Errorf("creating directory: %w", err)
			}
			return nil
		}

		m.logger.Debug().Str("src", path).Str("dst", target).Msg("copying file")
		return copyFile(path, target)
	})
}

func (m *Manager) TrackFile(ctx context.Context, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[info.Path]; !ok {
		m.order = append(m.order, info.Path)
	}
	m.files[info.Path] = info

	msg := m.formatter.FormatFileOperation(info)
	if info.Error != nil {
		m.logger.Warn().Str("path", info.Path).Err(info.Error).Msg(msg)
		return
	}
	m.logger.Debug().Str("path", info.Path).Msg(msg)
}

// ListFiles returns tracked outcomes in the order they were first tracked
func (m *Manager) ListFiles(ctx context.Context) []FileInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.order))
	for _, path := range m.order {
		files = append(files, m.files[path])
	}
	return files
}

// Counts returns how many tracked items ended in each status
func (m *Manager) Counts(ctx context.Context) map[FileStatus]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[FileStatus]int)
	for _, info := range m.files {
		counts[info.Status]++
	}
	return counts
}

// Failures returns the tracked items whose status counts as a failure
func (m *Manager) Failures(ctx context.Context) []FileInfo {
	var failed []FileInfo
	for _, info := range m.ListFiles(ctx) {
		if info.Status.IsFailure() {
			failed = append(failed, info)
		}
	}
	return failed
}

// Reset forgets all tracked outcomes
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files = make(map[string]FileInfo)
	m.order = nil
	m.total = 0
	m.processed = 0
}

func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.processed = 0
	msg := m.formatter.FormatProgress(0, total)
	m.logger.Debug().Int("total", total).Msg(msg)
}

func (m *Manager) UpdateProgress(ctx context.Context, processed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed = processed
	msg := m.formatter.FormatProgress(processed, m.total)
	m.logger.Debug().
		Int("processed", processed).
		Int("total", m.total).
		Msg(msg)
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg := m.formatter.FormatProgress(m.processed, m.total)
	m.logger.Debug().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(msg)
}

// Helper functions

func fileMode(path string) os.FileMode {
	if fi, err := os.Stat(path); err == nil {
		return fi.Mode().Perm()
	}
	return 0644
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return errors.Errorf("reading source file info: %w", err)
	}

	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return errors.Errorf("copying %s to %s: %w", src, dst, ErrSameFile)
	}

	destination, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return errors.Errorf("copying file: %w", err)
	}

	return destination.Close()
}
