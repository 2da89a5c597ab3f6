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

package text

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/custool/pkg/rules"
)

// 💾 FileManager is the file I/O a rewrite needs
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, content []byte) error
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
	BackupFile(ctx context.Context, path string) error
	RestoreFile(ctx context.Context, path string) error
}

// 🔧 Options controls how RewriteFile persists its result
type Options struct {
	// InPlace truncates and rewrites the file directly instead of writing a
	// temp file and renaming it over the original. A failure mid-write can
	// leave the file truncated.
	InPlace bool

	// Backup copies the original to <path>.bak before writing. A failed
	// write puts the backup back.
	Backup bool

	// DryRun computes the result without writing anything
	DryRun bool
}

// ❌ IOError reports a target file that could not be read or written
type IOError struct {
	Path string // Target file
	Op   string // "read", "backup" or "write"
	Err  error  // Underlying cause
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// 📄 RewriteFile reads path, applies set, and writes the result back over
// path. Files the rules do not change are left untouched.
func RewriteFile(ctx context.Context, fm FileManager, path string, set *rules.RuleSet, opts Options) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	content, err := fm.ReadFile(ctx, path)
	if err != nil {
		return nil, &IOError{Path: path, Op: "read", Err: err}
	}

	result := Rewrite(content, set)
	logger.Debug().
		Str("path", path).
		Bool("modified", result.Modified).
		Int("replaced_lines", result.ReplacedLines).
		Int("dropped_lines", result.DroppedLines).
		Msg("rewrote content")

	if !result.Modified || opts.DryRun {
		return result, nil
	}

	if opts.Backup {
		if err := fm.BackupFile(ctx, path); err != nil {
			return nil, &IOError{Path: path, Op: "backup", Err: err}
		}
	}

	write := fm.WriteFileAtomic
	if opts.InPlace {
		write = fm.WriteFile
	}
	if err := write(ctx, path, result.ModifiedContent); err != nil {
		if opts.Backup {
			if rerr := fm.RestoreFile(ctx, path); rerr != nil {
				logger.Warn().Err(rerr).Str("path", path).Msg("restoring backup")
			}
		}
		return nil, &IOError{Path: path, Op: "write", Err: err}
	}

	return result, nil
}
