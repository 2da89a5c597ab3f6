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

package operation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/custool/pkg/log"
	"github.com/walteh/custool/pkg/rules"
	"github.com/walteh/custool/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📦 CopyOperation copies files and folders into a destination folder
type CopyOperation struct {
	BaseOperation
}

// 📦 NewCopyOperation creates a new copy operation
func NewCopyOperation(opts Options) *CopyOperation {
	return &CopyOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

func (op *CopyOperation) Name() string {
	return "copy"
}

// 🏃 Execute runs the copy operation
func (op *CopyOperation) Execute(ctx context.Context) error {
	op.Files.Reset()

	sources, err := op.UI.SelectItems(ctx, "Select files and folders to copy")
	if err != nil {
		if done, err := op.cancelled(ctx, err, "files or folders"); done {
			return err
		}
		return errors.Errorf("selecting sources: %w", err)
	}

	dest, err := op.UI.SelectFolder(ctx, "Select destination folder")
	if err != nil {
		if done, err := op.cancelled(ctx, err, "destination folder"); done {
			return err
		}
		return errors.Errorf("selecting destination: %w", err)
	}
	if info, err := os.Stat(dest); err != nil || !info.IsDir() {
		return &rules.ResourceError{Path: dest, Reason: "destination is not a folder", Err: err}
	}

	fmt.Fprintf(op.Out, "\nCopying items to: %s\n", dest)
	op.Console.StartBatch(ctx, log.BatchOperation{Name: op.Name(), Source: dest, Items: len(sources)})
	op.Files.StartOperation(ctx, len(sources))
	defer op.Files.FinishOperation(ctx)

	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			op.Console.EndBatch(ctx)
			return errors.Errorf("copy cancelled: %w", err)
		}

		op.processItem(ctx, src, dest)
		op.Files.UpdateProgress(ctx, i+1)
	}

	return op.finish(ctx, op.Name(), "Success", fmt.Sprintf("Copied %d items to %s", len(sources), dest))
}

// 📄 processItem copies one file or folder to dest/<basename>
func (op *CopyOperation) processItem(ctx context.Context, src, dest string) {
	name := filepath.Base(filepath.Clean(src))
	target := filepath.Join(dest, name)

	existed, err := op.Files.FileExists(ctx, target)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("target", target).Msg("checking target")
	}

	err = op.copyItem(ctx, src, target)
	if err != nil {
		fmt.Fprintf(op.Out, "%s %s (%v)\n", color.New(color.FgRed).Sprint("✖"), "Failed to copy: "+name, err)
		op.track(ctx, op.Name(), status.FileInfo{Path: src, Target: target, Status: status.StatusFailed, Error: err})
		return
	}

	fmt.Fprintf(op.Out, "%s %s\n", color.New(color.FgGreen).Sprint("✔"), "Copied: "+name)
	info := status.FileInfo{Path: src, Target: target, Status: status.StatusCopied}
	if existed {
		info.Detail = "replaced existing"
	}
	op.track(ctx, op.Name(), info)
}

func (op *CopyOperation) copyItem(ctx context.Context, src, target string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("reading source: %w", err)
	}

	if info.IsDir() {
		if inside(src, target) {
			return errors.Errorf("destination %s is inside %s", target, src)
		}
		return op.Files.CopyDir(ctx, src, target, func(rel string) bool {
			return op.shouldIgnore(ctx, rel)
		})
	}
	return op.Files.CopyFile(ctx, src, target)
}

// inside reports whether path is dir or below it
func inside(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// 🔍 shouldIgnore checks if a file should be ignored
func (op *CopyOperation) shouldIgnore(ctx context.Context, path string) bool {
	logger := zerolog.Ctx(ctx)
	for _, pattern := range op.Config.Copy.IgnorePatterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("file", path).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}

	return false
}
