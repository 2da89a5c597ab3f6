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
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/custool/pkg/config"
	"github.com/walteh/custool/pkg/log"
	"github.com/walteh/custool/pkg/status"
	"github.com/walteh/custool/pkg/ui"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is one custool command
type Operation interface {
	// Name is the command name shown to the user
	Name() string
	// Execute runs the whole batch
	Execute(ctx context.Context) error
}

// 🔧 Options contains what every operation needs
type Options struct {
	// Config is the loaded custool configuration
	Config *config.Config
	// UI asks the user for inputs and shows messages
	UI ui.Interaction
	// Files performs file I/O and tracks per-item outcomes
	Files *status.Manager
	// Console prints per-item lines
	Console *log.Logger
	// Out receives reports and diffs
	Out io.Writer
}

// 🧱 BaseOperation carries Options and the shared helpers
type BaseOperation struct {
	Options
}

// 🏗️ NewBaseOperation fills in defaults for anything left unset
func NewBaseOperation(opts Options) BaseOperation {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.UI == nil {
		opts.UI = &ui.Static{Out: opts.Out}
	}
	if opts.Files == nil {
		opts.Files = status.New(".", nil)
	}
	if opts.Console == nil {
		opts.Console = log.New(opts.Out, zerolog.Nop())
	}
	return BaseOperation{Options: opts}
}

// track records the outcome of one item and prints it
func (b *BaseOperation) track(ctx context.Context, action string, info status.FileInfo) {
	b.Files.TrackFile(ctx, info)

	op := log.FileOperation{
		Path:      info.Path,
		Target:    info.Target,
		Action:    action,
		Status:    info.Status.String(),
		Detail:    info.Detail,
		IsChanged: info.Status == status.StatusModified || info.Status == status.StatusRenamed || info.Status == status.StatusCopied,
		IsFailed:  info.Status.IsFailure(),
	}
	if info.Error != nil && op.Detail == "" {
		op.Detail = info.Error.Error()
	}
	b.Console.LogFileOperation(ctx, op)
}

// finish reports the batch result and returns a BatchError when items failed
func (b *BaseOperation) finish(ctx context.Context, name, successTitle, successMsg string) error {
	b.Console.EndBatch(ctx)

	files := b.Files.ListFiles(ctx)
	failed := b.Files.Failures(ctx)
	if len(files) > 0 {
		b.Console.Info(summarize(len(files), b.Files.Counts(ctx)))
	}

	if len(failed) > 0 {
		err := &BatchError{Operation: name, Total: len(files), Failed: failed}
		b.UI.ShowMessage(ctx, ui.LevelError, "Error", err.Error())
		return err
	}

	b.UI.ShowMessage(ctx, ui.LevelSuccess, successTitle, successMsg)
	return nil
}

var summaryOrder = []status.FileStatus{
	status.StatusModified,
	status.StatusUnchanged,
	status.StatusRenamed,
	status.StatusCopied,
	status.StatusCollision,
	status.StatusFailed,
}

// summarize renders per-status counts, e.g. "3 items: 2 modified, 1 unchanged"
func summarize(total int, counts map[status.FileStatus]int) string {
	parts := make([]string, 0, len(summaryOrder))
	for _, s := range summaryOrder {
		if n := counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	noun := "items"
	if total == 1 {
		noun = "item"
	}
	return fmt.Sprintf("%d %s: %s", total, noun, strings.Join(parts, ", "))
}

// ❌ BatchError is returned when some items of a batch failed.
// The other items were still processed.
type BatchError struct {
	Operation string
	Total     int
	Failed    []status.FileInfo
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%s: %d of %d items failed", e.Operation, len(e.Failed), e.Total)
}

// 🚫 cancelled reports a dismissed selection without failing the command
func (b *BaseOperation) cancelled(ctx context.Context, err error, what string) (bool, error) {
	if errors.Is(err, ui.ErrCancelled) {
		b.UI.ShowMessage(ctx, ui.LevelInfo, "", fmt.Sprintf("No %s selected. Exiting...", what))
		return true, nil
	}
	return false, err
}
