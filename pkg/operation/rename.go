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
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/custool/pkg/log"
	"github.com/walteh/custool/pkg/rename"
	"github.com/walteh/custool/pkg/rules"
	"github.com/walteh/custool/pkg/status"
	"github.com/walteh/custool/pkg/ui"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ RenameOperation renames files under a folder with regex rules from a workbook
type RenameOperation struct {
	BaseOperation
	Now func() time.Time
}

// 🏭 NewRenameOperation creates a new rename operation
func NewRenameOperation(opts Options) *RenameOperation {
	return &RenameOperation{
		BaseOperation: NewBaseOperation(opts),
		Now:           time.Now,
	}
}

func (op *RenameOperation) Name() string {
	return "rename"
}

// 🏃 Execute runs the rename operation
func (op *RenameOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	op.Files.Reset()
	cfg := op.Config.Rename

	folder, err := op.UI.SelectFolder(ctx, "Give the folder path")
	if err != nil {
		if done, err := op.cancelled(ctx, err, "folder"); done {
			return err
		}
		op.UI.ShowMessage(ctx, ui.LevelError, "", "Invalid folder path. Please check and try again.")
		return &rules.ResourceError{Path: folder, Reason: "Invalid folder path", Err: err}
	}

	workbook, err := op.UI.SelectFile(ctx, "Select Excel File", WorkbookPatterns...)
	if err != nil {
		if done, err := op.cancelled(ctx, err, "Excel file"); done {
			return err
		}
		return errors.Errorf("selecting workbook: %w", err)
	}

	set, err := rules.Load(ctx, workbook, rules.Columns{Sheet: cfg.Sheet, Old: cfg.OldColumn, New: cfg.NewColumn})
	if err != nil {
		op.UI.ShowMessage(ctx, ui.LevelError, "Error", fmt.Sprintf("An error occurred: %v", err))
		return err
	}

	renamer, err := rename.Compile(set, workbook)
	if err != nil {
		op.UI.ShowMessage(ctx, ui.LevelError, "Error", err.Error())
		return err
	}

	moves, err := renamer.Plan(ctx, folder)
	if err != nil {
		op.UI.ShowMessage(ctx, ui.LevelError, "", "Invalid folder path. Please check and try again.")
		return err
	}

	if err := op.Files.CreateDir(ctx, cfg.LogDir); err != nil {
		return errors.Errorf("creating log dir: %w", err)
	}
	journal, err := rename.OpenJournal(cfg.LogDir, op.Now())
	if err != nil {
		return err
	}

	op.Console.StartBatch(ctx, log.BatchOperation{Name: op.Name(), Source: folder, Items: len(moves)})
	op.Files.StartOperation(ctx, len(moves))

	runErr := op.apply(ctx, moves, journal)

	op.Files.FinishOperation(ctx)
	if err := journal.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		op.Console.EndBatch(ctx)
		return runErr
	}

	op.UI.ShowMessage(ctx, ui.LevelInfo, "", "Renaming complete. Log saved at: "+journal.Path())
	for _, p := range []string{folder, journal.Path()} {
		if err := op.UI.Reveal(ctx, p); err != nil {
			logger.Warn().Err(err).Str("path", p).Msg("could not reveal path")
		}
	}

	return op.finish(ctx, op.Name(), "Success", fmt.Sprintf("Renamed %d files", len(moves)-len(op.Files.Failures(ctx))))
}

// apply performs the planned moves, journaling each one
func (op *RenameOperation) apply(ctx context.Context, moves []rename.Move, journal *rename.Journal) error {
	for i, m := range moves {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("rename cancelled: %w", err)
		}

		if err := m.Apply(ctx); err != nil {
			info := status.FileInfo{Path: m.OldPath(), Target: m.NewPath(), Status: status.StatusFailed, Error: err}
			var collision *rename.NameCollisionError
			if errors.As(err, &collision) {
				info.Status = status.StatusCollision
				info.Detail = collision.Error()
			}
			op.track(ctx, op.Name(), info)
			if jerr := journal.Failed(err); jerr != nil {
				return jerr
			}
		} else {
			op.track(ctx, op.Name(), status.FileInfo{Path: m.OldPath(), Target: m.NewPath(), Status: status.StatusRenamed})
			if jerr := journal.Renamed(m.From, m.To); jerr != nil {
				return jerr
			}
		}

		op.Files.UpdateProgress(ctx, i+1)
	}
	return nil
}
