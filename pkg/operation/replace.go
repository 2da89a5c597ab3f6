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

	"github.com/rs/zerolog"
	"github.com/walteh/custool/pkg/log"
	"github.com/walteh/custool/pkg/rules"
	"github.com/walteh/custool/pkg/status"
	"github.com/walteh/custool/pkg/text"
	"github.com/walteh/custool/pkg/ui"
	"gitlab.com/tozd/go/errors"
)

// WorkbookPatterns are the spreadsheet files offered for rules
var WorkbookPatterns = []string{"*.xlsx", "*.xlsm", "*.xltx", "*.xltm"}

// 🔄 ReplaceOperation rewrites the selected files with rules from a workbook
type ReplaceOperation struct {
	BaseOperation
	DryRun bool
}

// 🏭 NewReplaceOperation creates a new replace operation
func NewReplaceOperation(opts Options, dryRun bool) *ReplaceOperation {
	return &ReplaceOperation{
		BaseOperation: NewBaseOperation(opts),
		DryRun:        dryRun,
	}
}

func (op *ReplaceOperation) Name() string {
	return "replace"
}

// 🏃 Execute runs the replace operation
func (op *ReplaceOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	op.Files.Reset()

	workbook, err := op.UI.SelectFile(ctx, "Select the Excel file", WorkbookPatterns...)
	if err != nil {
		if done, err := op.cancelled(ctx, err, "Excel file"); done {
			return err
		}
		return errors.Errorf("selecting workbook: %w", err)
	}

	files, err := op.UI.SelectFiles(ctx, "Select the C++ and/or Header files")
	if err != nil {
		if done, err := op.cancelled(ctx, err, "file"); done {
			return err
		}
		return errors.Errorf("selecting files: %w", err)
	}

	cfg := op.Config.Replace
	cols := rules.Columns{Sheet: cfg.Sheet, Old: cfg.OldColumn, New: cfg.NewColumn}
	set, err := rules.Load(ctx, workbook, cols)
	if err != nil {
		op.UI.ShowMessage(ctx, ui.LevelError, "Error", fmt.Sprintf("An error occurred: %v", err))
		return err
	}
	if set.Len() == 0 {
		op.UI.ShowMessage(ctx, ui.LevelWarning, "Warning", "No replacements found in "+workbook)
		return nil
	}
	logger.Debug().Str("workbook", workbook).Int("rules", set.Len()).Msg("replacements read from excel")

	opts := text.Options{InPlace: cfg.InPlace, Backup: cfg.Backup, DryRun: op.DryRun}

	op.Console.StartBatch(ctx, log.BatchOperation{Name: op.Name(), Source: workbook, Items: len(files)})
	op.Files.StartOperation(ctx, len(files))
	defer op.Files.FinishOperation(ctx)

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			op.Console.EndBatch(ctx)
			return errors.Errorf("replace cancelled: %w", err)
		}

		op.processFile(ctx, file, set, opts)
		op.Files.UpdateProgress(ctx, i+1)
	}

	return op.finish(ctx, op.Name(), "Success", "Successfully replaced the content.")
}

// 📄 processFile rewrites a single file and tracks the outcome
func (op *ReplaceOperation) processFile(ctx context.Context, file string, set *rules.RuleSet, opts text.Options) {
	result, err := text.RewriteFile(ctx, op.Files, file, set, opts)
	if err != nil {
		op.track(ctx, op.Name(), status.FileInfo{Path: file, Status: status.StatusFailed, Error: err})
		return
	}

	info := status.FileInfo{Path: file, Status: status.StatusUnchanged}
	if result.Modified {
		info.Status = status.StatusModified
		info.Detail = fmt.Sprintf("%d replaced, %d dropped", result.ReplacedLines, result.DroppedLines)
		if opts.DryRun {
			info.Detail += " (dry run)"
		}
	}
	op.track(ctx, op.Name(), info)

	if opts.DryRun && result.Modified {
		fmt.Fprintf(op.Out, "--- %s\n+++ %s\n%s", file, file, text.LineDiff(result))
	}
}
