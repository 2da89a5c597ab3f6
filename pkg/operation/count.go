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

	"github.com/walteh/custool/pkg/loc"
	"github.com/walteh/custool/pkg/rules"
	"github.com/walteh/custool/pkg/ui"
	"gitlab.com/tozd/go/errors"
)

// 📊 CountOperation prints the lines of code report for a folder
type CountOperation struct {
	BaseOperation
	Where   string
	Exclude []string
}

// 🏭 NewCountOperation creates a new count operation
func NewCountOperation(opts Options, where string, exclude []string) *CountOperation {
	return &CountOperation{
		BaseOperation: NewBaseOperation(opts),
		Where:         where,
		Exclude:       exclude,
	}
}

func (op *CountOperation) Name() string {
	return "loc"
}

// 🏃 Execute runs the count
func (op *CountOperation) Execute(ctx context.Context) error {
	folder, err := op.UI.SelectFolder(ctx, "Enter the folder path")
	if err != nil {
		if done, err := op.cancelled(ctx, err, "folder"); done {
			return err
		}
		op.showResourceError(ctx, err)
		return errors.Errorf("selecting folder: %w", err)
	}

	cfg := op.Config.Count
	opts := loc.Options{
		CommentPrefixes: cfg.CommentPrefixes,
		Exclude:         append(append([]string{}, cfg.Exclude...), op.Exclude...),
		Where:           op.Where,
	}
	for _, c := range cfg.Categories {
		opts.Categories = append(opts.Categories, loc.Category{Name: c.Name, Extensions: c.Extensions})
	}

	summary, err := loc.Count(ctx, folder, opts)
	if err != nil {
		op.showResourceError(ctx, err)
		return err
	}

	return summary.Render(op.Out)
}

// showResourceError prints "Error: <reason>." for an unusable folder
func (op *CountOperation) showResourceError(ctx context.Context, err error) {
	var resErr *rules.ResourceError
	if errors.As(err, &resErr) {
		op.UI.ShowMessage(ctx, ui.LevelError, "", "Error: "+resErr.Reason+".")
	}
}
