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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/custool/cmd/custool/opts"
	"github.com/walteh/custool/pkg/operation"
	"github.com/walteh/custool/pkg/ui"
)

// NewReplaceCmd creates the replace command
func NewReplaceCmd(root *opts.RootOpts) *cobra.Command {
	var (
		workbook string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "replace [files or globs...]",
		Short: "Rewrite source lines with rules from an Excel workbook",
		Long: `Replace reads old/new pairs from the rules workbook and rewrites every
selected file line by line. A line containing an old value has every
occurrence replaced; an empty new value drops the line. Files are written
atomically unless --in-place is set.`,
		Example: `  custool replace -w rules.xlsx src/**/*.cpp include/*.h
  custool replace -w rules.xlsx --dry-run main.cpp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &root.Config.Replace
			flags := cmd.Flags()
			if flags.Changed("sheet") {
				cfg.Sheet, _ = flags.GetString("sheet")
			}
			if flags.Changed("in-place") {
				cfg.InPlace, _ = flags.GetBool("in-place")
			}
			if flags.Changed("backup") {
				cfg.Backup, _ = flags.GetBool("backup")
			}

			op := operation.NewReplaceOperation(root.Options(ui.Static{File: workbook, Files: args}), dryRun)
			return root.Run(cmd.Context(), op)
		},
	}

	cmd.Flags().StringVarP(&workbook, "workbook", "w", "", "rules workbook (.xlsx)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the line diff instead of writing")
	cmd.Flags().String("sheet", "", "sheet holding the rules")
	cmd.Flags().Bool("in-place", false, "truncate and rewrite files instead of replacing them atomically")
	cmd.Flags().Bool("backup", false, "keep a .bak copy of every rewritten file")

	return cmd
}
