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

// NewRenameCmd creates the rename command
func NewRenameCmd(root *opts.RootOpts) *cobra.Command {
	var (
		workbook string
		noReveal bool
	)

	cmd := &cobra.Command{
		Use:   "rename [folder]",
		Short: "Rename files with regex rules from an Excel workbook",
		Long: `Rename walks the folder and applies every pattern/replacement pair from
the rules workbook to each file name in order. Existing files are never
overwritten. Every rename and error is written to a log file under the
log directory.`,
		Example: `  custool rename -w names.xlsx ./photos`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &root.Config.Rename
			flags := cmd.Flags()
			if flags.Changed("sheet") {
				cfg.Sheet, _ = flags.GetString("sheet")
			}
			if flags.Changed("log-dir") {
				cfg.LogDir, _ = flags.GetString("log-dir")
			}
			if flags.Changed("no-reveal") {
				cfg.NoReveal = noReveal
			}

			static := ui.Static{File: workbook, NoReveal: cfg.NoReveal}
			if len(args) == 1 {
				static.Folder = args[0]
			}
			return root.Run(cmd.Context(), operation.NewRenameOperation(root.Options(static)))
		},
	}

	cmd.Flags().StringVarP(&workbook, "workbook", "w", "", "rules workbook (.xlsx)")
	cmd.Flags().String("sheet", "", "sheet holding the rules (default: first sheet)")
	cmd.Flags().String("log-dir", "", "directory for rename logs")
	cmd.Flags().BoolVar(&noReveal, "no-reveal", false, "do not open the folder and log when done")

	return cmd
}
