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

// NewLocCmd creates the loc command
func NewLocCmd(root *opts.RootOpts) *cobra.Command {
	var (
		where   string
		exclude []string
	)

	cmd := &cobra.Command{
		Use:     "loc [folder]",
		Aliases: []string{"count"},
		Short:   "Count lines of code per file category",
		Long: `Loc counts the non-blank, non-comment lines of every file under the
folder whose extension belongs to a category, and prints a table per
category with its total and KLOC.

--where filters files with an expression over Name, Path, Category and LOC,
for example 'LOC > 100 && Category == "Source Files"'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			static := ui.Static{}
			if len(args) == 1 {
				static.Folder = args[0]
			}
			return root.Run(cmd.Context(), operation.NewCountOperation(root.Options(static), where, exclude))
		},
	}

	cmd.Flags().StringVar(&where, "where", "", "only count files matching this expression")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "x", nil, "glob of paths to skip, relative to the folder (repeatable)")

	return cmd
}
