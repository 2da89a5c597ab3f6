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

// NewCopyCmd creates the copy command
func NewCopyCmd(root *opts.RootOpts) *cobra.Command {
	var (
		dest   string
		ignore []string
	)

	cmd := &cobra.Command{
		Use:   "copy [files, folders or globs...]",
		Short: "Copy files and folders into a destination folder",
		Long: `Copy places every selected file and folder under the destination folder,
overwriting what is already there. Folders are copied recursively; entries
matching an ignore pattern are skipped.`,
		Example: `  custool copy --to /mnt/share build/*.exe docs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &root.Config.Copy
			cfg.IgnorePatterns = append(cfg.IgnorePatterns, ignore...)

			static := ui.Static{Files: args, Folder: dest}
			return root.Run(cmd.Context(), operation.NewCopyOperation(root.Options(static)))
		},
	}

	cmd.Flags().StringVarP(&dest, "to", "t", "", "destination folder")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "glob of folder entries to skip (repeatable)")

	return cmd
}
