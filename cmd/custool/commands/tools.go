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
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/custool/cmd/custool/opts"
	"github.com/walteh/custool/pkg/operation"
	"github.com/walteh/custool/pkg/ui"
)

// NewToolsCmd creates the tools command and its subcommands
func NewToolsCmd(root *opts.RootOpts) *cobra.Command {
	var dir string

	applyDir := func(cmd *cobra.Command) {
		if cmd.Flags().Changed("dir") {
			root.Config.Tools.Dir = dir
		}
	}

	cmd := &cobra.Command{
		Use:   "tools [filter]",
		Short: "Pick and launch a script from the tools folder",
		Long: `Tools scans the tools folder for scripts and programs, lets you pick one
and starts it in the background. A filter narrows the list by name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyDir(cmd)
			op := operation.NewToolsOperation(root.Options(ui.Static{}), operation.ToolsPick, strings.Join(args, " "))
			return root.Run(cmd.Context(), op)
		},
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "tools folder")

	list := &cobra.Command{
		Use:   "list [filter]",
		Short: "List the available tools",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyDir(cmd)
			op := operation.NewToolsOperation(root.Options(ui.Static{}), operation.ToolsList, strings.Join(args, " "))
			return root.Run(cmd.Context(), op)
		},
	}

	run := &cobra.Command{
		Use:   "run <name>",
		Short: "Launch a tool by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyDir(cmd)
			op := operation.NewToolsOperation(root.Options(ui.Static{}), operation.ToolsRun, strings.Join(args, " "))
			return root.Run(cmd.Context(), op)
		},
	}

	cmd.AddCommand(list, run)
	return cmd
}
