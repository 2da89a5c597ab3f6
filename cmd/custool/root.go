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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/custool/cmd/custool/commands"
	"github.com/walteh/custool/cmd/custool/opts"
)

// rootFlags are shared by every command
type rootFlags struct {
	configFile string
	debug      bool
	noInput    bool
}

// newRootCmd creates the custool command tree
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "custool",
		Short: "Batch tools for C++ sources and project folders",
		Long: `custool bundles small batch utilities:
  replace  rewrite lines of source files with rules from an Excel workbook
  rename   rename files under a folder with regex rules from an Excel workbook
  loc      count lines of code per file category
  copy     copy files and folders into a destination folder
  tools    list and launch the scripts in the tools folder`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), cmd.ErrOrStderr(), flags.debug)
			cmd.SetContext(ctx)
			return root.Init(ctx, cmd.OutOrStdout(), flags.configFile, !flags.noInput)
		},
	}

	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewReplaceCmd(root),
		commands.NewRenameCmd(root),
		commands.NewLocCmd(root),
		commands.NewCopyCmd(root),
		commands.NewToolsCmd(root),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file path (default: .custool.{yaml,yml,json,hcl} in the working directory)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&flags.noInput, "no-input", false, "never prompt; a missing selection ends the command")
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(ctx)
}
