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

package opts

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/custool/pkg/config"
	"github.com/walteh/custool/pkg/log"
	"github.com/walteh/custool/pkg/operation"
	"github.com/walteh/custool/pkg/status"
	"github.com/walteh/custool/pkg/ui"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config  *config.Config
	Out     io.Writer
	Console *log.Logger
	Files   *status.Manager
	// Prompt asks for anything not given on the command line, nil with --no-input
	Prompt ui.Interaction
}

// Init loads the configuration and creates the shared dependencies
func (o *RootOpts) Init(ctx context.Context, out io.Writer, configFile string, interactive bool) error {
	logger := zerolog.Ctx(ctx)

	wd, err := os.Getwd()
	if err != nil {
		return errors.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.LoadOrDefault(ctx, wd, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	o.Config = cfg
	o.Out = out
	o.Console = log.New(out, *logger)
	o.Files = status.New(wd, logger)
	o.Prompt = nil
	if interactive {
		o.Prompt = ui.NewTerminal(out)
	}
	return nil
}

// Interaction answers from the command line values, falling back to Prompt
func (o *RootOpts) Interaction(static ui.Static) ui.Interaction {
	static.Fallback = o.Prompt
	static.Out = o.Out
	return &static
}

// Options builds the operation options for one command
func (o *RootOpts) Options(static ui.Static) operation.Options {
	return operation.Options{
		Config:  o.Config,
		UI:      o.Interaction(static),
		Files:   o.Files,
		Console: o.Console,
		Out:     o.Out,
	}
}

// Run prints the command header and runs op
func (o *RootOpts) Run(ctx context.Context, op operation.Operation) error {
	o.Console.Header(op.Name())
	return operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, op)
}
