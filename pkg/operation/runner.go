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
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 OperationRunner executes operations
type OperationRunner struct {
	logger *zerolog.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger) *OperationRunner {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &OperationRunner{
		logger: logger,
	}
}

// 🏃 Run executes an operation. Items run one after another; a cancelled
// context stops the batch before the next item.
func (r *OperationRunner) Run(ctx context.Context, op Operation) error {
	if err := ctx.Err(); err != nil {
		return errors.Errorf("operation cancelled: %w", err)
	}

	start := time.Now()
	r.logger.Debug().Str("operation", op.Name()).Msg("starting operation")

	err := op.Execute(ctx)

	ev := r.logger.Debug()
	if err != nil {
		ev = r.logger.Warn().Err(err)
	}
	ev.Str("operation", op.Name()).Dur("took", time.Since(start)).Msg("operation finished")

	return err
}
