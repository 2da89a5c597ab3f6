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
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/walteh/custool/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(report(err))
	}
}

// report prints err unless the batch already reported it and returns the exit code
func report(err error) int {
	var batchErr *operation.BatchError
	if !errors.As(err, &batchErr) {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("Error: "+err.Error()))
	}
	return 1
}
