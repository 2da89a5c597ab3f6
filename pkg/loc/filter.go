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

package loc

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"gitlab.com/tozd/go/errors"
)

// 🔎 Filter is a compiled boolean expression over a FileCount,
// e.g. `LOC > 100 && Category == "Source Files"`.
type Filter struct {
	source  string
	program *vm.Program
}

// NewFilter compiles expression. An empty expression keeps everything.
func NewFilter(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return &Filter{}, nil
	}

	program, err := expr.Compile(expression, expr.Env(FileCount{}), expr.AsBool())
	if err != nil {
		return nil, errors.Errorf("compile filter %q: %w", expression, err)
	}
	return &Filter{source: expression, program: program}, nil
}

// Match reports whether fc passes the filter
func (f *Filter) Match(fc FileCount) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}

	result, err := expr.Run(f.program, fc)
	if err != nil {
		return false, errors.Errorf("evaluate filter %q on %s: %w", f.source, fc.Path, err)
	}
	b, ok := result.(bool)
	if !ok {
		return false, errors.Errorf("filter %q evaluated to %T, expected bool", f.source, result)
	}
	return b, nil
}
