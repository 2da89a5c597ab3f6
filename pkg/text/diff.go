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

package text

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// 🔍 LineDiff renders a line-level diff of a result as "-"/"+" prefixed lines.
// Unchanged lines are omitted.
func LineDiff(result *Result) string {
	if result == nil || !result.Modified {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(result.OriginalContent), string(result.ModifiedContent))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range SplitLines(d.Text) {
			sb.WriteString(prefix)
			sb.WriteString(strings.TrimRight(line, "\r\n"))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
