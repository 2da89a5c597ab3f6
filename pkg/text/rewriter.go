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

// Package text rewrites text content line by line against a rule set.
package text

import (
	"strings"

	"github.com/walteh/custool/pkg/rules"
)

// 📊 Result describes what a rewrite did to one piece of content
type Result struct {
	// Modified is true when the output differs from the input
	Modified bool

	// ReplacedLines counts kept lines whose text changed
	ReplacedLines int

	// DroppedLines counts lines removed by deletion rules
	DroppedLines int

	// OriginalContent is the content before rewriting
	OriginalContent []byte

	// ModifiedContent is the content after rewriting
	ModifiedContent []byte
}

// ✂️ SplitLines splits s after every "\n", keeping terminators. A final line
// without a terminator is kept as-is; empty input has no lines.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// 🔄 RewriteLine applies set to a single line. Every rule is matched against
// the trimmed original line; substitutions are applied to the live line and
// do not stop evaluation, a matching deletion rule drops the line and does.
func RewriteLine(line string, set *rules.RuleSet) (out string, keep bool) {
	trimmed := strings.TrimSpace(line)
	out = line
	for r := range set.All() {
		if !strings.Contains(trimmed, r.Old) {
			continue
		}
		if r.IsDeletion() {
			return "", false
		}
		out = strings.ReplaceAll(out, r.Old, r.New)
	}
	return out, true
}

// 📝 RewriteLines applies set to every line, in order
func RewriteLines(lines []string, set *rules.RuleSet) (out []string, replaced, dropped int) {
	out = make([]string, 0, len(lines))
	for _, line := range lines {
		next, keep := RewriteLine(line, set)
		if !keep {
			dropped++
			continue
		}
		if next != line {
			replaced++
		}
		out = append(out, next)
	}
	return out, replaced, dropped
}

// 🎯 Rewrite applies set to the whole of content
func Rewrite(content []byte, set *rules.RuleSet) *Result {
	result := &Result{
		OriginalContent: content,
		ModifiedContent: content,
	}
	if set.Len() == 0 {
		return result
	}

	lines, replaced, dropped := RewriteLines(SplitLines(string(content)), set)
	if replaced == 0 && dropped == 0 {
		return result
	}

	result.Modified = true
	result.ReplacedLines = replaced
	result.DroppedLines = dropped
	result.ModifiedContent = []byte(strings.Join(lines, ""))
	return result
}
