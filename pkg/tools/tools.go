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

package tools

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/walteh/custool/pkg/rules"
)

// DefaultExtensions are the launchable file types
var DefaultExtensions = []string{".bat", ".py", ".exe", ".ps1", ".sh"}

// 🧰 Tool is a launchable script or program
type Tool struct {
	Path string // Full path
	File string // File name
	Ext  string // Lower-cased extension
	Name string // Display name
}

// ProperCase upper-cases the first letter of each space separated word and
// lower-cases the rest
func ProperCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// DisplayName returns the name shown for file: no extension, underscores as
// spaces, proper-cased
func DisplayName(file string) string {
	base := strings.TrimSuffix(file, filepath.Ext(file))
	return ProperCase(strings.ReplaceAll(base, "_", " "))
}

// 🔍 Scan lists the tools directly inside dir, in file name order
func Scan(ctx context.Context, dir string, exts []string) ([]Tool, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &rules.ResourceError{Path: dir, Reason: "Tools not available", Err: err}
	}

	var tools []Tool
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !slices.Contains(exts, ext) {
			continue
		}
		tools = append(tools, Tool{
			Path: filepath.Join(dir, e.Name()),
			File: e.Name(),
			Ext:  ext,
			Name: DisplayName(e.Name()),
		})
	}

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Int("tools", len(tools)).Msg("tools scanned")
	return tools, nil
}

// Filter keeps the tools whose display name contains query, ignoring case.
// An empty query keeps everything.
func Filter(tools []Tool, query string) []Tool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return tools
	}

	var out []Tool
	for _, t := range tools {
		if strings.Contains(strings.ToLower(t.Name), query) {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the tool whose display name or file name equals name, ignoring case
func Find(tools []Tool, name string) (Tool, bool) {
	for _, t := range tools {
		if strings.EqualFold(t.Name, name) || strings.EqualFold(t.File, name) {
			return t, true
		}
	}
	return Tool{}, false
}
