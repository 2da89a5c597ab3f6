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

package ui

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 isGlob reports whether arg contains doublestar meta characters
func isGlob(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

// 🔍 ExpandPaths expands glob arguments into matching files.
// Plain paths are passed through unchanged, duplicates are dropped and
// the first-seen order is kept.
func ExpandPaths(ctx context.Context, args []string) ([]string, error) {
	return expand(ctx, args, true)
}

// 🔍 ExpandItems is ExpandPaths with globs matching folders as well as files
func ExpandItems(ctx context.Context, args []string) ([]string, error) {
	return expand(ctx, args, false)
}

func expand(ctx context.Context, args []string, filesOnly bool) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		if !isGlob(arg) {
			add(arg)
			continue
		}

		var opts []doublestar.GlobOption
		if filesOnly {
			opts = append(opts, doublestar.WithFilesOnly())
		}
		matches, err := doublestar.FilepathGlob(filepath.FromSlash(arg), opts...)
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", arg, err)
		}
		if len(matches) == 0 {
			logger.Warn().Str("pattern", arg).Bool("files_only", filesOnly).Msg("pattern matched nothing")
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}

	return out, nil
}

// 🔍 matchesAny reports whether the base name of path matches one of patterns.
// No patterns matches everything.
func matchesAny(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	base := strings.ToLower(filepath.Base(path))
	for _, p := range patterns {
		if ok, _ := doublestar.Match(strings.ToLower(p), base); ok {
			return true
		}
	}
	return false
}
