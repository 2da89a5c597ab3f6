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
	"bufio"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/custool/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// 📂 Category groups files by name suffix
type Category struct {
	Name       string
	Extensions []string
}

var (
	DefaultCategories = []Category{
		{Name: "Header Files", Extensions: []string{".h"}},
		{Name: "Source Files", Extensions: []string{".cpp"}},
	}
	DefaultCommentPrefixes = []string{"#", "//", "/*", "*", "*/"}
)

// ⚙️ Options controls a count
type Options struct {
	Categories      []Category
	CommentPrefixes []string
	Exclude         []string // doublestar patterns matched against slash paths relative to the root
	Where           string   // expr filter over FileCount, empty keeps every file
}

// 📄 FileCount is the result for one file. Its fields are the variables
// available to a Where expression.
type FileCount struct {
	Name     string
	Path     string
	Category string
	LOC      int
}

// 📊 CategoryCount holds the files of one category in walk order
type CategoryCount struct {
	Name  string
	Files []FileCount
	LOC   int
}

// KLOC returns LOC / 1000
func (c CategoryCount) KLOC() float64 {
	return float64(c.LOC) / 1000
}

// 📋 Summary is the result of a count, one entry per configured category
type Summary struct {
	Root       string
	Categories []CategoryCount
}

// Total returns the LOC of every category
func (s *Summary) Total() int {
	total := 0
	for _, c := range s.Categories {
		total += c.LOC
	}
	return total
}

// isCode reports whether line counts as a line of code
func isCode(line string, prefixes []string) bool {
	trimmed := strings.TrimSpace(strings.ToValidUTF8(line, ""))
	if trimmed == "" {
		return false
	}
	for _, p := range prefixes {
		if strings.HasPrefix(trimmed, p) {
			return false
		}
	}
	return true
}

// 🔢 CountLines counts the lines of r that are neither blank nor start with one
// of prefixes. \n, \r\n and \r all end a line; invalid UTF-8 is ignored.
func CountLines(r io.Reader, prefixes []string) (int, error) {
	br := bufio.NewReader(r)
	count := 0
	for {
		chunk, err := br.ReadString('\n')
		for _, line := range strings.Split(chunk, "\r") {
			if isCode(line, prefixes) {
				count++
			}
		}
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, err
		}
	}
}

// CountFile counts the lines of code in the file at path
func CountFile(path string, prefixes []string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	n, err := CountLines(f, prefixes)
	if err != nil {
		return 0, errors.Errorf("reading %s: %w", path, err)
	}
	return n, nil
}

// categoryOf returns the index of the first category name matches, or -1
func categoryOf(name string, categories []Category) int {
	lower := strings.ToLower(name)
	for i, c := range categories {
		for _, ext := range c.Extensions {
			if strings.HasSuffix(lower, strings.ToLower(ext)) {
				return i
			}
		}
	}
	return -1
}

// 🔍 excluded checks if rel matches one of the exclude patterns
func excluded(ctx context.Context, rel string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("file", rel).Str("pattern", pattern).Msg("file excluded by pattern")
			return true
		}
	}
	return false
}

// 🚀 Count walks root and counts lines of code per category
func Count(ctx context.Context, root string, opts Options) (*Summary, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, &rules.ResourceError{Path: root, Reason: "Folder does not exist", Err: err}
	}

	if len(opts.Categories) == 0 {
		opts.Categories = DefaultCategories
	}
	if opts.CommentPrefixes == nil {
		opts.CommentPrefixes = DefaultCommentPrefixes
	}

	filter, err := NewFilter(opts.Where)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Root: root}
	for _, c := range opts.Categories {
		summary.Categories = append(summary.Categories, CategoryCount{Name: c.Name})
	}

	logger := zerolog.Ctx(ctx)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		idx := categoryOf(d.Name(), opts.Categories)
		if idx < 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if excluded(ctx, filepath.ToSlash(rel), opts.Exclude) {
			return nil
		}

		n, err := CountFile(path, opts.CommentPrefixes)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("skipping unreadable file")
			return nil
		}

		fc := FileCount{
			Name:     d.Name(),
			Path:     filepath.ToSlash(rel),
			Category: opts.Categories[idx].Name,
			LOC:      n,
		}
		keep, err := filter.Match(fc)
		if err != nil {
			return err
		}
		if !keep {
			return nil
		}

		cat := &summary.Categories[idx]
		cat.Files = append(cat.Files, fc)
		cat.LOC += n
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("counting %s: %w", root, err)
	}

	logger.Debug().Str("root", root).Int("loc", summary.Total()).Msg("count complete")
	return summary, nil
}
