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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/custool/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "empty", content: "", want: 0},
		{name: "code_only", content: "int a;\nint b;\n", want: 2},
		{name: "unterminated_last_line", content: "int a;\nint b;", want: 2},
		{name: "blank_and_whitespace", content: "\n   \n\t\nint a;\n", want: 1},
		{
			name:    "comment_prefixes",
			content: "# define\n// note\n/* block\n * middle\n */\nreturn 0;\n",
			want:    1,
		},
		{name: "indented_comment", content: "    // indented\n    x++;\n", want: 1},
		{name: "trailing_comment_counts", content: "x++; // bump\n", want: 1},
		{name: "crlf", content: "a;\r\n\r\nb;\r\n", want: 2},
		{name: "lone_cr", content: "a;\rb;\r\rc;", want: 3},
		{name: "invalid_utf8_only", content: "\xff\xfe\n", want: 0},
		{name: "invalid_utf8_with_code", content: "x\xff = 1;\n", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CountLines(strings.NewReader(tt.content), DefaultCommentPrefixes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCount(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.h"), "#pragma once\nint a();\n")
	write(t, filepath.Join(root, "a.cpp"), "// impl\nint a() {\n  return 1;\n}\n")
	write(t, filepath.Join(root, "src", "b.cpp"), "int b;\n")
	write(t, filepath.Join(root, "readme.md"), "# title\ntext\n")
	write(t, filepath.Join(root, "third_party", "lib", "c.h"), "int c;\n")

	t.Run("defaults", func(t *testing.T) {
		summary, err := Count(testContext(t), root, Options{})
		require.NoError(t, err)
		require.Len(t, summary.Categories, 2)

		headers := summary.Categories[0]
		assert.Equal(t, "Header Files", headers.Name)
		assert.Equal(t, 2, headers.LOC)
		assert.Len(t, headers.Files, 2)

		sources := summary.Categories[1]
		assert.Equal(t, "Source Files", sources.Name)
		assert.Equal(t, 4, sources.LOC)
		assert.Equal(t, []FileCount{
			{Name: "a.cpp", Path: "a.cpp", Category: "Source Files", LOC: 3},
			{Name: "b.cpp", Path: "src/b.cpp", Category: "Source Files", LOC: 1},
		}, sources.Files)

		assert.Equal(t, 6, summary.Total())
	})

	t.Run("exclude", func(t *testing.T) {
		summary, err := Count(testContext(t), root, Options{Exclude: []string{"**/third_party/**"}})
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Categories[0].LOC)
		require.Len(t, summary.Categories[0].Files, 1)
		assert.Equal(t, "a.h", summary.Categories[0].Files[0].Name)
	})

	t.Run("where", func(t *testing.T) {
		summary, err := Count(testContext(t), root, Options{Where: `Category == "Source Files" && LOC > 1`})
		require.NoError(t, err)
		assert.Empty(t, summary.Categories[0].Files)
		require.Len(t, summary.Categories[1].Files, 1)
		assert.Equal(t, "a.cpp", summary.Categories[1].Files[0].Name)
		assert.Equal(t, 3, summary.Total(), "filtered files are left out of totals")
	})

	t.Run("custom_categories", func(t *testing.T) {
		summary, err := Count(testContext(t), root, Options{
			Categories:      []Category{{Name: "Docs", Extensions: []string{".MD"}}},
			CommentPrefixes: []string{},
		})
		require.NoError(t, err)
		require.Len(t, summary.Categories, 1)
		assert.Equal(t, 2, summary.Categories[0].LOC, "no comment prefixes counts # lines")
	})

	t.Run("invalid_where", func(t *testing.T) {
		_, err := Count(testContext(t), root, Options{Where: `LOC >`})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "compile filter")
	})

	t.Run("non_bool_where", func(t *testing.T) {
		_, err := Count(testContext(t), root, Options{Where: `LOC + 1`})
		require.Error(t, err)
	})
}

func TestCountMissingFolder(t *testing.T) {
	_, err := Count(testContext(t), filepath.Join(t.TempDir(), "nope"), Options{})
	require.Error(t, err)

	var resErr *rules.ResourceError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "Folder does not exist", resErr.Reason)
}

func TestKLOC(t *testing.T) {
	assert.Equal(t, "KLOC Calculation: KLOC = 1234 / 1000 = 1.23", KLOCLine(1234))
	assert.Equal(t, "KLOC Calculation: KLOC = 0 / 1000 = 0.00", KLOCLine(0))
	assert.Equal(t, "KLOC Calculation: KLOC = 1500 / 1000 = 1.50", KLOCLine(1500))
	assert.InDelta(t, 1.234, CategoryCount{LOC: 1234}.KLOC(), 1e-9)
}

func TestRender(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	summary := &Summary{
		Root: "proj",
		Categories: []CategoryCount{
			{Name: "Header Files", LOC: 12, Files: []FileCount{{Name: "a.h", LOC: 12}}},
			{Name: "Source Files", LOC: 2500, Files: []FileCount{{Name: "main.cpp", LOC: 2500}}},
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, summary.Render(buf))
	out := buf.String()

	assert.Contains(t, out, "LOC & KLOC CALCULATION")
	assert.Contains(t, out, "KLOC = LOC / 1000")
	assert.Contains(t, out, "Header Files (LOC Count):")
	assert.Contains(t, out, "Source Files (LOC Count):")
	assert.Contains(t, out, "File Name")
	assert.Contains(t, out, "main.cpp")
	assert.Contains(t, out, "FINAL SUMMARY")
	assert.Contains(t, out, "Total LOC for Header Files: 12\nKLOC Calculation: KLOC = 12 / 1000 = 0.01\n")
	assert.Contains(t, out, "Total LOC for Source Files: 2500\nKLOC Calculation: KLOC = 2500 / 1000 = 2.50\n")
	assert.Less(t, strings.Index(out, "Header Files (LOC Count)"), strings.Index(out, "Source Files (LOC Count)"))
}
