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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/custool/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// 🔧 MockInteraction is a mock implementation of Interaction
type MockInteraction struct {
	mock.Mock
}

func (m *MockInteraction) SelectFile(ctx context.Context, title string, patterns ...string) (string, error) {
	args := m.Called(ctx, title, patterns)
	return args.String(0), args.Error(1)
}

func (m *MockInteraction) SelectFiles(ctx context.Context, title string) ([]string, error) {
	args := m.Called(ctx, title)
	files, _ := args.Get(0).([]string)
	return files, args.Error(1)
}

func (m *MockInteraction) SelectItems(ctx context.Context, title string) ([]string, error) {
	args := m.Called(ctx, title)
	items, _ := args.Get(0).([]string)
	return items, args.Error(1)
}

func (m *MockInteraction) SelectFolder(ctx context.Context, title string) (string, error) {
	args := m.Called(ctx, title)
	return args.String(0), args.Error(1)
}

func (m *MockInteraction) Choose(ctx context.Context, title string, options []string) (string, error) {
	args := m.Called(ctx, title, options)
	return args.String(0), args.Error(1)
}

func (m *MockInteraction) ShowMessage(ctx context.Context, level Level, title, msg string) {
	m.Called(ctx, level, title, msg)
}

func (m *MockInteraction) Reveal(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.cpp"))
	touch(t, filepath.Join(dir, "b.h"))
	touch(t, filepath.Join(dir, "sub", "c.cpp"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty.cpp"), 0o755))

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "plain_paths_pass_through",
			args: []string{"does/not/exist.txt", filepath.Join(dir, "b.h")},
			want: []string{"does/not/exist.txt", filepath.Join(dir, "b.h")},
		},
		{
			name: "recursive_glob_files_only",
			args: []string{filepath.Join(dir, "**", "*.cpp")},
			want: []string{filepath.Join(dir, "a.cpp"), filepath.Join(dir, "sub", "c.cpp")},
		},
		{
			name: "duplicates_dropped_first_order_kept",
			args: []string{filepath.Join(dir, "b.h"), filepath.Join(dir, "*.h")},
			want: []string{filepath.Join(dir, "b.h")},
		},
		{
			name: "unmatched_glob_is_skipped",
			args: []string{filepath.Join(dir, "*.xyz"), "  "},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPaths(testContext(t), tt.args)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestExpandItems(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.txt"))
	touch(t, filepath.Join(dir, "assets", "logo.png"))

	got, err := ExpandItems(testContext(t), []string{filepath.Join(dir, "*")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "assets")}, got)

	files, err := ExpandPaths(testContext(t), []string{filepath.Join(dir, "*")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.txt")}, files)
}

func TestTerminalSelectFolder(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope")

	answers := map[string]string{"existing": dir, "missing": missing, "quoted": `"` + dir + `"`}
	for name, answer := range answers {
		t.Run(name, func(t *testing.T) {
			term := NewTerminal(&bytes.Buffer{}).WithPrompt(func(string) (string, error) { return answer, nil })
			folder, err := term.SelectFolder(testContext(t), "folder")
			if name == "missing" {
				var rerr *rules.ResourceError
				require.True(t, errors.As(err, &rerr))
				assert.Equal(t, missing, rerr.Path)
				assert.Equal(t, "Folder does not exist", rerr.Reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, dir, folder)
		})
	}

	t.Run("file_is_not_a_folder", func(t *testing.T) {
		file := filepath.Join(dir, "f.txt")
		touch(t, file)
		term := NewTerminal(&bytes.Buffer{}).WithPrompt(func(string) (string, error) { return file, nil })
		_, err := term.SelectFolder(testContext(t), "folder")
		var rerr *rules.ResourceError
		require.True(t, errors.As(err, &rerr))
		assert.NoError(t, rerr.Err)
	})

	t.Run("empty_answer_cancels", func(t *testing.T) {
		term := NewTerminal(&bytes.Buffer{}).WithPrompt(func(string) (string, error) { return "  ", nil })
		_, err := term.SelectFolder(testContext(t), "folder")
		assert.ErrorIs(t, err, ErrCancelled)
	})
}

func TestTerminalSelectItems(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.txt"))
	touch(t, filepath.Join(dir, "assets", "logo.png"))

	term := NewTerminal(&bytes.Buffer{}).WithPrompt(func(string) (string, error) {
		return filepath.Join(dir, "*"), nil
	})
	items, err := term.SelectItems(testContext(t), "items")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "assets")}, items)

	files, err := term.SelectFiles(testContext(t), "files")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.txt")}, files)
}

func TestMatchesAny(t *testing.T) {
	assert.True(t, matchesAny("rules.xlsx", nil))
	assert.True(t, matchesAny("dir/Rules.XLSX", []string{"*.xlsx"}))
	assert.True(t, matchesAny("rules.xlsm", []string{"*.xlsx", "*.xlsm"}))
	assert.False(t, matchesAny("rules.csv", []string{"*.xlsx"}))
}

func TestOpenCommand(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{goos: "windows", want: "explorer"},
		{goos: "darwin", want: "open"},
		{goos: "linux", want: "xdg-open"},
		{goos: "freebsd", want: "xdg-open"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := openCommand(tt.goos, "/tmp/logs")
			assert.Equal(t, tt.want, name)
			assert.Equal(t, []string{"/tmp/logs"}, args)
		})
	}
}

func TestTerminalReveal(t *testing.T) {
	var gotName string
	var gotArgs []string
	term := &Terminal{
		out:  &bytes.Buffer{},
		goos: "darwin",
		start: func(name string, args ...string) error {
			gotName = name
			gotArgs = args
			return nil
		},
	}

	require.NoError(t, term.Reveal(testContext(t), "/tmp/x"))
	assert.Equal(t, "open", gotName)
	assert.Equal(t, []string{"/tmp/x"}, gotArgs)

	term.start = func(string, ...string) error { return errors.New("no display") }
	err := term.Reveal(testContext(t), "/tmp/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
}

func TestShowMessage(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	levels := []Level{LevelInfo, LevelSuccess, LevelWarning, LevelError}
	for _, level := range levels {
		t.Run(level.String(), func(t *testing.T) {
			buf := &bytes.Buffer{}
			NewTerminal(buf).ShowMessage(testContext(t), level, "Rules", "loaded 3 rules")
			assert.Contains(t, buf.String(), "Rules: loaded 3 rules")
		})
	}
}

func TestStatic(t *testing.T) {
	ctx := testContext(t)

	t.Run("values_are_used_directly", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "a.cpp"))
		touch(t, filepath.Join(dir, "b.cpp"))

		fallback := &MockInteraction{}
		s := &Static{
			File:     "rules.xlsx",
			Files:    []string{filepath.Join(dir, "*.cpp")},
			Folder:   dir,
			Choice:   "Build",
			Fallback: fallback,
		}

		file, err := s.SelectFile(ctx, "rules", "*.xlsx")
		require.NoError(t, err)
		assert.Equal(t, "rules.xlsx", file)

		files, err := s.SelectFiles(ctx, "targets")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{filepath.Join(dir, "a.cpp"), filepath.Join(dir, "b.cpp")}, files)

		items, err := s.SelectItems(ctx, "items")
		require.NoError(t, err)
		assert.ElementsMatch(t, files, items)

		folder, err := s.SelectFolder(ctx, "folder")
		require.NoError(t, err)
		assert.Equal(t, dir, folder)

		choice, err := s.Choose(ctx, "tool", []string{"Build", "Clean"})
		require.NoError(t, err)
		assert.Equal(t, "Build", choice)

		fallback.AssertExpectations(t)
	})

	t.Run("missing_values_use_fallback", func(t *testing.T) {
		fallback := &MockInteraction{}
		fallback.On("SelectFile", ctx, "rules", []string{"*.xlsx"}).Return("picked.xlsx", nil)
		fallback.On("SelectFiles", ctx, "targets").Return([]string{"x.cpp"}, nil)
		fallback.On("SelectItems", ctx, "items").Return([]string{"assets"}, nil)
		fallback.On("SelectFolder", ctx, "folder").Return("", ErrCancelled)
		fallback.On("Choose", ctx, "tool", []string{"Build"}).Return("Build", nil)
		fallback.On("Reveal", ctx, "/logs").Return(nil)

		s := &Static{Choice: "Unknown", Fallback: fallback}

		file, err := s.SelectFile(ctx, "rules", "*.xlsx")
		require.NoError(t, err)
		assert.Equal(t, "picked.xlsx", file)

		files, err := s.SelectFiles(ctx, "targets")
		require.NoError(t, err)
		assert.Equal(t, []string{"x.cpp"}, files)

		items, err := s.SelectItems(ctx, "items")
		require.NoError(t, err)
		assert.Equal(t, []string{"assets"}, items)

		_, err = s.SelectFolder(ctx, "folder")
		assert.ErrorIs(t, err, ErrCancelled)

		choice, err := s.Choose(ctx, "tool", []string{"Build"})
		require.NoError(t, err)
		assert.Equal(t, "Build", choice)

		require.NoError(t, s.Reveal(ctx, "/logs"))

		fallback.AssertExpectations(t)
	})

	t.Run("no_fallback_cancels", func(t *testing.T) {
		s := &Static{}

		_, err := s.SelectFile(ctx, "rules")
		assert.ErrorIs(t, err, ErrCancelled)
		_, err = s.SelectFiles(ctx, "targets")
		assert.ErrorIs(t, err, ErrCancelled)
		_, err = s.SelectItems(ctx, "items")
		assert.ErrorIs(t, err, ErrCancelled)
		_, err = s.Choose(ctx, "tool", []string{"a"})
		assert.ErrorIs(t, err, ErrCancelled)
		assert.NoError(t, s.Reveal(ctx, "/logs"))
	})

	t.Run("no_reveal_skips_fallback", func(t *testing.T) {
		fallback := &MockInteraction{}
		s := &Static{NoReveal: true, Fallback: fallback}

		require.NoError(t, s.Reveal(ctx, "/logs"))
		fallback.AssertNotCalled(t, "Reveal", mock.Anything, mock.Anything)
	})
}
