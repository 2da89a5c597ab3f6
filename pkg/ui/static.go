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
	"io"
	"os"
	"slices"
)

// 📋 Static answers selections from values given on the command line.
// A missing value is asked of Fallback; with no Fallback it is ErrCancelled.
type Static struct {
	File     string
	Files    []string
	Folder   string
	Choice   string
	NoReveal bool

	Fallback Interaction
	Out      io.Writer
}

var _ Interaction = (*Static)(nil)

func (s *Static) SelectFile(ctx context.Context, title string, patterns ...string) (string, error) {
	if s.File != "" {
		return s.File, nil
	}
	if s.Fallback != nil {
		return s.Fallback.SelectFile(ctx, title, patterns...)
	}
	return "", ErrCancelled
}

func (s *Static) SelectFiles(ctx context.Context, title string) ([]string, error) {
	if len(s.Files) > 0 {
		return expanded(ExpandPaths(ctx, s.Files))
	}
	if s.Fallback != nil {
		return s.Fallback.SelectFiles(ctx, title)
	}
	return nil, ErrCancelled
}

// SelectItems answers from Files like SelectFiles, with globs also matching folders
func (s *Static) SelectItems(ctx context.Context, title string) ([]string, error) {
	if len(s.Files) > 0 {
		return expanded(ExpandItems(ctx, s.Files))
	}
	if s.Fallback != nil {
		return s.Fallback.SelectItems(ctx, title)
	}
	return nil, ErrCancelled
}

// expanded turns an empty expansion into ErrCancelled
func expanded(paths []string, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, ErrCancelled
	}
	return paths, nil
}

func (s *Static) SelectFolder(ctx context.Context, title string) (string, error) {
	if s.Folder != "" {
		return s.Folder, nil
	}
	if s.Fallback != nil {
		return s.Fallback.SelectFolder(ctx, title)
	}
	return "", ErrCancelled
}

func (s *Static) Choose(ctx context.Context, title string, options []string) (string, error) {
	if s.Choice != "" && slices.Contains(options, s.Choice) {
		return s.Choice, nil
	}
	if s.Fallback != nil {
		return s.Fallback.Choose(ctx, title, options)
	}
	return "", ErrCancelled
}

func (s *Static) ShowMessage(ctx context.Context, level Level, title, msg string) {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	printMessage(out, level, title, msg)
}

func (s *Static) Reveal(ctx context.Context, path string) error {
	if s.NoReveal || s.Fallback == nil {
		return nil
	}
	return s.Fallback.Reveal(ctx, path)
}
