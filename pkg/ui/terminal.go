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
	"runtime"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/custool/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// Prompt reads one line of input shown with title
type Prompt func(title string) (string, error)

func showTextInput(title string) (string, error) {
	return pterm.DefaultInteractiveTextInput.Show(title)
}

// 🖥️ Terminal prompts the user through pterm interactive printers
type Terminal struct {
	out   io.Writer
	ask   Prompt
	start Starter
	goos  string
}

var _ Interaction = (*Terminal)(nil)

// 🏭 NewTerminal creates a terminal interaction writing messages to out
func NewTerminal(out io.Writer) *Terminal {
	if out == nil {
		out = os.Stdout
	}
	return &Terminal{
		out:   out,
		ask:   showTextInput,
		start: StartDetached,
		goos:  runtime.GOOS,
	}
}

// WithPrompt replaces how text answers are read
func (t *Terminal) WithPrompt(ask Prompt) *Terminal {
	t.ask = ask
	return t
}

func (t *Terminal) prompt(title string) (string, error) {
	answer, err := t.ask(title)
	if err != nil {
		return "", errors.Errorf("reading input: %w", err)
	}
	answer = strings.Trim(strings.TrimSpace(answer), `"'`)
	if answer == "" {
		return "", ErrCancelled
	}
	return answer, nil
}

func (t *Terminal) SelectFile(ctx context.Context, title string, patterns ...string) (string, error) {
	path, err := t.prompt(title)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Errorf("selecting %s: %w", path, err)
	}
	if info.IsDir() {
		return "", errors.Errorf("selecting %s: is a directory", path)
	}
	if !matchesAny(path, patterns) {
		return "", errors.Errorf("selecting %s: expected %s", path, strings.Join(patterns, ", "))
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("file selected")
	return path, nil
}

func (t *Terminal) SelectFiles(ctx context.Context, title string) ([]string, error) {
	answer, err := t.prompt(title + " (space separated, globs allowed)")
	if err != nil {
		return nil, err
	}
	return expanded(ExpandPaths(ctx, strings.Fields(answer)))
}

func (t *Terminal) SelectItems(ctx context.Context, title string) ([]string, error) {
	answer, err := t.prompt(title + " (space separated, globs allowed)")
	if err != nil {
		return nil, err
	}
	return expanded(ExpandItems(ctx, strings.Fields(answer)))
}

func (t *Terminal) SelectFolder(ctx context.Context, title string) (string, error) {
	path, err := t.prompt(title)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", &rules.ResourceError{Path: path, Reason: "Folder does not exist", Err: err}
	}
	return path, nil
}

func (t *Terminal) Choose(ctx context.Context, title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", ErrCancelled
	}
	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText(title).
		Show()
	if err != nil {
		return "", errors.Errorf("reading selection: %w", err)
	}
	if choice == "" {
		return "", ErrCancelled
	}
	return choice, nil
}

func (t *Terminal) ShowMessage(ctx context.Context, level Level, title, msg string) {
	printMessage(t.out, level, title, msg)
}

func (t *Terminal) Reveal(ctx context.Context, path string) error {
	name, args := openCommand(t.goos, path)
	zerolog.Ctx(ctx).Debug().Str("cmd", name).Strs("args", args).Msg("revealing path")
	if err := t.start(name, args...); err != nil {
		return errors.Errorf("revealing %s: %w", path, err)
	}
	return nil
}
