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
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// ErrCancelled is returned when the user dismisses a selection
var ErrCancelled = errors.New("selection cancelled")

// 🎨 Level is the severity of a message shown to the user
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// 🎯 Interaction is everything a command needs from the user.
// Selections return ErrCancelled when nothing was chosen.
type Interaction interface {
	// SelectFile asks for a single existing file matching one of patterns (e.g. "*.xlsx")
	SelectFile(ctx context.Context, title string, patterns ...string) (string, error)

	// SelectFiles asks for one or more files; globs are expanded
	SelectFiles(ctx context.Context, title string) ([]string, error)

	// SelectItems asks for one or more files or folders; globs match both
	SelectItems(ctx context.Context, title string) ([]string, error)

	// SelectFolder asks for an existing folder
	SelectFolder(ctx context.Context, title string) (string, error)

	// Choose asks the user to pick one of options
	Choose(ctx context.Context, title string, options []string) (string, error)

	// ShowMessage shows a message at the given level
	ShowMessage(ctx context.Context, level Level, title, msg string)

	// Reveal opens path in the platform file browser
	Reveal(ctx context.Context, path string) error
}

// 📝 printMessage writes a pterm prefixed message to w
func printMessage(w io.Writer, level Level, title, msg string) {
	var printer pterm.PrefixPrinter
	switch level {
	case LevelSuccess:
		printer = pterm.Success
	case LevelWarning:
		printer = pterm.Warning
	case LevelError:
		printer = pterm.Error
	default:
		printer = pterm.Info
	}

	text := msg
	if title != "" {
		text = fmt.Sprintf("%s: %s", title, msg)
	}
	printer.WithWriter(w).Println(text)
}
