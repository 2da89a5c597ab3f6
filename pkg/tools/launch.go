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
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Command returns the program and arguments that run t on goos
func Command(t Tool, goos string) (string, []string) {
	switch t.Ext {
	case ".py":
		return "python", []string{t.Path}
	case ".ps1":
		if goos == "windows" {
			return "powershell", []string{"-File", t.Path}
		}
		return "pwsh", []string{"-File", t.Path}
	case ".bat":
		return "cmd", []string{"/C", t.Path}
	case ".sh":
		return "sh", []string{t.Path}
	default:
		return t.Path, nil
	}
}

// Starter starts name detached with dir as its working directory
type Starter func(dir, name string, args ...string) error

func startDetached(dir, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// 🚀 Launcher starts tools and reports the outcome on out
type Launcher struct {
	out   io.Writer
	start Starter
	goos  string
}

// NewLauncher creates a launcher for the current platform
func NewLauncher(out io.Writer) *Launcher {
	return &Launcher{
		out:   out,
		start: startDetached,
		goos:  runtime.GOOS,
	}
}

// WithStarter replaces how processes are started
func (l *Launcher) WithStarter(start Starter) *Launcher {
	l.start = start
	return l
}

// Launch starts t without waiting for it
func (l *Launcher) Launch(ctx context.Context, t Tool) error {
	name, args := Command(t, l.goos)
	zerolog.Ctx(ctx).Debug().Str("tool", t.Name).Str("cmd", name).Strs("args", args).Msg("launching tool")

	if err := l.start(filepath.Dir(t.Path), name, args...); err != nil {
		fmt.Fprintf(l.out, "%s %s\n", color.New(color.FgRed).Sprint("✗"), "Failed to launch: "+t.Name)
		return errors.Errorf("launching %s: %w", t.Path, err)
	}

	fmt.Fprintf(l.out, "%s %s\n", color.New(color.FgGreen).Sprint("✓"), "Launched: "+t.Name)
	return nil
}
