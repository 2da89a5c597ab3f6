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

package operation

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/walteh/custool/pkg/tools"
	"github.com/walteh/custool/pkg/ui"
	"gitlab.com/tozd/go/errors"
)

// 🧰 ToolsMode selects what ToolsOperation does
type ToolsMode int

const (
	// ToolsPick asks the user to choose a tool and launches it
	ToolsPick ToolsMode = iota
	// ToolsList prints the tools
	ToolsList
	// ToolsRun launches the tool named by Query
	ToolsRun
)

// 🧰 ToolsOperation lists and launches the tools in the configured folder
type ToolsOperation struct {
	BaseOperation
	Mode     ToolsMode
	Query    string // Filter for list and pick, tool name for run
	Launcher *tools.Launcher
}

// 🏭 NewToolsOperation creates a new tools operation
func NewToolsOperation(opts Options, mode ToolsMode, query string) *ToolsOperation {
	base := NewBaseOperation(opts)
	return &ToolsOperation{
		BaseOperation: base,
		Mode:          mode,
		Query:         query,
		Launcher:      tools.NewLauncher(base.Out),
	}
}

func (op *ToolsOperation) Name() string {
	return "tools"
}

// 🏃 Execute runs the tools operation
func (op *ToolsOperation) Execute(ctx context.Context) error {
	cfg := op.Config.Tools

	all, err := tools.Scan(ctx, cfg.Dir, cfg.Extensions)
	if err != nil {
		op.UI.ShowMessage(ctx, ui.LevelWarning, "Warning", "Tools not available!")
		return err
	}
	if len(all) == 0 {
		op.UI.ShowMessage(ctx, ui.LevelWarning, "Warning", "Tools not available!")
		return nil
	}

	switch op.Mode {
	case ToolsList:
		return op.list(tools.Filter(all, op.Query))
	case ToolsRun:
		tool, ok := tools.Find(all, op.Query)
		if !ok {
			return errors.Errorf("no tool named %q in %s", op.Query, cfg.Dir)
		}
		return op.Launcher.Launch(ctx, tool)
	default:
		return op.pick(ctx, tools.Filter(all, op.Query))
	}
}

func (op *ToolsOperation) list(found []tools.Tool) error {
	data := pterm.TableData{{"Name", "File"}}
	for _, t := range found {
		data = append(data, []string{t.Name, t.File})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering tools: %w", err)
	}
	fmt.Fprintln(op.Out, table)
	fmt.Fprintf(op.Out, "Ready - %d tools\n", len(found))
	return nil
}

func (op *ToolsOperation) pick(ctx context.Context, found []tools.Tool) error {
	if len(found) == 0 {
		op.UI.ShowMessage(ctx, ui.LevelInfo, "", fmt.Sprintf("No tools match %q", op.Query))
		return nil
	}

	names := make([]string, 0, len(found))
	for _, t := range found {
		names = append(names, t.Name)
	}

	choice, err := op.UI.Choose(ctx, "Click to launch", names)
	if err != nil {
		if done, err := op.cancelled(ctx, err, "tool"); done {
			return err
		}
		return errors.Errorf("choosing tool: %w", err)
	}

	tool, _ := tools.Find(found, choice)
	return op.Launcher.Launch(ctx, tool)
}
