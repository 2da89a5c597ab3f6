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

package rules

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// 📋 Columns names the sheet and header cells a rule table lives in
type Columns struct {
	Sheet string // Sheet name, empty selects the first sheet
	Old   string // Header of the old-value column
	New   string // Header of the new-value column
}

var (
	// ContentColumns is the layout used by the content replacer
	ContentColumns = Columns{Sheet: "Sheet1", Old: "old_content", New: "new_content"}

	// NameColumns is the layout used by the file renamer
	NameColumns = Columns{Sheet: "", Old: "old_name", New: "new_name"}
)

// WithSheet returns a copy of c reading from sheet, or c itself when sheet is empty
func (c Columns) WithSheet(sheet string) Columns {
	if sheet != "" {
		c.Sheet = sheet
	}
	return c
}

// 📥 Load reads a rule set from the workbook at path
func Load(ctx context.Context, path string, cols Columns) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Reason: "opening workbook", Err: err}
	}
	defer f.Close()

	return LoadReader(ctx, f, path, cols)
}

// 📥 LoadReader reads a rule set from a workbook stream. name is only used in errors.
func LoadReader(ctx context.Context, r io.Reader, name string, cols Columns) (*RuleSet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ResourceError{Path: name, Reason: "opening workbook", Err: err}
	}
	defer f.Close()

	return read(ctx, f, name, cols)
}

func read(ctx context.Context, f *excelize.File, path string, cols Columns) (*RuleSet, error) {
	logger := zerolog.Ctx(ctx)

	sheet, err := resolveSheet(f, path, cols.Sheet)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ResourceError{Path: path, Reason: "reading sheet " + sheet, Err: err}
	}
	if len(rows) == 0 {
		return nil, &ResourceError{Path: path, Reason: "sheet " + sheet + " has no header row"}
	}

	oldIdx := headerIndex(rows[0], cols.Old)
	if oldIdx < 0 {
		return nil, &ResourceError{Path: path, Reason: "missing column " + cols.Old}
	}
	newIdx := headerIndex(rows[0], cols.New)
	if newIdx < 0 {
		return nil, &ResourceError{Path: path, Reason: "missing column " + cols.New}
	}

	parsed := make([]Rule, 0, len(rows)-1)
	skipped := 0
	for _, row := range rows[1:] {
		old := strings.TrimSpace(cell(row, oldIdx))
		if old == "" {
			skipped++
			continue
		}
		parsed = append(parsed, Rule{
			Old: old,
			New: strings.TrimSpace(cell(row, newIdx)),
		})
	}

	set := NewRuleSet(parsed...)
	logger.Debug().
		Str("path", path).
		Str("sheet", sheet).
		Int("rules", set.Len()).
		Int("skipped", skipped).
		Msg("loaded rules")

	return set, nil
}

// 🔍 resolveSheet returns the requested sheet, or the first one when none is named
func resolveSheet(f *excelize.File, path, want string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", &ResourceError{Path: path, Reason: "workbook has no sheets"}
	}
	if want == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == want {
			return s, nil
		}
	}
	return "", &ResourceError{Path: path, Reason: "missing sheet " + want}
}

func headerIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// cell treats cells past the end of a short row as empty
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
