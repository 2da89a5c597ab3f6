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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

const banner = "=============================="

const explanation = `LOC (Lines of Code) counts the actual number of meaningful code lines in a file.
It ignores empty lines and comments (e.g., // in C++).

Formula for LOC Calculation:
  LOC = Total meaningful lines in the file

KLOC (Kilo Lines of Code) represents LOC in thousands.

Formula for KLOC Calculation:
  KLOC = LOC / 1000
`

// KLOCLine formats the KLOC calculation for loc lines
func KLOCLine(loc int) string {
	return fmt.Sprintf("KLOC Calculation: KLOC = %d / 1000 = %.2f", loc, float64(loc)/1000)
}

func writeBanner(b *strings.Builder, title string) {
	fmt.Fprintf(b, "%s\n%s\n%s\n\n", banner, title, banner)
}

// 📋 Render writes the report: the explanation, one table per category
// and the final summary.
func (s *Summary) Render(w io.Writer) error {
	var b strings.Builder

	b.WriteString("\n")
	writeBanner(&b, "      LOC & KLOC CALCULATION")
	b.WriteString(explanation)

	for _, c := range s.Categories {
		fmt.Fprintf(&b, "\n%s (LOC Count):\n", c.Name)

		data := pterm.TableData{{"File Name", "LOC"}}
		for _, f := range c.Files {
			data = append(data, []string{f.Name, strconv.Itoa(f.LOC)})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return errors.Errorf("rendering %s table: %w", c.Name, err)
		}
		b.WriteString(table)
		b.WriteString("\n")
	}

	b.WriteString("\n\n\n")
	writeBanner(&b, "         FINAL SUMMARY")
	for i, c := range s.Categories {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Total LOC for %s: %d\n", c.Name, c.LOC)
		fmt.Fprintf(&b, "%s\n", KLOCLine(c.LOC))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Errorf("writing report: %w", err)
	}
	return nil
}
