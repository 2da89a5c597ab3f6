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

package rename

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/custool/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// NameCollisionError is returned when a rename target already exists
type NameCollisionError struct {
	Source string // File that was going to be renamed
	Path   string // Existing target
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("File already exists: %s", e.Path)
}

type compiled struct {
	pattern  *regexp.Regexp
	template string
}

// 🏷️ Renamer applies an ordered list of regular expression substitutions to file names
type Renamer struct {
	rules []compiled
}

// backref matches $N, \N and \g<name> group references, and the $$ escape
var backref = regexp.MustCompile(`\$\$|\$(\d+)|\\(\d+)|\\g<(\w+)>`)

// expandTemplate rewrites $1, \1 and \g<name> references into ${1} and ${name},
// keeping each reference bound to its group when letters, digits or '_' follow it
func expandTemplate(tmpl string) string {
	return backref.ReplaceAllStringFunc(tmpl, func(m string) string {
		sub := backref.FindStringSubmatch(m)
		for _, group := range sub[1:] {
			if group != "" {
				return "${" + group + "}"
			}
		}
		return m
	})
}

// 🏭 Compile turns a rule set of pattern -> template pairs into a Renamer.
// source names the workbook the rules came from, for error reporting.
func Compile(set *rules.RuleSet, source string) (*Renamer, error) {
	r := &Renamer{}
	for rule := range set.All() {
		re, err := regexp.Compile(rule.Old)
		if err != nil {
			return nil, &rules.ResourceError{
				Path:   source,
				Reason: fmt.Sprintf("invalid pattern %q", rule.Old),
				Err:    err,
			}
		}
		r.rules = append(r.rules, compiled{pattern: re, template: expandTemplate(rule.New)})
	}
	return r, nil
}

// Len returns the number of compiled rules
func (r *Renamer) Len() int {
	return len(r.rules)
}

// Apply runs every rule in order over name and returns the result
func (r *Renamer) Apply(name string) string {
	for _, c := range r.rules {
		name = c.pattern.ReplaceAllString(name, c.template)
	}
	return name
}

// 📦 Move is one planned rename inside Dir
type Move struct {
	Dir  string
	From string
	To   string
}

// OldPath is the current path of the file
func (m Move) OldPath() string {
	return filepath.Join(m.Dir, m.From)
}

// NewPath is the path after the rename
func (m Move) NewPath() string {
	return filepath.Join(m.Dir, m.To)
}

// 🔍 Plan walks root and returns a Move for every file whose name the rules change.
// Nothing is renamed yet.
func (r *Renamer) Plan(ctx context.Context, root string) ([]Move, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, &rules.ResourceError{Path: root, Reason: "Invalid folder path", Err: err}
	}

	var moves []Move
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

		name := d.Name()
		renamed := r.Apply(name)
		if renamed == name {
			return nil
		}
		moves = append(moves, Move{Dir: filepath.Dir(path), From: name, To: renamed})
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	zerolog.Ctx(ctx).Debug().Str("root", root).Int("moves", len(moves)).Msg("rename planned")
	return moves, nil
}

// 🚚 Apply performs the rename. An existing target is left alone and reported
// as a NameCollisionError, unless it is the source itself under another case.
func (m Move) Apply(ctx context.Context) error {
	if m.To == "" || strings.ContainsRune(m.To, '/') || filepath.Base(m.To) != m.To {
		return errors.Errorf("renaming %s: invalid new name %q", m.OldPath(), m.To)
	}

	src, dst := m.OldPath(), m.NewPath()

	srcInfo, err := os.Lstat(src)
	if err != nil {
		return errors.Errorf("renaming %s: %w", src, err)
	}
	if dstInfo, err := os.Lstat(dst); err == nil {
		if !os.SameFile(srcInfo, dstInfo) {
			return &NameCollisionError{Source: src, Path: dst}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return errors.Errorf("checking %s: %w", dst, err)
	}

	if err := os.Rename(src, dst); err != nil {
		return errors.Errorf("renaming %s: %w", src, err)
	}

	zerolog.Ctx(ctx).Debug().Str("from", src).Str("to", dst).Msg("file renamed")
	return nil
}
