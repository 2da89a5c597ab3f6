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

// Package rules loads ordered (old, new) replacement pairs from spreadsheets.
package rules

import "iter"

// 🔄 Rule is a single (old, new) pair
type Rule struct {
	Old string // Text or pattern to look for, never empty
	New string // Replacement, empty means "drop the line"
}

// IsDeletion reports whether the rule removes matching lines
func (r Rule) IsDeletion() bool {
	return r.New == ""
}

// 📚 RuleSet is an insertion-ordered collection of rules keyed by Old.
// A duplicate key overwrites the value but keeps its first position.
// A RuleSet is not modified after construction.
type RuleSet struct {
	rules []Rule
	index map[string]int
}

// 🏭 NewRuleSet builds a rule set from rules in order. Rules with an empty
// Old are skipped.
func NewRuleSet(rules ...Rule) *RuleSet {
	s := &RuleSet{
		rules: make([]Rule, 0, len(rules)),
		index: make(map[string]int, len(rules)),
	}
	for _, r := range rules {
		if r.Old == "" {
			continue
		}
		if i, ok := s.index[r.Old]; ok {
			s.rules[i].New = r.New
			continue
		}
		s.index[r.Old] = len(s.rules)
		s.rules = append(s.rules, r)
	}
	return s
}

// Len returns the number of distinct rules
func (s *RuleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Rules returns a copy of the rules in order
func (s *RuleSet) Rules() []Rule {
	if s == nil {
		return nil
	}
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// All iterates the rules in order without copying them
func (s *RuleSet) All() iter.Seq[Rule] {
	return func(yield func(Rule) bool) {
		if s == nil {
			return
		}
		for _, r := range s.rules {
			if !yield(r) {
				return
			}
		}
	}
}

