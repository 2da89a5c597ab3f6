package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/custool/pkg/rules"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "empty", content: "", want: nil},
		{name: "terminated", content: "a\nb\n", want: []string{"a\n", "b\n"}},
		{name: "unterminated_last", content: "a\nb", want: []string{"a\n", "b"}},
		{name: "crlf", content: "a\r\nb\r\n", want: []string{"a\r\n", "b\r\n"}},
		{name: "blank_lines", content: "\n\n", want: []string{"\n", "\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.content))
		})
	}
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		rules        []rules.Rule
		want         string
		wantReplaced int
		wantDropped  int
		wantModified bool
	}{
		{
			name:    "end_to_end_scenario",
			content: "foo line\nbaz line\nkeep\n",
			rules: []rules.Rule{
				{Old: "foo", New: "bar"},
				{Old: "baz", New: ""},
			},
			want:         "bar line\nkeep\n",
			wantReplaced: 1,
			wantDropped:  1,
			wantModified: true,
		},
		{
			name:    "replaces_every_occurrence",
			content: "foo foo\tfoo\n",
			rules: []rules.Rule{
				{Old: "foo", New: "x"},
			},
			want:         "x x\tx\n",
			wantReplaced: 1,
			wantModified: true,
		},
		{
			name:    "substitution_keeps_indentation",
			content: "    #include \"old.h\"\n",
			rules: []rules.Rule{
				{Old: "old.h", New: "new.h"},
			},
			want:         "    #include \"new.h\"\n",
			wantReplaced: 1,
			wantModified: true,
		},
		{
			name:    "deletion_drops_whole_line",
			content: "a\n  // remove me\nb\n",
			rules: []rules.Rule{
				{Old: "remove me", New: ""},
			},
			want:         "a\nb\n",
			wantDropped:  1,
			wantModified: true,
		},
		{
			name:    "deletion_short_circuits_after_substitution",
			content: "foo baz\nfoo\n",
			rules: []rules.Rule{
				{Old: "foo", New: "bar"},
				{Old: "baz", New: ""},
			},
			want:         "bar\n",
			wantReplaced: 1,
			wantDropped:  1,
			wantModified: true,
		},
		{
			name:    "matching_uses_original_trimmed_line",
			content: "alpha\n",
			rules: []rules.Rule{
				{Old: "alpha", New: "beta"},
				// "beta" is not in the original line so this never fires
				{Old: "beta", New: "gamma"},
				// "alpha" still matches the original even though it was replaced
				{Old: "alp", New: "ALP"},
			},
			want:         "beta\n",
			wantReplaced: 1,
			wantModified: true,
		},
		{
			name:    "deletion_matches_original_even_after_substitution",
			content: "alpha\n",
			rules: []rules.Rule{
				{Old: "alpha", New: "beta"},
				{Old: "lph", New: ""},
			},
			want:         "",
			wantDropped:  1,
			wantModified: true,
		},
		{
			name:    "match_ignores_surrounding_whitespace_only",
			content: "  foo  \n",
			rules: []rules.Rule{
				{Old: "foo  ", New: "bar"},
			},
			want:         "  foo  \n",
			wantModified: false,
		},
		{
			name:    "crlf_round_trip",
			content: "keep\r\nfoo\r\ndrop\r\nlast",
			rules: []rules.Rule{
				{Old: "foo", New: "bar"},
				{Old: "drop", New: ""},
			},
			want:         "keep\r\nbar\r\nlast",
			wantReplaced: 1,
			wantDropped:  1,
			wantModified: true,
		},
		{
			name:         "empty_rules",
			content:      "untouched\n",
			rules:        nil,
			want:         "untouched\n",
			wantModified: false,
		},
		{
			name:    "no_match",
			content: "hello\n",
			rules: []rules.Rule{
				{Old: "bye", New: "hi"},
			},
			want:         "hello\n",
			wantModified: false,
		},
		{
			name:    "empty_content",
			content: "",
			rules: []rules.Rule{
				{Old: "a", New: "b"},
			},
			want:         "",
			wantModified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Rewrite([]byte(tt.content), rules.NewRuleSet(tt.rules...))

			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.ModifiedContent))
			assert.Equal(t, tt.wantReplaced, result.ReplacedLines)
			assert.Equal(t, tt.wantDropped, result.DroppedLines)
			assert.Equal(t, tt.wantModified, result.Modified)
		})
	}
}

func TestRewriteEmptyRuleSetIsByteIdentical(t *testing.T) {
	inputs := []string{
		"",
		"no newline",
		"mixed\r\nendings\nhere",
		"\n\n\n",
		"  padded  \n\ttabbed\t\n",
	}
	for _, in := range inputs {
		result := Rewrite([]byte(in), rules.NewRuleSet())
		assert.Equal(t, []byte(in), result.ModifiedContent)
		assert.False(t, result.Modified)
	}
}

func TestRewriteIdempotence(t *testing.T) {
	t.Run("stable_when_replacement_matches_nothing", func(t *testing.T) {
		set := rules.NewRuleSet(rules.Rule{Old: "foo", New: "bar"})

		first := Rewrite([]byte("foo\nother\n"), set)
		second := Rewrite(first.ModifiedContent, set)

		assert.True(t, first.Modified)
		assert.False(t, second.Modified)
		assert.Equal(t, first.ModifiedContent, second.ModifiedContent)
	})

	t.Run("chained_rules_are_not_idempotent", func(t *testing.T) {
		// the replacement of the first rule is the key of the second
		set := rules.NewRuleSet(
			rules.Rule{Old: "a", New: "b"},
			rules.Rule{Old: "b", New: "c"},
		)

		first := Rewrite([]byte("a\n"), set)
		assert.Equal(t, "b\n", string(first.ModifiedContent))

		second := Rewrite(first.ModifiedContent, set)
		assert.Equal(t, "c\n", string(second.ModifiedContent))

		third := Rewrite(second.ModifiedContent, set)
		assert.False(t, third.Modified)
	})

	t.Run("chained_rule_into_deletion", func(t *testing.T) {
		set := rules.NewRuleSet(
			rules.Rule{Old: "old", New: "legacy"},
			rules.Rule{Old: "legacy", New: ""},
		)

		first := Rewrite([]byte("old api\nkeep\n"), set)
		assert.Equal(t, "legacy api\nkeep\n", string(first.ModifiedContent))

		second := Rewrite(first.ModifiedContent, set)
		assert.Equal(t, "keep\n", string(second.ModifiedContent))
	})
}

func TestRewriteLineDeletionDoesNotAffectNeighbours(t *testing.T) {
	set := rules.NewRuleSet(rules.Rule{Old: "secret", New: ""})
	lines := []string{"one\n", "has secret\n", "two\n"}

	out, replaced, dropped := RewriteLines(lines, set)

	assert.Equal(t, []string{"one\n", "two\n"}, out)
	assert.Equal(t, 0, replaced)
	assert.Equal(t, 1, dropped)
}
