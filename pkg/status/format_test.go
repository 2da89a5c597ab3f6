package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 🧪 TestDefaultFileFormatter tests the default file formatter implementation
func TestDefaultFileFormatter(t *testing.T) {
	tests := []struct {
		name string
		info FileInfo
		want string
	}{
		{
			name: "modified_file",
			info: FileInfo{Path: "main.cpp", Status: StatusModified},
			want: "📝 Modified main.cpp",
		},
		{
			name: "unchanged_file",
			info: FileInfo{Path: "main.h", Status: StatusUnchanged},
			want: "👍 Unchanged main.h",
		},
		{
			name: "renamed_file",
			info: FileInfo{Path: "IMG_1.jpg", Target: "PHOTO_1.jpg", Status: StatusRenamed},
			want: "🏷️  Renamed IMG_1.jpg -> PHOTO_1.jpg",
		},
		{
			name: "copied_file",
			info: FileInfo{Path: "a", Target: "dst/a", Status: StatusCopied},
			want: "📦 Copied a -> dst/a",
		},
		{
			name: "collision",
			info: FileInfo{Path: "IMG_1.jpg", Target: "/x/PHOTO_1.jpg", Status: StatusCollision},
			want: "⚠️  Exists /x/PHOTO_1.jpg",
		},
		{
			name: "failed",
			info: FileInfo{Path: "locked.cpp", Status: StatusFailed},
			want: "❌ Failed locked.cpp",
		},
		{
			name: "unknown_falls_back_to_unchanged",
			info: FileInfo{Path: "x"},
			want: "👍 Unchanged x",
		},
	}

	formatter := NewDefaultFileFormatter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatter.FormatFileOperation(tt.info))
		})
	}
}

// 🧪 TestProgressFormatting tests progress message formatting
func TestProgressFormatting(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		total    int
		expected string
	}{
		{name: "zero_progress", current: 0, total: 10, expected: "⏳ Progress: 0/10 (0%)"},
		{name: "half_progress", current: 5, total: 10, expected: "⏳ Progress: 5/10 (50%)"},
		{name: "complete", current: 10, total: 10, expected: "✅ Progress: 10/10 (100%)"},
		{name: "zero_total", current: 0, total: 0, expected: "✅ Progress: 0/0 (0%)"},
		{name: "zero_total_with_current", current: 3, total: 0, expected: "✅ Progress: 3/0 (100%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewDefaultFileFormatter()
			assert.Equal(t, tt.expected, formatter.FormatProgress(tt.current, tt.total))
		})
	}
}

func TestFileStatus(t *testing.T) {
	assert.Equal(t, "modified", StatusModified.String())
	assert.Equal(t, "collision", StatusCollision.String())
	assert.Equal(t, "unknown", FileStatus(99).String())

	assert.True(t, StatusFailed.IsFailure())
	assert.True(t, StatusCollision.IsFailure())
	assert.False(t, StatusUnchanged.IsFailure())
}
