package status

import (
	"fmt"
)

// FileFormatter defines how item outcomes and progress should be formatted
type FileFormatter interface {
	// FormatFileOperation formats an item outcome message
	FormatFileOperation(info FileInfo) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileOperation formats an item outcome message with emojis
func (f *DefaultFileFormatter) FormatFileOperation(info FileInfo) string {
	switch info.Status {
	case StatusModified:
		return fmt.Sprintf("📝 Modified %s", info.Path)
	case StatusRenamed:
		return fmt.Sprintf("🏷️  Renamed %s -> %s", info.Path, info.Target)
	case StatusCopied:
		return fmt.Sprintf("📦 Copied %s -> %s", info.Path, info.Target)
	case StatusCollision:
		return fmt.Sprintf("⚠️  Exists %s", info.Target)
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s", info.Path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", info.Path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}
