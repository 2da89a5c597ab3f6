/*
Package status owns file storage and per-item outcome tracking for custool
batches.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+-----+
	|   Files   |           | Outcomes |
	| (Storage) |           | (Report) |
	+-----------+           +----------+

🎯 Purpose:
- Reads and writes target files (atomic temp+rename, or truncating in place)
- Backs files up to <path>.bak and restores them
- Copies files and folder trees, overwriting existing files but refusing to copy a file onto itself
- Tracks one outcome per batch item (modified, renamed, collision, ...)

🔄 Flow:
1. An operation asks the manager to read/write/copy an item
2. The operation records the item's outcome with TrackFile
3. Commands summarise Counts/Failures once the batch is done

🔍 Example:

	mgr := status.New(".", &logger)

	content, err := mgr.ReadFile(ctx, "main.cpp")
	err = mgr.WriteFileAtomic(ctx, "main.cpp", updated)

	mgr.TrackFile(ctx, status.FileInfo{Path: "main.cpp", Status: status.StatusModified})
	failed := mgr.Failures(ctx)
*/
package status
