/*
Package operation implements the custool commands as batch operations.

	+-------------+      +-------------+
	|     UI      |----->|  Operation  |
	| (selection) |      | (one batch) |
	+-------------+      +------+------+
	                            |
	         +------------------+------------------+
	         |                  |                  |
	  +------+------+    +------+------+    +------+------+
	  |    rules    |    | text/rename |    |   status    |
	  |  (workbook) |    |   (items)   |    |  (outcomes) |
	  +-------------+    +-------------+    +-------------+

🎯 Purpose:
- Gets inputs through ui.Interaction
- Loads rules once, then processes items one at a time
- Tracks each item outcome in the status manager and prints it

🔄 Flow:
1. Select inputs (workbook, files or folder)
2. Load the resource; a bad resource aborts before anything is touched
3. Process each item; a failed item is recorded and the batch goes on
4. Show a summary; any failed item makes Execute return a *BatchError

⚡ Operations:
- ReplaceOperation: content replacement from old_content / new_content
- RenameOperation: regex file renaming with a filter_<timestamp>.txt log
- CopyOperation: copy files and folders into a destination
- CountOperation: LOC / KLOC report
- ToolsOperation: list and launch scripts
*/
package operation
