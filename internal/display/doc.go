// Package display renders conversion progress for the command-line tool.
//
// The convert package only emits ProgressEvent values; a Printer turns them
// into styled lines:
//
//	✓ Converted: beach.png -> beach.webp
//	✗ Failed to convert /photos/broken.png: decode /photos/broken.png: ...
//	! Output a.webp is produced by 2 inputs; the last to finish wins
//
// Verbose events are shown only when requested. An optional log file
// receives every event as a plain timestamped line.
package display
