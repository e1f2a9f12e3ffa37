// Package discover finds convertible images and turns them into conversion
// tasks.
//
// The package handles two steps:
//
//  1. Scanning a single directory (non-recursive) for supported images
//  2. Mapping each image path to a ConversionTask in the output directory
//
// # Scanning
//
//	paths, err := discover.FindImages("/photos")
//	if err != nil {
//	    // directory missing or unreadable
//	}
//
// Supported extensions are .png, .jpg, .jpeg, .bmp and .tiff, matched
// case-insensitively. Paths are sorted.
//
// # Task Building
//
//	tasks := discover.BuildTasks(paths, "/photos/webp")
//	// /photos/beach.png -> /photos/webp/beach.webp
//
// Sources that share a stem map to the same output. FindCollisions reports
// them so callers can warn; the files are still converted and the last one
// to finish wins.
package discover
