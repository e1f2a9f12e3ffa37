// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Directory creation
//   - Atomic file replacement
//   - Image decoding, color normalization and WebP encoding
//
// # File Operations
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
//	// Replace a file without exposing partial writes
//	err := ioutils.WriteFileAtomic("/out/photo.webp", data)
//
// # Image Processing
//
// The ImageService converts one source image into a WebP file:
//
//	svc := ioutils.NewImageService()
//	err := svc.ConvertFile("/in/photo.png", "/out/photo.webp", 80)
//
// The individual steps are exposed as well:
//
//	img, mode, _ := svc.DecodeFile("/in/logo.png") // mode == ModeRGBA
//	rgb := svc.Normalize(img, mode)                // transparent -> white
//	err := svc.EncodeWebP(w, rgb, 80)
//
// Supported inputs are PNG, JPEG, BMP and TIFF. Transparent and indexed
// images are flattened onto white before encoding; output never carries an
// alpha channel.
package ioutils
