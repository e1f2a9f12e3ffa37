package model

// ConversionTask is one unit of work: a source image and the WebP file it
// becomes.
//
// Tasks are created by the discover package, one per discovered image, and
// are consumed exactly once by a conversion worker. A task is a plain value
// and is never modified after construction.
//
// The parent directory of OutputPath may not exist yet; the worker creates it
// on demand right before writing.
//
// Example:
//
//	task := model.ConversionTask{
//	    InputPath:  "/photos/beach.png",
//	    OutputPath: "/photos/webp/beach.webp",
//	}
type ConversionTask struct {
	// InputPath is the path of the source image.
	InputPath string

	// OutputPath is the path the encoded WebP file is written to.
	OutputPath string
}
