package discover

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/handiism/webp-converter/internal/model"
)

// TargetExtension is appended to every output file name.
const TargetExtension = ".webp"

// BuildTask maps a source image path to its conversion task.
//
// The output name is the source base name with its last extension replaced
// by TargetExtension, placed directly in outputDir. No filesystem access
// happens here.
//
// Example:
//
//	task := BuildTask("/photos/beach.PNG", "/out")
//	// task.OutputPath = "/out/beach.webp"
func BuildTask(path, outputDir string) model.ConversionTask {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return model.ConversionTask{
		InputPath:  path,
		OutputPath: filepath.Join(outputDir, stem+TargetExtension),
	}
}

// BuildTasks maps every path with BuildTask, preserving order.
func BuildTasks(paths []string, outputDir string) []model.ConversionTask {
	tasks := make([]model.ConversionTask, 0, len(paths))
	for _, p := range paths {
		tasks = append(tasks, BuildTask(p, outputDir))
	}
	return tasks
}

// FindCollisions returns the output paths claimed by more than one task,
// mapped to the colliding input paths in task order.
//
// Two inputs collide when they share a stem, e.g. a.png and a.jpg both
// become a.webp. Collisions are not resolved: whichever conversion finishes
// last owns the output file.
func FindCollisions(tasks []model.ConversionTask) map[string][]string {
	owners := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		owners[t.OutputPath] = append(owners[t.OutputPath], t.InputPath)
	}

	collisions := make(map[string][]string)
	for out, inputs := range owners {
		if len(inputs) > 1 {
			collisions[out] = inputs
		}
	}
	return collisions
}

// SortedKeys returns the keys of a collision map in lexicographic order.
func SortedKeys(collisions map[string][]string) []string {
	keys := make([]string, 0, len(collisions))
	for k := range collisions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
