// Package model defines the core data structures used throughout
// the webp-converter application.
//
// # ConversionTask
//
// ConversionTask pairs a source image with the WebP file it is converted to:
//
//	task := model.ConversionTask{InputPath: "/in/a.png", OutputPath: "/out/a.webp"}
//
// # ConversionOutcome
//
// Every task produces exactly one outcome, either a success or a failure with
// a descriptive message:
//
//	ok := model.Succeeded(task)
//	bad := model.Failed(task, err)
//	fmt.Println(bad.Detail)
//
// # RunSummary
//
// RunSummary folds outcomes into the counters printed at the end of a run:
//
//	var summary model.RunSummary
//	summary.Add(ok)
//	summary.Add(bad)
//	fmt.Println(summary.Successful, summary.Failed, summary.Total()) // 1 1 2
package model
