// Package convert provides the orchestration logic for converting a
// directory of images to WebP.
//
// # Manager
//
// The Manager coordinates the whole run:
//
//  1. Scan the input directory root for supported images
//  2. Build one ConversionTask per image
//  3. Convert tasks concurrently on a bounded worker pool
//  4. Fold every outcome into a RunSummary
//
// # Basic Usage
//
//	manager := convert.NewManager(settings, func(event convert.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(); err != nil {
//	    log.Fatal(err) // convert.ErrNoImages when the directory is empty
//	}
//
//	summary, err := manager.StartConversions()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d ok, %d failed\n", summary.Successful, summary.Failed)
//
// # Concurrency
//
// At most settings.Jobs conversions run at once. Each task produces exactly
// one outcome, sent over a channel to the goroutine that called
// StartConversions, which is the only writer of the summary. A run cannot
// be cancelled once started.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// Counters for UIs are available through GetProgress.
//
// # Failures
//
// A failed conversion is counted and reported, never retried. A panic in a
// worker is recovered and recorded as an unexpected failure.
package convert
