// Package service is the boundary consumed by the CLI and the HTTP wrapper.
//
// A Service owns the configured classifier and extractor. Each RunPipeline
// call opens a fresh render session (and, when configured, an embedded Tor
// daemon), runs the pipeline, writes the spreadsheet and releases the session
// whatever the outcome. Runs are serialised because they share one output
// file.
package service
