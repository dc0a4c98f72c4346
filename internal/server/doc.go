// Package server is the HTTP wrapper around the scrape service.
//
//	GET /          liveness text
//	GET /scrape    run the pipeline (?max=N, default 50)
//	GET /download  fetch the last spreadsheet
//
// Concurrent /scrape requests with the same max share one run.
package server
