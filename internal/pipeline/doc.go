// Package pipeline drives one scrape run: collect links, then push each
// article through an ordered list of steps (fetch, classify, extract) and
// fold the resulting suspects into a deduplicated ResultSet.
//
// The run is strictly sequential. A step marks an article as skipped to stop
// processing it without error; this is how "not crime related" and "no
// suspects" are reported. A step error aborts the whole run unless
// WithContinueOnError is set, in which case the article is counted as failed
// and the run moves on.
package pipeline
