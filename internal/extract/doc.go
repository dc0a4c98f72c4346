// Package extract pulls suspect name/age/charge triples out of the free text
// of a news release.
//
// Extraction is an ordered list of strategies with first-success-wins
// semantics: the first strategy that yields at least one record decides the
// result, and later strategies are not consulted.
//
// The default list has two strategies that deliberately behave differently:
//   - PrimaryStrategy returns every "Name, 34, ... charge-word" match in the
//     text, one record per match.
//   - FallbackStrategy runs only when the primary found nothing. It looks for
//     a single cue phrase ("charged with ...") and independently for the first
//     capitalised name and the first "N-year-old" age, and combines them into
//     at most one record. Name and age may be empty.
//
// Quality is best effort. The patterns are heuristics over prose and will
// both miss suspects and capture non-suspects.
package extract
