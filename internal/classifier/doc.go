// Package classifier decides whether an article is crime related.
//
// The test is a literal, case-insensitive substring search of a fixed
// vocabulary against the article text. There is no tokenisation and no
// stemming: "gun" matches inside "gunpoint", and also inside "begun". Compound
// phrases such as "break and enter" are matched as a whole.
//
// The vocabulary is compiled once into an Aho-Corasick automaton, so the cost
// of a check is linear in the text length regardless of how many keywords are
// configured.
//
// # Usage
//
//	c := classifier.New(classifier.DefaultKeywords())
//	if c.IsCrimeRelated(article.Text) {
//	    // extract suspects
//	}
package classifier
