package model

// SuspectRecord is a single (name, age, crime) candidate extracted from an
// article. Name and Age may be empty when only the fallback strategy matched.
type SuspectRecord struct {
	// Name is the capitalised personal name, or empty.
	Name string `json:"name,omitempty"`

	// Age is the age exactly as written in the text, or empty.
	// It is kept as a string so leading zeros and odd values survive.
	Age string `json:"age,omitempty"`

	// Crime is the matched charge word (primary strategy) or the charge
	// phrase following a cue such as "charged with" (fallback strategy).
	Crime string `json:"crime"`

	// Strategy names the extraction strategy that produced the record.
	Strategy string `json:"strategy,omitempty"`
}

// HasName reports whether a name was extracted.
func (s SuspectRecord) HasName() bool {
	return s.Name != ""
}

// HasAge reports whether an age was extracted.
func (s SuspectRecord) HasAge() bool {
	return s.Age != ""
}
