package classifier

// defaultKeywords is the built-in crime vocabulary, grouped by category.
var defaultKeywords = [][]string{
	// violent
	{
		"murder", "attempted murder", "homicide", "manslaughter", "assault",
		"aggravated assault", "assault with a weapon", "assault causing bodily harm",
		"uttering threats", "forcible confinement", "criminal negligence causing death",
		"attempted strangulation",
	},
	// firearms and weapons
	{
		"firearm", "weapon", "handgun", "rifle", "gun", "shotgun", "discharge firearm",
		"possess loaded firearm", "carry concealed weapon", "unauthorized possession",
		"use of a firearm in crime",
	},
	// property
	{
		"robbery", "break and enter", "burglary", "theft", "auto theft",
		"possession of stolen property", "arson", "mischief under", "mischief over",
		"vandalism", "trespassing", "tampering",
	},
	// drugs
	{
		"trafficking", "possession for the purpose", "controlled substance", "cocaine",
		"heroin", "fentanyl", "methamphetamine", "marijuana", "illicit drugs", "drug lab",
	},
	// impaired and dangerous driving
	{
		"dui", "impaired driving", "driving under the influence", "over 80",
		"refuse breath sample", "blood alcohol concentration", "drug-impaired driving",
		"operating while impaired", "dangerous driving", "fail to remain", "evading police",
		"reckless driving", "stunt driving", "high-speed pursuit", "police chase",
		"criminal negligence in operation of a vehicle",
	},
	// sexual offences
	{
		"sexual assault", "sexual interference", "invitation to sexual touching",
		"child luring", "indecent exposure", "pornography", "voyeurism", "internet luring",
	},
	// organised and other
	{
		"gang", "gang-related", "hate crime", "human trafficking", "extortion", "intimidation",
		"criminal organization", "fraud", "financial crime",
	},
	// procedural
	{
		"breach of probation", "fail to comply", "obstruct police", "resist arrest",
		"escape lawful custody", "perjury", "public mischief", "impersonation of police",
	},
	// narrative cues
	{
		"charged with", "arrested for", "suspected of", "wanted for",
		"under investigation", "under investigation for",
	},
}

// DefaultKeywords returns a fresh copy of the built-in vocabulary.
func DefaultKeywords() []string {
	out := make([]string, 0, 96)
	for _, group := range defaultKeywords {
		out = append(out, group...)
	}
	return out
}
