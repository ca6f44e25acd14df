package catalog

// Candidate is a raw product returned by a catalog search. The name is
// free text from the catalog; no structure is assumed.
type Candidate struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	ID    string  `json:"id"` // product identifier or URL
}

// Result is the outcome of matching one ingredient against a candidate
// set. No-match is a first-class outcome, not an error: Matched is
// false and Candidate is nil when nothing clears the threshold.
type Result struct {
	Candidate *Candidate
	Score     float64
	Matched   bool
}

// QualifierRule disqualifies candidates whose name carries a modifier
// the ingredient does not ask for. With Base "lait" and Modifier
// "coco", the ingredient "lait" never matches "lait de coco", while the
// ingredient "lait de coco" still does.
type QualifierRule struct {
	Base     string `yaml:"base"`
	Modifier string `yaml:"modifier"`
}
