package entity

// DocumentLink is a discovered equivalence between an alternate travel document
// and the canonical one, derived from a shared ticket number.
type DocumentLink struct {
	ForeignDocument   string `json:"foreignDocument"`
	CanonicalDocument string `json:"canonicalDocument"`
}

// DocumentConflict records a foreign document linked to more than one canonical
// document. Such documents are left unrewritten.
type DocumentConflict struct {
	ForeignDocument    string   `json:"foreignDocument"`
	CanonicalDocuments []string `json:"canonicalDocuments"`
}

// DocumentChain records a link whose canonical document is itself linked onward.
// Only the first hop is applied, so ForeignDocument is rewritten to
// CanonicalDocument and no further.
type DocumentChain struct {
	ForeignDocument   string   `json:"foreignDocument"`
	CanonicalDocument string   `json:"canonicalDocument"`
	NextDocuments     []string `json:"nextDocuments"`
}

// AmbiguousTicket records a boarding-only ticket number seen on several boarding
// records; all of them are excluded from the leg set.
type AmbiguousTicket struct {
	Ticket string      `json:"ticket"`
	Legs   []FlightLeg `json:"legs"`
}
