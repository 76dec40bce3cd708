package entity

// HistoryRow is one row of the unified flight history
type HistoryRow struct {
	AssignedID   string `json:"assignedId"`
	UID          string `json:"uid,omitempty"`
	FFKey        string `json:"ffKey,omitempty"`
	Nickname     string `json:"nickname,omitempty"`
	FlightDate   string `json:"flightDate"`
	FlightNumber string `json:"flightNumber"`
	Origin       string `json:"origin"`
	Dest         string `json:"dest"`
	Fare         string `json:"fare,omitempty"`
	Airline      string `json:"airline,omitempty"`
	Source       Source `json:"source"`
}

// FusionResult holds every table produced by one fusion run
type FusionResult struct {
	RunID string `json:"runId"`

	DocumentLinks     []DocumentLink     `json:"documentLinks"`
	DocumentConflicts []DocumentConflict `json:"documentConflicts"`
	DocumentChains    []DocumentChain    `json:"documentChains"`
	ReconciledLegs    []FlightLeg        `json:"-"`
	SuspiciousLegs    []SuspiciousLeg    `json:"suspiciousLegs"`
	Legs              []FlightLeg        `json:"legs"`
	AmbiguousTickets  []AmbiguousTicket  `json:"ambiguousTickets"`

	Identities             []CanonicalIdentity     `json:"identities"`
	ConflictedKeys         []ConflictedKey         `json:"conflictedKeys"`
	NicknameConflicts      []NicknameConflict      `json:"nicknameConflicts"`
	FFKeyDocumentConflicts []FFKeyDocumentConflict `json:"ffKeyDocumentConflicts"`

	History []HistoryRow `json:"history"`
}
