package entity

// Assigned ID prefixes, in priority order
const (
	PrefixDocument = "pass_"
	PrefixUID      = "id_"
	PrefixNickname = "nick_"
)

// FrequentFlyerIdentity is a candidate binding of a loyalty key to a source uid
// and/or a forum nickname.
type FrequentFlyerIdentity struct {
	UID      string `json:"uid,omitempty"`
	FFKey    string `json:"ffKey"`
	Nickname string `json:"nickname,omitempty"`
}

// ConflictedKey is a binding whose ffkey is claimed by two or more distinct uids.
type ConflictedKey struct {
	UID   string `json:"uid"`
	FFKey string `json:"ffKey"`
}

// NicknameConflict is a forum program key claimed by two or more nicknames.
type NicknameConflict struct {
	FFKey     string   `json:"ffKey"`
	Nicknames []string `json:"nicknames"`
}

// FFKeyDocumentConflict is an ffkey referenced from reservation metadata of two
// or more distinct documents.
type FFKeyDocumentConflict struct {
	FFKey     string   `json:"ffKey"`
	Documents []string `json:"documents"`
}

// CanonicalIdentity is one resolved person binding
type CanonicalIdentity struct {
	UID               string `json:"uid,omitempty"`
	FFKey             string `json:"ffKey"`
	Nickname          string `json:"nickname,omitempty"`
	CanonicalDocument string `json:"canonicalDocument,omitempty"`
	AssignedID        string `json:"assignedId"`
}
