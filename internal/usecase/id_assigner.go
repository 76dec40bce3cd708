package usecase

import (
	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/pkg/utils"
)

// AssignResult is the output of the canonical ID assigner
type AssignResult struct {
	Identities []entity.CanonicalIdentity
	Conflicts  []entity.FFKeyDocumentConflict
	// Unlabelled counts identities with neither document, uid nor nickname
	Unlabelled int
}

// AssignIDs attaches a canonical document to each identity and labels it.
// Documents are found through loyalty references ("FF#SU 1234567") in the free-text
// metadata of reconciled reservation legs. A key referenced by several documents
// gets none.
func AssignIDs(identities []entity.FrequentFlyerIdentity, reservation []entity.FlightLeg) AssignResult {
	var keyOrder []string
	docsByKey := make(map[string][]string)
	for _, leg := range reservation {
		if leg.Document == "" || leg.Remarks == "" {
			continue
		}
		for _, key := range utils.ExtractFFReferences(leg.Remarks) {
			if _, ok := docsByKey[key]; !ok {
				keyOrder = append(keyOrder, key)
			}
			docsByKey[key] = appendUnique(docsByKey[key], leg.Document)
		}
	}

	var result AssignResult
	for _, key := range keyOrder {
		if docs := docsByKey[key]; len(docs) > 1 {
			result.Conflicts = append(result.Conflicts, entity.FFKeyDocumentConflict{FFKey: key, Documents: docs})
		}
	}

	result.Identities = make([]entity.CanonicalIdentity, 0, len(identities))
	for _, identity := range identities {
		canonical := entity.CanonicalIdentity{
			UID:      identity.UID,
			FFKey:    identity.FFKey,
			Nickname: identity.Nickname,
		}
		if docs := docsByKey[identity.FFKey]; len(docs) == 1 {
			canonical.CanonicalDocument = docs[0]
		}
		canonical.AssignedID = AssignedID(canonical.CanonicalDocument, canonical.UID, canonical.Nickname)
		if canonical.AssignedID == "" {
			result.Unlabelled++
			continue
		}
		result.Identities = append(result.Identities, canonical)
	}
	return result
}

// AssignedID picks the label by priority: document, then uid, then nickname
func AssignedID(document, uid, nickname string) string {
	switch {
	case document != "":
		return entity.PrefixDocument + document
	case uid != "":
		return entity.PrefixUID + uid
	case nickname != "":
		return entity.PrefixNickname + nickname
	}
	return ""
}
