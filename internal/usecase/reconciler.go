package usecase

import (
	"paxfusion-service/internal/domain/entity"
)

// ReconcileResult is the output of document reconciliation
type ReconcileResult struct {
	Links     []entity.DocumentLink
	Conflicts []entity.DocumentConflict
	// Chains are links whose canonical document is also a foreign one
	Chains []entity.DocumentChain
	// Legs are the reservation legs with foreign documents replaced by their
	// canonical document. Same length and order as the input.
	Legs []entity.FlightLeg
}

// Reconcile resolves the "double document" problem. A ticket number recorded under
// one document in the reservation export and under another in the boarding-pass
// export links the two: the reservation document is foreign, the boarding one is
// canonical. Every reservation leg carrying a foreign document is rewritten to the
// canonical one.
//
// Resolution is one hop deep: if A links to B and B links to C, legs with A become
// B, not C, and the A->B link is reported as a chain. A foreign document linked to
// several canonical documents is ambiguous and left untouched.
func Reconcile(reservation, boarding []entity.FlightLeg) ReconcileResult {
	boardingDocs := make(map[string][]string)
	for _, leg := range boarding {
		if leg.Ticket == "" || leg.Document == "" {
			continue
		}
		boardingDocs[leg.Ticket] = appendUnique(boardingDocs[leg.Ticket], leg.Document)
	}

	var links []entity.DocumentLink
	seen := make(map[entity.DocumentLink]struct{})
	for _, leg := range reservation {
		if leg.Ticket == "" || leg.Document == "" {
			continue
		}
		for _, canonical := range boardingDocs[leg.Ticket] {
			if canonical == leg.Document {
				continue
			}
			link := entity.DocumentLink{ForeignDocument: leg.Document, CanonicalDocument: canonical}
			if _, ok := seen[link]; ok {
				continue
			}
			seen[link] = struct{}{}
			links = append(links, link)
		}
	}

	canonicalByForeign := make(map[string][]string)
	var foreignOrder []string
	for _, link := range links {
		if _, ok := canonicalByForeign[link.ForeignDocument]; !ok {
			foreignOrder = append(foreignOrder, link.ForeignDocument)
		}
		canonicalByForeign[link.ForeignDocument] = append(canonicalByForeign[link.ForeignDocument], link.CanonicalDocument)
	}

	var conflicts []entity.DocumentConflict
	mapping := make(map[string]string, len(canonicalByForeign))
	for _, foreign := range foreignOrder {
		canonical := canonicalByForeign[foreign]
		if len(canonical) > 1 {
			conflicts = append(conflicts, entity.DocumentConflict{
				ForeignDocument:    foreign,
				CanonicalDocuments: canonical,
			})
			continue
		}
		mapping[foreign] = canonical[0]
	}

	var chains []entity.DocumentChain
	for _, link := range links {
		if next, ok := canonicalByForeign[link.CanonicalDocument]; ok {
			chains = append(chains, entity.DocumentChain{
				ForeignDocument:   link.ForeignDocument,
				CanonicalDocument: link.CanonicalDocument,
				NextDocuments:     next,
			})
		}
	}

	legs := make([]entity.FlightLeg, len(reservation))
	for i, leg := range reservation {
		if canonical, ok := mapping[leg.Document]; ok {
			leg.Document = canonical
		}
		legs[i] = leg
	}

	return ReconcileResult{Links: links, Conflicts: conflicts, Chains: chains, Legs: legs}
}

func appendUnique(values []string, v string) []string {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}
