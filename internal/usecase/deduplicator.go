package usecase

import (
	"paxfusion-service/internal/domain/entity"
)

// DedupResult is the output of the flight-record deduplicator
type DedupResult struct {
	Legs             []entity.FlightLeg
	AmbiguousTickets []entity.AmbiguousTicket
	// MissingKeys counts rows dropped for lacking a join key
	MissingKeys int
}

type legKey struct {
	document string
	schedule entity.ScheduleKey
}

// Deduplicate merges reconciled+filtered reservation legs with boarding legs into
// one leg set holding at most one row per (document, flight, date, time).
//
// Boarding legs take their route from the first reservation leg of the same
// scheduled departure. A ticket that appears only in the boarding export and
// still has more than one distinct record after exact de-duplication cannot be
// attributed and is excluded entirely.
func Deduplicate(reservation, boarding []entity.FlightLeg) DedupResult {
	type route struct{ origin, dest string }
	routes := make(map[entity.ScheduleKey]route)
	reservationTickets := make(map[string]struct{})
	for _, leg := range reservation {
		if _, ok := routes[leg.Schedule()]; !ok && (leg.Origin != "" || leg.Dest != "") {
			routes[leg.Schedule()] = route{leg.Origin, leg.Dest}
		}
		if leg.Ticket != "" {
			reservationTickets[leg.Ticket] = struct{}{}
		}
	}

	enriched := make([]entity.FlightLeg, 0, len(boarding))
	seen := make(map[entity.FlightLeg]struct{}, len(boarding))
	for _, leg := range boarding {
		if r, ok := routes[leg.Schedule()]; ok {
			if leg.Origin == "" {
				leg.Origin = r.origin
			}
			if leg.Dest == "" {
				leg.Dest = r.dest
			}
		}
		if _, dup := seen[leg]; dup {
			continue
		}
		seen[leg] = struct{}{}
		enriched = append(enriched, leg)
	}

	byTicket := make(map[string][]entity.FlightLeg)
	var ticketOrder []string
	for _, leg := range enriched {
		if leg.Ticket == "" {
			continue
		}
		if _, shared := reservationTickets[leg.Ticket]; shared {
			continue
		}
		if _, ok := byTicket[leg.Ticket]; !ok {
			ticketOrder = append(ticketOrder, leg.Ticket)
		}
		byTicket[leg.Ticket] = append(byTicket[leg.Ticket], leg)
	}
	var ambiguous []entity.AmbiguousTicket
	excluded := make(map[string]struct{})
	for _, ticket := range ticketOrder {
		if legs := byTicket[ticket]; len(legs) > 1 {
			ambiguous = append(ambiguous, entity.AmbiguousTicket{Ticket: ticket, Legs: legs})
			excluded[ticket] = struct{}{}
		}
	}

	result := DedupResult{AmbiguousTickets: ambiguous}
	index := make(map[legKey]int)
	merge := func(leg entity.FlightLeg) {
		if leg.Document == "" || leg.FlightNumber == "" || leg.FlightDate == "" || leg.FlightTime == "" {
			result.MissingKeys++
			return
		}
		key := legKey{document: leg.Document, schedule: leg.Schedule()}
		i, ok := index[key]
		if !ok {
			index[key] = len(result.Legs)
			result.Legs = append(result.Legs, leg)
			return
		}
		existing := &result.Legs[i]
		existing.Ticket = coalesce(existing.Ticket, leg.Ticket)
		existing.Origin = coalesce(existing.Origin, leg.Origin)
		existing.Dest = coalesce(existing.Dest, leg.Dest)
		existing.PaxName = coalesce(existing.PaxName, leg.PaxName)
	}

	for _, leg := range reservation {
		merge(leg)
	}
	for _, leg := range enriched {
		if _, skip := excluded[leg.Ticket]; skip && leg.Ticket != "" {
			continue
		}
		merge(leg)
	}

	return result
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
