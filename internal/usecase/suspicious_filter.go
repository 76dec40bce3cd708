package usecase

import (
	"paxfusion-service/internal/domain/entity"
)

// DefaultSuspiciousRatio keeps the frequent subset when it is at least as large
// as the suspicious one
const DefaultSuspiciousRatio = 1.0

// FilterResult is the output of the suspicious-leg filter
type FilterResult struct {
	Legs    []entity.FlightLeg
	Dropped []entity.SuspiciousLeg
}

type scheduleGroup struct {
	indexes     []int
	modalOrigin string
	modalDest   string
	frequent    int
}

// FilterSuspicious drops minority-route legs within each scheduled departure
// (date, time, flight number). A group's frequent legs match both its modal
// origin and modal destination; blank airports never vote and never match.
// Suspicious legs are dropped only when len(frequent) >= ratio*len(suspicious);
// otherwise the group is kept whole. Legs with an incomplete schedule key join
// no group and are kept. Kept legs retain their input order.
func FilterSuspicious(legs []entity.FlightLeg, ratio float64) FilterResult {
	if ratio <= 0 {
		ratio = DefaultSuspiciousRatio
	}

	groups := make(map[entity.ScheduleKey]*scheduleGroup)
	var order []entity.ScheduleKey
	for i, leg := range legs {
		if leg.FlightDate == "" || leg.FlightTime == "" || leg.FlightNumber == "" {
			continue
		}
		key := leg.Schedule()
		g, ok := groups[key]
		if !ok {
			g = &scheduleGroup{}
			groups[key] = g
			order = append(order, key)
		}
		g.indexes = append(g.indexes, i)
	}

	drop := make([]bool, len(legs))
	for _, key := range order {
		g := groups[key]
		origins := make([]string, len(g.indexes))
		dests := make([]string, len(g.indexes))
		for j, idx := range g.indexes {
			origins[j] = legs[idx].Origin
			dests[j] = legs[idx].Dest
		}
		g.modalOrigin = mode(origins)
		g.modalDest = mode(dests)

		var suspicious []int
		for _, idx := range g.indexes {
			leg := legs[idx]
			if leg.Origin != "" && leg.Dest != "" && leg.Origin == g.modalOrigin && leg.Dest == g.modalDest {
				g.frequent++
			} else {
				suspicious = append(suspicious, idx)
			}
		}
		if len(suspicious) == 0 || float64(g.frequent) < ratio*float64(len(suspicious)) {
			continue
		}
		for _, idx := range suspicious {
			drop[idx] = true
		}
	}

	kept := make([]entity.FlightLeg, 0, len(legs))
	var dropped []entity.SuspiciousLeg
	for i, leg := range legs {
		if !drop[i] {
			kept = append(kept, leg)
			continue
		}
		g := groups[leg.Schedule()]
		dropped = append(dropped, entity.SuspiciousLeg{
			Leg:          leg,
			ModalOrigin:  g.modalOrigin,
			ModalDest:    g.modalDest,
			GroupSize:    len(g.indexes),
			FrequentSize: g.frequent,
		})
	}

	return FilterResult{Legs: kept, Dropped: dropped}
}

// mode returns the most frequent non-blank value; ties go to the value seen first
func mode(values []string) string {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		if v != "" {
			counts[v]++
		}
	}
	best, bestCount := "", 0
	for _, v := range values {
		if v != "" && counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}
