package usecase

import (
	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/pkg/utils"
)

type historyKey struct {
	assignedID string
	ffKey      string
	date       string
	flight     string
	origin     string
	dest       string
	fare       string
}

type tripKey struct {
	assignedID string
	date       string
	flight     string
}

// FuseResult is the output of cross-source flight fusion
type FuseResult struct {
	History []entity.HistoryRow
	// NoFlight counts source rows dropped for lacking a flight number
	NoFlight int
}

// FuseFlights joins the flight rows of every source onto the canonical identities
// and returns one deduplicated history table. Exchange and club rows join on
// ffkey, forum flights on nickname. Document legs join on the canonical document
// and fall back to a pass_<document> label when no identity carries it; a
// document leg already attested by a loyalty source for the same identity, date
// and flight adds no row.
func FuseFlights(
	identities []entity.CanonicalIdentity,
	legs []entity.FlightLeg,
	exchange []entity.ExchangeFlight,
	club []entity.ClubActivity,
	forum []entity.ForumProfile,
) FuseResult {
	exchangeByKey := make(map[string][]entity.HistoryRow)
	for _, row := range exchange {
		key := utils.NormalizeFFKey(row.FFKey)
		exchangeByKey[key] = append(exchangeByKey[key], entity.HistoryRow{
			FlightDate:   dateOrEmpty(row.Date),
			FlightNumber: utils.NormalizeFlightNumber(row.FlightNumber),
			Origin:       utils.NormalizeAirport(row.From),
			Dest:         utils.NormalizeAirport(row.To),
			Fare:         trimmed(row.Fare),
			Source:       entity.SourceExchange,
		})
	}
	clubByKey := make(map[string][]entity.HistoryRow)
	for _, row := range club {
		key := utils.NormalizeFFKey(row.CardNumber)
		clubByKey[key] = append(clubByKey[key], entity.HistoryRow{
			FlightDate:   dateOrEmpty(row.Date),
			FlightNumber: utils.NormalizeFlightNumber(row.Code),
			Origin:       utils.NormalizeAirport(row.Departure),
			Dest:         utils.NormalizeAirport(row.Arrival),
			Fare:         trimmed(row.Fare),
			Source:       entity.SourceClub,
		})
	}
	forumByNick := make(map[string][]entity.HistoryRow)
	for _, profile := range forum {
		nick := trimmed(profile.NickName)
		for _, flight := range profile.Flights {
			forumByNick[nick] = append(forumByNick[nick], entity.HistoryRow{
				FlightDate:   dateOrEmpty(flight.Date),
				FlightNumber: utils.NormalizeFlightNumber(flight.FlightNumber),
				Origin:       utils.NormalizeAirport(flight.DepartureAirport),
				Dest:         utils.NormalizeAirport(flight.ArrivalAirport),
				Source:       entity.SourceForum,
			})
		}
	}

	var result FuseResult
	seen := make(map[historyKey]struct{})
	trips := make(map[tripKey]struct{})
	add := func(identity entity.CanonicalIdentity, row entity.HistoryRow) {
		if row.FlightNumber == "" {
			result.NoFlight++
			return
		}
		row.AssignedID = identity.AssignedID
		row.UID = identity.UID
		row.FFKey = identity.FFKey
		row.Nickname = identity.Nickname
		key := historyKey{row.AssignedID, row.FFKey, row.FlightDate, row.FlightNumber, row.Origin, row.Dest, row.Fare}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		trips[tripKey{row.AssignedID, row.FlightDate, row.FlightNumber}] = struct{}{}
		result.History = append(result.History, row)
	}

	byDocument := make(map[string]entity.CanonicalIdentity)
	for _, identity := range identities {
		for _, row := range exchangeByKey[identity.FFKey] {
			add(identity, row)
		}
		if identity.Nickname != "" {
			for _, row := range forumByNick[identity.Nickname] {
				add(identity, row)
			}
		}
		for _, row := range clubByKey[identity.FFKey] {
			add(identity, row)
		}
		if doc := identity.CanonicalDocument; doc != "" {
			if _, ok := byDocument[doc]; !ok {
				byDocument[doc] = identity
			}
		}
	}

	for _, leg := range legs {
		identity, ok := byDocument[leg.Document]
		if !ok {
			identity = entity.CanonicalIdentity{
				CanonicalDocument: leg.Document,
				AssignedID:        AssignedID(leg.Document, "", ""),
			}
		}
		if _, attested := trips[tripKey{identity.AssignedID, leg.FlightDate, leg.FlightNumber}]; attested {
			continue
		}
		add(identity, entity.HistoryRow{
			FlightDate:   leg.FlightDate,
			FlightNumber: leg.FlightNumber,
			Origin:       leg.Origin,
			Dest:         leg.Dest,
			Source:       leg.Source,
		})
	}

	return result
}
