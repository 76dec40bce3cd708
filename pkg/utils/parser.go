package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/pkg/logger"
)

// Required columns per extract
var (
	reservationColumns = []string{"TravelDoc", "e-Ticket", "Flight", "DepartDate", "DepartTime", "From", "Dest", "PaxName"}
	boardingColumns    = []string{"PassengerDocument", "FlightNumber", "FlightDate", "FlightTime", "TicketNumber", "PassengerLastName", "PassengerFirstName", "PassengerSecondName"}
	exchangeKeys       = []string{"Date", "FlightNumber", "FFKey"}
	clubColumns        = []string{"uid", "card_number", "code", "date", "departure", "arrival", "fare"}
)

// ExtractParser turns raw extract files into typed extract rows
type ExtractParser struct {
	logger logger.Logger
}

// NewExtractParser creates a new extract parser
func NewExtractParser(logger logger.Logger) *ExtractParser {
	return &ExtractParser{logger: logger}
}

// ParseReservationExport reads the tab-separated reservation-system export
func (p *ExtractParser) ParseReservationExport(r io.Reader) ([]entity.ReservationRecord, error) {
	var records []entity.ReservationRecord
	err := readDelimited(r, '\t', reservationColumns, func(h header, row []string) {
		records = append(records, entity.ReservationRecord{
			TravelDoc:      h.get(row, "TravelDoc"),
			ETicket:        h.get(row, "e-Ticket"),
			Flight:         h.get(row, "Flight"),
			DepartDate:     h.get(row, "DepartDate"),
			DepartTime:     h.get(row, "DepartTime"),
			From:           h.get(row, "From"),
			Dest:           h.get(row, "Dest"),
			PaxName:        h.get(row, "PaxName"),
			AdditionalInfo: h.get(row, "AdditionalInfo"),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse reservation export: %w", err)
	}
	p.logger.Debug("Parsed reservation export", "rows", len(records))
	return records, nil
}

// ParseBoardingPasses reads the semicolon-separated boarding-pass export.
// The "Not presented" ticket sentinel becomes empty.
func (p *ExtractParser) ParseBoardingPasses(r io.Reader) ([]entity.BoardingPass, error) {
	var passes []entity.BoardingPass
	err := readDelimited(r, ';', boardingColumns, func(h header, row []string) {
		passes = append(passes, entity.BoardingPass{
			PassengerDocument:   h.get(row, "PassengerDocument"),
			FlightNumber:        h.get(row, "FlightNumber"),
			FlightDate:          h.get(row, "FlightDate"),
			FlightTime:          h.get(row, "FlightTime"),
			TicketNumber:        NormalizeTicket(h.get(row, "TicketNumber")),
			PassengerLastName:   h.get(row, "PassengerLastName"),
			PassengerFirstName:  h.get(row, "PassengerFirstName"),
			PassengerSecondName: h.get(row, "PassengerSecondName"),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse boarding passes: %w", err)
	}
	p.logger.Debug("Parsed boarding passes", "rows", len(passes))
	return passes, nil
}

// ParseExchangeFeed reads the key-value exchange feed, a YAML list of records
func (p *ExtractParser) ParseExchangeFeed(r io.Reader) ([]entity.ExchangeFlight, error) {
	var nodes []yaml.Node
	if err := yaml.NewDecoder(r).Decode(&nodes); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse exchange feed: %w: %v", entity.ErrMalformedInput, err)
	}

	flights := make([]entity.ExchangeFlight, 0, len(nodes))
	for i := range nodes {
		node := &nodes[i]
		if node.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("failed to parse exchange feed: %w: record %d is not a mapping", entity.ErrMalformedInput, i)
		}
		if err := requireKeys(node, exchangeKeys...); err != nil {
			return nil, fmt.Errorf("failed to parse exchange feed: record %d: %w", i, err)
		}
		var flight entity.ExchangeFlight
		if err := node.Decode(&flight); err != nil {
			return nil, fmt.Errorf("failed to parse exchange feed: %w: record %d: %v", entity.ErrMalformedInput, i, err)
		}
		flights = append(flights, trimExchange(flight))
	}
	p.logger.Debug("Parsed exchange feed", "rows", len(flights))
	return flights, nil
}

// ParseClubExport reads the comma-separated loyalty-club export
func (p *ExtractParser) ParseClubExport(r io.Reader) ([]entity.ClubActivity, error) {
	var activities []entity.ClubActivity
	err := readDelimited(r, ',', clubColumns, func(h header, row []string) {
		activities = append(activities, entity.ClubActivity{
			UID:          h.get(row, "uid"),
			FirstName:    h.get(row, "first_name"),
			LastName:     h.get(row, "last_name"),
			CardNumber:   h.get(row, "card_number"),
			BonusProgram: h.get(row, "bonus_program"),
			ActivityType: h.get(row, "activity_type"),
			Code:         h.get(row, "code"),
			Date:         h.get(row, "date"),
			Departure:    h.get(row, "departure"),
			Arrival:      h.get(row, "arrival"),
			Fare:         h.get(row, "fare"),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse club export: %w", err)
	}
	p.logger.Debug("Parsed club export", "rows", len(activities))
	return activities, nil
}

// ParseForumProfiles reads the nested forum profile dump. Profiles without a
// nickname cannot be joined and are skipped.
func (p *ExtractParser) ParseForumProfiles(r io.Reader) ([]entity.ForumProfile, error) {
	var doc forumDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse forum profiles: %w: %v", entity.ErrMalformedInput, err)
	}
	if doc.Profiles == nil {
		return nil, fmt.Errorf("failed to parse forum profiles: %w: %q", entity.ErrMissingColumn, "Forum Profiles")
	}

	profiles := make([]entity.ForumProfile, 0, len(*doc.Profiles))
	skipped := 0
	for _, raw := range *doc.Profiles {
		nick := strings.TrimSpace(raw.NickName)
		if nick == "" {
			skipped++
			continue
		}
		profile := entity.ForumProfile{
			NickName: nick,
			RealName: entity.ForumRealName{
				FirstName: strings.TrimSpace(raw.RealName.FirstName),
				LastName:  strings.TrimSpace(raw.RealName.LastName),
			},
		}
		for _, f := range raw.Flights {
			flight := f.FlightNumber
			if flight == "" {
				flight = f.Flight
			}
			profile.Flights = append(profile.Flights, entity.ForumFlight{
				Date:             strings.TrimSpace(f.Date),
				FlightNumber:     strings.TrimSpace(flight),
				DepartureAirport: strings.TrimSpace(f.Departure.Airport),
				ArrivalAirport:   strings.TrimSpace(f.Arrival.Airport),
			})
		}
		for _, l := range raw.Loyalty {
			profile.Loyalty = append(profile.Loyalty, entity.ForumLoyalty{
				Programm: strings.TrimSpace(l.Programm),
				Number:   strings.TrimSpace(string(l.Number)),
			})
		}
		profiles = append(profiles, profile)
	}
	if skipped > 0 {
		p.logger.Warn("Skipped forum profiles without nickname", "count", skipped)
	}
	p.logger.Debug("Parsed forum profiles", "rows", len(profiles))
	return profiles, nil
}

func requireKeys(node *yaml.Node, keys ...string) error {
	present := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		present[node.Content[i].Value] = struct{}{}
	}
	for _, k := range keys {
		if _, ok := present[k]; !ok {
			return fmt.Errorf("%w: %q", entity.ErrMissingColumn, k)
		}
	}
	return nil
}

func trimExchange(f entity.ExchangeFlight) entity.ExchangeFlight {
	f.Date = strings.TrimSpace(f.Date)
	f.FlightNumber = strings.TrimSpace(f.FlightNumber)
	f.FFKey = strings.TrimSpace(f.FFKey)
	f.Class = strings.TrimSpace(f.Class)
	f.Fare = strings.TrimSpace(f.Fare)
	f.From = strings.TrimSpace(f.From)
	f.Status = strings.TrimSpace(f.Status)
	f.To = strings.TrimSpace(f.To)
	return f
}
