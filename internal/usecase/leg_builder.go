package usecase

import (
	"strings"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/pkg/utils"
)

// ReservationLegs maps reservation-export rows onto the common leg schema.
// Values that fail to normalize become empty and are dropped later at the join
// boundary.
func ReservationLegs(records []entity.ReservationRecord) []entity.FlightLeg {
	legs := make([]entity.FlightLeg, 0, len(records))
	for _, r := range records {
		legs = append(legs, entity.FlightLeg{
			Document:     utils.NormalizeDocument(r.TravelDoc),
			Ticket:       utils.NormalizeTicket(r.ETicket),
			FlightNumber: utils.NormalizeFlightNumber(r.Flight),
			FlightDate:   dateOrEmpty(r.DepartDate),
			FlightTime:   timeOrEmpty(r.DepartTime),
			Origin:       utils.NormalizeAirport(r.From),
			Dest:         utils.NormalizeAirport(r.Dest),
			PaxName:      r.PaxName,
			Remarks:      r.AdditionalInfo,
			Source:       entity.SourceReservation,
		})
	}
	return legs
}

// BoardingLegs maps boarding-pass rows onto the common leg schema. The route is
// unknown at this point and is filled in by the deduplicator.
func BoardingLegs(passes []entity.BoardingPass) []entity.FlightLeg {
	legs := make([]entity.FlightLeg, 0, len(passes))
	for _, p := range passes {
		legs = append(legs, entity.FlightLeg{
			Document:     utils.NormalizeDocument(p.PassengerDocument),
			Ticket:       utils.NormalizeTicket(p.TicketNumber),
			FlightNumber: utils.NormalizeFlightNumber(p.FlightNumber),
			FlightDate:   dateOrEmpty(p.FlightDate),
			FlightTime:   timeOrEmpty(p.FlightTime),
			PaxName:      utils.DisplayName(p.PassengerLastName, p.PassengerFirstName, p.PassengerSecondName),
			Source:       entity.SourceBoarding,
		})
	}
	return legs
}

func dateOrEmpty(value string) string {
	d, err := utils.NormalizeDate(value)
	if err != nil {
		return ""
	}
	return d
}

func timeOrEmpty(value string) string {
	t, err := utils.NormalizeTime(value)
	if err != nil {
		return ""
	}
	return t
}

func trimmed(value string) string {
	return strings.TrimSpace(value)
}
