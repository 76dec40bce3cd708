package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paxfusion-service/internal/domain/entity"
)

func TestDeduplicate_SameTripFromBothSources(t *testing.T) {
	reservation := []entity.FlightLeg{
		{Document: "D1", Ticket: "T1", FlightNumber: "FL100", FlightDate: "2024-05-01", FlightTime: "10:00", Origin: "SVO", Dest: "LED", PaxName: "IVANOV IVAN", Source: entity.SourceReservation},
	}
	boarding := []entity.FlightLeg{
		{Document: "D1", Ticket: "T1", FlightNumber: "FL100", FlightDate: "2024-05-01", FlightTime: "10:00", PaxName: "IVANOV IVAN P", Source: entity.SourceBoarding},
		{Document: "D1", Ticket: "T1", FlightNumber: "FL100", FlightDate: "2024-05-01", FlightTime: "10:00", PaxName: "IVANOV IVAN P", Source: entity.SourceBoarding},
	}

	got := Deduplicate(reservation, boarding)

	require.Len(t, got.Legs, 1)
	assert.Equal(t, entity.SourceReservation, got.Legs[0].Source)
	assert.Equal(t, "SVO", got.Legs[0].Origin)
	assert.Empty(t, got.AmbiguousTickets)
}

func TestDeduplicate_EnrichesBoardingRoute(t *testing.T) {
	reservation := []entity.FlightLeg{
		{Document: "D1", Ticket: "T1", FlightNumber: "FL100", FlightDate: "2024-05-01", FlightTime: "10:00", Origin: "SVO", Dest: "LED"},
	}
	boarding := []entity.FlightLeg{
		{Document: "D2", Ticket: "T2", FlightNumber: "FL100", FlightDate: "2024-05-01", FlightTime: "10:00"},
		{Document: "D3", Ticket: "T3", FlightNumber: "FL999", FlightDate: "2024-05-01", FlightTime: "10:00"},
	}

	got := Deduplicate(reservation, boarding)

	require.Len(t, got.Legs, 3)
	assert.Equal(t, "SVO", got.Legs[1].Origin)
	assert.Equal(t, "LED", got.Legs[1].Dest)
	assert.Empty(t, got.Legs[2].Origin)
}

func TestDeduplicate_AmbiguousBoardingTicket(t *testing.T) {
	reservation := []entity.FlightLeg{
		{Document: "D1", Ticket: "T1", FlightNumber: "FL100", FlightDate: "2024-05-01", FlightTime: "10:00"},
	}
	boarding := []entity.FlightLeg{
		{Document: "D8", Ticket: "T9", FlightNumber: "FL100", FlightDate: "2024-05-01", FlightTime: "10:00"},
		{Document: "D9", Ticket: "T9", FlightNumber: "FL200", FlightDate: "2024-05-02", FlightTime: "12:00"},
		// the reservation export knows T1, so repeats of it are not ambiguous
		{Document: "D1", Ticket: "T1", FlightNumber: "FL100", FlightDate: "2024-05-01", FlightTime: "10:00"},
		{Document: "D1", Ticket: "T1", FlightNumber: "FL300", FlightDate: "2024-05-03", FlightTime: "09:00"},
	}

	got := Deduplicate(reservation, boarding)

	require.Len(t, got.AmbiguousTickets, 1)
	assert.Equal(t, "T9", got.AmbiguousTickets[0].Ticket)
	assert.Len(t, got.AmbiguousTickets[0].Legs, 2)
	for _, leg := range got.Legs {
		assert.NotEqual(t, "T9", leg.Ticket)
	}
	assert.Len(t, got.Legs, 2)
}

func TestDeduplicate_DropsMissingJoinKeys(t *testing.T) {
	reservation := []entity.FlightLeg{
		{Document: "", Ticket: "T1", FlightNumber: "FL100", FlightDate: "2024-05-01", FlightTime: "10:00"},
		{Document: "D2", FlightNumber: "", FlightDate: "2024-05-01", FlightTime: "10:00"},
		{Document: "D3", FlightNumber: "FL100", FlightDate: "", FlightTime: "10:00"},
		{Document: "D4", FlightNumber: "FL100", FlightDate: "2024-05-01", FlightTime: "10:00"},
	}

	got := Deduplicate(reservation, nil)

	assert.Equal(t, 3, got.MissingKeys)
	assert.Equal(t, []string{"D4"}, documents(got.Legs))
}

func TestDeduplicate_OneRowPerDocumentAndFlight(t *testing.T) {
	reservation := []entity.FlightLeg{
		{Document: "D1", Ticket: "", FlightNumber: "FL100", FlightDate: "2024-05-01", FlightTime: "10:00", Origin: "SVO"},
		{Document: "D1", Ticket: "T1", FlightNumber: "FL100", FlightDate: "2024-05-01", FlightTime: "10:00", Dest: "LED"},
	}

	got := Deduplicate(reservation, nil)

	require.Len(t, got.Legs, 1)
	assert.Equal(t, "T1", got.Legs[0].Ticket)
	assert.Equal(t, "SVO", got.Legs[0].Origin)
	assert.Equal(t, "LED", got.Legs[0].Dest)
}
