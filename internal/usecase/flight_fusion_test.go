package usecase

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paxfusion-service/internal/domain/entity"
)

func TestFuseFlights_JoinsEverySource(t *testing.T) {
	identities := []entity.CanonicalIdentity{
		{UID: "42", FFKey: "SU111", Nickname: "alpha", CanonicalDocument: "AB123", AssignedID: "pass_AB123"},
		{FFKey: "DL222", Nickname: "delta", AssignedID: "nick_delta"},
	}
	exchange := []entity.ExchangeFlight{
		{FFKey: "SU 111", Date: "2024-05-01", FlightNumber: "SU 100", From: "svo", To: "led", Fare: "120"},
		{FFKey: "SU111", Date: "01.05.2024", FlightNumber: "SU100", From: "SVO", To: "LED", Fare: "120"},
		{FFKey: "SU111", Date: "2024-05-02", FlightNumber: "", Fare: "80"},
		{FFKey: "ZZ999", Date: "2024-05-03", FlightNumber: "ZZ1"},
	}
	club := []entity.ClubActivity{
		{UID: "42", CardNumber: "SU111", Code: "SU100", Date: "2024-05-01", Departure: "SVO", Arrival: "LED", Fare: "120"},
		{UID: "42", CardNumber: "SU111", Code: "SU300", Date: "2024-06-01", Departure: "LED", Arrival: "KZN", Fare: "60"},
	}
	forum := []entity.ForumProfile{{
		NickName: "delta",
		Flights:  []entity.ForumFlight{{Date: "2024-07-01", FlightNumber: "DL5", DepartureAirport: "JFK", ArrivalAirport: "SVO"}},
	}}
	legs := []entity.FlightLeg{
		{Document: "AB123", FlightNumber: "SU100", FlightDate: "2024-05-01", Origin: "SVO", Dest: "LED", Source: entity.SourceReservation},
		{Document: "AB123", FlightNumber: "SU400", FlightDate: "2024-08-01", Origin: "SVO", Dest: "AER", Source: entity.SourceBoarding},
		{Document: "ZX9", FlightNumber: "SU500", FlightDate: "2024-09-01", Origin: "AER", Dest: "SVO", Source: entity.SourceReservation},
	}

	got := FuseFlights(identities, legs, exchange, club, forum)

	want := []entity.HistoryRow{
		{AssignedID: "pass_AB123", UID: "42", FFKey: "SU111", Nickname: "alpha", FlightDate: "2024-05-01", FlightNumber: "SU100", Origin: "SVO", Dest: "LED", Fare: "120", Source: entity.SourceExchange},
		{AssignedID: "pass_AB123", UID: "42", FFKey: "SU111", Nickname: "alpha", FlightDate: "2024-06-01", FlightNumber: "SU300", Origin: "LED", Dest: "KZN", Fare: "60", Source: entity.SourceClub},
		{AssignedID: "nick_delta", FFKey: "DL222", Nickname: "delta", FlightDate: "2024-07-01", FlightNumber: "DL5", Origin: "JFK", Dest: "SVO", Source: entity.SourceForum},
		{AssignedID: "pass_AB123", UID: "42", FFKey: "SU111", Nickname: "alpha", FlightDate: "2024-08-01", FlightNumber: "SU400", Origin: "SVO", Dest: "AER", Source: entity.SourceBoarding},
		{AssignedID: "pass_ZX9", FlightDate: "2024-09-01", FlightNumber: "SU500", Origin: "AER", Dest: "SVO", Source: entity.SourceReservation},
	}
	if diff := cmp.Diff(want, got.History); diff != "" {
		t.Errorf("History mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, got.NoFlight)
}

func TestFuseFlights_DifferentFaresAreDistinct(t *testing.T) {
	identities := []entity.CanonicalIdentity{{UID: "1", FFKey: "SU1", AssignedID: "id_1"}}
	exchange := []entity.ExchangeFlight{
		{FFKey: "SU1", Date: "2024-05-01", FlightNumber: "SU100", From: "SVO", To: "LED", Fare: "100"},
		{FFKey: "SU1", Date: "2024-05-01", FlightNumber: "SU100", From: "SVO", To: "LED", Fare: "200"},
	}

	got := FuseFlights(identities, nil, exchange, nil, nil)
	require.Len(t, got.History, 2)
}
