package entity

// Source identifies which extract a row came from
type Source string

const (
	SourceReservation Source = "reservation"
	SourceBoarding    Source = "boarding"
	SourceExchange    Source = "exchange"
	SourceClub        Source = "club"
	SourceForum       Source = "forum"
)

// ReservationRecord is one row of the reservation-system export
type ReservationRecord struct {
	TravelDoc      string `json:"travelDoc"`
	ETicket        string `json:"eTicket"`
	Flight         string `json:"flight"`
	DepartDate     string `json:"departDate"`
	DepartTime     string `json:"departTime"`
	From           string `json:"from"`
	Dest           string `json:"dest"`
	PaxName        string `json:"paxName"`
	AdditionalInfo string `json:"additionalInfo,omitempty"` // free-text passenger metadata
}

// BoardingPass is one row of the airport boarding-pass export.
// TicketNumber is empty when the passenger did not present a ticket.
type BoardingPass struct {
	PassengerDocument   string `json:"passengerDocument"`
	FlightNumber        string `json:"flightNumber"`
	FlightDate          string `json:"flightDate"`
	FlightTime          string `json:"flightTime"`
	TicketNumber        string `json:"ticketNumber,omitempty"`
	PassengerLastName   string `json:"passengerLastName"`
	PassengerFirstName  string `json:"passengerFirstName"`
	PassengerSecondName string `json:"passengerSecondName"`
}

// ExchangeFlight is one (date, flight, ffkey) row of the travel-agency exchange feed
type ExchangeFlight struct {
	Date         string `json:"date" yaml:"Date"`
	FlightNumber string `json:"flightNumber" yaml:"FlightNumber"`
	FFKey        string `json:"ffKey" yaml:"FFKey"`
	Class        string `json:"class" yaml:"Class"`
	Fare         string `json:"fare" yaml:"Fare"`
	From         string `json:"from" yaml:"From"`
	Status       string `json:"status" yaml:"Status"`
	To           string `json:"to" yaml:"To"`
}

// ClubActivity is one loyalty activity row from the airline club export
type ClubActivity struct {
	UID          string `json:"uid"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	CardNumber   string `json:"cardNumber"`
	BonusProgram string `json:"bonusProgram"`
	ActivityType string `json:"activityType"`
	Code         string `json:"code"` // flight number for flight activities
	Date         string `json:"date"`
	Departure    string `json:"departure"`
	Arrival      string `json:"arrival"`
	Fare         string `json:"fare"`
}

// ForumProfile is a self-reported profile from the frequent-flyer forum
type ForumProfile struct {
	NickName string         `json:"nickName" bson:"nickName"`
	RealName ForumRealName  `json:"realName" bson:"realName"`
	Flights  []ForumFlight  `json:"registeredFlights" bson:"registeredFlights"`
	Loyalty  []ForumLoyalty `json:"loyaltyProgramm" bson:"loyaltyProgramm"`
}

// ForumRealName holds the real-name sub-table of a forum profile
type ForumRealName struct {
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
}

// ForumFlight is one registered flight of a forum profile
type ForumFlight struct {
	Date             string `json:"date" bson:"date"`
	FlightNumber     string `json:"flightNumber" bson:"flightNumber"`
	DepartureAirport string `json:"departureAirport" bson:"departureAirport"`
	ArrivalAirport   string `json:"arrivalAirport" bson:"arrivalAirport"`
}

// ForumLoyalty is one loyalty-program membership of a forum profile
type ForumLoyalty struct {
	Programm string `json:"programm" bson:"programm"`
	Number   string `json:"number" bson:"number"`
}

// Snapshot bundles one extraction run of all five sources
type Snapshot struct {
	Reservations   []ReservationRecord
	BoardingPasses []BoardingPass
	Exchange       []ExchangeFlight
	Club           []ClubActivity
	Forum          []ForumProfile
}
