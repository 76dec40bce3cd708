// internal/domain/entity/flight_record.go
package entity

// FlightLeg is one passenger-on-one-flight-leg observation.
// Document and Ticket are alternate keys; either may be empty.
type FlightLeg struct {
	Document     string `json:"document,omitempty"`
	Ticket       string `json:"ticket,omitempty"`
	FlightNumber string `json:"flightNumber"`
	FlightDate   string `json:"flightDate"` // 2006-01-02
	FlightTime   string `json:"flightTime"` // 15:04
	Origin       string `json:"origin,omitempty"`
	Dest         string `json:"dest,omitempty"`
	PaxName      string `json:"paxName,omitempty"`
	Remarks      string `json:"-"` // free-text passenger metadata, reservation legs only
	Source       Source `json:"source"`
}

// ScheduleKey identifies one scheduled departure
type ScheduleKey struct {
	FlightDate   string
	FlightTime   string
	FlightNumber string
}

// Schedule returns the scheduled departure the leg belongs to
func (l FlightLeg) Schedule() ScheduleKey {
	return ScheduleKey{FlightDate: l.FlightDate, FlightTime: l.FlightTime, FlightNumber: l.FlightNumber}
}

// SuspiciousLeg is a reservation leg dropped because its route disagreed with the
// majority route of its scheduled departure.
type SuspiciousLeg struct {
	Leg          FlightLeg `json:"leg"`
	ModalOrigin  string    `json:"modalOrigin"`
	ModalDest    string    `json:"modalDest"`
	GroupSize    int       `json:"groupSize"`
	FrequentSize int       `json:"frequentSize"`
}
