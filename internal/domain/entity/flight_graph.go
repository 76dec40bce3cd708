package entity

// Coordinates is a geographic position
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// FlightPath is one geocoded flight of a passenger, ready for map rendering
type FlightPath struct {
	PassengerID  string      `json:"passengerId"`
	FlightDate   string      `json:"flightDate"`
	FlightNumber string      `json:"flightNumber"`
	From         string      `json:"from"`
	To           string      `json:"to"`
	FromCoords   Coordinates `json:"fromCoords"`
	ToCoords     Coordinates `json:"toCoords"`
}

// FlightGraph is the set of flight paths of the selected passengers
type FlightGraph struct {
	Passengers []string     `json:"passengers"`
	Paths      []FlightPath `json:"paths"`
	Skipped    int          `json:"skipped"` // flights without airport coordinates
}
