package entity

// Airport is an airport from the airport directory
type Airport struct {
	ID          uint
	AirportCode string
	AirportName string
	CityCode    string
	CityName    string
	TzName      string
	Latitude    *float64
	Longitude   *float64
}

// Coordinates returns the airport position, if known
func (a *Airport) Coordinates() (Coordinates, bool) {
	if a == nil || a.Latitude == nil || a.Longitude == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *a.Latitude, Lon: *a.Longitude}, true
}
