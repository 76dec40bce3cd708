package entity

// Airline is a carrier from the airline directory
type Airline struct {
	ID   uint
	Code string
	Name string
}
