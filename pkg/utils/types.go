package utils

import (
	"encoding/json"
	"strings"
)

// forumDocument is the raw layout of the forum profile dump
type forumDocument struct {
	Profiles *[]forumProfile `json:"Forum Profiles"`
}

type forumProfile struct {
	NickName string `json:"NickName"`
	RealName struct {
		FirstName string `json:"FirstName"`
		LastName  string `json:"LastName"`
	} `json:"Real Name"`
	Flights []forumFlight  `json:"Registered Flights"`
	Loyalty []forumLoyalty `json:"Loyality Programm"`
}

type forumFlight struct {
	Date         string `json:"Date"`
	Flight       string `json:"Flight"`
	FlightNumber string `json:"FlightNumber"`
	Departure    struct {
		Airport string `json:"Airport"`
	} `json:"Departure"`
	Arrival struct {
		Airport string `json:"Airport"`
	} `json:"Arrival"`
}

type forumLoyalty struct {
	Programm string     `json:"Programm"`
	Number   flexString `json:"Number"`
}

// flexString accepts both JSON strings and numbers
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(strings.TrimSpace(n.String()))
	return nil
}
