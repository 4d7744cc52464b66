package facility

import (
	"errors"
	"time"
)

// Location represents a data center site.
type Location struct {
	ID        string    `json:"locationId"`
	Name      string    `json:"name"`
	ShortName string    `json:"shortName"`
	Status    string    `json:"status"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Country   string    `json:"country,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Zone is a wing or hall within a location. The sensor list is the
// inventory the environmental generator produces readings for.
type Zone struct {
	ID                   string   `json:"zoneId"`
	LocationID           string   `json:"locationId"`
	Name                 string   `json:"name"`
	Cages                []string `json:"cages"`
	Racks                []string `json:"racks"`
	EnvironmentalSensors []string `json:"environmentalSensors"`
}

// Sentinel errors.
var (
	ErrLocationNotFound = errors.New("location not found")
	ErrZoneNotFound     = errors.New("zone not found")
)
