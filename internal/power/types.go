package power

import "time"

// Granularity is a reading's aggregation level.
type Granularity string

const (
	GranularityHourly Granularity = "hourly"
	GranularityWeekly Granularity = "weekly"
)

// CircuitReading is one side of a rack's dual power feed.
type CircuitReading struct {
	Voltage            float64 `json:"voltage"`
	Current            float64 `json:"current"`
	Power              float64 `json:"power"`
	Capacity           float64 `json:"capacity"`
	UtilizationPercent float64 `json:"utilizationPercent"`
}

// Reading is a rack power measurement. Weekly readings additionally carry
// the week's average, peak, and minimum.
type Reading struct {
	ID               string         `json:"readingId"`
	Timestamp        time.Time      `json:"timestamp"`
	AssetID          string         `json:"assetId"`
	TenantID         string         `json:"tenantId"`
	Granularity      Granularity    `json:"granularity"`
	CircuitA         CircuitReading `json:"circuitA"`
	CircuitB         CircuitReading `json:"circuitB"`
	TotalPower       float64        `json:"totalPower"`
	TotalUtilization float64        `json:"totalUtilizationPercent"`
	AveragePower     float64        `json:"averagePower,omitempty"`
	PeakPower        float64        `json:"peakPower,omitempty"`
	MinPower         float64        `json:"minPower,omitempty"`
}

// Profile describes a rack class's electrical envelope.
type Profile struct {
	BaseLoadKW      float64
	VariancePercent float64
	CapacityAmps    float64
	Voltage         float64
}

// Profiles for the rack classes deployed in the demo facility. All racks
// run dual 30A feeds at 208V.
var Profiles = map[string]Profile{
	"standard":     {BaseLoadKW: 4.2, VariancePercent: 10, CapacityAmps: 30, Voltage: 208},
	"high-density": {BaseLoadKW: 7.5, VariancePercent: 12, CapacityAmps: 30, Voltage: 208},
	"blade":        {BaseLoadKW: 8.5, VariancePercent: 15, CapacityAmps: 30, Voltage: 208},
}

// ProfileFor returns the profile for a rack class, falling back to
// standard for unknown classes.
func ProfileFor(name string) Profile {
	if p, ok := Profiles[name]; ok {
		return p
	}
	return Profiles["standard"]
}
