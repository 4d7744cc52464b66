package environmental

import "time"

// ReadingType distinguishes the measured quantity.
type ReadingType string

const (
	TypeTemperature ReadingType = "temperature"
	TypeHumidity    ReadingType = "humidity"
)

// IsValidType reports whether a reading type is recognised.
func IsValidType(t ReadingType) bool {
	return t == TypeTemperature || t == TypeHumidity
}

// Status classifies a reading against its thresholds.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Reading is a single sensor measurement.
type Reading struct {
	ID         string      `json:"readingId"`
	Timestamp  time.Time   `json:"timestamp"`
	LocationID string      `json:"location"`
	ZoneID     string      `json:"zone"`
	SensorID   string      `json:"sensorId"`
	Type       ReadingType `json:"type"`
	Value      float64     `json:"value"`
	Unit       string      `json:"unit"`
	Status     Status      `json:"status"`
}

// Thresholds bound the normal operating band for a reading type.
// Values at or beyond a bound take that bound's status.
type Thresholds struct {
	WarningLow   float64
	WarningHigh  float64
	CriticalLow  float64
	CriticalHigh float64
}

// Classify returns the status for a value against the thresholds.
func (t Thresholds) Classify(value float64) Status {
	if value <= t.CriticalLow || value >= t.CriticalHigh {
		return StatusCritical
	}
	if value <= t.WarningLow || value >= t.WarningHigh {
		return StatusWarning
	}
	return StatusNormal
}

// Operating thresholds for the demo facility. Temperature in Fahrenheit,
// humidity in percent relative humidity.
var (
	TempThresholds     = Thresholds{WarningLow: 65, WarningHigh: 75, CriticalLow: 60, CriticalHigh: 80}
	HumidityThresholds = Thresholds{WarningLow: 35, WarningHigh: 55, CriticalLow: 30, CriticalHigh: 60}
)
