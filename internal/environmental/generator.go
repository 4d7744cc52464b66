package environmental

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Baseline operating points for the demo facility.
const (
	baseTemperature = 68.0 // °F
	baseHumidity    = 45.0 // %RH
)

// GeneratorZone is the zone metadata the generator needs.
type GeneratorZone struct {
	ID   string
	Name string
}

// Generator synthesises environmental readings. The random source is
// injected so tests can fix a seed.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator over the given random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, now: time.Now}
}

// Generate produces hourly temperature and humidity readings for every
// zone covering the given number of hours, newest first.
func (g *Generator) Generate(locationID string, zones []GeneratorZone, hours int) []Reading {
	if len(zones) == 0 || hours <= 0 {
		return []Reading{}
	}

	readings := []Reading{}
	now := g.now()

	for hourIndex := 0; hourIndex < hours; hourIndex++ {
		timestamp := now.Add(-time.Duration(hourIndex) * time.Hour)

		for _, zone := range zones {
			// Each zone sits at a slightly different baseline.
			zoneTemp := baseTemperature + (g.rng.Float64()-0.5)*4
			zoneHumidity := baseHumidity + (g.rng.Float64()-0.5)*10

			temp := g.temperature(hourIndex, zoneTemp)
			readings = append(readings, Reading{
				ID:         uuid.NewString(),
				Timestamp:  timestamp,
				LocationID: locationID,
				ZoneID:     zone.ID,
				SensorID:   "temp-sensor-" + zone.ID,
				Type:       TypeTemperature,
				Value:      temp,
				Unit:       "fahrenheit",
				Status:     TempThresholds.Classify(temp),
			})

			humidity := g.humidity(hourIndex, zoneHumidity)
			readings = append(readings, Reading{
				ID:         uuid.NewString(),
				Timestamp:  timestamp,
				LocationID: locationID,
				ZoneID:     zone.ID,
				SensorID:   "humidity-sensor-" + zone.ID,
				Type:       TypeHumidity,
				Value:      humidity,
				Unit:       "percentage",
				Status:     HumidityThresholds.Classify(humidity),
			})
		}
	}

	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Timestamp.After(readings[j].Timestamp)
	})
	return readings
}

// Current produces the latest reading pair for a zone, for the live
// monitor.
func (g *Generator) Current(locationID string, zone GeneratorZone) []Reading {
	return g.Generate(locationID, []GeneratorZone{zone}, 1)
}

// temperature follows a 24-hour sine cycle (±3°F) with ±0.5°F noise.
func (g *Generator) temperature(hourIndex int, base float64) float64 {
	wave := math.Sin(float64(hourIndex)*math.Pi/12) * 3
	noise := (g.rng.Float64() - 0.5) * 1
	return round1(base + wave + noise)
}

// humidity follows a slower 36-hour sine cycle (±5%) with ±1% noise,
// clamped to [0, 100].
func (g *Generator) humidity(hourIndex int, base float64) float64 {
	wave := math.Sin(float64(hourIndex)*math.Pi/18) * 5
	noise := (g.rng.Float64() - 0.5) * 2
	return round1(math.Max(0, math.Min(100, base+wave+noise)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
