package power

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Generation coverage: a year of data as 7 days hourly plus 45 weekly
// averages.
const (
	hourlyDays  = 7
	weeklyCount = 45

	peakFactor = 1.15
	minFactor  = 0.85

	weeklyGrowthRate = 0.001 // ≈5% annual growth, applied backwards
)

// Generator synthesises rack power histories. The random source is
// injected so tests can fix a seed.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator over the given random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, now: time.Now}
}

// Generate produces a rack's full reading history: weekly averages first
// (oldest to newest), then hourly readings in chronological order.
func (g *Generator) Generate(assetID, tenantID string, profile Profile) []Reading {
	weekly := g.generateWeekly(assetID, tenantID, profile)
	hourly := g.generateHourly(assetID, tenantID, profile)
	return append(weekly, hourly...)
}

// generateHourly covers the last seven days at hourly resolution, oldest
// first.
func (g *Generator) generateHourly(assetID, tenantID string, profile Profile) []Reading {
	hours := hourlyDays * 24
	now := g.now()
	readings := make([]Reading, 0, hours)

	for i := hours - 1; i >= 0; i-- {
		timestamp := now.Add(-time.Duration(i) * time.Hour)
		multiplier := timeOfDayMultiplier(timestamp.Hour()) * (1 + g.variance(profile))
		target := profile.BaseLoadKW * multiplier

		r := g.buildReading(assetID, tenantID, GranularityHourly, timestamp, target, profile)
		r.ID = fmt.Sprintf("pwr-%s-%d", assetID, timestamp.Unix())
		readings = append(readings, r)
	}
	return readings
}

// generateWeekly covers the 45 weeks before the hourly window with
// weekly averages, oldest first.
func (g *Generator) generateWeekly(assetID, tenantID string, profile Profile) []Reading {
	start := g.now().AddDate(0, 0, -hourlyDays)
	readings := make([]Reading, 0, weeklyCount)

	for i := weeklyCount - 1; i >= 0; i-- {
		weekEnd := start.AddDate(0, 0, -7*i)
		multiplier := seasonalMultiplier(weekEnd.Month()) *
			(1 - float64(i)*weeklyGrowthRate) *
			(1 + g.variance(profile))
		avg := profile.BaseLoadKW * multiplier

		r := g.buildReading(assetID, tenantID, GranularityWeekly, weekEnd, avg, profile)
		r.ID = fmt.Sprintf("pwr-%s-week-%d", assetID, weekEnd.Unix())
		r.AveragePower = round3(avg)
		r.PeakPower = round3(avg * peakFactor)
		r.MinPower = round3(avg * minFactor)
		readings = append(readings, r)
	}
	return readings
}

// buildReading splits the target load across the A and B feeds and
// derives electrical totals.
func (g *Generator) buildReading(assetID, tenantID string, gran Granularity, ts time.Time, targetKW float64, profile Profile) Reading {
	a := g.circuit(targetKW/2, profile)
	b := g.circuit(targetKW/2, profile)

	return Reading{
		Timestamp:        ts,
		AssetID:          assetID,
		TenantID:         tenantID,
		Granularity:      gran,
		CircuitA:         a,
		CircuitB:         b,
		TotalPower:       round3(a.Power + b.Power),
		TotalUtilization: round1((a.UtilizationPercent + b.UtilizationPercent) / 2),
	}
}

// circuit derives one feed's electrical values from a target load, with
// ±5% side-to-side variation.
func (g *Generator) circuit(targetKW float64, profile Profile) CircuitReading {
	powerKW := targetKW * (1 + (g.rng.Float64()-0.5)*0.1)
	capacityKW := profile.Voltage * profile.CapacityAmps / 1000

	return CircuitReading{
		Voltage:            profile.Voltage,
		Current:            round2(powerKW * 1000 / profile.Voltage),
		Power:              round3(powerKW),
		Capacity:           round2(capacityKW),
		UtilizationPercent: round1(powerKW / capacityKW * 100),
	}
}

func (g *Generator) variance(profile Profile) float64 {
	return (g.rng.Float64() - 0.5) * (profile.VariancePercent / 100) * 2
}

// timeOfDayMultiplier shapes hourly load: quiet nights, full business
// hours.
func timeOfDayMultiplier(hour int) float64 {
	switch {
	case hour < 6:
		return 0.7
	case hour < 9:
		return 0.85
	case hour < 17:
		return 1.0
	case hour < 22:
		return 0.9
	default:
		return 0.75
	}
}

// seasonalMultiplier nudges weekly averages: lower in summer, higher in
// winter.
func seasonalMultiplier(month time.Month) float64 {
	switch {
	case month >= time.June && month <= time.September:
		return 0.95
	case month == time.December || month <= time.March:
		return 1.05
	default:
		return 1.0
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
