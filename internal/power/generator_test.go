package power

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func newTestGenerator() *Generator {
	return NewGenerator(rand.New(rand.NewSource(42))) //nolint:gosec // deterministic test data
}

func TestGenerate_Coverage(t *testing.T) {
	g := newTestGenerator()
	readings := g.Generate("rack-101", "tenant-acme", ProfileFor("standard"))

	if len(readings) != weeklyCount+hourlyDays*24 {
		t.Fatalf("readings = %d, want %d", len(readings), weeklyCount+hourlyDays*24)
	}

	// Weekly block first, then hourly, both chronological.
	for i, rd := range readings {
		want := GranularityWeekly
		if i >= weeklyCount {
			want = GranularityHourly
		}
		if rd.Granularity != want {
			t.Fatalf("reading %d granularity = %q, want %q", i, rd.Granularity, want)
		}
		if i > 0 && readings[i].Timestamp.Before(readings[i-1].Timestamp) {
			t.Fatalf("readings not chronological at index %d", i)
		}
	}
}

func TestGenerate_ElectricalConsistency(t *testing.T) {
	g := newTestGenerator()
	profile := ProfileFor("high-density")
	readings := g.Generate("rack-102", "tenant-acme", profile)

	capacityKW := profile.Voltage * profile.CapacityAmps / 1000

	for _, rd := range readings {
		for _, c := range []CircuitReading{rd.CircuitA, rd.CircuitB} {
			if c.Voltage != 208 {
				t.Fatalf("voltage = %v, want 208", c.Voltage)
			}
			if math.Abs(c.Capacity-capacityKW) > 0.01 {
				t.Fatalf("capacity = %v, want %v", c.Capacity, capacityKW)
			}
			// I = P/V within rounding error.
			if math.Abs(c.Current-c.Power*1000/c.Voltage) > 0.05 {
				t.Errorf("current %v inconsistent with power %v", c.Current, c.Power)
			}
			// Utilization = P/capacity within rounding error.
			if math.Abs(c.UtilizationPercent-c.Power/c.Capacity*100) > 0.5 {
				t.Errorf("utilization %v inconsistent with power %v", c.UtilizationPercent, c.Power)
			}
		}
		if math.Abs(rd.TotalPower-(rd.CircuitA.Power+rd.CircuitB.Power)) > 0.01 {
			t.Errorf("total power %v does not sum the circuits", rd.TotalPower)
		}
	}
}

func TestGenerate_TimeOfDayShape(t *testing.T) {
	g := newTestGenerator()
	readings := g.Generate("rack-101", "tenant-acme", ProfileFor("standard"))

	var nightSum, daySum float64
	var nightN, dayN int
	for _, rd := range readings {
		if rd.Granularity != GranularityHourly {
			continue
		}
		h := rd.Timestamp.Hour()
		switch {
		case h < 6:
			nightSum += rd.TotalPower
			nightN++
		case h >= 9 && h < 17:
			daySum += rd.TotalPower
			dayN++
		}
	}
	if nightN == 0 || dayN == 0 {
		t.Fatal("missing night or day samples")
	}
	if nightSum/float64(nightN) >= daySum/float64(dayN) {
		t.Error("night average load should be below business-hours average")
	}
}

func TestGenerate_WeeklyAggregates(t *testing.T) {
	g := newTestGenerator()
	readings := g.Generate("rack-301", "tenant-globalfin", ProfileFor("blade"))

	for _, rd := range readings[:weeklyCount] {
		if rd.AveragePower == 0 || rd.PeakPower == 0 || rd.MinPower == 0 {
			t.Fatal("weekly reading missing aggregates")
		}
		if math.Abs(rd.PeakPower-rd.AveragePower*peakFactor) > 0.01 {
			t.Errorf("peak %v not %v above average %v", rd.PeakPower, peakFactor, rd.AveragePower)
		}
		if math.Abs(rd.MinPower-rd.AveragePower*minFactor) > 0.01 {
			t.Errorf("min %v not %v below average %v", rd.MinPower, minFactor, rd.AveragePower)
		}
	}

	// Hourly readings carry no aggregates.
	for _, rd := range readings[weeklyCount:] {
		if rd.AveragePower != 0 || rd.PeakPower != 0 {
			t.Fatal("hourly reading carries weekly aggregates")
		}
	}
}

func TestSeasonalMultiplier(t *testing.T) {
	cases := []struct {
		month time.Month
		want  float64
	}{
		{time.July, 0.95},
		{time.January, 1.05},
		{time.December, 1.05},
		{time.April, 1.0},
		{time.October, 1.0},
	}
	for _, tc := range cases {
		if got := seasonalMultiplier(tc.month); got != tc.want {
			t.Errorf("seasonalMultiplier(%v) = %v, want %v", tc.month, got, tc.want)
		}
	}
}

func TestProfileFor_UnknownFallsBack(t *testing.T) {
	if p := ProfileFor("quantum"); p.BaseLoadKW != Profiles["standard"].BaseLoadKW {
		t.Errorf("unknown profile base load = %v, want standard", p.BaseLoadKW)
	}
}
