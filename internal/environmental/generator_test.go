package environmental

import (
	"math"
	"math/rand"
	"testing"
)

var testZones = []GeneratorZone{
	{ID: "zone-north", Name: "North Wing"},
	{ID: "zone-south", Name: "South Wing"},
}

func newTestGenerator() *Generator {
	return NewGenerator(rand.New(rand.NewSource(42))) //nolint:gosec // deterministic test data
}

func TestGenerate_ShapeAndOrdering(t *testing.T) {
	g := newTestGenerator()
	readings := g.Generate("dc-denver-1", testZones, 48)

	// 48 hours x 2 zones x 2 types.
	if len(readings) != 48*2*2 {
		t.Fatalf("readings = %d, want %d", len(readings), 48*2*2)
	}

	for i := 1; i < len(readings); i++ {
		if readings[i].Timestamp.After(readings[i-1].Timestamp) {
			t.Fatalf("readings not sorted newest first at index %d", i)
		}
	}
}

func TestGenerate_ValueRanges(t *testing.T) {
	g := newTestGenerator()
	readings := g.Generate("dc-denver-1", testZones, 168)

	for _, rd := range readings {
		switch rd.Type {
		case TypeTemperature:
			// base 68±2, wave ±3, noise ±0.5
			if rd.Value < 62 || rd.Value > 74 {
				t.Errorf("temperature %v outside plausible band", rd.Value)
			}
			if rd.Unit != "fahrenheit" {
				t.Errorf("temperature unit = %q", rd.Unit)
			}
		case TypeHumidity:
			if rd.Value < 0 || rd.Value > 100 {
				t.Errorf("humidity %v outside [0, 100]", rd.Value)
			}
			if rd.Unit != "percentage" {
				t.Errorf("humidity unit = %q", rd.Unit)
			}
		}
		// One decimal place.
		if math.Abs(rd.Value*10-math.Round(rd.Value*10)) > 1e-9 {
			t.Errorf("value %v not rounded to one decimal", rd.Value)
		}
		if rd.Status != TempThresholds.Classify(rd.Value) && rd.Type == TypeTemperature {
			t.Errorf("temperature status mismatch for %v", rd.Value)
		}
	}
}

func TestGenerate_SensorNaming(t *testing.T) {
	g := newTestGenerator()
	readings := g.Generate("dc-denver-1", testZones[:1], 1)

	if len(readings) != 2 {
		t.Fatalf("readings = %d, want 2", len(readings))
	}
	for _, rd := range readings {
		want := "temp-sensor-zone-north"
		if rd.Type == TypeHumidity {
			want = "humidity-sensor-zone-north"
		}
		if rd.SensorID != want {
			t.Errorf("sensor = %q, want %q", rd.SensorID, want)
		}
	}
}

func TestThresholds_Classify(t *testing.T) {
	cases := []struct {
		value float64
		want  Status
	}{
		{70, StatusNormal},
		{75, StatusWarning},
		{65, StatusWarning},
		{80, StatusCritical},
		{60, StatusCritical},
		{85, StatusCritical},
		{66, StatusNormal},
	}
	for _, tc := range cases {
		if got := TempThresholds.Classify(tc.value); got != tc.want {
			t.Errorf("Classify(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}

	if got := HumidityThresholds.Classify(57); got != StatusWarning {
		t.Errorf("humidity 57 = %q, want warning", got)
	}
	if got := HumidityThresholds.Classify(29); got != StatusCritical {
		t.Errorf("humidity 29 = %q, want critical", got)
	}
}

func TestGenerate_EmptyInputs(t *testing.T) {
	g := newTestGenerator()

	if r := g.Generate("dc-denver-1", nil, 24); len(r) != 0 {
		t.Errorf("no zones: %d readings, want 0", len(r))
	}
	if r := g.Generate("dc-denver-1", testZones, 0); len(r) != 0 {
		t.Errorf("zero hours: %d readings, want 0", len(r))
	}
}
