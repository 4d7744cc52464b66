package influxdb_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/radiusdc/portal-core/internal/environmental"
	"github.com/radiusdc/portal-core/internal/infrastructure/config"
	"github.com/radiusdc/portal-core/internal/infrastructure/influxdb"
	"github.com/radiusdc/portal-core/internal/power"
)

// testConfig returns a configuration for a local dev InfluxDB.
func testConfig() config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           "http://127.0.0.1:8086",
		Token:         "portal-dev-token",
		Org:           "radiusdc",
		Bucket:        "telemetry",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

// skipIfNoInfluxDB skips the test if InfluxDB is not running.
func skipIfNoInfluxDB(t *testing.T) {
	t.Helper()
	if os.Getenv("RUN_INTEGRATION") == "" {
		client, err := influxdb.Connect(testConfig())
		if err != nil {
			t.Skip("InfluxDB not available, skipping integration test")
		}
		client.Close()
	}
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false

	_, err := influxdb.Connect(cfg)
	if !errors.Is(err, influxdb.ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	cfg := testConfig()
	cfg.URL = "http://127.0.0.1:1" // nothing listens here

	_, err := influxdb.Connect(cfg)
	if !errors.Is(err, influxdb.ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestConnect(t *testing.T) {
	skipIfNoInfluxDB(t)

	client, err := influxdb.Connect(testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Error("IsConnected() = false after Connect()")
	}
}

func TestWriteReadings(t *testing.T) {
	skipIfNoInfluxDB(t)

	client, err := influxdb.Connect(testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	var writeErr error
	client.SetOnError(func(err error) { writeErr = err })

	client.WriteEnvironmentalReading(environmental.Reading{
		ID:         "env-test-1",
		Timestamp:  time.Now(),
		LocationID: "dc-denver-1",
		ZoneID:     "zone-north",
		SensorID:   "temp-sensor-zone-north",
		Type:       environmental.TypeTemperature,
		Value:      70.5,
		Unit:       "fahrenheit",
		Status:     environmental.StatusNormal,
	})
	client.WritePowerReading(power.Reading{
		ID:          "pwr-test-1",
		Timestamp:   time.Now(),
		AssetID:     "rack-101",
		TenantID:    "tenant-acme",
		Granularity: power.GranularityHourly,
		CircuitA:    power.CircuitReading{Voltage: 208, Current: 10.1, Power: 2.1, Capacity: 6.24, UtilizationPercent: 33.7},
		CircuitB:    power.CircuitReading{Voltage: 208, Current: 10.1, Power: 2.1, Capacity: 6.24, UtilizationPercent: 33.7},
		TotalPower:  4.2,
	})
	client.Flush()

	if writeErr != nil {
		t.Errorf("async write error: %v", writeErr)
	}
}

func TestClose_Idempotent(t *testing.T) {
	skipIfNoInfluxDB(t)

	client, err := influxdb.Connect(testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Close()")
	}
}
