package mqtt_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/radiusdc/portal-core/internal/environmental"
	"github.com/radiusdc/portal-core/internal/infrastructure/config"
	"github.com/radiusdc/portal-core/internal/infrastructure/mqtt"
)

// testConfig returns a configuration for a local dev broker.
func testConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Enabled: true,
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: "portal-test",
		},
		QoS: 1,
	}
}

// skipIfNoBroker skips the test if no MQTT broker is running.
func skipIfNoBroker(t *testing.T) {
	t.Helper()
	if os.Getenv("RUN_INTEGRATION") == "" {
		client, err := mqtt.Connect(testConfig())
		if err != nil {
			t.Skip("MQTT broker not available, skipping integration test")
		}
		client.Close()
	}
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false

	_, err := mqtt.Connect(cfg)
	if !errors.Is(err, mqtt.ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestEnvironmentalAlertTopic(t *testing.T) {
	got := mqtt.EnvironmentalAlertTopic("dc-denver-1", "zone-north")
	want := "portal/alerts/environmental/dc-denver-1/zone-north"
	if got != want {
		t.Errorf("EnvironmentalAlertTopic() = %q, want %q", got, want)
	}
}

func TestPublish_Validation(t *testing.T) {
	skipIfNoBroker(t)

	client, err := mqtt.Connect(testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if err := client.Publish("", []byte("x"), 1, false); !errors.Is(err, mqtt.ErrInvalidTopic) {
		t.Errorf("Publish(empty topic) error = %v, want ErrInvalidTopic", err)
	}
	if err := client.Publish("portal/test", []byte("x"), 3, false); !errors.Is(err, mqtt.ErrInvalidQoS) {
		t.Errorf("Publish(qos 3) error = %v, want ErrInvalidQoS", err)
	}
}

func TestPublishEnvironmentalAlert(t *testing.T) {
	skipIfNoBroker(t)

	client, err := mqtt.Connect(testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	reading := environmental.Reading{
		ID:         "env-alert-1",
		Timestamp:  time.Now(),
		LocationID: "dc-denver-1",
		ZoneID:     "zone-south",
		SensorID:   "temp-sensor-zone-south",
		Type:       environmental.TypeTemperature,
		Value:      82.4,
		Unit:       "fahrenheit",
		Status:     environmental.StatusCritical,
	}
	if err := client.PublishEnvironmentalAlert(reading); err != nil {
		t.Errorf("PublishEnvironmentalAlert() error = %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	skipIfNoBroker(t)

	client, err := mqtt.Connect(testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestClose_ThenNotConnected(t *testing.T) {
	skipIfNoBroker(t)

	client, err := mqtt.Connect(testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Close()")
	}
	if err := client.HealthCheck(context.Background()); !errors.Is(err, mqtt.ErrNotConnected) {
		t.Errorf("HealthCheck() after Close error = %v, want ErrNotConnected", err)
	}
}
