package mqtt

import (
	"encoding/json"
	"fmt"

	"github.com/radiusdc/portal-core/internal/environmental"
)

// Topic layout for portal messages.
const (
	// TopicSystemStatus carries retained online/offline status.
	TopicSystemStatus = "portal/system/status"

	// topicEnvironmentalAlerts is the prefix for critical reading alerts.
	// Full topics append <location>/<zone>.
	topicEnvironmentalAlerts = "portal/alerts/environmental"
)

// Maximum payload size for MQTT messages (1MB).
// Aligns with typical broker limits.
const maxPayloadSize = 1 << 20

// EnvironmentalAlertTopic returns the alert topic for a location and zone.
func EnvironmentalAlertTopic(locationID, zoneID string) string {
	return fmt.Sprintf("%s/%s/%s", topicEnvironmentalAlerts, locationID, zoneID)
}

// Publish sends a message to the specified MQTT topic.
//
// QoS levels: 0 at most once, 1 at least once, 2 exactly once.
// Retained messages are stored by the broker and delivered to new
// subscribers; use them for state topics only, never for alerts.
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// PublishEnvironmentalAlert publishes a critical reading to the alert topic
// for its location and zone, at the configured QoS.
func (c *Client) PublishEnvironmentalAlert(r environmental.Reading) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("%w: marshal reading: %w", ErrPublishFailed, err)
	}

	topic := EnvironmentalAlertTopic(r.LocationID, r.ZoneID)
	return c.Publish(topic, payload, byte(c.cfg.QoS), false)
}
