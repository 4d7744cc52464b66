// Package mqtt publishes portal alerts to a facility MQTT broker.
//
// The portal is a publisher only: when the environmental monitor detects a
// critical reading it emits an alert message so facility NOC tooling
// subscribed to the broker can react. Connection management handles
// auto-reconnect with backoff and a Last Will message for offline
// detection.
//
// Topic layout:
//
//	portal/system/status                        retained online/offline status
//	portal/alerts/environmental/<location>/<zone>  critical reading alerts
//
// The broker is optional. When disabled in configuration, Connect returns
// ErrDisabled and callers skip alert publishing.
package mqtt
