// Package influxdb provides a time-series export client for portal telemetry.
//
// Environmental and power readings generated by the portal can be mirrored
// into an InfluxDB v2 bucket for long-term retention and dashboarding.
// Writes are non-blocking: points are batched by the underlying client and
// flushed asynchronously, so export never sits on the request path.
//
// The client is optional. When disabled in configuration, Connect returns
// ErrDisabled and callers simply skip export.
package influxdb
