package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/radiusdc/portal-core/internal/environmental"
	"github.com/radiusdc/portal-core/internal/power"
)

// WriteEnvironmentalReading exports a temperature or humidity reading.
//
// The write is non-blocking; points are batched and sent asynchronously.
// Tags carry the location/zone/sensor hierarchy so dashboards can group
// by any level.
func (c *Client) WriteEnvironmentalReading(r environmental.Reading) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"environmental",
		map[string]string{
			"location": r.LocationID,
			"zone":     r.ZoneID,
			"sensor":   r.SensorID,
			"type":     string(r.Type),
		},
		map[string]interface{}{
			"value":  r.Value,
			"status": string(r.Status),
		},
		r.Timestamp,
	)

	c.writeAPI.WritePoint(point)
}

// WritePowerReading exports a rack power reading with per-circuit detail.
func (c *Client) WritePowerReading(r power.Reading) {
	if !c.IsConnected() {
		return
	}

	fields := map[string]interface{}{
		"circuit_a_power":   r.CircuitA.Power,
		"circuit_a_current": r.CircuitA.Current,
		"circuit_b_power":   r.CircuitB.Power,
		"circuit_b_current": r.CircuitB.Current,
		"total_power":       r.TotalPower,
		"total_utilization": r.TotalUtilization,
	}
	if r.Granularity == power.GranularityWeekly {
		fields["average_power"] = r.AveragePower
		fields["peak_power"] = r.PeakPower
		fields["min_power"] = r.MinPower
	}

	point := write.NewPoint(
		"power",
		map[string]string{
			"asset":       r.AssetID,
			"tenant":      r.TenantID,
			"granularity": string(r.Granularity),
		},
		fields,
		r.Timestamp,
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for measurements that don't fit the helper methods.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
