package api

import (
	"context"
	"time"

	"github.com/radiusdc/portal-core/internal/environmental"
)

// zoneStatus is one zone's slice of the monitor rollup.
type zoneStatus struct {
	ZoneID   string                  `json:"zoneId"`
	Readings []environmental.Reading `json:"readings"`
	Status   environmental.Status    `json:"status"`
}

// runMonitor periodically reads the latest environmental readings for the
// default location, broadcasts a status rollup to WebSocket subscribers,
// and publishes critical readings to the facility alert broker.
func (s *Server) runMonitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.broadcastEnvironmentalStatus(ctx)
		}
	}
}

// broadcastEnvironmentalStatus builds and publishes one monitor rollup.
func (s *Server) broadcastEnvironmentalStatus(ctx context.Context) {
	zones, err := s.stores.Facility.ListZones(ctx, s.defaultLocation)
	if err != nil {
		s.logger.Error("monitor: listing zones", "error", err)
		return
	}

	rollup := make([]zoneStatus, 0, len(zones))
	for _, zone := range zones {
		readings, err := s.stores.Environmental.LatestByZone(ctx, s.defaultLocation, zone.ID)
		if err != nil {
			s.logger.Error("monitor: loading readings", "zone", zone.ID, "error", err)
			continue
		}

		status := environmental.StatusNormal
		for _, reading := range readings {
			switch reading.Status {
			case environmental.StatusCritical:
				status = environmental.StatusCritical
			case environmental.StatusWarning:
				if status == environmental.StatusNormal {
					status = environmental.StatusWarning
				}
			}

			if reading.Status == environmental.StatusCritical {
				s.publishAlert(reading)
			}
		}

		rollup = append(rollup, zoneStatus{
			ZoneID:   zone.ID,
			Readings: readings,
			Status:   status,
		})
	}

	s.hub.Broadcast(ChannelEnvironmentalStatus, map[string]any{
		"location": s.defaultLocation,
		"zones":    rollup,
	})
}

// publishAlert forwards a critical reading to the MQTT alert topic when a
// broker is configured.
func (s *Server) publishAlert(reading environmental.Reading) {
	if s.mqtt == nil || !s.mqtt.IsConnected() {
		return
	}
	if err := s.mqtt.PublishEnvironmentalAlert(reading); err != nil {
		s.logger.Warn("monitor: publishing alert", "zone", reading.ZoneID, "error", err)
	}
}
