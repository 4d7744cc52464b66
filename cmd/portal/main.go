// Portal Core - Data Center Client Portal
//
// This is the main entry point for the portal service. It serves a
// multi-tenant colocation customer portal backed entirely by synthetic
// demo data regenerated on every boot: access logs, environmental
// telemetry, power readings, cameras, and facility announcements.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/radiusdc/portal-core/migrations"

	"github.com/radiusdc/portal-core/internal/api"
	"github.com/radiusdc/portal-core/internal/auth"
	"github.com/radiusdc/portal-core/internal/bootstrap"
	"github.com/radiusdc/portal-core/internal/environmental"
	"github.com/radiusdc/portal-core/internal/infrastructure/config"
	"github.com/radiusdc/portal-core/internal/infrastructure/database"
	"github.com/radiusdc/portal-core/internal/infrastructure/influxdb"
	"github.com/radiusdc/portal-core/internal/infrastructure/logging"
	"github.com/radiusdc/portal-core/internal/infrastructure/mqtt"
	"github.com/radiusdc/portal-core/internal/power"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting portal core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)

	// Open database. The default path is :memory: — the portal holds no
	// persistent state and reseeds everything below.
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Seed the demo facility and generate synthetic history.
	stores := bootstrap.NewStores(db.DB)
	counts, err := bootstrap.Run(ctx, stores, cfg.DemoData, log.Logger)
	if err != nil {
		return fmt.Errorf("seeding demo data: %w", err)
	}

	// Connect to MQTT broker (optional; alerts only).
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
		mqttClient.SetOnConnect(func() { log.Info("MQTT reconnected") })
		mqttClient.SetOnDisconnect(func(err error) { log.Warn("MQTT disconnected", "error", err) })
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB and export the generated telemetry (optional).
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB connected", "url", cfg.InfluxDB.URL, "bucket", cfg.InfluxDB.Bucket)

		if exportErr := exportTelemetry(ctx, stores, influxClient, cfg.Facility.DefaultLocation); exportErr != nil {
			log.Warn("telemetry export incomplete", "error", exportErr)
		}
	} else {
		log.Info("InfluxDB disabled")
	}

	// Auth components shared by the API server.
	sessions := auth.NewSessionStore(cfg.MFASessionTTL())
	authenticator := auth.NewAuthenticator(stores.Users, sessions, cfg.Security.MFA.DemoCode, log.Logger)

	server, err := api.New(api.Deps{
		Config:          cfg.API,
		WS:              cfg.WebSocket,
		Security:        cfg.Security,
		DefaultLocation: cfg.Facility.DefaultLocation,
		MonitorInterval: cfg.DemoData.MonitorInterval,
		Logger:          log,
		Stores:          stores,
		Sessions:        sessions,
		Authenticator:   authenticator,
		MQTT:            mqttClient,
		Version:         version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete",
		"address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		"tenants", counts.Tenants,
		"access_logs", counts.AccessLogs,
	)

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	return nil
}

// exportTelemetry mirrors the generated environmental and power readings
// into InfluxDB for dashboarding.
func exportTelemetry(ctx context.Context, stores *bootstrap.Stores, client *influxdb.Client, locationID string) error {
	readings, err := stores.Environmental.Query(ctx, environmental.QueryParams{
		LocationID: locationID,
		Hours:      environmental.MaxQueryHours,
	})
	if err != nil {
		return fmt.Errorf("loading environmental readings: %w", err)
	}
	for _, r := range readings {
		client.WriteEnvironmentalReading(r)
	}

	tenants, err := stores.Tenants.ListTenants(ctx)
	if err != nil {
		return fmt.Errorf("listing tenants: %w", err)
	}
	for _, t := range tenants {
		assets, err := stores.Tenants.ListAssetsByTenant(ctx, t.ID)
		if err != nil {
			return fmt.Errorf("listing assets: %w", err)
		}
		for _, a := range assets {
			powerReadings, err := stores.Power.Query(ctx, power.QueryParams{AssetID: a.ID})
			if err != nil {
				return fmt.Errorf("loading power readings: %w", err)
			}
			for _, r := range powerReadings {
				client.WritePowerReading(r)
			}
		}
	}

	client.Flush()
	return nil
}

// getConfigPath returns the configuration file path.
// Uses the PORTAL_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("PORTAL_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
