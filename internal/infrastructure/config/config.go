package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the portal core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Facility  FacilityConfig  `yaml:"facility"`
	Database  DatabaseConfig  `yaml:"database"`
	API       APIConfig       `yaml:"api"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	Logging   LoggingConfig   `yaml:"logging"`
	Security  SecurityConfig  `yaml:"security"`
	DemoData  DemoDataConfig  `yaml:"demo_data"`
}

// FacilityConfig identifies the data-center site this instance serves.
type FacilityConfig struct {
	// DefaultLocation is the location ID used for facility-wide rollups
	// (dashboard summary, environmental monitor).
	DefaultLocation string `yaml:"default_location"`
	Timezone        string `yaml:"timezone"`
}

// DatabaseConfig contains SQLite settings. The default path is ":memory:" —
// the portal carries no persistent state and regenerates everything at boot.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	TLS      TLSConfig        `yaml:"tls"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// TLSConfig contains TLS certificate settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// APITimeoutConfig contains HTTP timeout settings (seconds).
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// WebSocketConfig contains WebSocket feed settings.
type WebSocketConfig struct {
	Path           string `yaml:"path"`
	MaxMessageSize int    `yaml:"max_message_size"`
	PingInterval   int    `yaml:"ping_interval"`
	PongTimeout    int    `yaml:"pong_timeout"`
}

// InfluxDBConfig contains optional time-series export settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// MQTTConfig contains optional facility alert broker settings.
type MQTTConfig struct {
	Enabled bool             `yaml:"enabled"`
	Broker  MQTTBrokerConfig `yaml:"broker"`
	Auth    MQTTAuthConfig   `yaml:"auth"`
	QoS     int              `yaml:"qos"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// SecurityConfig contains authentication settings.
type SecurityConfig struct {
	JWT     JWTConfig    `yaml:"jwt"`
	Cookies CookieConfig `yaml:"cookies"`
	MFA     MFAConfig    `yaml:"mfa"`
}

// JWTConfig contains JWT token settings.
// AccessTokenTTL is in minutes, RefreshTokenTTL in hours.
type JWTConfig struct {
	Secret          string `yaml:"secret"`
	AccessTokenTTL  int    `yaml:"access_token_ttl"`
	RefreshTokenTTL int    `yaml:"refresh_token_ttl"`
}

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	// Secure sets the Secure flag on session cookies. Enable behind HTTPS.
	Secure bool `yaml:"secure"`
}

// MFAConfig contains multi-factor authentication settings.
type MFAConfig struct {
	// DemoCode is the fixed verification code accepted for every MFA
	// session. Demo deployments only — a real second factor must bind the
	// code to the session (TOTP/HOTP).
	DemoCode string `yaml:"demo_code"`

	// SessionTTL is how long a pending MFA challenge stays valid (minutes).
	SessionTTL int `yaml:"session_ttl"`

	// SweepInterval is how often expired challenges are removed (seconds).
	SweepInterval int `yaml:"sweep_interval"`
}

// DemoDataConfig controls the synthetic data generated at startup.
type DemoDataConfig struct {
	// AccessLogDays is the trailing window of generated access logs.
	AccessLogDays int `yaml:"access_log_days"`

	// AccessLogsPerDay is the target mean events per tenant per day.
	AccessLogsPerDay int `yaml:"access_logs_per_day"`

	// EnvironmentalHours is the trailing window of hourly readings.
	EnvironmentalHours int `yaml:"environmental_hours"`

	// MonitorInterval is how often the environmental monitor broadcasts
	// a status rollup (seconds).
	MonitorInterval int `yaml:"monitor_interval"`

	// Seed fixes the random source when non-zero (useful for demos that
	// need identical data across restarts). Zero seeds from the clock.
	Seed int64 `yaml:"seed"`
}

// Load reads configuration from a YAML file, applies environment variable
// overrides, and validates the result.
//
// Environment variables follow the pattern PORTAL_SECTION_KEY,
// for example: PORTAL_API_HOST, PORTAL_JWT_SECRET.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Facility: FacilityConfig{
			DefaultLocation: "dc-denver-1",
			Timezone:        "UTC",
		},
		Database: DatabaseConfig{
			Path:        ":memory:",
			BusyTimeout: 5,
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		WebSocket: WebSocketConfig{
			Path:           "/ws",
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "portal-core",
			},
			QoS: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Security: SecurityConfig{
			JWT: JWTConfig{
				AccessTokenTTL:  15,
				RefreshTokenTTL: 720, // 30 days
			},
			MFA: MFAConfig{
				DemoCode:      "123456",
				SessionTTL:    5,
				SweepInterval: 60,
			},
		},
		DemoData: DemoDataConfig{
			AccessLogDays:      30,
			AccessLogsPerDay:   15,
			EnvironmentalHours: 48,
			MonitorInterval:    30,
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORTAL_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("PORTAL_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("PORTAL_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
	if v := os.Getenv("PORTAL_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("PORTAL_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}
	if v := os.Getenv("PORTAL_COOKIE_SECURE"); v != "" {
		cfg.Security.Cookies.Secure = strings.EqualFold(v, "true")
	}

	// JWT secret (IMPORTANT: always override in production)
	if v := os.Getenv("PORTAL_JWT_SECRET"); v != "" {
		cfg.Security.JWT.Secret = v
	}
}

// minJWTSecretLength is the minimum accepted JWT signing secret length.
// Shorter secrets make forged session tokens practical to brute-force.
const minJWTSecretLength = 32

// Validate checks the configuration for errors and security issues.
func (c *Config) Validate() error {
	var errs []string

	if c.Facility.DefaultLocation == "" {
		errs = append(errs, "facility.default_location is required")
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	if c.Security.JWT.Secret == "" {
		errs = append(errs, "security.jwt.secret is required (set PORTAL_JWT_SECRET environment variable)")
	} else if len(c.Security.JWT.Secret) < minJWTSecretLength {
		errs = append(errs, "security.jwt.secret must be at least 32 characters for adequate security")
	}

	if c.Security.JWT.AccessTokenTTL >= c.Security.JWT.RefreshTokenTTL*60 {
		errs = append(errs, "security.jwt.access_token_ttl must be shorter than refresh_token_ttl")
	}

	if len(c.Security.MFA.DemoCode) != 6 {
		errs = append(errs, "security.mfa.demo_code must be exactly 6 digits")
	}

	if c.MQTT.Enabled && (c.MQTT.QoS < 0 || c.MQTT.QoS > 2) {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}

// MFASessionTTL returns the MFA challenge lifetime as a Duration.
func (c *Config) MFASessionTTL() time.Duration {
	return time.Duration(c.Security.MFA.SessionTTL) * time.Minute
}
