package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/radiusdc/portal-core/internal/auth"
	"github.com/radiusdc/portal-core/internal/bootstrap"
	"github.com/radiusdc/portal-core/internal/infrastructure/config"
	"github.com/radiusdc/portal-core/internal/infrastructure/logging"
	"github.com/radiusdc/portal-core/internal/infrastructure/mqtt"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config          config.APIConfig
	WS              config.WebSocketConfig
	Security        config.SecurityConfig
	DefaultLocation string // facility-wide rollup scope
	MonitorInterval int    // seconds between environmental broadcasts; 0 disables
	Logger          *logging.Logger
	Stores          *bootstrap.Stores
	Sessions        *auth.SessionStore
	Authenticator   *auth.Authenticator
	MQTT            *mqtt.Client // optional; critical environmental alerts
	Version         string
}

// Server is the portal's HTTP API server.
//
// It manages the HTTP listener, routes, middleware, the WebSocket hub,
// the MFA session sweeper, and the environmental monitor loop.
type Server struct {
	cfg             config.APIConfig
	wsCfg           config.WebSocketConfig
	secCfg          config.SecurityConfig
	defaultLocation string
	monitorInterval int
	logger          *logging.Logger
	stores          *bootstrap.Stores
	sessions        *auth.SessionStore
	authenticator   *auth.Authenticator
	mqtt            *mqtt.Client
	version         string

	server *http.Server
	hub    *Hub
	cancel context.CancelFunc
}

// New creates a new API server with the given dependencies.
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Stores == nil {
		return nil, fmt.Errorf("stores are required")
	}
	if deps.Sessions == nil {
		return nil, fmt.Errorf("mfa session store is required")
	}
	if deps.Authenticator == nil {
		return nil, fmt.Errorf("authenticator is required")
	}
	// MQTT is optional — without it critical alerts stay portal-local.

	return &Server{
		cfg:             deps.Config,
		wsCfg:           deps.WS,
		secCfg:          deps.Security,
		defaultLocation: deps.DefaultLocation,
		monitorInterval: deps.MonitorInterval,
		logger:          deps.Logger,
		stores:          deps.Stores,
		sessions:        deps.Sessions,
		authenticator:   deps.Authenticator,
		mqtt:            deps.MQTT,
		version:         deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// It starts the WebSocket hub, the MFA session sweeper, and the
// environmental monitor, then launches the HTTP listener in a background
// goroutine. The server is stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	// Internal context so Close() can stop background goroutines
	// independently of the parent context.
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	s.hub = NewHub(s.wsCfg, s.logger)
	go s.hub.Run(srvCtx)

	sweep := time.Duration(s.secCfg.MFA.SweepInterval) * time.Second
	if sweep <= 0 {
		sweep = time.Minute
	}
	go s.sessions.Run(srvCtx, sweep)

	if s.monitorInterval > 0 {
		go s.runMonitor(srvCtx, time.Duration(s.monitorInterval)*time.Second)
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			s.logger.Info("API server starting", "address", s.server.Addr)
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to gracefulShutdownTimeout for in-flight requests to
// complete, then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
