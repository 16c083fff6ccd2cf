// Package hypnoctl supervises a single externally-managed hypnotoad-style
// application server: pid-file based status with restart-race
// stabilization, start/stop through the external launcher command, and
// graceful in-place reload via signal.
package hypnoctl

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	cfg "github.com/loykin/hypnoctl/internal/config"
	"github.com/loykin/hypnoctl/internal/metrics"
	iapi "github.com/loykin/hypnoctl/internal/server"
	"github.com/loykin/hypnoctl/internal/service"
	"github.com/loykin/hypnoctl/internal/store"
	"github.com/loykin/hypnoctl/internal/store/factory"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type Config = service.Config

type Result = service.Result

type State = service.State

const (
	StateNotRunning = service.StateNotRunning
	StateRunning    = service.StateRunning
	StateBroken     = service.StateBroken
	StateStarting   = service.StateStarting
	StateStopping   = service.StateStopping
	StateReloaded   = service.StateReloaded
)

type WaitStatus = service.WaitStatus

type TimeoutOptions = service.TimeoutOptions

type CommandFunc = service.CommandFunc

type LifecycleService = service.LifecycleService

type Supervisor = service.Supervisor

type Store = store.Store

// ErrUnknownCommand is returned when dispatching an unregistered custom
// command name.
var ErrUnknownCommand = service.ErrUnknownCommand

// New validates cfg and builds a Supervisor for one managed server.
func New(c Config) (*Supervisor, error) { return service.New(c) }

// LoadConfig reads a TOML config file into a validated Config plus the
// optional store and server sections.
func LoadConfig(path string) (*cfg.Config, error) {
	return cfg.Load(path)
}

// NewStore opens a lifecycle journal from a DSN ("sqlite://...",
// "postgres://...", or a bare sqlite path).
func NewStore(dsn string) (Store, error) { return factory.NewFromDSN(dsn) }

// NewHTTPServer starts an HTTP control server exposing the lifecycle
// contract of the given supervisor.
func NewHTTPServer(addr, basePath string, s *Supervisor) (*http.Server, error) {
	return iapi.NewServer(addr, basePath, s)
}

// Metrics helpers (public facade)

func RegisterMetrics(r prometheus.Registerer) error { return metrics.Register(r) }
func RegisterMetricsDefault() error                 { return metrics.Register(prometheus.DefaultRegisterer) }

// ServeMetrics starts an HTTP server on addr exposing /metrics using the default registry.
// It returns any immediate listen error; otherwise it runs the server in the caller goroutine.
func ServeMetrics(addr string) error {
	http.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           nil,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv.ListenAndServe()
}
