package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/loykin/hypnoctl/internal/metrics"
	"github.com/loykin/hypnoctl/internal/store"
)

// LifecycleService is the capability contract a host service-management
// framework consumes: any managed-service adapter exposes at least these
// three operations.
type LifecycleService interface {
	Status() (Result, error)
	Start() (Result, error)
	Stop() (Result, error)
}

// Reloader is implemented by adapters whose managed server supports a
// graceful in-place reload.
type Reloader interface {
	Reload() (Result, error)
}

// Controller is the full surface the HTTP layer and embedding hosts use.
type Controller interface {
	LifecycleService
	Reloader
	CustomCommandNames() []string
	DispatchCustomCommand(ctx context.Context, name string) (Result, error)
	TimeoutOptions() TimeoutOptions
}

// Supervisor composes the pid-file probe, launcher, and reload signaling
// behind the lifecycle contract. One Supervisor manages one server; hosts
// invoke at most one operation at a time.
type Supervisor struct {
	cfg    Config
	probe  *prober
	launch *launcher
	log    *slog.Logger
	st     store.Store
}

var (
	_ LifecycleService = (*Supervisor)(nil)
	_ Reloader         = (*Supervisor)(nil)
	_ Controller       = (*Supervisor)(nil)
)

// New validates cfg and builds a Supervisor. An invalid config fails here;
// a Supervisor never exists in a partially-valid state.
func New(cfg Config) (*Supervisor, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	log := cfg.Log.NewSlogger().With("service", cfg.Name)
	return &Supervisor{
		cfg:    cfg,
		probe:  newProber(cfg.PIDFile),
		launch: newLauncher(cfg, log),
		log:    log,
	}, nil
}

// Config returns the validated configuration this supervisor runs with.
func (s *Supervisor) Config() Config { return s.cfg }

// SetJournal attaches an optional lifecycle journal. Records are
// best-effort; journal failures never affect lifecycle results.
func (s *Supervisor) SetJournal(st store.Store) { s.st = st }

// SetRunner replaces the launcher's command runner. Intended for test
// doubles and hosts that spawn through their own primitive.
func (s *Supervisor) SetRunner(r Runner) { s.launch.run = r }

// Status classifies the managed server from its pid file.
func (s *Supervisor) Status() (Result, error) {
	return s.do("status", func() (Result, error) { return s.probe.Status() })
}

// Start invokes the external launcher. The Starting result is an
// optimistic acknowledgment; hosts poll Status with TimeoutOptions to
// confirm.
func (s *Supervisor) Start() (Result, error) {
	return s.do("start", s.launch.Start)
}

// Stop asks the launcher to shut the server down.
func (s *Supervisor) Stop() (Result, error) {
	return s.do("stop", s.launch.Stop)
}

// Reload delivers the hot-reload signal to the recorded pid. With no pid
// recorded, or when delivery fails, the server is reported not running.
func (s *Supervisor) Reload() (Result, error) {
	return s.do("reload", func() (Result, error) {
		pid, err := ReadPIDFile(s.cfg.PIDFile)
		if err != nil {
			return Result{}, err
		}
		if pid == 0 {
			return Result{State: StateNotRunning}, nil
		}
		if err := sendReload(pid); err != nil {
			return Result{State: StateNotRunning}, nil
		}
		return Result{State: StateReloaded, Msg: "sent reload signal"}, nil
	})
}

// TimeoutOptions exposes the advisory start/stop polling parameters for
// the host's outer retry loop.
func (s *Supervisor) TimeoutOptions() TimeoutOptions { return s.cfg.Timeouts() }

func (s *Supervisor) do(op string, fn func() (Result, error)) (Result, error) {
	began := time.Now()
	metrics.IncOp(s.cfg.Name, op)
	res, err := fn()
	metrics.ObserveDuration(s.cfg.Name, op, time.Since(began))
	s.observe(op, res, err)
	return res, err
}

// observe records the outcome in logs, metrics, and the journal.
func (s *Supervisor) observe(op string, res Result, err error) {
	if err != nil {
		metrics.IncError(s.cfg.Name, op)
		s.log.Error("operation failed", "op", op, "error", err)
		return
	}
	metrics.IncResult(s.cfg.Name, op, res.State.String())
	s.log.Debug("operation finished", "op", op, "state", res.State.String(), "pid", res.PID)
	if s.st != nil {
		rec := store.Record{
			Service:    s.cfg.Name,
			Op:         op,
			State:      res.State.String(),
			PID:        res.PID,
			Msg:        res.Msg,
			OccurredAt: time.Now().UTC(),
		}
		if jerr := s.st.Append(context.Background(), rec); jerr != nil {
			s.log.Warn("journal append failed", "op", op, "error", jerr)
		}
	}
}
