package service

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/loykin/hypnoctl/internal/store/sqlite"
)

func TestSupervisorStatusNoPIDFile(t *testing.T) {
	cfg := validConfig()
	cfg.PIDFile = filepath.Join(t.TempDir(), "hypnotoad.pid")
	s := newTestSupervisor(t, cfg)
	res, err := s.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if res.State != StateNotRunning {
		t.Fatalf("state=%v want not running", res.State)
	}
}

func TestSupervisorStatusOwnPID(t *testing.T) {
	// The test process itself is certainly alive, so recording our own
	// pid must classify as running through the real liveness probe.
	cfg := validConfig()
	cfg.PIDFile = filepath.Join(t.TempDir(), "hypnotoad.pid")
	writePID(t, cfg.PIDFile, strconv.Itoa(os.Getpid())+"\n")
	s := newTestSupervisor(t, cfg)
	res, err := s.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if res.State != StateRunning || res.PID != os.Getpid() {
		t.Fatalf("got %+v want running with own pid", res)
	}
}

func TestSupervisorReloadNoPID(t *testing.T) {
	cfg := validConfig()
	cfg.PIDFile = filepath.Join(t.TempDir(), "hypnotoad.pid")
	s := newTestSupervisor(t, cfg)
	res, err := s.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if res.State != StateNotRunning {
		t.Fatalf("state=%v want not running", res.State)
	}
}

func TestSupervisorReloadDeadPID(t *testing.T) {
	cfg := validConfig()
	cfg.PIDFile = filepath.Join(t.TempDir(), "hypnotoad.pid")
	// A pid far beyond pid_max so signal delivery fails.
	writePID(t, cfg.PIDFile, "999999999\n")
	s := newTestSupervisor(t, cfg)
	res, err := s.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if res.State != StateNotRunning {
		t.Fatalf("state=%v want not running when delivery fails", res.State)
	}
}

func TestSupervisorTimeoutOptions(t *testing.T) {
	cfg := validConfig()
	cfg.WaitStatus = WaitStatus{Step: 50 * time.Millisecond, Trials: 4}
	s := newTestSupervisor(t, cfg)
	to := s.TimeoutOptions()
	if to.Start.Step != 50*time.Millisecond || to.Start.Trials != 4 {
		t.Fatalf("start timeouts %+v", to.Start)
	}
	if to.Stop != to.Start {
		t.Fatalf("stop timeouts %+v must mirror start", to.Stop)
	}
}

func TestSupervisorJournalsLifecycle(t *testing.T) {
	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	defer func() { _ = st.Close() }()
	if err := st.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("schema: %v", err)
	}

	cfg := validConfig()
	cfg.Name = "journaled"
	cfg.PIDFile = filepath.Join(t.TempDir(), "hypnotoad.pid")
	s := newTestSupervisor(t, cfg)
	s.SetJournal(st)

	if _, err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := s.Status(); err != nil {
		t.Fatalf("Status: %v", err)
	}

	recs, err := st.Recent(context.Background(), "journaled", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("journal has %d records, want 2", len(recs))
	}
	ops := map[string]bool{}
	for _, r := range recs {
		ops[r.Op] = true
	}
	if !ops["start"] || !ops["status"] {
		t.Fatalf("journal ops %v want start and status", ops)
	}
}
