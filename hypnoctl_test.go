package hypnoctl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Command: []string{"hypnotoad"},
		AppPath: filepath.Join(dir, "script", "myapp"),
		PIDFile: filepath.Join(dir, "hypnotoad.pid"),
	}
}

func TestNewAndStatusNotRunning(t *testing.T) {
	sup, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := sup.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if res.State != StateNotRunning {
		t.Fatalf("state=%v want %v", res.State, StateNotRunning)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{})
	if err == nil {
		t.Fatal("want validation error")
	}
}

func TestStatusRunningOwnPID(t *testing.T) {
	cfg := testConfig(t)
	sup, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pid := os.Getpid()
	if err := os.WriteFile(cfg.PIDFile, []byte(strconv.Itoa(pid)+"\n"), 0o644); err != nil {
		t.Fatalf("write pid file: %v", err)
	}
	res, err := sup.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if res.State != StateRunning || res.PID != pid {
		t.Fatalf("got %+v", res)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	sup, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = sup.DispatchCustomCommand(context.Background(), "bogus")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("err=%v want ErrUnknownCommand", err)
	}
}

func TestCustomCommandViaFacade(t *testing.T) {
	cfg := testConfig(t)
	cfg.CustomCommands = map[string]CommandFunc{
		"flush_cache": func(context.Context, *Supervisor) (Result, error) {
			return Result{State: StateRunning, Msg: "cache flushed"}, nil
		},
	}
	sup, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := sup.DispatchCustomCommand(context.Background(), "flush_cache")
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if res.Msg != "cache flushed" {
		t.Fatalf("got %+v", res)
	}
}

func TestNewStoreSQLite(t *testing.T) {
	st, err := NewStore("sqlite://" + filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer func() { _ = st.Close() }()
	if err := st.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
}

func TestLoadConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hypnoctl.toml")
	body := `
[service]
command = ["hypnotoad"]
app = "` + filepath.ToSlash(filepath.Join(dir, "script", "myapp")) + `"

[service.wait_status]
step = "50ms"
trials = 3
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	to := cfg.Service.Timeouts()
	if to.Start.Step != 50*time.Millisecond || to.Start.Trials != 3 {
		t.Fatalf("timeouts=%+v", to)
	}
}
