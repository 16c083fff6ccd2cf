//go:build !windows

package service

import (
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"testing"
	"time"
)

func TestSupervisorReloadDeliversSignal(t *testing.T) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR2)
	defer signal.Stop(ch)

	cfg := validConfig()
	cfg.PIDFile = filepath.Join(t.TempDir(), "hypnotoad.pid")
	writePID(t, cfg.PIDFile, strconv.Itoa(os.Getpid())+"\n")
	s := newTestSupervisor(t, cfg)

	res, err := s.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if res.State != StateReloaded {
		t.Fatalf("state=%v want reloaded", res.State)
	}
	select {
	case sig := <-ch:
		if sig != syscall.SIGUSR2 {
			t.Fatalf("got signal %v want SIGUSR2", sig)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reload signal not received")
	}
}
