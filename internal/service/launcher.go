package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"slices"
	"strings"

	"github.com/loykin/hypnoctl/internal/env"
)

// Runner executes one launcher argv synchronously. It reports captured
// stderr and the command's exit code; err is non-nil only when the command
// could not be spawned at all (missing binary, bad working directory).
// dir and environ apply to the spawned command only; implementations must
// never mutate the supervisor's own working directory or environment.
type Runner interface {
	Run(argv []string, dir string, environ []string) (stderr []byte, exitCode int, err error)
}

// execRunner is the default Runner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(argv []string, dir string, environ []string) ([]byte, int, error) {
	// #nosec G204 -- argv comes from validated supervisor configuration
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	if len(environ) > 0 {
		cmd.Env = environ
	}
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return errBuf.Bytes(), ee.ExitCode(), nil
		}
		return errBuf.Bytes(), -1, err
	}
	return errBuf.Bytes(), 0, nil
}

// launcher invokes the external launcher command for start and stop. The
// launcher is expected to fork the managed server and exit quickly; these
// calls block only on the launcher itself.
type launcher struct {
	cfg     Config
	run     Runner
	envM    *env.Env
	log     *slog.Logger
	journal io.Writer // optional rotated file receiving captured stderr
}

func newLauncher(cfg Config, log *slog.Logger) *launcher {
	l := &launcher{
		cfg:  cfg,
		run:  execRunner{},
		envM: env.New(),
		log:  log,
	}
	if w := cfg.Log.LauncherWriter(cfg.Name); w != nil {
		l.journal = w
	}
	return l
}

// Start invokes `command... appPath`. A zero exit is acknowledged
// optimistically as StateStarting; whether the server actually came up is
// confirmed later through status.
func (l *launcher) Start() (Result, error) {
	argv := append(slices.Clone(l.cfg.Command), l.cfg.AppPath)
	return l.invoke(argv, StateStarting, false)
}

// Stop invokes `command... -s appPath`. Captured stderr is surfaced even
// on success so operators see launcher warnings during shutdown.
func (l *launcher) Stop() (Result, error) {
	argv := append(slices.Clone(l.cfg.Command), "-s", l.cfg.AppPath)
	return l.invoke(argv, StateStopping, true)
}

func (l *launcher) invoke(argv []string, okState State, stderrOnSuccess bool) (Result, error) {
	environ := l.envM.Merge(l.cfg.Env)
	stderr, exitCode, err := l.run.Run(argv, l.cfg.WorkDir, environ)
	diag := strings.TrimSpace(string(stderr))
	if l.journal != nil && len(stderr) > 0 {
		_, _ = l.journal.Write(stderr)
	}
	if err != nil {
		// Spawn failed before the launcher ran (bad workdir, missing
		// binary): an environment error, not a launcher failure.
		return Result{}, fmt.Errorf("service: run %s: %w", argv[0], err)
	}
	if exitCode != 0 {
		if diag != "" {
			l.log.Error("launcher failed", "service", l.cfg.Name, "argv", argv, "stderr", diag)
		} else {
			l.log.Error("launcher failed", "service", l.cfg.Name, "argv", argv, "exit", exitCode)
		}
		return Result{State: StateBroken, Msg: diag}, nil
	}
	if stderrOnSuccess && diag != "" {
		l.log.Warn("launcher stderr", "service", l.cfg.Name, "argv", argv, "stderr", diag)
		return Result{State: okState, Msg: diag}, nil
	}
	return Result{State: okState}, nil
}
