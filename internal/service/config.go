package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/loykin/hypnoctl/internal/logger"
)

// DefaultPIDFileName is the pid file the launcher writes next to the
// application script when no explicit path is configured.
const DefaultPIDFileName = "hypnotoad.pid"

// CommandFunc is an operator-registered custom action. It receives the
// supervisor it was dispatched on; its result and error are passed back to
// the caller unchanged.
type CommandFunc func(ctx context.Context, s *Supervisor) (Result, error)

// WaitStatus carries the polling parameters a host should use when waiting
// for a start or stop to take effect. The controller itself never sleeps on
// these values; they are advisory metadata.
type WaitStatus struct {
	Step   time.Duration `json:"step"`
	Trials int           `json:"trials"`
}

const (
	DefaultWaitStep   = 100 * time.Millisecond
	DefaultWaitTrials = 10
)

// withDefaults fills zero fields independently, so overriding one of the
// two parameters leaves the other at its default.
func (w WaitStatus) withDefaults() WaitStatus {
	if w.Step <= 0 {
		w.Step = DefaultWaitStep
	}
	if w.Trials < 1 {
		w.Trials = DefaultWaitTrials
	}
	return w
}

// TotalWait returns the theoretical budget of a triangular-backoff poll
// using these parameters: step*trials*(trials-1)/2 plus one second.
func (w WaitStatus) TotalWait() time.Duration {
	w = w.withDefaults()
	return w.Step*time.Duration(w.Trials*(w.Trials-1)/2) + time.Second
}

// TimeoutOptions pairs the advisory wait parameters for start and stop,
// in the shape hosts consume.
type TimeoutOptions struct {
	Start WaitStatus `json:"start"`
	Stop  WaitStatus `json:"stop"`
}

// Config describes how to launch, stop, and locate one managed server.
// Build it once and validate via Normalize before handing it to a
// Supervisor; a Supervisor is never created from an invalid Config.
type Config struct {
	// Name identifies the service in logs, metrics labels, and the
	// operation journal. Defaults to the base name of AppPath.
	Name string `json:"name"`
	// Command is the external launcher argv ("hypnotoad" and any extra
	// arguments). Start appends AppPath, stop appends "-s" and AppPath.
	Command []string `json:"command"`
	// AppPath is the absolute path of the application script handed to the
	// launcher.
	AppPath string `json:"app_path"`
	// PIDFile is the absolute path of the pid file the launcher maintains.
	// Empty means DefaultPIDFileName next to AppPath.
	PIDFile string `json:"pid_file"`
	// WorkDir, when set, is the working directory for launcher invocations.
	// It is passed to the spawned command only; the controller never
	// chdirs the whole process.
	WorkDir string `json:"work_dir"`
	// Env is overlaid on the OS environment for launcher invocations.
	// Config entries win on key collision.
	Env map[string]string `json:"env"`

	WaitStatus WaitStatus `json:"wait_status"`

	// CustomCommands maps operator action names to callbacks.
	CustomCommands map[string]CommandFunc `json:"-"`

	// Log configures structured logging and the rotated launcher-output
	// journal for this service.
	Log logger.Config `json:"log"`
}

// Normalize validates the config and fills derived defaults. It returns a
// copy; the receiver is not modified. Any violation fails with an error and
// no partially-valid config is returned.
func (c Config) Normalize() (Config, error) {
	if len(c.Command) == 0 || c.Command[0] == "" {
		return Config{}, fmt.Errorf("service: launcher command required")
	}
	if c.AppPath == "" {
		return Config{}, fmt.Errorf("service: app path required")
	}
	if !filepath.IsAbs(c.AppPath) {
		return Config{}, fmt.Errorf("service: app path %q must be absolute", c.AppPath)
	}
	if c.Name == "" {
		c.Name = filepath.Base(c.AppPath)
	}
	if c.PIDFile == "" {
		c.PIDFile = filepath.Join(filepath.Dir(c.AppPath), DefaultPIDFileName)
	}
	if !filepath.IsAbs(c.PIDFile) {
		return Config{}, fmt.Errorf("service: pid file %q must be absolute", c.PIDFile)
	}
	if c.WorkDir != "" && !filepath.IsAbs(c.WorkDir) {
		return Config{}, fmt.Errorf("service: work dir %q must be absolute", c.WorkDir)
	}
	c.WaitStatus = c.WaitStatus.withDefaults()
	for name, fn := range c.CustomCommands {
		if name == "" {
			return Config{}, fmt.Errorf("service: custom command with empty name")
		}
		if fn == nil {
			return Config{}, fmt.Errorf("service: custom command %q has nil callback", name)
		}
	}
	return c, nil
}

// Timeouts returns the advisory start/stop polling parameters derived from
// WaitStatus.
func (c Config) Timeouts() TimeoutOptions {
	w := c.WaitStatus.withDefaults()
	return TimeoutOptions{Start: w, Stop: w}
}
