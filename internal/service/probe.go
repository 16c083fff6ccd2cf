package service

// probeAttempts bounds the stabilization loop. The launcher rewrites the
// pid file during a zero-downtime restart, so a single read can race with
// the new pid landing on disk.
const probeAttempts = 5

// prober classifies the current state of the managed server from its pid
// file. alive is injectable for tests; the default probes with a
// non-destructive existence check.
type prober struct {
	pidFile string
	alive   func(pid int) bool
}

func newProber(pidFile string) *prober {
	return &prober{pidFile: pidFile, alive: pidAlive}
}

// Status reads the pid file and requires the value to stay stable across a
// liveness check before trusting it. A pid of 0 on the first read means no
// process was ever recorded. A pid file that changes mid-observation is a
// restart race and is reported as StateBroken rather than a guess.
func (p *prober) Status() (Result, error) {
	pid, err := ReadPIDFile(p.pidFile)
	if err != nil {
		return Result{}, err
	}
	if pid == 0 {
		return Result{State: StateNotRunning}, nil
	}
	var (
		oldPid int
		up     bool
	)
	newPid := pid
	for i := 0; ; {
		oldPid = newPid
		up = p.alive(oldPid)
		newPid, err = ReadPIDFile(p.pidFile)
		if err != nil {
			return Result{}, err
		}
		i++
		if newPid != oldPid || i >= probeAttempts {
			break
		}
	}
	if newPid != oldPid {
		return Result{State: StateBroken, Msg: "pid file changed during status check"}, nil
	}
	if up {
		return Result{State: StateRunning, PID: oldPid}, nil
	}
	return Result{State: StateNotRunning}, nil
}
