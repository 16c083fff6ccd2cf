package service

import (
	"os"
	"strconv"
	"strings"
)

// ReadPIDFile reads the pid recorded in the launcher's pid file. A missing
// file is not an error: it returns 0, meaning no pid has ever been
// recorded. Only the first line is considered and the first run of decimal
// digits on it is the pid; a line without digits also yields 0. Any other
// I/O failure is returned to the caller.
func ReadPIDFile(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	line, _, _ := strings.Cut(string(b), "\n")
	start := strings.IndexFunc(line, isDigit)
	if start < 0 {
		return 0, nil
	}
	run := line[start:]
	if end := strings.IndexFunc(run, func(r rune) bool { return !isDigit(r) }); end >= 0 {
		run = run[:end]
	}
	pid, err := strconv.Atoi(run)
	if err != nil {
		// overflow or similar garbage; treat as no pid recorded
		return 0, nil
	}
	return pid, nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
