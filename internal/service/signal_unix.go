//go:build !windows

package service

import "syscall"

// sendReload asks the managed server to hot-reload its workers.
func sendReload(pid int) error {
	return syscall.Kill(pid, syscall.SIGUSR2)
}
