//go:build windows

package service

import "errors"

// sendReload is unsupported on Windows; hypnotoad-style USR2 hot reload
// has no equivalent there.
func sendReload(pid int) error {
	return errors.New("reload signal not supported on windows")
}
