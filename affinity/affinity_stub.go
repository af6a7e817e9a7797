//go:build !linux
// +build !linux

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for platforms without affinity support.

package affinity

import "errors"

// setAffinityPlatform is a stub for platforms where CPU affinity is not
// supported.
func setAffinityPlatform(cpuID int) error {
	return errors.New("affinity: not supported on this platform")
}
