// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific
// implementations live in separate files guarded by build tags. Used by
// benchmarks to pin producer threads and stabilize contention
// measurements.

package affinity

// SetAffinity pins the current OS thread to a given logical CPU on
// supported platforms. Callers should hold runtime.LockOSThread. On
// unsupported platforms returns an error.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}
