// File: api/errors.go
// Author: momentics <momentics@gmail.com>
//
// Common error values used across the hioload-collect library.

package api

import "fmt"

var (
	// ErrHandleClosed is returned by Push after the handle has been
	// closed. The pending values of a closed handle were already flushed
	// and remain collectable.
	ErrHandleClosed = fmt.Errorf("handle is closed")
)
