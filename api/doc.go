// File: api/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package api defines the public contracts of hioload-collect:
// producer and drainer interfaces, shared error values, and stats
// snapshot types. Implementations live under core/.
package api
