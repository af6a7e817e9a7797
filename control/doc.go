// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime observation layer for hioload-collect: named stats sources
// with atomic snapshot sampling, for wiring collector counters into
// monitoring loops.
package control
