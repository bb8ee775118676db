// Package facade is the singleton core behind the C ABI.
//
// A context-free C calling convention leaves nowhere to carry a
// handle, so exactly one process-wide Table lives here between Init
// and Cleanup. The singleton is confined to this package: the Table
// itself stays a plain object, so tests and any future multi-instance
// API construct their own without touching the global.
//
// Every entry point flattens typed errors into the ABI sentinels (-1,
// false, 0) and fails safely when called before Init or after Cleanup.
// The cgo shim in cmd/libtermbridge converts C types and delegates
// here; it contains no logic of its own.
package facade
