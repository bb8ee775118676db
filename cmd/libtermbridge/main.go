// libtermbridge exposes the session table to C callers as a shared
// library. It converts C types at the boundary and delegates every
// call to the facade; no session logic lives here.
//
// Build with:
//
//	go build -buildmode=c-shared -o libtermbridge.so ./cmd/libtermbridge
package main

/*
#include <stdbool.h>
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/termbridge/termbridge/internal/facade"
)

//export PtyInit
func PtyInit(maxSessions C.uint32_t) C.bool {
	return C.bool(facade.Init(uint32(maxSessions)))
}

//export PtyCleanup
func PtyCleanup() {
	facade.Cleanup()
}

//export PtyCreateSession
func PtyCreateSession(command *C.char) C.int32_t {
	if command == nil {
		return -1
	}
	return C.int32_t(facade.CreateSession(C.GoString(command)))
}

// Zero-length reads and writes still go through the facade so an
// unknown session reports -1, never an empty transfer.

//export PtyRead
func PtyRead(id C.uint32_t, buf unsafe.Pointer, size C.size_t) C.int32_t {
	if buf == nil && size != 0 {
		return -1
	}
	var out []byte
	if size != 0 {
		out = unsafe.Slice((*byte)(buf), int(size))
	}
	return C.int32_t(facade.Read(uint32(id), out))
}

//export PtyWrite
func PtyWrite(id C.uint32_t, data unsafe.Pointer, size C.size_t) C.int32_t {
	if data == nil && size != 0 {
		return -1
	}
	var in []byte
	if size != 0 {
		in = unsafe.Slice((*byte)(data), int(size))
	}
	return C.int32_t(facade.Write(uint32(id), in))
}

//export PtyIsRunning
func PtyIsRunning(id C.uint32_t) C.bool {
	return C.bool(facade.IsRunning(uint32(id)))
}

//export PtyExitCode
func PtyExitCode(id C.uint32_t) C.int32_t {
	return C.int32_t(facade.ExitCode(uint32(id)))
}

//export PtyClose
func PtyClose(id C.uint32_t, force C.bool) C.bool {
	return C.bool(facade.Close(uint32(id), bool(force)))
}

//export PtySessionCount
func PtySessionCount() C.uint32_t {
	return C.uint32_t(facade.SessionCount())
}

//export PtyResize
func PtyResize(id C.uint32_t, cols C.uint16_t, rows C.uint16_t) C.bool {
	return C.bool(facade.Resize(uint32(id), uint16(cols), uint16(rows)))
}

func main() {}
