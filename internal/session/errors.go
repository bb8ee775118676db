package session

import "errors"

// Sentinel errors returned by Table operations. Callers classify with
// errors.Is; the facade flattens them into ABI sentinel values.
var (
	// ErrForkFailed means the PTY allocation or process start failed.
	ErrForkFailed = errors.New("fork failed")

	// ErrSessionNotFound means the ID does not name a live record.
	ErrSessionNotFound = errors.New("session not found")

	// ErrReadFailed is a true read error, distinct from would-block.
	ErrReadFailed = errors.New("read failed")

	// ErrWriteFailed is any write failure, would-block included.
	ErrWriteFailed = errors.New("write failed")

	// ErrInvalidSession means the operation is invalid for the
	// session's current state, such as writing after exit.
	ErrInvalidSession = errors.New("invalid session")

	// ErrMaxSessionsReached means the table is at capacity.
	ErrMaxSessionsReached = errors.New("max sessions reached")

	// ErrInvalidCommand means the command line was empty or blank.
	ErrInvalidCommand = errors.New("invalid command")
)
