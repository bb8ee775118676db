// Package ptyio moves bytes between caller buffers and PTY master
// descriptors without ever blocking the caller.
//
// Both calls issue exactly one syscall, plus at most one retry after
// EINTR. Read folds would-block and master-side EOF into a zero-byte
// success so pollers keep a single code path; Write reports every
// failure, would-block included, because dropped input cannot be
// recovered by polling.
package ptyio

import "golang.org/x/sys/unix"

// Read drains at most len(buf) bytes from fd. A zero count with a nil
// error means no data is available right now: either nothing is
// pending, or the slave side is gone and the master raises EOF/EIO.
// Callers cross-check session status to tell the two apart.
func Read(fd int, buf []byte) (int, error) {
	n, err := unix.Read(fd, buf)
	if err == unix.EINTR {
		n, err = unix.Read(fd, buf)
	}
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EIO {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

// Write pushes at most len(data) bytes to fd. Short writes return the
// count actually queued; every failure, would-block included, comes
// back as an error for the caller to classify.
func Write(fd int, data []byte) (int, error) {
	n, err := unix.Write(fd, data)
	if err == unix.EINTR {
		n, err = unix.Write(fd, data)
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}
