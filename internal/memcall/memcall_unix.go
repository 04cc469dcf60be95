//go:build unix

package memcall

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Lockable queries RLIMIT_MEMLOCK, best-effort raises the soft limit to
// the hard limit, re-queries, and returns the resulting soft limit.
func Lockable() (uint64, error) {
	var rlim unix.Rlimit

	if err := unix.Getrlimit(unix.RLIMIT_MEMLOCK, &rlim); err != nil {
		return 0, fmt.Errorf("memcall: getrlimit RLIMIT_MEMLOCK: %w", err)
	}

	if rlim.Cur < rlim.Max {
		raised := unix.Rlimit{Cur: rlim.Max, Max: rlim.Max}
		// Best-effort: an unprivileged process may not be able to raise
		// its own hard limit's worth of soft limit on every platform;
		// ignore the error and fall back to whatever Getrlimit reports
		// next.
		_ = unix.Setrlimit(unix.RLIMIT_MEMLOCK, &raised)

		if err := unix.Getrlimit(unix.RLIMIT_MEMLOCK, &rlim); err != nil {
			return 0, fmt.Errorf("memcall: re-getrlimit RLIMIT_MEMLOCK: %w", err)
		}
	}

	return uint64(rlim.Cur), nil
}

// Map creates an anonymous, private, read/write mapping of n bytes.
// Private rather than shared, since nothing in this package needs the
// mapping visible to another process (see DESIGN.md for the tradeoff).
func Map(n int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("memcall: mmap: %w", err)
	}

	return b, nil
}

// DisableDump excludes the mapping from core dumps, where supported.
func DisableDump(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	if err := madviseDontDump(b); err != nil {
		return err
	}

	return nil
}

// Lock pins the mapping in physical memory.
func Lock(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	if err := unix.Mlock(b); err != nil {
		return fmt.Errorf("memcall: mlock: %w", err)
	}

	return nil
}

// Unlock unpins the mapping.
func Unlock(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	if err := unix.Munlock(b); err != nil {
		return fmt.Errorf("memcall: munlock: %w", err)
	}

	return nil
}

// Unmap releases the mapping.
func Unmap(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	if err := unix.Munmap(b); err != nil {
		return fmt.Errorf("memcall: munmap: %w", err)
	}

	return nil
}
