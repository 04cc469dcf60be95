//go:build windows

package memcall

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Lockable reports the process's minimum working-set size, which is
// the closest Windows analogue to RLIMIT_MEMLOCK: it bounds how much
// of the process's working set the OS guarantees can be resident
// (and, combined with SetProcessWorkingSetSize, locked) at once.
func Lockable() (uint64, error) {
	handle := windows.CurrentProcess()

	var minSize, maxSize uintptr

	if err := windows.GetProcessWorkingSetSize(handle, &minSize, &maxSize); err != nil {
		return 0, fmt.Errorf("memcall: GetProcessWorkingSetSize: %w", err)
	}

	// Best-effort raise, mirroring the soft-to-hard raise on unix: ask
	// for the current maximum as the new minimum so VirtualLock has
	// room to work with.
	_ = windows.SetProcessWorkingSetSize(handle, maxSize, maxSize)

	if err := windows.GetProcessWorkingSetSize(handle, &minSize, &maxSize); err != nil {
		return 0, fmt.Errorf("memcall: re-GetProcessWorkingSetSize: %w", err)
	}

	return uint64(minSize), nil
}

// Map reserves and commits n bytes of anonymous, read/write memory.
func Map(n int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(n), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("memcall: VirtualAlloc: %w", err)
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n), nil
}

// DisableDump is a no-op on Windows: there is no per-mapping flag
// analogous to MADV_DONTDUMP.
func DisableDump(b []byte) error {
	return nil
}

// Lock pins the mapping via VirtualLock.
func Lock(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	if err := windows.VirtualLock(baseAddr(b), uintptr(len(b))); err != nil {
		return fmt.Errorf("memcall: VirtualLock: %w", err)
	}

	return nil
}

// Unlock unpins the mapping via VirtualUnlock.
func Unlock(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	if err := windows.VirtualUnlock(baseAddr(b), uintptr(len(b))); err != nil {
		return fmt.Errorf("memcall: VirtualUnlock: %w", err)
	}

	return nil
}

// Unmap releases the mapping via VirtualFree.
func Unmap(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	if err := windows.VirtualFree(baseAddr(b), 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("memcall: VirtualFree: %w", err)
	}

	return nil
}

func baseAddr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}
