// Package memzero provides the zeroing primitive used by the locked
// allocator. It is treated as an external collaborator by the rest of
// the library: given a byte slice, it writes zero bytes in a way the
// compiler cannot optimize away, even though nothing reads the result
// afterward.
package memzero

import "runtime"

// Wipe overwrites every byte of b with zero. It uses a volatile-style
// byte-at-a-time store via runtime.KeepAlive to defeat dead-store
// elimination; there is no portable "explicit_bzero" in the standard
// library, so this is the idiomatic Go substitute.
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}

	for i := range b {
		b[i] = 0
	}

	runtime.KeepAlive(b)
}
