//go:build linux

package memcall

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func madviseDontDump(b []byte) error {
	if err := unix.Madvise(b, unix.MADV_DONTDUMP); err != nil {
		return fmt.Errorf("memcall: madvise(MADV_DONTDUMP): %w", err)
	}

	return nil
}
