// Package seclog provides the minimal structured logging used for
// locked-pool lifecycle events (pool-disabled notice, pool teardown).
// It never logs addresses, offsets, or pool contents — only
// the event name and, where useful, sizes.
package seclog

import (
	"log"
	"time"
)

// Event logs a locked-pool lifecycle event with a timestamp.
func Event(name string, fields ...any) {
	ts := time.Now().UTC().Format(time.RFC3339)
	log.Printf("[LOCKPOOL] %s - %s - %v", ts, name, fields)
}
