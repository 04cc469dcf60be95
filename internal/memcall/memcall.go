// Package memcall wraps the handful of OS primitives the locked
// allocator needs: querying and raising the lockable-memory limit,
// mapping an anonymous read/write region, excluding it from core
// dumps where the platform supports that, pinning/unpinning it in
// physical memory, and unmapping it. Each platform gets its own file;
// this file only holds the shared, platform-independent pieces.
//
// DisableDump is best-effort everywhere: on platforms with no
// core-dump exclusion primitive it silently returns nil rather than an
// error, since the caller's fallback (proceed without the flag) is the
// same either way.
package memcall
