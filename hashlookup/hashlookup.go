// Package hashlookup is a name-keyed dispatch shim that the rest of
// the cryptography library uses to resolve an algorithm request
// against a set of factories. It has no dependency on lockpool and
// lockpool has none on it; the two packages live side by side in the
// same module.
package hashlookup

// Algorithm is an opaque handle to a resolved hash algorithm instance.
// This package does not know or care what it actually is.
type Algorithm any

// Factory is a name-keyed source of Algorithm instances, such as a
// registry entry for one hash implementation.
type Factory interface {
	// Lookup returns the algorithm this factory provides for name, and
	// true, or (nil, false) if it does not recognize name.
	Lookup(name string) (Algorithm, bool)
}

// Find dispatches name against factories in order and returns the
// first match.
func Find(name string, factories ...Factory) (Algorithm, bool) {
	for _, f := range factories {
		if f == nil {
			continue
		}

		if a, ok := f.Lookup(name); ok {
			return a, true
		}
	}

	return nil, false
}
