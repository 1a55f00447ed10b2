// Package cerrs defines constant error types using a custom Error string
// type. It centralizes the engine's error taxonomy — phase, input,
// invariant, resource, and air-scheduling failures — so callers can
// compare with errors.Is instead of matching strings.
package cerrs
