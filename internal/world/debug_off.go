//go:build !voxeldebug

package world

// debugChecks enables hot-path precondition assertions. Build with
// -tags voxeldebug to turn them on.
const debugChecks = false
