//go:build voxeldebug

package world

const debugChecks = true
