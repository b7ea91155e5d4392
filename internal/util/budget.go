// Package util contains internal helpers for sizing the cache.
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import (
	"math"
	"runtime/debug"
)

const (
	// FallbackMemory is assumed when the process has no soft memory limit.
	FallbackMemory int64 = 256 << 20

	// budgetDivisor hands roughly 15% of the available memory to the cache.
	budgetDivisor = 7

	// minBudget keeps tiny limits from producing a useless cache.
	minBudget int64 = 1 << 20
)

// MemoryLimit reports the Go runtime soft memory limit (GOMEMLIMIT or
// debug.SetMemoryLimit) or FallbackMemory when none is configured.
func MemoryLimit() int64 {
	// A negative input only reads the current limit.
	limit := debug.SetMemoryLimit(-1)
	if limit <= 0 || limit == math.MaxInt64 {
		return FallbackMemory
	}
	return limit
}

// ReasonableMaxSize derives a cache byte budget from the memory available to
// the process: about one seventh of it, never below 1 MiB.
func ReasonableMaxSize() int64 {
	return BudgetFor(MemoryLimit())
}

// BudgetFor is ReasonableMaxSize for an explicit amount of memory.
func BudgetFor(memory int64) int64 {
	b := memory / budgetDivisor
	if b < minBudget {
		b = minBudget
	}
	return b
}
