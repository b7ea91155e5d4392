package cache

import (
	platformerrors "github.com/jmgilman/go/errors"
)

var (
	// ErrNoLoader is returned by GetOrLoad when no Loader was configured in Options.
	ErrNoLoader = platformerrors.New(platformerrors.CodeNotImplemented, "cache: no Loader provided")

	// ErrInconsistentSize is the cause of the panic raised when the tracked
	// size disagrees with the resident entries. It means SizeOf returned a
	// negative size or the accounting is broken; the cache cannot recover.
	ErrInconsistentSize = platformerrors.New(platformerrors.CodeInternal, "cache: SizeOf is reporting inconsistent results")
)

// IsInvalidArgument reports whether err is a caller contract violation
// (empty key, nil value, non-positive MaxSize, missing SizeOf).
func IsInvalidArgument(err error) bool {
	return platformerrors.GetCode(err) == platformerrors.CodeInvalidInput
}

func invalidArgument(format string, args ...interface{}) error {
	return platformerrors.Newf(platformerrors.CodeInvalidInput, "cache: "+format, args...)
}

// inconsistency builds the panic value for a failed size check.
// errors.Is(v, ErrInconsistentSize) holds for the result.
func inconsistency(size int64, entries int, target int64) platformerrors.PlatformError {
	err := platformerrors.Wrap(ErrInconsistentSize, platformerrors.CodeInternal, "cache: size accounting check failed")
	return platformerrors.WithContextMap(err, map[string]interface{}{
		"size":    size,
		"entries": entries,
		"target":  target,
	})
}
