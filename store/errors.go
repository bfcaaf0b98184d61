package store

import "errors"

// ErrStoreNotFound signals that the cache file is absent from disk
var ErrStoreNotFound = errors.New("cache file not found")

type errOpenFailed struct {
	inner error
}

func (e errOpenFailed) Error() string {
	return "failed to open cache read-only: " + e.inner.Error()
}

func (e errOpenFailed) Unwrap() error {
	return e.inner
}
