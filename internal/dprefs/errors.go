package dprefs

import "errors"

var (
	// ErrNotInitialized is returned by every operation except Initialize
	// while no preference manager is bound.
	ErrNotInitialized = errors.New("dprefs has not been initialized, call Initialize before using it")

	// ErrKeyAlreadyExists is returned by a put whose key already holds a
	// value. The stored value is left untouched; remove the key first.
	ErrKeyAlreadyExists = errors.New("key already exists, change the key to a new unique string or remove the existing one")

	// ErrEmptyKey is returned by a put with an empty key.
	ErrEmptyKey = errors.New("key can not be empty, use a unique non-empty string")
)
