package store

import "errors"

var (
	// ErrInvalidTheme is returned for a theme other than light or dark
	ErrInvalidTheme = errors.New("invalid theme")
	// ErrInvalidSession is returned when a session has no email
	ErrInvalidSession = errors.New("invalid session")
	// ErrInvalidKey is returned by FileStorage for keys that are not plain names
	ErrInvalidKey = errors.New("invalid storage key")
)
