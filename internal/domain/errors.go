package domain

import "errors"

var (
	ErrMalformedVersion   = errors.New("malformed version")
	ErrCatalogUnavailable = errors.New("release catalog unavailable")
	ErrNoCurrentRelease   = errors.New("current release undeterminable")
	ErrDefaultMismatch    = errors.New("default version did not take effect")
	ErrNoProfileFound     = errors.New("no writable shell profile found")
)
