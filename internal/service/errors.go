package service

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("duplicate contract code")
	ErrUpstream         = errors.New("upstream failure")
	ErrUpstreamTimeout  = errors.New("upstream timeout")
)
