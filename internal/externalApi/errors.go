package externalApi

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrNoData   = errors.New("no usable data in response")
)
