package sortable

import (
	"errors"

	"dragsort/internal/dom"
)

// ErrInvalidArgument is returned for missing or malformed constructor input
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInvalidSelector is reported by Binding.Err when a selector fails to compile
var ErrInvalidSelector = dom.ErrInvalidSelector
