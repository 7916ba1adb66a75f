package services

import "errors"

// ErrValidation marks a save rejected before it reaches the store, e.g. an
// empty page title.
var ErrValidation = errors.New("validation failed")
