package ports

import "errors"

// ErrCentreNotFound is returned by repositories when a centre id does not exist.
var ErrCentreNotFound = errors.New("centre not found")
