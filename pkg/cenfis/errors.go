package cenfis

import "errors"

var (
	ErrAlreadyFinalized = errors.New("encoder already finalized")
	ErrCapacityExceeded = errors.New("airspace data does not fit into the device")
	ErrFileInfoTooLong  = errors.New("file info string is longer than 24 characters")
)
