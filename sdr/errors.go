// File: sdr/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sdr

import "errors"

// ErrDeviceClosed is returned by ReadRaw after Close.
var ErrDeviceClosed = errors.New("sdr: device closed")

// ErrDeviceNotFound is returned by OpenDevice when no source is registered
// at the requested index.
var ErrDeviceNotFound = errors.New("sdr: no device at that index")
