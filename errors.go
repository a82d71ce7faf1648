package runstego

import (
	"errors"

	"github.com/yyyoichi/runstego/internal/runparity"
)

var (
	// ErrInvalidArgument is returned for a minimum run length below 1 and other
	// unusable parameters.
	ErrInvalidArgument = runparity.ErrInvalidArgument
	// ErrCapacity is wrapped by every *CapacityError.
	ErrCapacity = runparity.ErrCapacity

	ErrCarrierTooSmall   = errors.New("carrier is too small for the payload")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// CapacityError reports how many bits or runs an embedding needed and how
// many the carrier had.
type CapacityError = runparity.CapacityError
