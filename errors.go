package imgdata

import (
	"errors"

	"github.com/gogpu/imgdata/catalog"
)

// Errors returned by layout, buffer and conversion operations.
var (
	// ErrUnsupportedFormat is returned when a format has no external mapping,
	// including after best-fit lookup.
	ErrUnsupportedFormat = catalog.ErrUnsupportedFormat

	// ErrInvalidFormat is returned when a format's byte size cannot be determined.
	ErrInvalidFormat = errors.New("imgdata: invalid format")

	// ErrSizeMismatch is returned when a supplied buffer does not match the
	// size computed from the image settings.
	ErrSizeMismatch = errors.New("imgdata: size mismatch")

	// ErrBufferMismatch is returned when a copy destination is incompatible
	// with its source.
	ErrBufferMismatch = errors.New("imgdata: buffer mismatch")

	// ErrPitchMismatch is returned when converted data does not have the pitch
	// of the destination buffer. It indicates a catalog inconsistency.
	ErrPitchMismatch = errors.New("imgdata: pitch mismatch")

	// ErrInvalidSize is returned when a requested image size is not positive.
	ErrInvalidSize = errors.New("imgdata: invalid size")

	// ErrMipOutOfRange is returned when a mip level is outside the image's mip chain.
	ErrMipOutOfRange = errors.New("imgdata: mip level out of range")
)
