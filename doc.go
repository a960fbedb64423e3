// Package imgdata manages the in-memory layout of multi-dimensional pixel
// data and converts it between semantic buffer formats and external bitmaps.
//
// # Overview
//
// An [ImageData] owns one contiguous byte allocation holding every
// (mip level, array index, depth slice) unit of a 1D, 2D, cube or 3D image.
// Each unit is exposed as an [ImageBuffer], a non-owning view that knows its
// dimensions, format and pitch.
//
//	data, err := imgdata.New(imgdata.Settings{
//	    Type:     imgdata.Image2D,
//	    Width:    256,
//	    Height:   256,
//	    MipCount: 4,
//	    Format:   format.R8G8B8A8Unorm,
//	})
//
// # Layout
//
// Buffers are ordered array-major, mip-minor: for each array index the full
// mip chain follows from level 0. For 3D images every mip level is followed
// by its depth slices, and depth halves with each level. [ComputeLayout]
// returns the same offsets without allocating.
//
// # Conversion
//
// A [Converter] imports external bitmaps ([codec.Bitmap] or [image.Image])
// into buffers, scaling, clipping and dithering as needed, and exports
// buffers as 32-bit RGBA bitmaps. Format resolution goes through the
// [catalog] package; pixel work is done by a [codec.Codec], by default
// [codec.Software].
//
// # Sub-resources
//
// [SubresourceIndex] maps a (mip, array) pair to the linear index used by
// GPU update and lock operations. Out of range inputs are clamped.
//
// # Concurrency
//
// Layout, views and conversion take no locks. Callers must synchronize
// access to a shared ImageData. The package logger is safe for concurrent use.
//
// # Testing
//
// The core packages (imgdata and format) are tested with the standard
// testing package only. The catalog, codec, internal/logging and CLI
// packages use testify assertions.
package imgdata

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
