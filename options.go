package imgdata

import (
	"log/slog"

	"github.com/gogpu/imgdata/codec"
)

// ConverterOption configures a Converter during creation.
//
// Example:
//
//	// Default software codec, package logger
//	c := imgdata.NewConverter()
//
//	// Custom codec (dependency injection)
//	c := imgdata.NewConverter(imgdata.WithCodec(myCodec))
type ConverterOption func(*converterOptions)

// converterOptions holds optional configuration for Converter creation.
type converterOptions struct {
	codec  codec.Codec
	logger *slog.Logger
}

// defaultConverterOptions returns the default converter options.
func defaultConverterOptions() converterOptions {
	return converterOptions{
		codec:  codec.Software{},
		logger: nil, // falls back to Logger() on every call
	}
}

// WithCodec sets the imaging codec used for conversion, scaling and clipping.
// A nil codec keeps the default codec.Software.
func WithCodec(c codec.Codec) ConverterOption {
	return func(o *converterOptions) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithLogger sets a logger for one Converter instead of the package logger.
//
// Example:
//
//	l := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	c := imgdata.NewConverter(imgdata.WithLogger(l))
func WithLogger(l *slog.Logger) ConverterOption {
	return func(o *converterOptions) {
		o.logger = l
	}
}
