package loader

import (
	"context"
	"io"
)

// loaderBackend opens the raw bytes behind a panorama URL. Concrete implementations
// handle one family of URL schemes; decoding is shared by the Loader.
type loaderBackend interface {
	// Open returns a reader over the encoded image bytes.
	//
	// Parameters:
	//   - ctx: cancels the fetch
	//   - location: the scheme-specific location (a path or a full URL)
	//
	// Returns:
	//   - io.ReadCloser: the encoded image stream, closed by the caller
	//   - error: error if the location cannot be opened
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}
