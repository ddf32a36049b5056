package loader

import (
	"net/http"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithBaseDir is an option builder that sets the directory relative paths resolve against.
//
// Parameters:
//   - dir: the base directory
//
// Returns:
//   - LoaderBuilderOption: a function that applies the base directory option to a loader
func WithBaseDir(dir string) LoaderBuilderOption {
	return func(l *loader) {
		l.baseDir = dir
	}
}

// WithHTTPClient is an option builder that sets the client used for http(s) URLs.
//
// Parameters:
//   - client: the HTTP client
//
// Returns:
//   - LoaderBuilderOption: a function that applies the client option to a loader
func WithHTTPClient(client *http.Client) LoaderBuilderOption {
	return func(l *loader) {
		l.httpClient = client
	}
}

// WithMaxTextureWidth is an option builder that caps the decoded texture width. Zero disables downscaling.
//
// Parameters:
//   - width: the maximum width in pixels
//
// Returns:
//   - LoaderBuilderOption: a function that applies the width cap to a loader
func WithMaxTextureWidth(width int) LoaderBuilderOption {
	return func(l *loader) {
		l.maxWidth = width
	}
}

// WithMaxDecodePixels is an option builder that caps the pixel count an image header may
// declare. Zero disables the check.
//
// Parameters:
//   - pixels: the maximum width*height
//
// Returns:
//   - LoaderBuilderOption: a function that applies the pixel cap to a loader
func WithMaxDecodePixels(pixels int) LoaderBuilderOption {
	return func(l *loader) {
		l.maxPixels = pixels
	}
}
