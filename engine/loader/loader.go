package loader

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Carmen-Shannon/oxy-pano/common"
	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxTextureWidth is the widest texture the loader produces. Wider images are
// downscaled, preserving aspect ratio. 8192 is the common GPU 2D texture limit.
const DefaultMaxTextureWidth = 8192

// DefaultMaxDecodePixels caps the pixel count of an image before it is decoded, so a
// crafted header cannot force a huge allocation. 16384x8192 RGBA is 512 MiB.
const DefaultMaxDecodePixels = 16384 * 8192

// maxWidthFactor bounds how far beyond the texture width an image may be before it is
// rejected instead of downscaled.
const maxWidthFactor = 4

// loader is the implementation of the Loader interface.
type loader struct {
	baseDir    string
	httpClient *http.Client
	maxWidth   int
	maxPixels  int

	file loaderBackend
	http loaderBackend
}

// Loader fetches and decodes equirectangular panorama images.
//
// Supported locations are http(s) URLs, file URLs and bare filesystem paths (relative
// paths resolve against the configured base directory). JPEG, PNG, GIF, WebP, BMP,
// TIFF and TGA images decode to RGBA staging data paired with the equirectangular
// sampler configuration.
//
// Safe for concurrent use; loads run on worker goroutines.
type Loader interface {
	// Load fetches and decodes a panorama image.
	//
	// Parameters:
	//   - ctx: cancels the fetch
	//   - rawURL: the image location
	//
	// Returns:
	//   - *common.Texture: the decoded texture
	//   - error: error if fetching or decoding fails
	Load(ctx context.Context, rawURL string) (*common.Texture, error)
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the provided options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided options
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		maxWidth:  DefaultMaxTextureWidth,
		maxPixels: DefaultMaxDecodePixels,
	}
	for _, option := range options {
		option(l)
	}
	l.file = newFileLoaderBackend(l.baseDir)
	l.http = newHTTPLoaderBackend(l.httpClient)
	return l
}

func (l *loader) Load(ctx context.Context, rawURL string) (*common.Texture, error) {
	backend, location, err := l.resolveBackend(rawURL)
	if err != nil {
		return nil, err
	}

	rc, err := backend.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := l.readAll(rawURL, rc)
	if err != nil {
		return nil, err
	}
	return l.decode(rawURL, data)
}

// readAll buffers the encoded image. With a pixel cap the read is bounded by the size of
// an uncompressed image at that cap plus header slack.
func (l *loader) readAll(rawURL string, rc io.Reader) ([]byte, error) {
	limit := int64(-1)
	if l.maxPixels > 0 {
		limit = int64(l.maxPixels)*4 + 1<<20
		rc = io.LimitReader(rc, limit+1)
	}
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", rawURL, err)
	}
	if limit >= 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("image %s is too large: more than %d bytes", rawURL, limit)
	}
	return data, nil
}

// decode validates the header of data, decodes it and converts it to a texture.
func (l *loader) decode(rawURL string, data []byte) (*common.Texture, error) {
	if err := l.checkDimensions(rawURL, data); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", rawURL, err)
	}

	staging := l.toStaging(img)
	if staging.Empty() {
		return nil, fmt.Errorf("image %s has no pixels", rawURL)
	}
	common.Logger().Debug("loader: decoded panorama",
		"url", rawURL, "format", format, "width", staging.Width, "height", staging.Height)

	return &common.Texture{
		Source:  rawURL,
		Staging: staging,
		Sampler: common.EquirectangularSampler(),
	}, nil
}

// checkDimensions reads only the image header and rejects images too large to decode.
func (l *loader) checkDimensions(rawURL string, data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image %s: %w", rawURL, err)
	}
	if l.maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(l.maxPixels) {
		return fmt.Errorf("image %s is too large: %dx%d exceeds %d pixels", rawURL, cfg.Width, cfg.Height, l.maxPixels)
	}
	if l.maxWidth > 0 && cfg.Width > l.maxWidth*maxWidthFactor {
		return fmt.Errorf("image %s is too large: width %d exceeds %d", rawURL, cfg.Width, l.maxWidth*maxWidthFactor)
	}
	return nil
}

// resolveBackend selects a backend from the URL scheme and returns the location the
// backend understands.
func (l *loader) resolveBackend(rawURL string) (loaderBackend, string, error) {
	if rawURL == "" {
		return nil, "", fmt.Errorf("empty image url")
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// bare path; single-letter schemes are Windows drive letters
		return l.file, rawURL, nil
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return l.http, rawURL, nil
	case "file":
		return l.file, u.Path, nil
	default:
		return nil, "", fmt.Errorf("unsupported image url scheme: %s", u.Scheme)
	}
}

// toStaging converts any decoded image to tightly packed RGBA, downscaling when the
// image exceeds the maximum texture width.
func (l *loader) toStaging(img image.Image) common.TextureStagingData {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return common.TextureStagingData{}
	}

	dstRect := image.Rect(0, 0, w, h)
	if l.maxWidth > 0 && w > l.maxWidth {
		dstRect = image.Rect(0, 0, l.maxWidth, max(1, h*l.maxWidth/w))
	}
	rgba := image.NewRGBA(dstRect)
	if dstRect.Dx() == w {
		draw.Draw(rgba, dstRect, img, bounds.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(rgba, dstRect, img, bounds, draw.Src, nil)
	}

	return common.TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(dstRect.Dx()),
		Height: uint32(dstRect.Dy()),
	}
}
