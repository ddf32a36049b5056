package loader

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, encodePNG(t, w, h), 0o644))
	return path
}

func TestLoadBarePath(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "pano.png", 8, 4)

	tex, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, path, tex.Source)
	require.Equal(t, uint32(8), tex.Staging.Width)
	require.Equal(t, uint32(4), tex.Staging.Height)
	require.Len(t, tex.Staging.Pixels, 8*4*4)
	require.Equal(t, common.EquirectangularSampler(), tex.Sampler)

	// pixel (3, 2) keeps its color through the RGBA conversion
	i := (2*8 + 3) * 4
	require.Equal(t, []byte{3, 2, 200, 255}, tex.Staging.Pixels[i:i+4])
}

func TestLoadRelativeToBaseDir(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "rel.png", 2, 1)

	tex, err := NewLoader(WithBaseDir(dir)).Load(context.Background(), "rel.png")
	require.NoError(t, err)
	require.Equal(t, uint32(2), tex.Staging.Width)
}

func TestLoadFileURL(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "f.png", 2, 2)

	tex, err := NewLoader().Load(context.Background(), "file://"+filepath.ToSlash(path))
	require.NoError(t, err)
	require.Equal(t, uint32(2), tex.Staging.Height)
}

func TestLoadHTTP(t *testing.T) {
	body := encodePNG(t, 4, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pano.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	l := NewLoader(WithHTTPClient(srv.Client()))
	tex, err := l.Load(context.Background(), srv.URL+"/pano.png")
	require.NoError(t, err)
	require.Equal(t, uint32(4), tex.Staging.Width)

	_, err = l.Load(context.Background(), srv.URL+"/missing.png")
	require.ErrorContains(t, err, "404")
}

func TestLoadErrors(t *testing.T) {
	l := NewLoader()
	ctx := context.Background()

	_, err := l.Load(ctx, "")
	require.Error(t, err)

	_, err = l.Load(ctx, "ftp://example.com/a.png")
	require.ErrorContains(t, err, "unsupported")

	_, err = l.Load(ctx, filepath.Join(t.TempDir(), "nope.png"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = l.Load(ctx, bad)
	require.ErrorContains(t, err, "decode")
}

func TestLoadCancelledContext(t *testing.T) {
	path := writePNG(t, t.TempDir(), "c.png", 2, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader().Load(ctx, path)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadDownscalesWideImages(t *testing.T) {
	path := writePNG(t, t.TempDir(), "wide.png", 64, 32)

	tex, err := NewLoader(WithMaxTextureWidth(16)).Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, uint32(16), tex.Staging.Width)
	require.Equal(t, uint32(8), tex.Staging.Height)
	require.Len(t, tex.Staging.Pixels, 16*8*4)
}

func TestLoadRejectsOversizedImagesBeforeDecode(t *testing.T) {
	path := writePNG(t, t.TempDir(), "huge.png", 64, 32)
	ctx := context.Background()

	_, err := NewLoader(WithMaxDecodePixels(100)).Load(ctx, path)
	require.ErrorContains(t, err, "too large")

	_, err = NewLoader(WithMaxTextureWidth(8)).Load(ctx, path)
	require.ErrorContains(t, err, "width 64 exceeds 32")

	tex, err := NewLoader(WithMaxTextureWidth(16), WithMaxDecodePixels(64*32)).Load(ctx, path)
	require.NoError(t, err)
	require.Equal(t, uint32(16), tex.Staging.Width)
}

func TestDefaultHTTPClientHasTimeout(t *testing.T) {
	l := NewLoader().(*loader)
	backend, ok := l.http.(*httpLoaderBackend)
	require.True(t, ok)
	require.Equal(t, DefaultHTTPTimeout, backend.client.Timeout)
}
