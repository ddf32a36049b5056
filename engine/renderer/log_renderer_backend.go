package renderer

import (
	"github.com/Carmen-Shannon/oxy-pano/common"
)

// logRendererBackend is a RendererBackend that reports draws to the package logger at debug
// level. It lets the reference host run the whole pipeline without a GPU.
type logRendererBackend struct {
	view  FrameView
	draws int
}

var _ RendererBackend = &logRendererBackend{}

func newLogRendererBackend() *logRendererBackend {
	return &logRendererBackend{}
}

func (b *logRendererBackend) BeginFrame(view FrameView) error {
	b.view = view
	b.draws = 0
	return nil
}

func (b *logRendererBackend) DrawObject(cmd DrawCommand) error {
	b.draws++
	attrs := []any{
		"view", b.view.Index,
		"object", cmd.ObjectID,
		"indices", cmd.Mesh.IndexCount(),
		"opacity", cmd.Params.Opacity,
		"dirty", cmd.Dirty,
	}
	if cmd.Textured {
		attrs = append(attrs,
			"texture", cmd.Material.Texture().Source,
			"address_u", cmd.Sampler.AddressModeU,
			"address_v", cmd.Sampler.AddressModeV,
			"filter", cmd.Sampler.MagFilter,
		)
	}
	common.Logger().Debug("renderer: draw", attrs...)
	return nil
}

func (b *logRendererBackend) EndFrame() error {
	common.Logger().Debug("renderer: end frame", "view", b.view.Index, "draws", b.draws)
	return nil
}
