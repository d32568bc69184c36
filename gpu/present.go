package gpu

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"

	"github.com/gogpu/gdi/geom"
)

// Presenter owns the device texture a surface is presented through.
// Flushes upload only the dirty rows of the CPU buffer; the host reads
// the texture for composition.
type Presenter struct {
	dev     *Device
	texture hal.Texture
	w, h    int
}

// NewPresenter creates a presenter on dev. The texture is allocated
// lazily on the first Resize.
func NewPresenter(dev *Device) *Presenter {
	return &Presenter{dev: dev}
}

// Size returns the current texture dimensions.
func (p *Presenter) Size() (w, h int) { return p.w, p.h }

// Texture returns the presented HAL texture, or nil before the first
// Resize.
func (p *Presenter) Texture() hal.Texture { return p.texture }

// Resize reallocates the texture for a new surface size. Contents are
// not preserved; the caller re-uploads after resizing. Allocation
// failures mark the device out of memory.
func (p *Presenter) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("gpu: presenter size %dx%d must be positive", w, h)
	}
	if limit := p.dev.MaxTextureSize(); limit > 0 && (w > limit || h > limit) {
		return fmt.Errorf("gpu: presenter size %dx%d exceeds device limit %d", w, h, limit)
	}
	if p.texture != nil && p.w == w && p.h == h {
		return nil
	}
	tex, err := p.dev.HALDevice().CreateTexture(&hal.TextureDescriptor{
		Label: "surface",
		Size: hal.Extent3D{
			Width:              uint32(w),
			Height:             uint32(h),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     types.TextureDimension2D,
		Format:        types.TextureFormatRGBA8Unorm,
		Usage:         types.TextureUsageCopySrc | types.TextureUsageCopyDst | types.TextureUsageTextureBinding,
	})
	if err != nil {
		p.dev.SetHealth(HealthOutOfMemory)
		return fmt.Errorf("gpu: create surface texture: %w", err)
	}
	if p.texture != nil {
		p.dev.HALDevice().DestroyTexture(p.texture)
	}
	p.texture = tex
	p.w = w
	p.h = h
	return nil
}

// Upload copies the dirty region of a premultiplied RGBA8 buffer into
// the texture. The buffer covers the full surface with the given row
// stride; dirty is clamped to the texture bounds.
func (p *Presenter) Upload(pix []uint8, stride int, dirty geom.IRect) error {
	if p.texture == nil {
		return fmt.Errorf("gpu: upload before resize")
	}
	dirty = dirty.Intersect(geom.NewIRect(0, 0, p.w, p.h))
	if dirty.IsEmpty() {
		return nil
	}
	offset := dirty.MinY*stride + dirty.MinX*4
	end := (dirty.MaxY-1)*stride + dirty.MaxX*4
	if offset < 0 || end > len(pix) {
		return fmt.Errorf("gpu: dirty region out of buffer bounds")
	}
	p.dev.HALQueue().WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  p.texture,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: uint32(dirty.MinX), Y: uint32(dirty.MinY), Z: 0},
			Aspect:   types.TextureAspectAll,
		},
		pix[offset:end],
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(stride),
			RowsPerImage: uint32(dirty.Height()),
		},
		&hal.Extent3D{
			Width:              uint32(dirty.Width()),
			Height:             uint32(dirty.Height()),
			DepthOrArrayLayers: 1,
		},
	)
	return nil
}

// Destroy releases the texture. The presenter may be resized again
// afterwards.
func (p *Presenter) Destroy() {
	if p.texture != nil {
		p.dev.HALDevice().DestroyTexture(p.texture)
		p.texture = nil
	}
	p.w = 0
	p.h = 0
}
