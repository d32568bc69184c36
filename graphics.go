// Package gdi implements a 2D graphics backend that maps abstract drawing
// primitives onto a software rasterizer with optional GPU presentation.
// It owns the render surface lifecycle, tracks drawing state, batches
// adjacent anti-aliased fill polygons to avoid seam artifacts, emulates
// XOR compositing, and memoizes scaled/blended bitmap results in a
// byte-budgeted cache.
package gdi

import (
	"fmt"
	"os"

	"github.com/gogpu/gdi/cache"
	"github.com/gogpu/gdi/geom"
	"github.com/gogpu/gdi/gpu"
	"github.com/gogpu/gdi/raster"
)

// Graphics is one backend instance: a render surface, its drawing state,
// and the deferred work attached to it. A Graphics is exclusively owned
// by one goroutine (the UI thread in a windowed host); it is not safe for
// concurrent use.
type Graphics struct {
	opts       options
	imageCache *cache.ImageCache

	dev       *gpu.Device
	presenter *gpu.Presenter
	mode      gpu.Mode

	surf          *raster.Surface
	width, height int
	offscreen     bool

	state drawState
	batch polyBatch

	xorSurf  *raster.Surface
	xorDirty geom.IRect

	dirty          geom.IRect
	pendingOps     int
	flushScheduled bool
}

// New creates a backend for an on-screen target of the given size. A GPU
// device is acquired unless the capability service prefers raster; any
// acquisition failure is a logged fallback to raster, not an error.
func New(width, height int, opts ...Option) (*Graphics, error) {
	g, err := newGraphics(width, height, false, opts...)
	if err != nil {
		return nil, err
	}
	dev, derr := gpu.Acquire(g.opts.provider, g.opts.caps)
	if derr != nil {
		Logger().Warn("gdi: gpu unavailable, using raster", "err", derr)
	} else {
		g.dev = dev
		g.presenter = gpu.NewPresenter(dev)
		g.mode = dev.Mode()
		Logger().Info("gdi: gpu device acquired", "adapter", dev.Name(), "mode", g.mode)
	}
	return g, nil
}

// NewOffscreen creates a backend rendering only to memory. Off-screen
// surfaces are always raster; non-positive dimensions clamp to 1.
func NewOffscreen(width, height int, opts ...Option) (*Graphics, error) {
	return newGraphics(width, height, true, opts...)
}

func newGraphics(width, height int, offscreen bool, opts ...Option) (*Graphics, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if offscreen {
		if width <= 0 {
			width = 1
		}
		if height <= 0 {
			height = 1
		}
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("gdi: target size %dx%d must be positive", width, height)
	}
	c := o.imageCache
	if c == nil {
		c = cache.New(0)
	}
	if o.onFatal == nil {
		o.onFatal = func(h gpu.Health) {
			Logger().Error("gdi: gpu device unusable, aborting", "health", h.String())
			os.Exit(1)
		}
	}
	return &Graphics{
		opts:       o,
		imageCache: c,
		mode:       gpu.ModeRaster,
		width:      width,
		height:     height,
		offscreen:  offscreen,
		state:      drawState{antiAlias: true},
	}, nil
}

// Width returns the target width in pixels.
func (g *Graphics) Width() int { return g.width }

// Height returns the target height in pixels.
func (g *Graphics) Height() int { return g.height }

// Mode returns the active presentation mode.
func (g *Graphics) Mode() gpu.Mode { return g.mode }

// Accelerated reports whether the surface presents through a GPU device.
func (g *Graphics) Accelerated() bool { return g.presenter != nil }

// ImageCache returns the injected or private image result cache.
func (g *Graphics) ImageCache() *cache.ImageCache { return g.imageCache }

// SetSize records an external change of the target size. The surface is
// recreated on the next drawing operation, preserving content for
// on-screen targets.
func (g *Graphics) SetSize(width, height int) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	g.width = width
	g.height = height
}

// preDraw prepares for a drawing operation: the surface must exist and
// match the target size, and a pending polygon batch from an earlier
// operation must be flushed first.
func (g *Graphics) preDraw() {
	g.checkSurface()
	g.checkPendingDrawing()
}

// postDraw schedules presentation, bounds command queuing, and checks
// device health. Unrecoverable device states abort: the surface content
// is unknown at that point, so continuing risks silent data corruption.
func (g *Graphics) postDraw() {
	g.scheduleFlush()
	if g.pendingOps > g.opts.flushAfterOps {
		g.submitPending()
	}
	if g.dev != nil {
		if h := g.dev.Health(); h.Fatal() {
			g.opts.onFatal(h)
		}
	}
}

// submitPending pushes accumulated pixels to the device without touching
// deferred drawing (the batch and XOR shadow stay pending).
func (g *Graphics) submitPending() {
	if g.presenter != nil && g.surf != nil {
		vis := g.dirty.Intersect(geom.NewIRect(0, 0, g.surf.Width(), g.surf.Height()))
		if !vis.IsEmpty() {
			if err := g.presenter.Upload(g.surf.Pix(), g.surf.Stride(), vis); err != nil {
				Logger().Warn("gdi: pending upload failed", "err", err)
			}
		}
	}
	g.pendingOps = 0
}

// scheduleFlush arranges presentation of an on-screen surface. Outside
// the host event loop nothing else would trigger idle rendering, so the
// flush happens immediately.
func (g *Graphics) scheduleFlush() {
	if g.offscreen {
		return
	}
	if g.opts.scheduler == nil || !g.opts.scheduler.InEventLoop() {
		g.performFlush()
		return
	}
	if !g.flushScheduled {
		g.flushScheduled = true
		g.opts.scheduler.ScheduleIdle(g.performFlush)
	}
}

// Flush completes deferred drawing and presents the surface.
func (g *Graphics) Flush() { g.performFlush() }

func (g *Graphics) performFlush() {
	g.flushScheduled = false
	g.FlushDrawing()
	if g.surf == nil {
		return
	}
	vis := g.dirty.Intersect(geom.NewIRect(0, 0, g.surf.Width(), g.surf.Height()))
	if !vis.IsEmpty() && g.presenter != nil {
		// The device backbuffer may be a different object every frame,
		// so the whole working surface is copied rather than the dirty
		// region alone.
		full := geom.NewIRect(0, 0, g.surf.Width(), g.surf.Height())
		if err := g.presenter.Upload(g.surf.Pix(), g.surf.Stride(), full); err != nil {
			Logger().Warn("gdi: surface present failed", "err", err)
		}
	}
	g.dirty = geom.IRect{}
}

// FlushDrawing completes all deferred drawing against the surface: the
// pending polygon batch and, in XOR mode, the accumulated shadow.
func (g *Graphics) FlushDrawing() {
	if g.surf == nil {
		return
	}
	g.checkPendingDrawing()
	if g.state.xorMode {
		g.applyXor()
	}
	g.pendingOps = 0
}

// Destroy releases the surface and any GPU resources. Pending work is
// drained first; the device requires queued commands completed before
// teardown. A canvas save/restore imbalance here is a programming error.
func (g *Graphics) Destroy() {
	if g.surf != nil {
		g.FlushDrawing()
		if got := g.surf.Canvas().SaveCount(); got != 2 {
			panic(fmt.Sprintf("gdi: canvas save/restore imbalance on destroy: depth %d", got))
		}
	}
	g.surf = nil
	g.xorSurf = nil
	if g.presenter != nil {
		g.presenter.Destroy()
		g.presenter = nil
	}
	if g.dev != nil {
		g.dev.Close()
		g.dev = nil
	}
	g.mode = gpu.ModeRaster
}

// checkSurface creates the surface on demand and recreates it when the
// host resized the target. The host can resize without notice, so every
// operation revalidates.
func (g *Graphics) checkSurface() {
	if g.surf == nil {
		g.createSurface()
		Logger().Info("gdi: surface created",
			"size", fmt.Sprintf("%dx%d", g.surf.Width(), g.surf.Height()),
			"mode", g.mode)
		return
	}
	if g.width != g.surf.Width() || g.height != g.surf.Height() {
		var snapshot *raster.Image
		if !g.offscreen {
			// On-screen content survives a resize; the host repaints
			// only the newly exposed area.
			g.FlushDrawing()
			snapshot = g.surf.Snapshot()
		}
		Logger().Info("gdi: surface resized",
			"from", fmt.Sprintf("%dx%d", g.surf.Width(), g.surf.Height()),
			"to", fmt.Sprintf("%dx%d", g.width, g.height))
		g.createSurface()
		if snapshot != nil {
			canvas := g.surf.Canvas()
			canvas.DrawImageRect(snapshot,
				geom.NewRect(0, 0, float64(snapshot.Width()), float64(snapshot.Height())),
				geom.NewRect(0, 0, float64(snapshot.Width()), float64(snapshot.Height())),
				raster.SamplingNearest, raster.BlendSrc, 255)
			g.dirty = geom.NewIRect(0, 0, g.surf.Width(), g.surf.Height())
		}
	}
}

func (g *Graphics) createSurface() {
	surf, err := raster.NewSurface(g.width, g.height)
	if err != nil {
		// Guarded by the constructors and SetSize.
		panic(err)
	}
	g.surf = surf
	g.xorSurf = nil
	g.xorDirty = geom.IRect{}

	// Keep the full-surface clip as the single saved state; clip changes
	// restore to it (see SetClipRegion).
	surf.Canvas().Save()
	if g.state.hasClip {
		setCanvasClipRegion(surf.Canvas(), g.state.clip)
	}

	if !g.offscreen && g.presenter != nil {
		if err := g.presenter.Resize(g.width, g.height); err != nil {
			Logger().Warn("gdi: gpu surface creation failed, falling back to raster", "err", err)
			g.presenter.Destroy()
			g.presenter = nil
			if g.dev != nil {
				g.dev.Close()
				g.dev = nil
			}
			g.mode = gpu.ModeRaster
		}
	}
}

// drawCanvas returns the canvas draw operations target: the XOR shadow
// canvas while XOR mode is active, the surface canvas otherwise.
func (g *Graphics) drawCanvas() *raster.Canvas {
	if g.state.xorMode {
		return g.xorCanvas()
	}
	return g.surf.Canvas()
}

// addUpdateRegion accumulates the device-space bounds of a drawing
// operation into the dirty rectangle (and the XOR dirty region while XOR
// mode is active).
func (g *Graphics) addUpdateRegion(r geom.Rect) {
	bounds := geom.NewIRect(0, 0, g.surf.Width(), g.surf.Height())
	ir := r.Round().Intersect(bounds)
	if ir.IsEmpty() {
		return
	}
	g.dirty = g.dirty.Union(ir)
	if g.state.xorMode {
		g.xorDirty = g.xorDirty.Union(ir)
	}
	g.pendingOps++
}

// GetPixel reads one pixel back after forcing pending drawing to
// complete.
func (g *Graphics) GetPixel(x, y int) Color {
	g.checkSurface()
	g.FlushDrawing()
	return g.surf.ReadPixel(x, y)
}

// GetBitmap snapshots a surface rectangle after forcing pending drawing
// to complete. Returns nil when the rectangle is empty after clamping.
func (g *Graphics) GetBitmap(x, y, width, height int) *raster.Image {
	g.checkSurface()
	g.FlushDrawing()
	return g.surf.SnapshotRect(geom.NewIRect(x, y, width, height))
}

// Surface exposes the render surface for host presentation in raster
// mode. Pending drawing should be flushed before reading.
func (g *Graphics) Surface() *raster.Surface {
	g.checkSurface()
	return g.surf
}
