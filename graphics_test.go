package gdi

import (
	"strings"
	"testing"

	"github.com/gogpu/gdi/gpu"
	"github.com/gogpu/gdi/raster"
)

func newTestGraphics(t *testing.T, w, h int, opts ...Option) *Graphics {
	t.Helper()
	g, err := NewOffscreen(w, h, opts...)
	if err != nil {
		t.Fatalf("NewOffscreen(%d, %d) = %v", w, h, err)
	}
	t.Cleanup(g.Destroy)
	return g
}

func TestFillRectReadback(t *testing.T) {
	g := newTestGraphics(t, 30, 30)
	g.SetFillColor(raster.RGB(255, 0, 0))
	g.DrawRect(0, 0, 10, 10)

	if got := g.GetPixel(5, 5); got != raster.RGB(255, 0, 0) {
		t.Errorf("GetPixel(5, 5) = %+v, want opaque red", got)
	}
	if got := g.GetPixel(15, 15); got != (Color{}) {
		t.Errorf("GetPixel(15, 15) = %+v, want untouched (zero)", got)
	}
}

func TestStrokeOnlyRectLeavesInterior(t *testing.T) {
	g := newTestGraphics(t, 30, 30)
	g.SetLineColor(raster.RGB(0, 0, 255))
	g.DrawRect(5, 5, 20, 20)

	if got := g.GetPixel(15, 15); got != (Color{}) {
		t.Errorf("interior pixel = %+v, want untouched", got)
	}
	edge := g.GetPixel(5, 15)
	if edge.A == 0 {
		t.Error("outline pixel untouched, want stroked")
	}
}

func TestDrawRectRequiresColor(t *testing.T) {
	g := newTestGraphics(t, 10, 10)
	// Neither line nor fill set; must not create pending work.
	g.DrawRect(0, 0, 10, 10)
	if g.pendingOps != 0 {
		t.Errorf("pendingOps = %d after colorless draw, want 0", g.pendingOps)
	}
}

func TestResizePreservesContent(t *testing.T) {
	g, err := New(20, 20, WithCapabilities(&gpu.Caps{PreferRaster: true}))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	defer g.Destroy()

	g.SetFillColor(raster.RGB(0, 128, 0))
	g.DrawRect(0, 0, 20, 20)
	g.Flush()

	g.SetSize(40, 40)
	if got := g.GetPixel(5, 5); got != raster.RGB(0, 128, 0) {
		t.Errorf("pixel after grow = %+v, want preserved green", got)
	}
	if g.Surface().Width() != 40 {
		t.Errorf("surface width = %d after SetSize(40, 40)", g.Surface().Width())
	}
}

func TestCopyArea(t *testing.T) {
	g := newTestGraphics(t, 30, 30)
	g.SetFillColor(raster.RGB(255, 0, 0))
	g.DrawRect(0, 0, 5, 5)

	g.CopyArea(20, 20, 0, 0, 5, 5)
	if got := g.GetPixel(22, 22); got != raster.RGB(255, 0, 0) {
		t.Errorf("copied pixel = %+v, want red", got)
	}
	if got := g.GetPixel(2, 2); got != raster.RGB(255, 0, 0) {
		t.Errorf("source pixel = %+v, want still red", got)
	}
}

func TestCopyBitsBetweenSurfaces(t *testing.T) {
	src := newTestGraphics(t, 10, 10)
	src.SetFillColor(raster.RGB(0, 0, 255))
	src.DrawRect(0, 0, 10, 10)

	dst := newTestGraphics(t, 20, 20)
	dst.CopyBits(TwoRect{SrcW: 10, SrcH: 10, DstX: 5, DstY: 5, DstW: 10, DstH: 10}, src)
	if got := dst.GetPixel(10, 10); got != raster.RGB(0, 0, 255) {
		t.Errorf("copied pixel = %+v, want blue", got)
	}
	if got := dst.GetPixel(2, 2); got != (Color{}) {
		t.Errorf("outside pixel = %+v, want untouched", got)
	}
}

func TestGetBitmapDimensions(t *testing.T) {
	g := newTestGraphics(t, 30, 30)
	img := g.GetBitmap(5, 5, 10, 12)
	if img == nil {
		t.Fatal("GetBitmap returned nil")
	}
	if img.Width() != 10 || img.Height() != 12 {
		t.Errorf("snapshot size = %dx%d, want 10x12", img.Width(), img.Height())
	}
}

func TestDrawPixelColorReplaces(t *testing.T) {
	g := newTestGraphics(t, 10, 10)
	g.SetFillColor(raster.RGB(255, 0, 0))
	g.DrawRect(0, 0, 10, 10)
	// Semi-transparent pixel write must replace, not blend.
	g.DrawPixelColor(3, 3, raster.RGBA(0, 0, 255, 128))
	got := g.GetPixel(3, 3)
	if got.B != 255 || got.A != 128 {
		t.Errorf("pixel = %+v, want replaced with (0,0,255,128)", got)
	}
}

func TestDumpState(t *testing.T) {
	g := newTestGraphics(t, 25, 17)
	g.SetFillColor(raster.RGB(1, 2, 3))
	var sb strings.Builder
	if err := DumpState(&sb, g); err != nil {
		t.Fatalf("DumpState() = %v", err)
	}
	out := sb.String()
	for _, want := range []string{"25x17", "mode=raster", "fill=#010203ff", "cache:"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestFlushAfterOpsSubmitsWithoutBatchFlush(t *testing.T) {
	g := newTestGraphics(t, 10, 10, WithFlushAfterOps(3))
	g.SetFillColor(raster.RGB(255, 255, 255))
	for i := 0; i < 5; i++ {
		g.DrawRect(0, 0, 2, 2)
	}
	if g.pendingOps > 3 {
		t.Errorf("pendingOps = %d, want bounded by threshold reset", g.pendingOps)
	}
}
