package gdi

import (
	"fmt"
	"io"
)

// DumpState writes a human-readable snapshot of the backend state for
// debugging. It only reads state and never flushes or draws, so it can
// be called mid-frame without disturbing batching.
func DumpState(w io.Writer, g *Graphics) error {
	if g == nil {
		_, err := fmt.Fprintln(w, "graphics: <nil>")
		return err
	}
	line := func(format string, args ...any) error {
		_, err := fmt.Fprintf(w, format+"\n", args...)
		return err
	}
	if err := line("graphics %dx%d mode=%s offscreen=%v", g.width, g.height, g.mode, g.offscreen); err != nil {
		return err
	}
	lineColor := "none"
	if g.state.hasLine {
		lineColor = fmt.Sprintf("#%02x%02x%02x%02x",
			g.state.lineColor.R, g.state.lineColor.G, g.state.lineColor.B, g.state.lineColor.A)
	}
	fillColor := "none"
	if g.state.hasFill {
		fillColor = fmt.Sprintf("#%02x%02x%02x%02x",
			g.state.fillColor.R, g.state.fillColor.G, g.state.fillColor.B, g.state.fillColor.A)
	}
	if err := line("  line=%s fill=%s aa=%v xor=%v", lineColor, fillColor, g.state.antiAlias, g.state.xorMode); err != nil {
		return err
	}
	clip := "none"
	if g.state.hasClip {
		b := g.state.clip.Bounds()
		clip = fmt.Sprintf("%d,%d %dx%d", b.MinX, b.MinY, b.Width(), b.Height())
	}
	if err := line("  clip=%s", clip); err != nil {
		return err
	}
	if err := line("  batch=%d pendingOps=%d dirty=%d,%d %dx%d",
		len(g.batch.polygons), g.pendingOps,
		g.dirty.MinX, g.dirty.MinY, g.dirty.Width(), g.dirty.Height()); err != nil {
		return err
	}
	if g.dev != nil {
		if err := line("  device=%s health=%s maxTexture=%d",
			g.dev.Name(), g.dev.Health(), g.dev.MaxTextureSize()); err != nil {
			return err
		}
	}
	stats := g.imageCache.Stats()
	return line("  cache: entries=%d bytes=%d/%d hits=%d misses=%d evictions=%d",
		stats.Len, stats.Bytes, stats.Budget,
		stats.Hits, stats.Misses, stats.Evictions)
}
