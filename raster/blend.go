package raster

// BlendMode is a compositing operator over premultiplied RGBA8 values.
//
// The set is the operators the backend composes with: plain source
// replacement, the default source-over, the "knock out" operators used
// for mask blending, multiply, and difference (used for invert effects).
type BlendMode uint8

const (
	// BlendSrcOver composites source over destination (default).
	BlendSrcOver BlendMode = iota
	// BlendSrc replaces the destination with the source.
	BlendSrc
	// BlendDstOut keeps destination where the source is transparent.
	BlendDstOut
	// BlendDstIn keeps destination where the source is opaque.
	BlendDstIn
	// BlendSrcOut keeps source where the destination is transparent.
	BlendSrcOut
	// BlendMultiply multiplies source and destination channels.
	BlendMultiply
	// BlendDifference takes the per-channel absolute difference.
	BlendDifference
)

// blendFunc combines premultiplied source and destination pixels.
type blendFunc func(sr, sg, sb, sa, dr, dg, db, da uint8) (r, g, b, a uint8)

func blendFuncFor(mode BlendMode) blendFunc {
	switch mode {
	case BlendSrc:
		return blendSrc
	case BlendDstOut:
		return blendDstOut
	case BlendDstIn:
		return blendDstIn
	case BlendSrcOut:
		return blendSrcOut
	case BlendMultiply:
		return blendMultiplyF
	case BlendDifference:
		return blendDifferenceF
	default:
		return blendSrcOver
	}
}

func blendSrc(sr, sg, sb, sa, _, _, _, _ uint8) (uint8, uint8, uint8, uint8) {
	return sr, sg, sb, sa
}

// S + D*(1-Sa)
func blendSrcOver(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - sa
	return addClamp(sr, mulDiv255(dr, inv)),
		addClamp(sg, mulDiv255(dg, inv)),
		addClamp(sb, mulDiv255(db, inv)),
		addClamp(sa, mulDiv255(da, inv))
}

// D*(1-Sa)
func blendDstOut(_, _, _, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - sa
	return mulDiv255(dr, inv), mulDiv255(dg, inv), mulDiv255(db, inv), mulDiv255(da, inv)
}

// S*(1-Da)
func blendSrcOut(sr, sg, sb, sa, _, _, _, da uint8) (uint8, uint8, uint8, uint8) {
	inv := 255 - da
	return mulDiv255(sr, inv), mulDiv255(sg, inv), mulDiv255(sb, inv), mulDiv255(sa, inv)
}

// D*Sa
func blendDstIn(_, _, _, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
}

// S*D + S*(1-Da) + D*(1-Sa), per channel on premultiplied values.
func blendMultiplyF(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	invSa := 255 - sa
	invDa := 255 - da
	ch := func(s, d uint8) uint8 {
		return addClamp(mulDiv255(s, d), addClamp(mulDiv255(s, invDa), mulDiv255(d, invSa)))
	}
	return ch(sr, dr), ch(sg, dg), ch(sb, db),
		addClamp(sa, mulDiv255(da, invSa))
}

// S + D - 2*min(S*Da, D*Sa) per color channel (premultiplied difference);
// alpha composes as source-over.
func blendDifferenceF(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	ch := func(s, d uint8) uint8 {
		mn := minU8(mulDiv255(s, da), mulDiv255(d, sa))
		out := int(s) + int(d) - 2*int(mn)
		if out < 0 {
			out = 0
		}
		if out > 255 {
			out = 255
		}
		return uint8(out)
	}
	return ch(sr, dr), ch(sg, dg), ch(sb, db),
		addClamp(sa, mulDiv255(da, 255-sa))
}

// mulDiv255 multiplies two bytes with rounding division by 255.
func mulDiv255(a, b uint8) uint8 {
	return uint8((uint32(a)*uint32(b) + 127) / 255)
}

func addClamp(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func minU8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}
