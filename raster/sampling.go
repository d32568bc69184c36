package raster

import "golang.org/x/image/draw"

// Sampling selects the resampling filter for image draws.
type Sampling uint8

const (
	// SamplingNearest picks the nearest source pixel.
	SamplingNearest Sampling = iota
	// SamplingBilinear interpolates the four surrounding pixels.
	SamplingBilinear
	// SamplingHighQuality uses a Catmull-Rom kernel, for severe scaling.
	SamplingHighQuality
)

// scaler maps the sampling mode onto an x/image kernel.
func (s Sampling) scaler() draw.Scaler {
	switch s {
	case SamplingNearest:
		return draw.NearestNeighbor
	case SamplingHighQuality:
		return draw.CatmullRom
	default:
		return draw.BiLinear
	}
}
