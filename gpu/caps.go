package gpu

import "strings"

// Caps is the capability service consulted before acquiring a device.
// It is injected by the host rather than read from process globals, so
// tests and embedders can force raster mode or deny specific adapters.
type Caps struct {
	// PreferRaster skips device acquisition entirely.
	PreferRaster bool

	// DeniedAdapters lists adapter name fragments that must not be
	// used, matched case-insensitively. Denylisted adapters are skipped
	// during enumeration; if every adapter is denied the acquisition
	// falls back to raster.
	DeniedAdapters []string

	// MaxTextureSize caps presented texture dimensions. Zero means the
	// device limit applies unmodified.
	MaxTextureSize int
}

// DefaultCaps allows any adapter.
func DefaultCaps() *Caps { return &Caps{} }

// AdapterAllowed reports whether an adapter with the given name may be
// used.
func (c *Caps) AdapterAllowed(name string) bool {
	if c == nil {
		return true
	}
	lower := strings.ToLower(name)
	for _, deny := range c.DeniedAdapters {
		if deny == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(deny)) {
			return false
		}
	}
	return true
}

// TextureLimit resolves the effective texture size cap given the device
// limit.
func (c *Caps) TextureLimit(deviceLimit int) int {
	if c == nil || c.MaxTextureSize <= 0 {
		return deviceLimit
	}
	if deviceLimit > 0 && deviceLimit < c.MaxTextureSize {
		return deviceLimit
	}
	return c.MaxTextureSize
}
