// Package gpu acquires and tracks the GPU device used for accelerated
// surfaces. Rendering itself happens on CPU surfaces; this package owns
// device probing, capability gating and texture presentation, and reports
// device health so callers can react to lost or exhausted devices.
package gpu

// Mode identifies how surfaces are backed. It is a closed set: exactly
// one mode is active per device acquisition, and every failure path
// resolves to ModeRaster.
type Mode uint8

const (
	// ModeRaster renders and presents entirely on the CPU.
	ModeRaster Mode = iota
	// ModeVulkan presents through a wgpu/hal Vulkan device.
	ModeVulkan
	// ModeMetal presents through a host-provided Metal device.
	ModeMetal
)

// String returns the mode name as used in logs and state dumps.
func (m Mode) String() string {
	switch m {
	case ModeVulkan:
		return "vulkan"
	case ModeMetal:
		return "metal"
	default:
		return "raster"
	}
}

// Accelerated reports whether the mode uses a GPU device.
func (m Mode) Accelerated() bool { return m != ModeRaster }

// Health describes the liveness of an acquired device.
type Health uint8

const (
	// HealthOK means the device is usable.
	HealthOK Health = iota
	// HealthOutOfMemory means the device failed an allocation. The
	// device must not be used further.
	HealthOutOfMemory
	// HealthAbandoned means the device context was lost. The device
	// must not be used further.
	HealthAbandoned
)

// String returns the health name as used in logs.
func (h Health) String() string {
	switch h {
	case HealthOutOfMemory:
		return "out-of-memory"
	case HealthAbandoned:
		return "abandoned"
	default:
		return "ok"
	}
}

// Fatal reports whether the health state is unrecoverable.
func (h Health) Fatal() bool { return h != HealthOK }
