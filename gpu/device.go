package gpu

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Device is an acquired GPU device together with its presentation queue.
// A Device is either self-created (Vulkan, probed from the registered HAL
// backends) or shared from a host provider (Metal hosts hand their device
// in; the Device then does not own it).
type Device struct {
	mu sync.Mutex

	mode   Mode
	name   string
	maxTex int

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	shared   bool

	health atomic.Int32
}

// halProvider is the shape a host device provider must expose alongside
// gpucontext.DeviceProvider for its raw HAL handles to be usable here.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Acquire obtains a GPU device. If provider is non-nil its shared device
// is adopted; otherwise the Vulkan backend is probed and an adapter
// opened. Adapters denied by caps are skipped. Any failure returns an
// error; the caller is expected to fall back to raster surfaces.
func Acquire(provider gpucontext.DeviceProvider, caps *Caps) (*Device, error) {
	if caps != nil && caps.PreferRaster {
		return nil, fmt.Errorf("gpu: raster mode forced by capabilities")
	}
	if provider != nil {
		return adoptShared(provider, caps)
	}
	return openVulkan(caps)
}

// adoptShared wraps a host-provided device. The host must expose its HAL
// handles; a provider without them cannot present textures.
func adoptShared(provider gpucontext.DeviceProvider, caps *Caps) (*Device, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("gpu: provider does not expose HAL handles")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("gpu: provider HalQueue is not hal.Queue")
	}
	mode := ModeVulkan
	if runtime.GOOS == "darwin" {
		mode = ModeMetal
	}
	return &Device{
		mode:   mode,
		name:   "shared",
		maxTex: caps.TextureLimit(int(gputypes.DefaultLimits().MaxTextureDimension2D)),
		device: device,
		queue:  queue,
		shared: true,
	}, nil
}

// openVulkan probes the registered Vulkan backend and opens the best
// allowed adapter, preferring discrete over integrated GPUs.
func openVulkan(caps *Caps) (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("gpu: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("gpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: no adapters found")
	}

	var selected *hal.ExposedAdapter
	var fallback *hal.ExposedAdapter
	for i := range adapters {
		if !caps.AdapterAllowed(adapters[i].Info.Name) {
			continue
		}
		switch adapters[i].Info.DeviceType {
		case gputypes.DeviceTypeDiscreteGPU:
			selected = &adapters[i]
		case gputypes.DeviceTypeIntegratedGPU:
			if selected == nil {
				selected = &adapters[i]
			}
		default:
			if fallback == nil {
				fallback = &adapters[i]
			}
		}
		if selected != nil && selected.Info.DeviceType == gputypes.DeviceTypeDiscreteGPU {
			break
		}
	}
	if selected == nil {
		selected = fallback
	}
	if selected == nil {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: all adapters denied by capabilities")
	}

	limits := gputypes.DefaultLimits()
	openDev, err := selected.Adapter.Open(gputypes.Features(0), limits)
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: open adapter %q: %w", selected.Info.Name, err)
	}
	return &Device{
		mode:     ModeVulkan,
		name:     selected.Info.Name,
		maxTex:   caps.TextureLimit(int(limits.MaxTextureDimension2D)),
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
	}, nil
}

// Mode returns the presentation mode of the device.
func (d *Device) Mode() Mode { return d.mode }

// Name returns the adapter name for logging.
func (d *Device) Name() string { return d.name }

// MaxTextureSize returns the effective texture dimension limit.
func (d *Device) MaxTextureSize() int { return d.maxTex }

// Health returns the recorded device health.
func (d *Device) Health() Health { return Health(d.health.Load()) }

// SetHealth records a health transition. OK never overwrites a fatal
// state.
func (d *Device) SetHealth(h Health) {
	if h == HealthOK {
		return
	}
	d.health.CompareAndSwap(int32(HealthOK), int32(h))
}

// HALDevice returns the underlying HAL device.
func (d *Device) HALDevice() hal.Device { return d.device }

// HALQueue returns the underlying HAL queue.
func (d *Device) HALQueue() hal.Queue { return d.queue }

// Close releases the device and instance unless they are shared with a
// host.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.shared {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.queue = nil
	d.instance = nil
}
