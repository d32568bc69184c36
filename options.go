package gdi

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/gdi/cache"
	"github.com/gogpu/gdi/gpu"
)

// FlushScheduler is the window system's deferral hook for surface
// presentation. When drawing happens inside the event loop the flush is
// posted as an idle callback so one presentation amortizes many small
// draws; outside the loop (headless, tests) flushing is immediate.
type FlushScheduler interface {
	// InEventLoop reports whether the caller is currently inside the
	// host's event dispatch.
	InEventLoop() bool

	// ScheduleIdle arranges for flush to run when the host goes idle.
	// It is only consulted while InEventLoop returns true.
	ScheduleIdle(flush func())
}

// Option configures a Graphics during creation.
//
// Example:
//
//	g, err := gdi.New(800, 600, gdi.WithImageCache(sharedCache))
type Option func(*options)

// options holds the tunables and injected services of one backend
// instance. The numeric thresholds are empirically tuned defaults; they
// are workload dependent, so they stay configurable.
type options struct {
	flushAfterOps       int
	gpuDownscaleRatio   float64
	oversizeRatio       float64
	cacheBudgetFraction float64

	imageCache *cache.ImageCache
	caps       *gpu.Caps
	provider   gpucontext.DeviceProvider
	scheduler  FlushScheduler
	onFatal    func(gpu.Health)
}

func defaultOptions() options {
	return options{
		flushAfterOps:       1000,
		gpuDownscaleRatio:   10,
		oversizeRatio:       4,
		cacheBudgetFraction: 0.7,
	}
}

// WithFlushAfterOps sets how many queued drawing operations force an
// unconditional flush, bounding memory growth from command queuing.
func WithFlushAfterOps(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.flushAfterOps = n
		}
	}
}

// WithGPUDownscaleRatio sets the minimum source-to-target area ratio at
// which scaled images are cached even on GPU surfaces, where shader
// scaling is otherwise cheap enough to skip the cache.
func WithGPUDownscaleRatio(ratio float64) Option {
	return func(o *options) {
		if ratio > 0 {
			o.gpuDownscaleRatio = ratio
		}
	}
}

// WithOversizeRatio sets the combined upscale/oversize ratio above which
// an image larger than the visible clip bounds is not cached.
func WithOversizeRatio(ratio float64) Option {
	return func(o *options) {
		if ratio > 0 {
			o.oversizeRatio = ratio
		}
	}
}

// WithCacheBudgetFraction sets the fraction of the image cache budget a
// single cached image may occupy.
func WithCacheBudgetFraction(f float64) Option {
	return func(o *options) {
		if f > 0 && f <= 1 {
			o.cacheBudgetFraction = f
		}
	}
}

// WithImageCache injects a shared image result cache. Instances created
// without one get a private cache with the default budget.
func WithImageCache(c *cache.ImageCache) Option {
	return func(o *options) { o.imageCache = c }
}

// WithCapabilities injects the GPU capability service consulted before
// device acquisition.
func WithCapabilities(caps *gpu.Caps) Option {
	return func(o *options) { o.caps = caps }
}

// WithDeviceProvider injects a host-owned GPU device. The backend
// receives the device from the host rather than creating its own.
func WithDeviceProvider(p gpucontext.DeviceProvider) Option {
	return func(o *options) { o.provider = p }
}

// WithFlushScheduler injects the host's idle-callback scheduler.
func WithFlushScheduler(s FlushScheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithFatalHandler overrides the handler invoked on unrecoverable device
// states. The default logs the state and terminates the process, since
// continuing risks silently corrupted rendering.
func WithFatalHandler(fn func(gpu.Health)) Option {
	return func(o *options) { o.onFatal = fn }
}
