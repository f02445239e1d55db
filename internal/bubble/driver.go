package bubble

import (
	"context"
	"log"
	"time"
)

// DefaultFrameRate approximates a display refresh.
const DefaultFrameRate = 60

// frameClock is the Scheduler a Driver hands to its Animator. Requests are
// parked until the driver goroutine sees the next tick, so callbacks always
// run on that goroutine.
type frameClock struct {
	pending func()
	gen     uint64
}

func (c *frameClock) RequestFrame(fn func()) func() {
	c.gen++
	gen := c.gen
	c.pending = fn
	return func() {
		if c.gen == gen {
			c.pending = nil
		}
	}
}

func (c *frameClock) fire() {
	fn := c.pending
	c.pending = nil
	if fn != nil {
		fn()
	}
}

type DriverOption func(*Driver)

// WithFrameRate sets the tick rate in frames per second.
func WithFrameRate(hz int) DriverOption {
	return func(d *Driver) {
		if hz > 0 {
			d.interval = time.Second / time.Duration(hz)
		}
	}
}

func WithLogger(l *log.Logger) DriverOption {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// WithPlaceholder draws the placeholder frame once on mount, before the
// field goes live.
func WithPlaceholder() DriverOption {
	return func(d *Driver) { d.placeholder = true }
}

// Driver hosts one field on one goroutine. Resize events and frame ticks
// are handled strictly one after the other, so the field needs no lock.
type Driver struct {
	field   *Field
	surface Surface

	interval    time.Duration
	placeholder bool
	log         *log.Logger

	resize chan Viewport
	anim   *Animator
}

func NewDriver(field *Field, surface Surface, opts ...DriverOption) *Driver {
	if surface == nil {
		surface = SurfaceFunc(func(Frame) {})
	}
	d := &Driver{
		field:    field,
		surface:  surface,
		interval: time.Second / DefaultFrameRate,
		log:      log.Default(),
		resize:   make(chan Viewport, 1),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Resize queues a viewport change for the driver goroutine. It never
// blocks; when a change is already queued the newer one replaces it.
func (d *Driver) Resize(vp Viewport) {
	for {
		select {
		case d.resize <- vp:
			return
		default:
		}
		select {
		case <-d.resize:
		default:
		}
	}
}

// Frames reports how many frames were drawn by the last Run.
func (d *Driver) Frames() uint64 {
	if d.anim == nil {
		return 0
	}
	return d.anim.Frames()
}

// Run mounts the field with the initial viewport and animates it until ctx
// is done. The animator and ticker are released on every return path.
func (d *Driver) Run(ctx context.Context, initial Viewport) error {
	if d.placeholder {
		d.surface.Draw(d.field.Snapshot())
	}

	d.field.Measure(initial)
	d.field.GoLive()
	if d.field.Bounds().Degenerate() {
		d.log.Printf("bubble: degenerate viewport %dx%d, waiting for resize", initial.Width, initial.Height)
	}

	clock := &frameClock{}
	d.anim = NewAnimator(d.field, d.surface, clock)
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	defer d.anim.Stop()

	d.anim.Start()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case vp := <-d.resize:
			d.field.Measure(vp)
		case <-ticker.C:
			clock.fire()
			if d.anim.Stopped() {
				return nil
			}
		}
	}
}
