package bubble

// Frame is what a Surface receives after each update. Tokens is a copy and
// may be retained.
type Frame struct {
	Seq       uint64
	Phase     Phase
	Bounds    Bounds
	TokenSize float64
	Tokens    []Token
}

// Snapshot captures the field without advancing it.
func (f *Field) Snapshot() Frame {
	return Frame{
		Phase:     f.phase,
		Bounds:    f.bounds,
		TokenSize: f.tokenSize,
		Tokens:    f.Tokens(),
	}
}

// Surface draws frames. Draw is called on the goroutine that owns the field.
type Surface interface {
	Draw(Frame)
}

// SurfaceFunc adapts a plain function to Surface.
type SurfaceFunc func(Frame)

func (fn SurfaceFunc) Draw(fr Frame) { fn(fr) }

// Scheduler runs fn once, before the next repaint. It is one-shot: a
// callback that wants another frame has to ask again. The returned cancel
// drops the request if it has not fired yet.
type Scheduler interface {
	RequestFrame(fn func()) (cancel func())
}

// Animator keeps a field moving by re-requesting a frame at the end of
// every tick until Stop is called.
type Animator struct {
	field   *Field
	surface Surface
	sched   Scheduler

	seq     uint64
	running bool
	stopped bool
	cancel  func()
}

func NewAnimator(field *Field, surface Surface, sched Scheduler) *Animator {
	if surface == nil {
		surface = SurfaceFunc(func(Frame) {})
	}
	return &Animator{field: field, surface: surface, sched: sched}
}

// Start registers the first tick. It does nothing once stopped or while
// already running.
func (a *Animator) Start() {
	if a.stopped || a.running {
		return
	}
	a.running = true
	a.cancel = a.sched.RequestFrame(a.tick)
}

// Stop cancels the pending frame. A callback that still fires afterwards
// returns without touching the field.
func (a *Animator) Stop() {
	if a.stopped {
		return
	}
	a.stopped = true
	a.running = false
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *Animator) Stopped() bool { return a.stopped }

// Frames reports how many frames were drawn.
func (a *Animator) Frames() uint64 { return a.seq }

func (a *Animator) tick() {
	if a.stopped {
		return
	}
	a.cancel = nil
	ok := false
	defer func() {
		if !ok {
			a.Stop()
		}
	}()

	if a.field.Step() {
		a.seq++
		fr := a.field.Snapshot()
		fr.Seq = a.seq
		a.surface.Draw(fr)
	}
	ok = true

	if !a.stopped {
		a.cancel = a.sched.RequestFrame(a.tick)
	}
}
