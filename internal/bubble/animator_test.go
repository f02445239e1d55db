package bubble

import (
	"context"
	"errors"
	"testing"
	"time"
)

// manualScheduler holds at most one pending callback until the test fires it.
type manualScheduler struct {
	pending  func()
	requests int
	cancels  int
}

func (s *manualScheduler) RequestFrame(fn func()) func() {
	s.requests++
	s.pending = fn
	return func() {
		s.cancels++
		s.pending = nil
	}
}

func (s *manualScheduler) fire() bool {
	fn := s.pending
	s.pending = nil
	if fn == nil {
		return false
	}
	fn()
	return true
}

func TestAnimatorReschedulesEveryTick(t *testing.T) {
	f := liveField(3, Bounds{Width: 300, Height: 100}, 50)
	var frames []Frame
	sched := &manualScheduler{}
	a := NewAnimator(f, SurfaceFunc(func(fr Frame) { frames = append(frames, fr) }), sched)

	a.Start()
	a.Start()
	if sched.requests != 1 {
		t.Fatalf("requests after Start = %d, want 1", sched.requests)
	}
	for i := 0; i < 5; i++ {
		if !sched.fire() {
			t.Fatalf("tick %d: nothing scheduled", i)
		}
	}
	if len(frames) != 5 {
		t.Fatalf("drew %d frames, want 5", len(frames))
	}
	for i, fr := range frames {
		if fr.Seq != uint64(i+1) {
			t.Errorf("frame %d seq = %d", i, fr.Seq)
		}
		if fr.Phase != PhaseLive || len(fr.Tokens) != 3 {
			t.Errorf("frame %d = %+v", i, fr)
		}
	}
	if a.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", a.Frames())
	}
}

func TestAnimatorStopCancelsPending(t *testing.T) {
	f := liveField(2, Bounds{Width: 300, Height: 100}, 50)
	sched := &manualScheduler{}
	a := NewAnimator(f, nil, sched)
	a.Start()
	sched.fire()

	late := sched.pending
	a.Stop()
	a.Stop()
	if sched.cancels != 1 {
		t.Errorf("cancels = %d, want 1", sched.cancels)
	}
	if sched.pending != nil {
		t.Error("request still pending after Stop")
	}

	before := f.Tokens()
	late()
	after := f.Tokens()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("late callback moved token %d", i)
		}
	}
	if sched.pending != nil {
		t.Error("late callback re-registered itself")
	}

	a.Start()
	if sched.pending != nil {
		t.Error("Start after Stop registered a frame")
	}
}

func TestAnimatorKeepsPollingDegenerateField(t *testing.T) {
	f := NewField(testSkills(2))
	f.GoLive()
	var drawn int
	sched := &manualScheduler{}
	a := NewAnimator(f, SurfaceFunc(func(Frame) { drawn++ }), sched)
	a.Start()
	sched.fire()
	sched.fire()
	if drawn != 0 {
		t.Fatalf("drew %d frames on a zero-sized field", drawn)
	}

	f.Measure(Viewport{Width: 800, Height: 600})
	sched.fire()
	if drawn != 1 {
		t.Fatalf("drew %d frames after resize, want 1", drawn)
	}
}

func TestAnimatorStopsWhenSurfacePanics(t *testing.T) {
	f := liveField(2, Bounds{Width: 300, Height: 100}, 50)
	sched := &manualScheduler{}
	a := NewAnimator(f, SurfaceFunc(func(Frame) { panic("boom") }), sched)
	a.Start()

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("panic did not propagate")
			}
		}()
		sched.fire()
	}()
	if !a.Stopped() {
		t.Error("animator still running after surface panic")
	}
	if sched.pending != nil {
		t.Error("frame re-requested after panic")
	}
}

func TestDriverRunUntilCanceled(t *testing.T) {
	f := NewField(testSkills(4))
	frames := make(chan Frame, 256)
	surface := SurfaceFunc(func(fr Frame) {
		select {
		case frames <- fr:
		default:
		}
	})
	d := NewDriver(f, surface, WithFrameRate(500), WithPlaceholder())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx, Viewport{Width: 1000, Height: 800}) }()

	first := waitFrame(t, frames, func(fr Frame) bool { return true })
	if first.Phase != PhasePlaceholder {
		t.Fatalf("first frame phase = %v, want placeholder", first.Phase)
	}
	waitFrame(t, frames, func(fr Frame) bool { return fr.Phase == PhaseLive && fr.Bounds.Width == 1000 })

	d.Resize(Viewport{Width: 500, Height: 800})
	waitFrame(t, frames, func(fr Frame) bool {
		if fr.Bounds.Width != 500 {
			return false
		}
		for _, tok := range fr.Tokens {
			if tok.X > 500-fr.TokenSize {
				t.Errorf("token %d outside resized field: %v", tok.ID, tok.X)
			}
		}
		return true
	})

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if d.Frames() == 0 {
		t.Error("no frames counted")
	}
}

func TestDriverResizeKeepsLatest(t *testing.T) {
	d := NewDriver(NewField(nil), nil)
	d.Resize(Viewport{Width: 1, Height: 1})
	d.Resize(Viewport{Width: 2, Height: 2})
	d.Resize(Viewport{Width: 3, Height: 3})
	if got := <-d.resize; got.Width != 3 {
		t.Errorf("queued viewport = %+v, want width 3", got)
	}
}

func waitFrame(t *testing.T, frames <-chan Frame, match func(Frame) bool) Frame {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case fr := <-frames:
			if match(fr) {
				return fr
			}
		case <-deadline:
			t.Fatal("timed out waiting for frame")
		}
	}
}
