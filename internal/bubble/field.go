// Package bubble animates the floating skills strip: a set of labeled
// tokens bouncing inside a rectangle sized from the viewport.
package bubble

import (
	"math"
	"math/rand/v2"
)

const (
	// FieldHeightRatio is the share of the viewport height given to the field.
	FieldHeightRatio = 0.15

	tokenSizeRatio = 0.4
	MinTokenSize   = 48.0
	MaxTokenSize   = 80.0
)

// Skill is one entry of the static skills list.
type Skill struct {
	Label string
	Glyph string
}

// Token is the animated unit for a single skill.
type Token struct {
	ID     int
	Label  string
	Glyph  string
	X, Y   float64
	VX, VY float64
}

type Bounds struct {
	Width  float64
	Height float64
}

// Degenerate reports whether the bounds cannot host an animation.
func (b Bounds) Degenerate() bool {
	return !(b.Width > 0 && b.Height > 0)
}

// Viewport is the measured window size in pixels.
type Viewport struct {
	Width  int
	Height int
}

type Phase int

const (
	PhasePlaceholder Phase = iota
	PhaseLive
)

func (p Phase) String() string {
	switch p {
	case PhasePlaceholder:
		return "placeholder"
	case PhaseLive:
		return "live"
	}
	return "unknown"
}

// BoundsFor derives the field rectangle from the viewport.
func BoundsFor(vp Viewport) Bounds {
	return Bounds{
		Width:  float64(vp.Width),
		Height: float64(vp.Height) * FieldHeightRatio,
	}
}

// TokenSizeFor returns the edge length shared by every token: 40% of the
// smaller of viewport width and field height, kept within [48, 80].
func TokenSizeFor(vp Viewport) float64 {
	b := BoundsFor(vp)
	size := math.Min(b.Width, b.Height) * tokenSizeRatio
	return math.Min(math.Max(size, MinTokenSize), MaxTokenSize)
}

type Option func(*Field)

// WithRand replaces the uniform [0,1) source used for initial velocities.
func WithRand(fn func() float64) Option {
	return func(f *Field) {
		if fn != nil {
			f.rand = fn
		}
	}
}

// Field owns the tokens and the rectangle they move in. It is not safe for
// concurrent use; a Driver serializes every access on one goroutine.
type Field struct {
	skills    []Skill
	tokens    []Token
	bounds    Bounds
	tokenSize float64
	phase     Phase
	seeded    bool
	rand      func() float64
}

// NewField builds a field in the placeholder phase: every token at (0,0)
// with zero velocity so the first render is the same everywhere.
func NewField(skills []Skill, opts ...Option) *Field {
	f := &Field{
		skills: append([]Skill(nil), skills...),
		rand:   rand.Float64,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.tokens = make([]Token, len(f.skills))
	for i, s := range f.skills {
		f.tokens[i] = Token{ID: i, Label: s.Label, Glyph: s.Glyph}
	}
	return f
}

// Measure applies a viewport reading. Bounds and token size always follow
// the viewport; tokens are seeded only the first time the field is live
// with usable bounds. Later measurements leave positions and velocities
// alone and the next Step clamps them into the new rectangle.
func (f *Field) Measure(vp Viewport) {
	if vp.Width < 0 {
		vp.Width = 0
	}
	if vp.Height < 0 {
		vp.Height = 0
	}
	f.bounds = BoundsFor(vp)
	f.tokenSize = TokenSizeFor(vp)
	f.maybeSeed()
}

// GoLive switches the field out of the placeholder phase. It is meant to
// be called once by the host; repeated calls do nothing.
func (f *Field) GoLive() {
	if f.phase == PhaseLive {
		return
	}
	f.phase = PhaseLive
	f.maybeSeed()
}

func (f *Field) maybeSeed() {
	if f.seeded || f.phase != PhaseLive || f.bounds.Degenerate() {
		return
	}
	n := float64(len(f.tokens))
	for i := range f.tokens {
		t := &f.tokens[i]
		t.X = float64(i) * f.bounds.Width / n
		t.Y = f.bounds.Height / 2
		t.VX = 1 - f.rand()*2
		t.VY = 1 - f.rand()*2
	}
	f.seeded = true
}

// Step advances every token by one frame and reports whether anything ran.
// Tokens never look at each other, so the pass is order independent.
func (f *Field) Step() bool {
	if f.phase != PhaseLive || f.bounds.Degenerate() {
		return false
	}
	maxX := math.Max(0, f.bounds.Width-f.tokenSize)
	maxY := math.Max(0, f.bounds.Height-f.tokenSize)
	for i := range f.tokens {
		stepToken(&f.tokens[i], maxX, maxY)
	}
	return true
}

// stepToken bounces on the tentative position, then clamps. A token resting
// on a wall with outward velocity flips again every frame until it points
// back inside.
func stepToken(t *Token, maxX, maxY float64) {
	newX := t.X + t.VX
	newY := t.Y + t.VY
	if newX <= 0 || newX >= maxX {
		t.VX = -t.VX
	}
	if newY <= 0 || newY >= maxY {
		t.VY = -t.VY
	}
	t.X = clamp(newX, 0, maxX)
	t.Y = clamp(newY, 0, maxY)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (f *Field) Bounds() Bounds { return f.bounds }
func (f *Field) TokenSize() float64 { return f.tokenSize }
func (f *Field) Phase() Phase { return f.phase }
func (f *Field) Seeded() bool { return f.seeded }

// Tokens returns a copy of the current token state.
func (f *Field) Tokens() []Token {
	return append([]Token(nil), f.tokens...)
}
