package live

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Zachkp/portfolio/internal/bubble"
)

const (
	TypeViewport = "viewport"
	TypeHello    = "hello"
	TypeFrame    = "frame"
)

//go:embed viewport.schema.json
var viewportSchemaJSON string

var viewportSchema = jsonschema.MustCompileString("viewport.schema.json", viewportSchemaJSON)

// ViewportMsg is the only message a browser sends: once on mount, then on
// every window resize.
type ViewportMsg struct {
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type HelloMsg struct {
	Type    string `json:"type"`
	Session string `json:"session"`
	Hz      int    `json:"hz"`
	Tokens  int    `json:"tokens"`
}

// FrameMsg carries one animation frame. Tokens are [id, x, y] triples.
type FrameMsg struct {
	Type   string       `json:"type"`
	Seq    uint64       `json:"seq"`
	Size   float64      `json:"size"`
	Bounds [2]float64   `json:"bounds"`
	Tokens [][3]float64 `json:"tokens"`
}

// ParseViewport validates a client message and returns the viewport in it.
func ParseViewport(raw []byte) (bubble.Viewport, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return bubble.Viewport{}, fmt.Errorf("viewport message: %w", err)
	}
	if err := viewportSchema.Validate(doc); err != nil {
		return bubble.Viewport{}, fmt.Errorf("viewport message: %w", err)
	}
	var msg ViewportMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		return bubble.Viewport{}, fmt.Errorf("viewport message: %w", err)
	}
	return bubble.Viewport{Width: msg.Width, Height: msg.Height}, nil
}

// EncodeFrame renders a frame for the wire, rounding positions to 1/100 px.
func EncodeFrame(fr bubble.Frame) ([]byte, error) {
	msg := FrameMsg{
		Type:   TypeFrame,
		Seq:    fr.Seq,
		Size:   round2(fr.TokenSize),
		Bounds: [2]float64{round2(fr.Bounds.Width), round2(fr.Bounds.Height)},
		Tokens: make([][3]float64, len(fr.Tokens)),
	}
	for i, t := range fr.Tokens {
		msg.Tokens[i] = [3]float64{float64(t.ID), round2(t.X), round2(t.Y)}
	}
	return json.Marshal(msg)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
