// Package termview draws a bubble field on a terminal. The field is laid
// out in pixels; one cell stands for CellWidth x CellHeight of them.
package termview

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/portfolio/internal/bubble"
)

const (
	CellWidth  = 8
	CellHeight = 16
)

var palette = []tcell.Color{
	tcell.ColorLightPink,
	tcell.ColorKhaki,
	tcell.ColorPaleGreen,
	tcell.ColorLightSkyBlue,
	tcell.ColorPlum,
}

// Viewport converts a terminal size in cells to pixels.
func Viewport(cols, rows int) bubble.Viewport {
	return bubble.Viewport{Width: cols * CellWidth, Height: rows * CellHeight}
}

// Surface renders frames on a tcell screen. Draw must be called from the
// goroutine that runs the driver.
type Surface struct {
	screen tcell.Screen
	border tcell.Style
}

func NewSurface(screen tcell.Screen) *Surface {
	return &Surface{
		screen: screen,
		border: tcell.StyleDefault.Foreground(tcell.ColorGray),
	}
}

func (s *Surface) Draw(fr bubble.Frame) {
	s.screen.Clear()
	cols, _ := s.screen.Size()
	fieldRows := int(math.Ceil(fr.Bounds.Height / CellHeight))

	for x := 0; fieldRows > 0 && x < cols; x++ {
		s.screen.SetContent(x, fieldRows, '─', nil, s.border)
	}

	if fr.Phase == bubble.PhasePlaceholder {
		s.drawGrid(fr, cols)
	} else {
		for _, t := range fr.Tokens {
			s.drawToken(t, TokenCells(fr.TokenSize))
		}
	}
	s.screen.Show()
}

// drawGrid lays tokens out left to right, wrapping at the screen edge.
func (s *Surface) drawGrid(fr bubble.Frame, cols int) {
	x, y := 0, 0
	for _, t := range fr.Tokens {
		w := len([]rune(t.Label)) + 2
		if x > 0 && x+w > cols {
			x, y = 0, y+1
		}
		s.drawLabel(x, y, "("+t.Label+")", styleFor(t.ID))
		x += w + 1
	}
}

func (s *Surface) drawToken(t bubble.Token, width int) {
	col := int(t.X / CellWidth)
	row := int(t.Y / CellHeight)
	label := []rune(t.Label)
	if width <= 2 {
		// No room for the parentheses.
		s.drawLabel(col, row, string(label[:min(len(label), max(width, 1))]), styleFor(t.ID))
		return
	}
	if len(label) > width-2 {
		label = label[:width-2]
	}
	s.drawLabel(col, row, "("+string(label)+")", styleFor(t.ID))
}

func (s *Surface) drawLabel(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

// TokenCells is how many columns a token of the given pixel size covers.
func TokenCells(size float64) int {
	return int(math.Max(1, math.Round(size/CellWidth)))
}

func styleFor(id int) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(palette[id%len(palette)])
}
