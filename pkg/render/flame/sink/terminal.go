package sink

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/flametower/pkg/geom"
	"github.com/matzehuels/flametower/pkg/render/flame/anim"
	"github.com/matzehuels/flametower/pkg/tree"
)

// Default terminal cell geometry in viewport pixels. One flamechart row
// maps onto one text line.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 20.0
)

const frameEdge = '▏'

// TerminalOption configures a [Terminal].
type TerminalOption func(*Terminal)

// WithCellSize sets how many viewport pixels one character cell covers.
func WithCellSize(w, h float64) TerminalOption {
	return func(t *Terminal) { t.cellW, t.cellH = w, h }
}

// WithTerminalBackground sets the canvas colour (default #1e1e2e).
func WithTerminalBackground(hex string) TerminalOption {
	return func(t *Terminal) {
		if c, err := colorful.Hex(hex); err == nil {
			t.bg = c
		}
	}
}

// Terminal paints elements onto a grid of styled character cells.
type Terminal struct {
	cols, rows   int
	cellW, cellH float64
	bg           colorful.Color
}

// NewTerminal returns a painter for a cols×rows character area.
func NewTerminal(cols, rows int, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		cols:  max(cols, 0),
		rows:  max(rows, 0),
		cellW: DefaultCellWidth,
		cellH: DefaultCellHeight,
		bg:    mustHex("#1e1e2e"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Resize changes the character area.
func (t *Terminal) Resize(cols, rows int) {
	t.cols, t.rows = max(cols, 0), max(rows, 0)
}

// Viewport returns the pixel viewport the character area represents.
func (t *Terminal) Viewport() anim.Viewport {
	return anim.Viewport{Width: float64(t.cols) * t.cellW, Height: float64(t.rows) * t.cellH}
}

// PointAt returns the viewport point at the centre of a cell, for hit tests.
func (t *Terminal) PointAt(col, row int) geom.Vec2 {
	return geom.Vec2{X: (float64(col) + 0.5) * t.cellW, Y: (float64(row) + 0.5) * t.cellH}
}

type cellStyle struct {
	bg, fg string
	bold   bool
}

type canvas struct {
	runes  [][]rune
	styles [][]int
	keys   map[cellStyle]int
	table  []lipgloss.Style
}

func (c *canvas) style(k cellStyle) int {
	if i, ok := c.keys[k]; ok {
		return i
	}
	s := lipgloss.NewStyle().Background(lipgloss.Color(k.bg)).Foreground(lipgloss.Color(k.fg))
	if k.bold {
		s = s.Bold(true).Underline(true)
	}
	c.keys[k] = len(c.table)
	c.table = append(c.table, s)
	return len(c.table) - 1
}

// Paint renders elements in painting order. The selected element, if any,
// is drawn bold and underlined.
func (t *Terminal) Paint(elems []anim.Element, selected tree.ID) string {
	if t.cols == 0 || t.rows == 0 {
		return ""
	}

	c := &canvas{keys: make(map[cellStyle]int)}
	bgHex := t.bg.Hex()
	blank := c.style(cellStyle{bg: bgHex, fg: bgHex})
	c.runes = make([][]rune, t.rows)
	c.styles = make([][]int, t.rows)
	for y := range t.rows {
		c.runes[y] = []rune(strings.Repeat(" ", t.cols))
		c.styles[y] = make([]int, t.cols)
		for x := range c.styles[y] {
			c.styles[y][x] = blank
		}
	}

	for _, el := range elems {
		if el.Opacity > 0 {
			t.paintElement(c, el, el.ID == selected && selected != "")
		}
	}

	var sb strings.Builder
	for y := range t.rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		row, styles := c.runes[y], c.styles[y]
		start := 0
		for x := 1; x <= t.cols; x++ {
			if x < t.cols && styles[x] == styles[start] {
				continue
			}
			sb.WriteString(c.table[styles[start]].Render(string(row[start:x])))
			start = x
		}
	}
	return sb.String()
}

func (t *Terminal) paintElement(c *canvas, el anim.Element, selected bool) {
	x0 := int(math.Round(el.Rect.Left() / t.cellW))
	x1 := int(math.Round(el.Rect.Right() / t.cellW))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	y0 := int(math.Floor(el.Rect.Top()/t.cellH + 1e-9))
	y1 := max(int(math.Round(el.Rect.Bottom()/t.cellH)), y0+1)

	x0, x1 = max(x0, 0), min(x1, t.cols)
	y0, y1 = max(y0, 0), min(y1, t.rows)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	bg := fill(el.Color, el.HasColor, el.Opacity, t.bg)
	body := c.style(cellStyle{bg: bg.Hex(), fg: textOn(bg).Hex(), bold: selected})
	edge := c.style(cellStyle{bg: bg.Hex(), fg: t.bg.Hex()})

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.runes[y][x] = ' '
			c.styles[y][x] = body
		}
		if x1-x0 > 1 {
			c.runes[y][x0] = frameEdge
			c.styles[y][x0] = edge
		}
	}

	if !el.ShowLabel {
		return
	}
	text := []rune(fitLabel(el.Label, x1-x0-1))
	for i, r := range text {
		c.runes[y0][x0+1+i] = r
	}
}
