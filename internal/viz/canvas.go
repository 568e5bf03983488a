package viz

import (
	"math/bits"
	"strings"
)

const blank = rune(0x2800)

// Each terminal cell holds a 2x4 braille block. dotBits[row][col] is the
// bit for that dot, added to U+2800.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed in dots: a Cols x Rows canvas
// is Cols*2 dots wide and Rows*4 dots tall.
type Canvas struct {
	Cols, Rows int
	cells      [][]rune
}

func NewCanvas(cols, rows int) *Canvas {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c := &Canvas{Cols: cols, Rows: rows, cells: make([][]rune, rows)}
	for i := range c.cells {
		c.cells[i] = make([]rune, cols)
	}
	c.Clear()
	return c
}

func (c *Canvas) DotsWide() int { return c.Cols * 2 }
func (c *Canvas) DotsHigh() int { return c.Rows * 4 }

// Set lights the dot at (x, y). Dots off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Cols || row >= c.Rows {
		return
	}
	c.cells[row][col] |= dotBits[y%4][x%2]
}

// Disc lights every dot within r dots of (cx, cy). r < 1 lights one dot.
func (c *Canvas) Disc(cx, cy, r int) {
	if r < 1 {
		c.Set(cx, cy)
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = blank
		}
	}
}

// Lit counts the dots currently set.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.cells {
		for _, r := range row {
			n += bits.OnesCount32(uint32(r - blank))
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}
