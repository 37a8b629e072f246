// Package canvas rasterizes draw commands onto a character grid for
// terminal output. The turtle origin sits in the middle of the grid, x grows
// to the right and y grows downwards, so "right 90" from angle 0 turns the
// turtle towards the bottom of the screen.
package canvas

import (
	"math"
	"strings"

	"github.com/msto63/mlogo/foundation/turtle/language"
)

// Blank is the rune of an empty cell
const Blank = ' '

// cellAspect compensates for terminal cells being about twice as tall as wide
const cellAspect = 2.0

// Canvas is a fixed-size rune grid
type Canvas struct {
	width  int
	height int
	scale  float64
	cells  [][]rune
}

// New creates a blank canvas. scale maps turtle units to rows; columns use
// twice that.
func New(width, height int, scale float64) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if scale <= 0 {
		scale = 1
	}

	c := &Canvas{width: width, height: height, scale: scale}
	c.Clear()
	return c
}

// Width returns the number of columns
func (c *Canvas) Width() int { return c.width }

// Height returns the number of rows
func (c *Canvas) Height() int { return c.height }

// Clear blanks every cell
func (c *Canvas) Clear() {
	c.cells = make([][]rune, c.height)
	for row := range c.cells {
		c.cells[row] = []rune(strings.Repeat(string(Blank), c.width))
	}
}

// Cell returns the rune at col, row; out of range reads as Blank
func (c *Canvas) Cell(col, row int) rune {
	if !c.inside(col, row) {
		return Blank
	}
	return c.cells[row][col]
}

// Project maps turtle coordinates to a cell
func (c *Canvas) Project(x, y float64) (col, row int) {
	col = c.width/2 + int(math.Round(x*c.scale*cellAspect))
	row = c.height/2 + int(math.Round(y*c.scale))
	return col, row
}

// Draw applies commands in order. drawLine plots a line and clearScreen
// blanks the grid; rotations have no visible effect.
func (c *Canvas) Draw(commands []language.DrawCommand) {
	for _, cmd := range commands {
		switch cmd.Kind {
		case language.DrawLine:
			c.line(cmd.X1, cmd.Y1, cmd.X2, cmd.Y2)
		case language.ClearScreen:
			c.Clear()
		}
	}
}

// PlaceTurtle marks the turtle's cell with an arrow for its heading
func (c *Canvas) PlaceTurtle(t language.Turtle) {
	col, row := c.Project(t.X, t.Y)
	c.set(col, row, headingRune(t.Angle))
}

// String joins the rows with newlines, trimming trailing blanks per row
func (c *Canvas) String() string {
	rows := make([]string, c.height)
	for i, row := range c.cells {
		rows[i] = strings.TrimRight(string(row), string(Blank))
	}
	return strings.Join(rows, "\n")
}

// Render draws commands and the turtle onto a fresh canvas
func Render(width, height int, scale float64, commands []language.DrawCommand, turtle *language.Turtle) string {
	c := New(width, height, scale)
	c.Draw(commands)
	if turtle != nil {
		c.PlaceTurtle(*turtle)
	}
	return c.String()
}

// line plots a Bresenham line between two turtle points
func (c *Canvas) line(x1, y1, x2, y2 float64) {
	col0, row0 := c.Project(x1, y1)
	col1, row1 := c.Project(x2, y2)
	glyph := lineRune(col1-col0, row1-row0)

	dx := abs(col1 - col0)
	dy := -abs(row1 - row0)
	sx, sy := sign(col1-col0), sign(row1-row0)
	errAcc := dx + dy

	for {
		c.set(col0, row0, glyph)
		if col0 == col1 && row0 == row1 {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			col0 += sx
		}
		if e2 <= dx {
			errAcc += dx
			row0 += sy
		}
	}
}

func (c *Canvas) inside(col, row int) bool {
	return col >= 0 && col < c.width && row >= 0 && row < c.height
}

func (c *Canvas) set(col, row int, r rune) {
	if c.inside(col, row) {
		c.cells[row][col] = r
	}
}

// lineRune picks a glyph for a segment direction in cell space
func lineRune(dCol, dRow int) rune {
	switch {
	case dCol == 0 && dRow == 0:
		return '*'
	case dRow == 0 || abs(dCol) > 2*abs(dRow):
		return '-'
	case dCol == 0 || abs(dRow) > 2*abs(dCol):
		return '|'
	case (dCol > 0) == (dRow > 0):
		return '\\'
	default:
		return '/'
	}
}

// headingRune picks an arrow for the nearest of the four screen directions
func headingRune(angle float64) rune {
	quadrant := int(math.Round(angle/90)) % 4
	if quadrant < 0 {
		quadrant += 4
	}
	return []rune{'>', 'v', '<', '^'}[quadrant]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
