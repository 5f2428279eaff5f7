package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const noOwner = -1

// canvas is a fixed grid of cells. Each cell remembers which item drew it
// so rows can be styled per item after overlapping items are composed.
type canvas struct {
	width, height int
	runes         [][]rune
	owner         [][]int
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height}
	c.runes = make([][]rune, height)
	c.owner = make([][]int, height)
	for y := 0; y < height; y++ {
		c.runes[y] = []rune(strings.Repeat(" ", width))
		c.owner[y] = make([]int, width)
		for x := range c.owner[y] {
			c.owner[y][x] = noOwner
		}
	}
	return c
}

// draw writes s on row y starting at column x, clipping at the edges
func (c *canvas) draw(x, y int, s string, owner int) {
	if y < 0 || y >= c.height {
		return
	}
	for i, r := range []rune(s) {
		col := x + i
		if col < 0 || col >= c.width {
			continue
		}
		c.runes[y][col] = r
		c.owner[y][col] = owner
	}
}

// render joins the rows, styling each run of cells with its owner's style
func (c *canvas) render(style func(owner int) lipgloss.Style) string {
	var out strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= c.width; x++ {
			if x < c.width && c.owner[y][x] == c.owner[y][start] {
				continue
			}
			run := string(c.runes[y][start:x])
			if o := c.owner[y][start]; o == noOwner {
				out.WriteString(run)
			} else {
				out.WriteString(style(o).Render(run))
			}
			start = x
		}
	}
	return out.String()
}
