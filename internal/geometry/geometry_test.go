package geometry

import (
	"testing"

	"dragsort/internal/dom"
	"dragsort/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestUniformMeasuresByIndex(t *testing.T) {
	ul := dom.NewList("ul", "li", []string{"0", "1", "2"})
	kids := dom.Children(ul)
	probe := Uniform{Width: 50, Height: 20}

	r, ok := probe.Measure(kids[2])
	require.True(t, ok)
	assert.Equal(t, 40.0, r.Start(domain.Vertical))
	assert.Equal(t, 100.0, r.Start(domain.Horizontal))
	assert.Equal(t, 20.0, r.Size(domain.Vertical))
	assert.Equal(t, 50.0, r.Size(domain.Horizontal))

	_, ok = probe.Measure(dom.NewElement("li"))
	assert.False(t, ok)
}

func TestStackVertical(t *testing.T) {
	ul := dom.NewList("ul", "li", []string{"a", "bb", "c"})
	kids := dom.Children(ul)
	heights := map[string]float64{"a": 1, "bb": 2, "c": 1}

	l := Stack(domain.Vertical, domain.Point{X: 2, Y: 3}, kids, func(n *html.Node) (float64, float64) {
		return float64(len(dom.Text(n))), heights[dom.Text(n)]
	})

	r, ok := l.Measure(kids[1])
	require.True(t, ok)
	assert.Equal(t, domain.Rect{X: 2, Y: 4, Width: 2, Height: 2}, r)

	r, _ = l.Measure(kids[2])
	assert.Equal(t, domain.Rect{X: 2, Y: 6, Width: 2, Height: 1}, r)
	assert.Equal(t, 3, l.Len())
}

func TestStackHorizontalBounds(t *testing.T) {
	ul := dom.NewList("ul", "li", []string{"a", "b"})
	l := NewLayout()

	bounds := StackInto(l, domain.Horizontal, domain.Point{}, dom.Children(ul), func(*html.Node) (float64, float64) {
		return 5, 1
	})

	assert.Equal(t, domain.Rect{Width: 10, Height: 1}, bounds)
	r, _ := l.Measure(dom.Children(ul)[1])
	assert.Equal(t, 5.0, r.X)
}

func TestHitTestPrefersSmallestBox(t *testing.T) {
	ul := dom.NewList("ul", "li", []string{"0"})
	li := dom.Children(ul)[0]
	span := dom.NewElement("span")
	li.AppendChild(span)

	l := NewLayout()
	l.Set(li, domain.Rect{X: 0, Y: 0, Width: 10, Height: 1})
	l.Set(span, domain.Rect{X: 0, Y: 0, Width: 2, Height: 1})

	assert.Equal(t, span, l.HitTest(domain.Point{X: 1, Y: 0}))
	assert.Equal(t, li, l.HitTest(domain.Point{X: 5, Y: 0}))
	assert.Nil(t, l.HitTest(domain.Point{X: 10, Y: 0}))

	l.Set(span, domain.Rect{X: 8, Y: 0, Width: 2, Height: 1})
	assert.Equal(t, li, l.HitTest(domain.Point{X: 1, Y: 0}))
	assert.Equal(t, 2, l.Len())
}

func TestLayoutReset(t *testing.T) {
	ul := dom.NewList("ul", "li", []string{"0", "1"})
	l := Stack(domain.Vertical, domain.Point{}, dom.Children(ul), func(*html.Node) (float64, float64) { return 4, 1 })
	require.Equal(t, 2, l.Len())

	l.Reset()

	assert.Equal(t, 0, l.Len())
	_, ok := l.Measure(dom.Children(ul)[0])
	assert.False(t, ok)
	assert.Nil(t, l.HitTest(domain.Point{X: 1, Y: 0}))
}
