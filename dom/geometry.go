package dom

import (
	"strconv"
	"strings"
)

// Rect is an axis-aligned rectangle in viewport coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Area returns the rect's area, zero for degenerate rects.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Intersect returns the intersection of two rects. The result has zero
// area when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.Width, o.X+o.Width)
	y2 := min(r.Y+r.Height, o.Y+o.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Margin expands a rect on each side. Values follow the CSS margin
// shorthand order.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// ParseMargin parses a CSS-margin-shorthand string of one to four px
// lengths, e.g. "300px 0px". Bare numbers are treated as px; any
// unparseable component resolves to 0.
func ParseMargin(s string) Margin {
	fields := strings.Fields(s)
	values := make([]float64, 0, 4)
	for _, f := range fields {
		f = strings.TrimSuffix(f, "px")
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			v = 0
		}
		values = append(values, v)
	}

	switch len(values) {
	case 0:
		return Margin{}
	case 1:
		return Margin{Top: values[0], Right: values[0], Bottom: values[0], Left: values[0]}
	case 2:
		return Margin{Top: values[0], Right: values[1], Bottom: values[0], Left: values[1]}
	case 3:
		return Margin{Top: values[0], Right: values[1], Bottom: values[2], Left: values[1]}
	default:
		return Margin{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}
	}
}

// Expand grows the rect by the margin on each side.
func (r Rect) Expand(m Margin) Rect {
	return Rect{
		X:      r.X - m.Left,
		Y:      r.Y - m.Top,
		Width:  r.Width + m.Left + m.Right,
		Height: r.Height + m.Top + m.Bottom,
	}
}

// IntersectsViewport reports whether the element's rect intersects the
// document viewport expanded by margin, with at least the given fraction
// of the element's area visible. A threshold of 0 counts any overlap.
// This is a direct geometric query, independent of any intersection
// observer's delivery state.
func (e *Element) IntersectsViewport(margin Margin, threshold float64) bool {
	d := e.AsNode().ownerDoc
	if d == nil {
		return false
	}
	return intersects(e.Rect(), d.Viewport().Expand(margin), threshold)
}

func intersects(target, root Rect, threshold float64) bool {
	inter := target.Intersect(root).Area()
	if inter <= 0 {
		return false
	}
	area := target.Area()
	if area == 0 {
		return true
	}
	return inter/area >= threshold
}
