package detection

import "image"

// Contour is the ordered outer boundary of one connected mask region.
type Contour []image.Point

// directions lists the 8-neighbourhood counterclockwise (on screen, with Y
// growing downward) starting from east.
var directions = [8]image.Point{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

// dirIndex returns the index in directions of the step from a to b.
// b must be one of a's 8 neighbours.
func dirIndex(a, b image.Point) int {
	d := b.Sub(a)
	for i, dir := range directions {
		if dir == d {
			return i
		}
	}
	return 0
}

// FindContours returns the outer boundaries of the mask's connected regions.
//
// # Algorithm
//
//  1. Background reachable from outside the image is found with a
//     4-connected flood fill seeded from the image border.
//  2. Foreground pixels are grouped into 8-connected components with the
//     same stack-based flood fill used for background.
//  3. Components that touch neither the image border nor the outside
//     background sit inside a hole of another component and are skipped,
//     so only external boundaries are reported.
//  4. The boundary of each remaining component is traced with Suzuki-Abe
//     outer border following, starting at its first pixel in raster order.
//  5. Points interior to horizontal, vertical or diagonal runs are dropped,
//     leaving only the vertices where the boundary changes direction.
//
// Contours are returned in raster order of their start pixel. Callers must
// treat that order as arbitrary.
func FindContours(m *Mask) []Contour {
	outside := outerBackground(m)
	visited := make([]bool, m.Width*m.Height)
	contours := make([]Contour, 0)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.At(x, y) || visited[y*m.Width+x] {
				continue
			}
			component := floodFill(m, visited, x, y)
			if !isExternal(m, outside, component) {
				continue
			}
			contours = append(contours, simplify(traceBorder(m, image.Pt(x, y))))
		}
	}

	return contours
}

// outerBackground marks unset pixels 4-connected to the image border.
func outerBackground(m *Mask) []bool {
	outside := make([]bool, m.Width*m.Height)
	stack := make([]image.Point, 0)

	push := func(x, y int) {
		if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
			return
		}
		i := y*m.Width + x
		if outside[i] || m.bits[i] {
			return
		}
		outside[i] = true
		stack = append(stack, image.Pt(x, y))
	}

	for x := 0; x < m.Width; x++ {
		push(x, 0)
		push(x, m.Height-1)
	}
	for y := 0; y < m.Height; y++ {
		push(0, y)
		push(m.Width-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X+1, p.Y)
		push(p.X-1, p.Y)
		push(p.X, p.Y+1)
		push(p.X, p.Y-1)
	}

	return outside
}

// floodFill collects the 8-connected foreground component containing
// (startX, startY) and marks it visited.
func floodFill(m *Mask, visited []bool, startX, startY int) []image.Point {
	component := make([]image.Point, 0)
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !m.At(p.X, p.Y) || visited[p.Y*m.Width+p.X] {
			continue
		}
		visited[p.Y*m.Width+p.X] = true
		component = append(component, p)

		for _, d := range directions {
			stack = append(stack, p.Add(d))
		}
	}

	return component
}

// isExternal reports whether a component is adjacent to the image border or
// to background connected to it.
func isExternal(m *Mask, outside []bool, component []image.Point) bool {
	for _, p := range component {
		if p.X == 0 || p.Y == 0 || p.X == m.Width-1 || p.Y == m.Height-1 {
			return true
		}
		for _, d := range [4]image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			q := p.Add(d)
			if outside[q.Y*m.Width+q.X] {
				return true
			}
		}
	}
	return false
}

// traceBorder follows the outer border of the component whose first raster
// pixel is start. start's west neighbour is always background.
func traceBorder(m *Mask, start image.Point) Contour {
	// Clockwise from west: W, NW, N, NE, E, SE, S, SW.
	first := -1
	for k := 0; k < 8; k++ {
		d := (4 - k + 8) % 8
		q := start.Add(directions[d])
		if m.At(q.X, q.Y) {
			first = d
			break
		}
	}
	if first < 0 {
		return Contour{start}
	}

	last := start.Add(directions[first])
	prev, cur := last, start
	border := make(Contour, 0)

	// Every border pixel is entered at most four times.
	limit := 4*m.Width*m.Height + 8
	for i := 0; i < limit; i++ {
		d := dirIndex(cur, prev)
		next := prev
		for k := 1; k <= 8; k++ {
			q := cur.Add(directions[(d+k)%8])
			if m.At(q.X, q.Y) {
				next = q
				break
			}
		}

		border = append(border, cur)
		if next == start && cur == last {
			break
		}
		prev, cur = cur, next
	}

	return border
}

// simplify drops points lying strictly inside straight runs of a closed
// boundary. The start point is always kept.
func simplify(c Contour) Contour {
	n := len(c)
	if n <= 2 {
		return c
	}
	out := Contour{c[0]}
	for i := 1; i < n; i++ {
		in := c[i].Sub(c[i-1])
		outStep := c[(i+1)%n].Sub(c[i])
		if in != outStep {
			out = append(out, c[i])
		}
	}
	return out
}
