package maze

// Solve returns the path from start to end through open walls, both ends included.
// In a perfect maze this is the unique simple path. Returns nil when either end is off-grid.
func (m *Maze) Solve(start, end Point) []Point {
	if !m.InBounds(start) || !m.InBounds(end) {
		return nil
	}

	from := m.index(start.X, start.Y)
	to := m.index(end.X, end.Y)

	cameFrom := make([]int, len(m.cells))
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	cameFrom[from] = from

	queue := []int{from}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == to {
			// Reconstruct backwards then reverse
			var path []Point
			for i := curr; ; i = cameFrom[i] {
				c := m.cells[i]
				path = append(path, Point{c.X, c.Y})
				if i == from {
					break
				}
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		c := m.cells[curr]
		for _, d := range directions {
			next, ok := m.Step(Point{c.X, c.Y}, d)
			if !ok {
				continue
			}
			ni := m.index(next.X, next.Y)
			if cameFrom[ni] == -1 {
				cameFrom[ni] = curr
				queue = append(queue, ni)
			}
		}
	}
	return nil
}

// Reachable counts cells reachable from p through open walls
func (m *Maze) Reachable(p Point) int {
	if !m.InBounds(p) {
		return 0
	}
	seen := make([]bool, len(m.cells))
	stack := []Point{p}
	seen[m.index(p.X, p.Y)] = true
	n := 0
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		for _, d := range directions {
			next, ok := m.Step(cur, d)
			if !ok {
				continue
			}
			if i := m.index(next.X, next.Y); !seen[i] {
				seen[i] = true
				stack = append(stack, next)
			}
		}
	}
	return n
}
