package maze

import "github.com/lixenwraith/mazewalk/mapgrid"

// Solve returns the shortest walkable path from start to end inclusive, nil if none exists
func Solve(grid *mapgrid.Grid, start, end mapgrid.Point) []mapgrid.Point {
	if !grid.IsWalkable(start.X, start.Y) || !grid.IsWalkable(end.X, end.Y) {
		return nil
	}

	queue := []mapgrid.Point{start}
	cameFrom := make(map[mapgrid.Point]mapgrid.Point)
	visited := map[mapgrid.Point]bool{start: true}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == end {
			// Reconstruct path
			path := []mapgrid.Point{}
			for curr != start {
				path = append(path, curr)
				curr = cameFrom[curr]
			}
			path = append(path, start)
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, d := range dirs {
			next := mapgrid.Point{X: curr.X + d.X, Y: curr.Y + d.Y}
			if grid.IsWalkable(next.X, next.Y) && !visited[next] {
				visited[next] = true
				cameFrom[next] = curr
				queue = append(queue, next)
			}
		}
	}
	return nil
}

// Reachable counts walkable cells connected to start
func Reachable(grid *mapgrid.Grid, start mapgrid.Point) int {
	if !grid.IsWalkable(start.X, start.Y) {
		return 0
	}
	visited := map[mapgrid.Point]bool{start: true}
	stack := []mapgrid.Point{start}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range dirs {
			next := mapgrid.Point{X: curr.X + d.X, Y: curr.Y + d.Y}
			if grid.IsWalkable(next.X, next.Y) && !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return len(visited)
}
