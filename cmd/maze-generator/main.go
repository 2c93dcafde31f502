package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/mazewalk/mapgrid"
	"github.com/lixenwraith/mazewalk/maze"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	wallStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	endStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func main() {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println(titleStyle.Render("\n=== RANDOMIZED DEPTH-FIRST MAZE GENERATOR ==="))

		cols := getInt(reader, "Columns (default 20): ", 20)
		rows := getInt(reader, "Rows (default 10): ", 10)
		seed := int64(getInt(reader, "Seed [0 = random] (default 0): ", 0))

		fmt.Println("\nGenerating...")
		startT := time.Now()
		res, err := maze.Generate(maze.Config{
			Columns: cols,
			Rows:    rows,
			Seed:    seed,
			Start:   &mapgrid.Point{},
		})
		dur := time.Since(startT)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		} else {
			start := mapgrid.Point{X: 1, Y: 1}
			end := mapgrid.Point{X: res.Grid.Width() - 2, Y: res.Grid.Height() - 2}
			path := maze.Solve(res.Grid, start, end)

			fmt.Println(infoStyle.Render(fmt.Sprintf("Done in %v", dur)))
			fmt.Println(infoStyle.Render(fmt.Sprintf("Grid Dimensions: %dx%d, %d cells, %d steps",
				res.Grid.Width(), res.Grid.Height(), res.Cells, res.Steps)))
			if path != nil {
				fmt.Println(infoStyle.Render(fmt.Sprintf("Solution Path Length: %d steps", len(path)-1)))
			} else {
				fmt.Println(infoStyle.Render("Status: Unsolvable"))
			}

			draw(os.Stdout, res.Grid, start, end, path)
		}

		fmt.Print("\nGenerate another? [Y/n]: ")
		cont, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

// draw prints the grid one character per cell: S and E for the endpoints, a dot on the solution
func draw(w io.Writer, g *mapgrid.Grid, start, end mapgrid.Point, path []mapgrid.Point) {
	onPath := make(map[mapgrid.Point]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}

	var sb strings.Builder
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := mapgrid.Point{X: x, Y: y}
			switch {
			case p == start:
				sb.WriteString(endStyle.Render("S"))
			case p == end:
				sb.WriteString(endStyle.Render("E"))
			case !g.IsWalkable(x, y):
				sb.WriteString(wallStyle.Render("█"))
			case onPath[p]:
				sb.WriteString(pathStyle.Render("•"))
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprint(w, sb.String())
}

// --- Input Helpers ---

func getInt(r *bufio.Reader, prompt string, def int) int {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
