package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/maze-echo/level"
	"github.com/lixenwraith/maze-echo/maze"
)

func main() {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("\n=== PERFECT MAZE GENERATOR ===")

		score := getInt(reader, "Score (default 0): ", 0)
		size := getInt(reader, fmt.Sprintf("Size (default %d from score): ", level.SizeForScore(score)), level.SizeForScore(score))
		ex := getInt(reader, "Entry X (default 0): ", 0)
		ey := getInt(reader, "Entry Y (default 0): ", 0)
		seed := int64(getInt(reader, "Seed (default random): ", 0))

		cfg := maze.Config{
			Size:   size,
			EntryX: ex,
			EntryY: ey,
			Seed:   seed,
		}

		fmt.Println("\nGenerating...")
		startT := time.Now()
		m, err := maze.Generate(cfg)
		dur := time.Since(startT)

		if err != nil {
			fmt.Printf("Error: %v\n", err)
		} else {
			fmt.Printf("Done in %v\n", dur)
			report(m)
			draw(m)
		}

		fmt.Print("\nGenerate another? [Y/n]: ")
		cont, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

func report(m *maze.Maze) {
	fmt.Printf("Grid Dimensions: %dx%d, openings %d\n", m.Size(), m.Size(), m.Openings())
	fmt.Printf("Start %v  Exit A %v  Exit B %v\n", m.Start(), m.ExitA(), m.ExitB())
	if m.SingleExit() {
		fmt.Println("Status: single exit (grid too small for two)")
	}

	for _, e := range []maze.Exit{maze.ExitA, maze.ExitB} {
		path := m.Solve(m.Start(), m.Exit(e))
		fmt.Printf("Solution to %v: %d steps\n", e, len(path)-1)
	}
}

func draw(m *maze.Maze) {
	marks := make(map[maze.Point]rune)
	for _, p := range m.Solve(m.Start(), m.ExitA()) {
		if m.At(p.X, p.Y).Type == maze.CellPath {
			marks[p] = '.'
		}
	}
	if err := m.Render(os.Stdout, marks); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
	}
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
