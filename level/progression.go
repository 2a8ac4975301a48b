package level

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/maze-echo/constant"
	"github.com/lixenwraith/maze-echo/maze"
)

// SizeForScore maps cumulative score to maze edge length, one size class per
// PointsPerSizeStep points. Negative scores are treated as 0.
func SizeForScore(score int) int {
	if score < 0 {
		score = 0
	}
	return constant.BaseGridSize + score/constant.PointsPerSizeStep
}

// PointsFor returns the score awarded for leaving through e
func PointsFor(e maze.Exit) int {
	if e == maze.ExitB {
		return constant.ExitBPoints
	}
	return constant.ExitAPoints
}

// NextEntry clamps the previous exit into a grid of newSize
func NextEntry(prev maze.Point, newSize int) maze.Point {
	return maze.ClampPoint(newSize, prev)
}

type Options struct {
	Score int // Starting cumulative score

	// MapPenalty enables the variant rule deducting points for opening the map
	MapPenalty bool

	Rand *rand.Rand // Optional (nil = seeded from Seed)
	Seed int64      // Optional (0 = Random)
}

// Transition describes one completed level change
type Transition struct {
	ID     uuid.UUID
	Level  int
	Exit   maze.Exit
	From   maze.Point // exit cell in the old maze
	Entry  maze.Point // start cell in the new maze
	Points int
	Score  int
	Size   int
	Maze   *maze.Maze
}

// Controller owns the live maze and cumulative score.
// ConfirmExit is the only path that replaces the maze.
type Controller struct {
	rng        *rand.Rand
	mapPenalty bool

	score int
	level int
	id    uuid.UUID
	maze  *maze.Maze
}

// NewController builds the first maze at (0,0) sized for the starting score
func NewController(opts Options) (*Controller, error) {
	rng := opts.Rand
	if rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	score := opts.Score
	if score < 0 {
		score = 0
	}

	c := &Controller{
		rng:        rng,
		mapPenalty: opts.MapPenalty,
		score:      score,
	}

	m, err := c.generate(SizeForScore(score), maze.Point{})
	if err != nil {
		return nil, err
	}
	c.install(m)
	return c, nil
}

func (c *Controller) generate(size int, entry maze.Point) (*maze.Maze, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", maze.ErrInvalidSize, size)
	}
	return maze.Generate(maze.Config{
		Size:   size,
		EntryX: entry.X,
		EntryY: entry.Y,
		Rand:   c.rng,
	})
}

func (c *Controller) install(m *maze.Maze) {
	c.maze = m
	c.level++
	c.id = uuid.New()
	log.Printf("[LEVEL] level %d (%s): size %d start %v exits A=%v B=%v",
		c.level, c.id, m.Size(), m.Start(), m.ExitA(), m.ExitB())
}

// Maze returns the live maze
func (c *Controller) Maze() *maze.Maze { return c.maze }

// Score returns the cumulative score
func (c *Controller) Score() int { return c.score }

// Level returns the 1-based level counter
func (c *Controller) Level() int { return c.level }

// ID returns the identifier of the live level
func (c *Controller) ID() uuid.UUID { return c.id }

// ConfirmExit awards points for e, grows the maze and starts the next level
// at the old exit's coordinates. On failure score and maze stay untouched.
func (c *Controller) ConfirmExit(e maze.Exit) (Transition, error) {
	from := c.maze.Exit(e)
	points := PointsFor(e)
	score := c.score + points
	size := SizeForScore(score)
	entry := NextEntry(from, size)

	m, err := c.generate(size, entry)
	if err != nil {
		log.Printf("[LEVEL] [ERROR] generating level after exit %v: %v", e, err)
		return Transition{}, err
	}

	c.score = score
	c.install(m)

	return Transition{
		ID:     c.id,
		Level:  c.level,
		Exit:   e,
		From:   from,
		Entry:  m.Start(),
		Points: points,
		Score:  score,
		Size:   size,
		Maze:   m,
	}, nil
}

// OpenMap applies the map penalty when enabled and returns the resulting score.
// The live maze is kept; the reduced score only affects the next level's size.
func (c *Controller) OpenMap() int {
	if !c.mapPenalty {
		return c.score
	}
	c.score -= constant.MapPenalty
	if c.score < 0 {
		c.score = 0
	}
	return c.score
}

// Reset drops the score to 0 and starts over on a base-size maze
func (c *Controller) Reset() error {
	m, err := c.generate(SizeForScore(0), maze.Point{})
	if err != nil {
		return err
	}
	c.score = 0
	c.level = 0
	c.install(m)
	return nil
}
