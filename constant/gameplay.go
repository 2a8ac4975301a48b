package constant

import "time"

// Maze Progression
const (
	// BaseGridSize is the maze edge length at score 0
	BaseGridSize = 8

	// PointsPerSizeStep is the score span covered by one maze size class
	PointsPerSizeStep = 10

	// ExitAPoints is awarded for leaving through exit A
	ExitAPoints = 1

	// ExitBPoints is awarded for leaving through exit B
	ExitBPoints = 3

	// MapPenalty is deducted when the map overlay is opened (variant rule, floored at 0)
	MapPenalty = 5
)

// Frame Timing
const (
	// FrameUpdateInterval drives elapsed-time accumulation and redraw (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// ViewRadius is the cell radius visible around the player without the map overlay
	ViewRadius = 3
)
