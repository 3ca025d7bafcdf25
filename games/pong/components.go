package pong

import "fmt"

// Side names a player by the half of the arena they defend.
type Side int

const (
	Nobody Side = 0
	Left   Side = -1
	Right  Side = 1
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "nobody"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	return -s
}

// Paddle marks a paddle body. CPU paddles track the ball on their own.
type Paddle struct {
	Side Side
	CPU  bool
}

// Ball holds the direction of travel: Angle in degrees above the
// horizontal and the sign of each axis.
type Ball struct {
	Angle      float32
	DirX, DirY float32
}

// Wall is a horizontal bar. Normal is the y direction it pushes the ball.
type Wall struct {
	Normal float32
}

// Phase is the state of a match.
type Phase int

const (
	Serving Phase = iota
	Playing
	Over
)

func (p Phase) String() string {
	switch p {
	case Serving:
		return "serving"
	case Playing:
		return "playing"
	case Over:
		return "over"
	}
	return "unknown"
}

// Match tracks the phase, the serve countdown and the winner once over.
type Match struct {
	Phase  Phase
	Timer  float32
	Winner Side
}

// Score is the points of each side.
type Score struct {
	Left, Right int
}

// Of returns the points of side.
func (s Score) Of(side Side) int {
	if side == Left {
		return s.Left
	}
	return s.Right
}

func (s *Score) add(side Side) {
	if side == Left {
		s.Left++
	} else {
		s.Right++
	}
}

// RoundResult is the outcome of the last finished round. Round counts
// from 1; 0 means no round has finished yet.
type RoundResult struct {
	Round  int
	Winner Side
	Score  Score
}

// Message describes the round the way the console reports it.
func (r RoundResult) Message() string {
	return fmt.Sprintf("%s player has won", r.Winner)
}
