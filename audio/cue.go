// Package audio turns game events into short synthesized sound effects.
// Systems push cues into a Queue singleton; the front end drains it once a
// frame and hands each cue to a Player.
package audio

// Cue identifies a sound effect.
type Cue uint8

const (
	CueBounce Cue = iota + 1
	CueScore
	CueShoot
	CueExplode
	CueHurt
	CueJump
	CueCoin
	CueSelect
)

// Cues lists every cue in declaration order.
var Cues = []Cue{CueBounce, CueScore, CueShoot, CueExplode, CueHurt, CueJump, CueCoin, CueSelect}

func (c Cue) String() string {
	switch c {
	case CueBounce:
		return "bounce"
	case CueScore:
		return "score"
	case CueShoot:
		return "shoot"
	case CueExplode:
		return "explode"
	case CueHurt:
		return "hurt"
	case CueJump:
		return "jump"
	case CueCoin:
		return "coin"
	case CueSelect:
		return "select"
	}
	return "unknown"
}

// Queue collects cues raised during a frame.
type Queue struct {
	cues []Cue
}

// Push appends a cue.
func (q *Queue) Push(cue Cue) {
	q.cues = append(q.cues, cue)
}

// Len returns the number of queued cues.
func (q *Queue) Len() int {
	return len(q.cues)
}

// Drain returns the queued cues and empties the queue.
func (q *Queue) Drain() []Cue {
	out := q.cues
	q.cues = nil
	return out
}

// Player plays cues.
type Player interface {
	Play(cue Cue)
}

// Mute discards every cue.
type Mute struct{}

func (Mute) Play(Cue) {}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(Cue)

func (f PlayerFunc) Play(cue Cue) { f(cue) }

// Dispatch drains q into p and returns how many cues were played.
func Dispatch(q *Queue, p Player) int {
	cues := q.Drain()
	for _, cue := range cues {
		p.Play(cue)
	}
	return len(cues)
}
