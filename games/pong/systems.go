package pong

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/arcade/audio"
	"github.com/plus3/arcade/config"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/physics"
)

// Arena measurements in world units.
const (
	BarInner    = 2.75
	BarOuter    = 3
	BarHalfLen  = 4.75
	PaddleX     = 4.875
	PaddleW     = 0.25
	PaddleH     = 1.3
	BallSize    = 0.25
	GoalX       = 5
	PaddleHomeY = -0.35

	// hit zones, measured down from the paddle top
	zoneTop    = 0.3
	zoneMiddle = 1.0
)

type paddleItem struct {
	*Paddle
	*physics.Body
}

type ballItem struct {
	*Ball
	*physics.Body
	*physics.Collider
}

// PaddleSystem moves the human paddle with Up/Down and the CPU paddle
// toward the ball, then keeps both between the bars.
type PaddleSystem struct {
	Paddles ecs.Query[paddleItem]
	Balls   ecs.Query[ballItem]
	Input   ecs.Singleton[input.State]

	Config config.Pong
}

func (s *PaddleSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	_, ball, hasBall := s.Balls.First()

	for p := range s.Paddles.Values() {
		y := p.Position.Y()
		switch {
		case !p.CPU:
			y += s.Input.Get().Axis(input.Down, input.Up) * s.Config.PaddleSpeed * dt
		case hasBall:
			y = geom.Approach(y, ball.Position.Y(), s.Config.CPUSpeed*dt)
		}
		limit := float32(BarInner - PaddleH/2)
		p.Position[1] = geom.Clamp(y, -limit, limit)
	}
}

// MatchSystem runs the serve countdown and restarts a finished match on
// Confirm.
type MatchSystem struct {
	Match ecs.Singleton[Match]
	Score ecs.Singleton[Score]
	Input ecs.Singleton[input.State]
	Sound ecs.Singleton[audio.Queue]

	Config config.Pong
}

func (s *MatchSystem) Execute(frame *ecs.UpdateFrame) {
	m := s.Match.Get()
	switch m.Phase {
	case Serving:
		m.Timer -= float32(frame.DeltaTime)
		if m.Timer <= 0 {
			m.Phase = Playing
		}
	case Over:
		if s.Input.Get().JustPressed(input.Confirm) {
			*m = Match{Phase: Serving, Timer: s.Config.ServeDelay}
			*s.Score.Get() = Score{}
			s.Sound.Get().Push(audio.CueSelect)
		}
	}
}

// BallSystem turns the ball's angle and direction into a velocity. The
// ball rests while the match is not in play.
type BallSystem struct {
	Balls ecs.Query[ballItem]
	Match ecs.Singleton[Match]

	Config config.Pong
}

func (s *BallSystem) Execute(frame *ecs.UpdateFrame) {
	playing := s.Match.Get().Phase == Playing
	for b := range s.Balls.Values() {
		if !playing {
			b.Velocity = geom.Vec3{}
			continue
		}
		rad := float64(geom.Radians(b.Angle))
		b.Velocity = geom.V2(
			float32(math.Cos(rad))*b.DirX*s.Config.BallSpeed,
			float32(math.Sin(rad))*b.DirY*s.Config.BallSpeed,
		)
	}
}

// BounceSystem reflects the ball off paddles and walls. The ball is moved
// out of whatever it hit so the next step cannot hit it again.
type BounceSystem struct {
	Balls   ecs.Query[ballItem]
	Paddles ecs.Query[struct {
		*Paddle
		*physics.Body
		*physics.Collider
	}]
	Walls ecs.Query[struct {
		*Wall
		*physics.Body
		*physics.Collider
	}]
	Sound ecs.Singleton[audio.Queue]

	Rand *rand.Rand
}

func (s *BounceSystem) Execute(frame *ecs.UpdateFrame) {
	for b := range s.Balls.Values() {
		for p := range s.Paddles.Values() {
			if float32(p.Side) != b.DirX || !physics.Overlapping(*b.Body, *b.Collider, *p.Body, *p.Collider) {
				continue
			}
			paddle := physics.Bounds(*p.Body, *p.Collider)
			s.deflect(b.Ball, paddle.Top()-b.Position.Y())
			b.DirX = -float32(p.Side)
			b.Position[0] = p.Position.X() - float32(p.Side)*(paddle.Half.X()+b.Collider.Size.X()/2)
			s.Sound.Get().Push(audio.CueBounce)
		}

		for w := range s.Walls.Values() {
			if b.DirY == w.Normal || !physics.Overlapping(*b.Body, *b.Collider, *w.Body, *w.Collider) {
				continue
			}
			wall := physics.Bounds(*w.Body, *w.Collider)
			half := b.Collider.Size.Y() / 2
			b.DirY = w.Normal
			if w.Normal > 0 {
				b.Position[1] = wall.Top() + half
			} else {
				b.Position[1] = wall.Bottom() - half
			}
			s.Sound.Get().Push(audio.CueBounce)
		}
	}
}

// deflect picks a new angle from where the ball struck the paddle. depth
// is the distance below the paddle top.
func (s *BounceSystem) deflect(b *Ball, depth float32) {
	switch {
	case depth < zoneTop:
		b.Angle = float32(35 + s.Rand.IntN(20))
		b.DirY = 1
	case depth < zoneMiddle:
		b.Angle = float32(s.Rand.IntN(10))
	default:
		b.Angle = float32(35 + s.Rand.IntN(20))
		b.DirY = -1
	}
}

// ScoreSystem awards a point when the ball passes a goal line and resets
// the round. The first side to reach WinScore ends the match.
type ScoreSystem struct {
	Balls   ecs.Query[ballItem]
	Paddles ecs.Query[paddleItem]
	Match   ecs.Singleton[Match]
	Score   ecs.Singleton[Score]
	Result  ecs.Singleton[RoundResult]
	Sound   ecs.Singleton[audio.Queue]

	Config config.Pong
}

func (s *ScoreSystem) Execute(frame *ecs.UpdateFrame) {
	for b := range s.Balls.Values() {
		half := b.Collider.Size.X() / 2
		winner := Nobody
		switch {
		case b.Position.X()-half <= -GoalX:
			winner = Right
		case b.Position.X()+half >= GoalX:
			winner = Left
		default:
			continue
		}

		score := s.Score.Get()
		score.add(winner)
		result := s.Result.Get()
		*result = RoundResult{Round: result.Round + 1, Winner: winner, Score: *score}
		s.Sound.Get().Push(audio.CueScore)

		// the loser serves next
		*b.Ball = Ball{DirX: float32(winner.Opponent()), DirY: 1}
		b.Position = geom.Vec3{}
		b.Velocity = geom.Vec3{}
		for p := range s.Paddles.Values() {
			if p.CPU {
				p.Position[1] = PaddleHomeY
			}
		}

		m := s.Match.Get()
		if score.Of(winner) >= s.Config.WinScore {
			*m = Match{Phase: Over, Winner: winner}
		} else {
			*m = Match{Phase: Serving, Timer: s.Config.ServeDelay}
		}
	}
}
