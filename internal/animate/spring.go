package animate

import (
	"math"

	"dragsort/internal/domain"

	"github.com/charmbracelet/harmonica"
	"golang.org/x/net/html"
)

// Default spring parameters
const (
	DefaultFPS       = 60
	DefaultFrequency = 8.0
	DefaultDamping   = 1.0
)

// settled is how close, in probe units, position and velocity must be to
// rest before an animation counts as finished
const settled = 0.05

// SpringConfig tunes the spring
type SpringConfig struct {
	FPS       int
	Frequency float64
	Damping   float64
}

type tween struct {
	id       uint64
	node     *html.Node
	pos, vel domain.Point
	to       domain.Point
	done     func()
}

// Spring eases offsets with a damped harmonic oscillator. The host calls
// Step once per frame while Active reports true.
type Spring struct {
	*Transforms
	spring harmonica.Spring
	fps    int
	tweens []*tween
	nextID uint64
}

// NewSpring creates a spring animator. Zero fields in cfg take defaults.
func NewSpring(cfg SpringConfig) *Spring {
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.Frequency <= 0 {
		cfg.Frequency = DefaultFrequency
	}
	if cfg.Damping <= 0 {
		cfg.Damping = DefaultDamping
	}
	return &Spring{
		Transforms: NewTransforms(),
		spring:     harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.Frequency, cfg.Damping),
		fps:        cfg.FPS,
	}
}

// FPS returns the frame rate Step is tuned for
func (s *Spring) FPS() int {
	return s.fps
}

// Active reports whether any animation is running
func (s *Spring) Active() bool {
	return len(s.tweens) > 0
}

// Set implements Animator
func (s *Spring) Set(n *html.Node, offset domain.Point) {
	s.drop(n)
	s.put(n, offset)
}

// Animate implements Animator
func (s *Spring) Animate(n *html.Node, from, to domain.Point, done func()) func() {
	s.drop(n)
	s.put(n, from)
	s.nextID++
	tw := &tween{id: s.nextID, node: n, pos: from, to: to, done: done}
	s.tweens = append(s.tweens, tw)
	return func() { s.remove(tw.id) }
}

// Step advances every animation by one frame and runs the done callbacks
// of those that came to rest.
func (s *Spring) Step() {
	var finished []*tween
	running := s.tweens[:0]
	for _, tw := range s.tweens {
		tw.pos.X, tw.vel.X = s.spring.Update(tw.pos.X, tw.vel.X, tw.to.X)
		tw.pos.Y, tw.vel.Y = s.spring.Update(tw.pos.Y, tw.vel.Y, tw.to.Y)
		if atRest(tw) {
			s.put(tw.node, tw.to)
			finished = append(finished, tw)
			continue
		}
		s.put(tw.node, tw.pos)
		running = append(running, tw)
	}
	for i := len(running); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = running

	for _, tw := range finished {
		if tw.done != nil {
			tw.done()
		}
	}
}

func atRest(tw *tween) bool {
	return math.Abs(tw.pos.X-tw.to.X) < settled && math.Abs(tw.pos.Y-tw.to.Y) < settled &&
		math.Abs(tw.vel.X) < settled && math.Abs(tw.vel.Y) < settled
}

func (s *Spring) drop(n *html.Node) {
	kept := s.tweens[:0]
	for _, tw := range s.tweens {
		if tw.node != n {
			kept = append(kept, tw)
		}
	}
	for i := len(kept); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = kept
}

func (s *Spring) remove(id uint64) {
	for i, tw := range s.tweens {
		if tw.id == id {
			s.tweens = append(s.tweens[:i], s.tweens[i+1:]...)
			return
		}
	}
}
