package scroll

import (
	"time"

	"go.uber.org/zap"
)

// Config tunes a Container. Zero values take the defaults below.
type Config struct {
	// MaxScroll is the bound. Ignored once AutoMaxScroll measures a child.
	MaxScroll int
	// AutoMaxScroll takes the bound from the height of AutoMaxScrollChild,
	// or of the first child when the name is empty.
	AutoMaxScroll      bool
	AutoMaxScrollChild string

	Friction float64
	Flywheel bool
	// Density scales distances, 1 meaning 160 units per inch.
	Density float64

	TouchSlop        float64 // units
	MinFlingVelocity float64 // units per second
	MinFlingDistance float64 // units

	ConsiderIdle    time.Duration
	CloseUpDuration DurationFunc
	CloseUpEasing   Easing
	CloseUp         CloseUpPolicy

	// MaxPull sizes the overscroll range; defaults to half the bound.
	MaxPull       MaxPullFunc
	RelaxDuration time.Duration

	Logger *zap.Logger
	Clock  func() time.Time
}

const (
	defaultTouchSlop        = 8
	defaultMinFlingVelocity = 50
	defaultMinFlingDistance = 12
)

func (c Config) withDefaults() Config {
	if c.MaxScroll < 0 {
		c.MaxScroll = 0
	}
	if c.Density <= 0 {
		c.Density = 1
	}
	if c.Friction <= 0 {
		c.Friction = DefaultFriction
	}
	if c.TouchSlop <= 0 {
		c.TouchSlop = defaultTouchSlop * c.Density
	}
	if c.MinFlingVelocity <= 0 {
		c.MinFlingVelocity = defaultMinFlingVelocity * c.Density
	}
	if c.MinFlingDistance <= 0 {
		c.MinFlingDistance = defaultMinFlingDistance * c.Density
	}
	if c.ConsiderIdle <= 0 {
		c.ConsiderIdle = DefaultConsiderIdle
	}
	if c.CloseUpDuration == nil {
		c.CloseUpDuration = FixedDuration(DefaultCloseUpDuration)
	}
	if c.CloseUpEasing == nil {
		c.CloseUpEasing = Linear
	}
	if c.MaxPull == nil {
		c.MaxPull = BoundDivisor(2)
	}
	if c.RelaxDuration <= 0 {
		c.RelaxDuration = DefaultRelaxDuration
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	return c
}
