package scroll

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
)

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func Decelerate(t float64) float64 { return 1 - (1-t)*(1-t) }

func Accelerate(t float64) float64 { return t * t }

func AccelerateDecelerate(t float64) float64 {
	return math.Cos((t+1)*math.Pi)/2 + 0.5
}

const springSamples = 120

// Spring samples a damped spring settling from 0 to 1. Under-damped
// springs overshoot; the store clamps whatever leaves [0, bound].
func Spring(frequency, damping float64) Easing {
	s := harmonica.NewSpring(harmonica.FPS(springSamples), frequency, damping)
	table := make([]float64, springSamples+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= springSamples; i++ {
		pos, vel = s.Update(pos, vel, 1)
		table[i] = pos
	}
	table[springSamples] = 1
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		x := t * springSamples
		i := int(x)
		return table[i] + (table[i+1]-table[i])*(x-float64(i))
	}
}

// EasingByName resolves a configured easing name. Empty means linear.
func EasingByName(name string) (Easing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return Linear, nil
	case "decelerate":
		return Decelerate, nil
	case "accelerate":
		return Accelerate, nil
	case "accelerate_decelerate", "ease":
		return AccelerateDecelerate, nil
	case "spring":
		return Spring(6, 0.6), nil
	default:
		return nil, fmt.Errorf("unknown easing %q", name)
	}
}
