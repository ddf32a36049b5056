package animator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// EasingFunc maps linear progress k in [0,1] onto eased progress. The result may
// overshoot [0,1] for the Elastic and Back families.
type EasingFunc func(k float64) float64

// DefaultEasing is the easing name used when a transition does not specify one.
const DefaultEasing = "Linear"

const backOvershoot = 1.70158

func linear(k float64) float64 { return k }

// inOut builds the symmetric InOut variant from an In curve.
func inOut(in EasingFunc) EasingFunc {
	return func(k float64) float64 {
		if k < 0.5 {
			return in(k*2) * 0.5
		}
		return 1 - in((1-k)*2)*0.5
	}
}

// out builds the Out variant by mirroring an In curve.
func out(in EasingFunc) EasingFunc {
	return func(k float64) float64 {
		return 1 - in(1-k)
	}
}

func power(n float64) EasingFunc {
	return func(k float64) float64 { return math.Pow(k, n) }
}

func sinusoidalIn(k float64) float64 {
	return 1 - math.Cos(k*math.Pi/2)
}

func exponentialIn(k float64) float64 {
	if k == 0 {
		return 0
	}
	return math.Pow(1024, k-1)
}

func circularIn(k float64) float64 {
	return 1 - math.Sqrt(1-k*k)
}

func elasticIn(k float64) float64 {
	if k == 0 || k == 1 {
		return k
	}
	return -math.Pow(2, 10*(k-1)) * math.Sin((k-1.1)*5*math.Pi)
}

func backIn(k float64) float64 {
	return k * k * ((backOvershoot+1)*k - backOvershoot)
}

// backInOut uses the larger overshoot of the tween.js curve rather than the mirrored In.
func backInOut(k float64) float64 {
	s := backOvershoot * 1.525
	k *= 2
	if k < 1 {
		return 0.5 * (k * k * ((s+1)*k - s))
	}
	k -= 2
	return 0.5 * (k*k*((s+1)*k+s) + 2)
}

func bounceOut(k float64) float64 {
	switch {
	case k < 1/2.75:
		return 7.5625 * k * k
	case k < 2/2.75:
		k -= 1.5 / 2.75
		return 7.5625*k*k + 0.75
	case k < 2.5/2.75:
		k -= 2.25 / 2.75
		return 7.5625*k*k + 0.9375
	default:
		k -= 2.625 / 2.75
		return 7.5625*k*k + 0.984375
	}
}

func bounceIn(k float64) float64 {
	return 1 - bounceOut(1-k)
}

// easings is the name table, keyed by "<Family>.<Variant>".
var easings = func() map[string]EasingFunc {
	table := map[string]EasingFunc{
		"Linear":      linear,
		"Linear.None": linear,
	}
	families := map[string]EasingFunc{
		"Quadratic":   power(2),
		"Cubic":       power(3),
		"Quartic":     power(4),
		"Quintic":     power(5),
		"Sinusoidal":  sinusoidalIn,
		"Exponential": exponentialIn,
		"Circular":    circularIn,
		"Elastic":     elasticIn,
		"Back":        backIn,
		"Bounce":      bounceIn,
	}
	for name, in := range families {
		table[name+".In"] = in
		table[name+".Out"] = out(in)
		table[name+".InOut"] = inOut(in)
	}
	table["Back.InOut"] = backInOut
	return table
}()

// EasingNames returns every accepted easing name in sorted order.
//
// Returns:
//   - []string: the easing names
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveEasing looks up an easing curve by name. An empty name resolves to DefaultEasing.
// Unknown names produce an error naming the closest known easing.
//
// Parameters:
//   - name: the easing name, for example "Quadratic.InOut"
//
// Returns:
//   - EasingFunc: the easing curve
//   - error: an error if the name is unknown
func ResolveEasing(name string) (EasingFunc, error) {
	if name == "" {
		name = DefaultEasing
	}
	if fn, ok := easings[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown easing %q, did you mean %q?", name, closestEasing(name))
}

// closestEasing returns the known easing name with the smallest case-insensitive edit distance to name.
func closestEasing(name string) string {
	target := strings.ToLower(name)
	best, bestDist := DefaultEasing, math.MaxInt
	for _, candidate := range EasingNames() {
		d := levenshtein.ComputeDistance(target, strings.ToLower(candidate))
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
