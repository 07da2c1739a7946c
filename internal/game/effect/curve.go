package effect

import "sort"

// CurveKey is one keyframe of a value-over-time curve.
// T is normalized progress in [0,1], Value is the magnitude scale at T.
type CurveKey struct {
	T     float64
	Value float64
}

// Curve maps normalized effect progress [0,1] to a magnitude scale.
// Keys are interpolated linearly; samples outside the key range clamp
// to the first/last key. A degenerate curve (fewer than two distinct
// keys) always samples 1.0 so the payload base value passes through
// unscaled.
type Curve struct {
	keys []CurveKey
}

// NewCurve builds a curve from keyframes. Keys are copied and sorted
// by T, so callers may reuse or mutate their slice afterwards.
func NewCurve(keys ...CurveKey) *Curve {
	ks := make([]CurveKey, len(keys))
	copy(ks, keys)
	sort.Slice(ks, func(i, j int) bool { return ks[i].T < ks[j].T })
	return &Curve{keys: ks}
}

// Sample returns the magnitude scale at normalized progress t.
func (c *Curve) Sample(t float64) float64 {
	if c == nil || len(c.keys) == 0 {
		return 1.0
	}
	if len(c.keys) == 1 {
		return c.keys[0].Value
	}

	first := c.keys[0]
	last := c.keys[len(c.keys)-1]
	if last.T == first.T {
		// Zero-length span, fall back to unscaled
		return 1.0
	}
	if t <= first.T {
		return first.Value
	}
	if t >= last.T {
		return last.Value
	}

	for i := 1; i < len(c.keys); i++ {
		a, b := c.keys[i-1], c.keys[i]
		if t > b.T {
			continue
		}
		span := b.T - a.T
		if span == 0 {
			return b.Value
		}
		frac := (t - a.T) / span
		return a.Value + (b.Value-a.Value)*frac
	}
	return last.Value
}
