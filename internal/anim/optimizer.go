package anim

import (
	"fmt"
	"math"

	"github.com/neonkore/OZZAnimC/internal/skeleton"
)

// Optimizer removes keyframes that can be rebuilt by interpolating
// their neighbors within per-channel tolerances.
type Optimizer struct {
	// TranslationTolerance is the distance between two translation
	// values, in meters.
	TranslationTolerance float64
	// RotationTolerance is the angle between two rotation values, in
	// radians.
	RotationTolerance float64
	// ScaleTolerance is the norm of the difference of two scales.
	ScaleTolerance float64
	// HierarchicalTolerance is the maximum error that an optimization
	// on a joint is allowed to generate over its whole child hierarchy,
	// in meters.
	HierarchicalTolerance float64
}

// NewOptimizer returns an optimizer with the built-in tolerances the
// configuration schema also defaults to.
func NewOptimizer() *Optimizer {
	return &Optimizer{
		TranslationTolerance:  1e-3,
		RotationTolerance:     0.1 * math.Pi / 180,
		ScaleTolerance:        1e-3,
		HierarchicalTolerance: 1e-3,
	}
}

// Optimize returns a decimated copy of the input clip. The skeleton is
// required: hierarchical tolerance tightens translation decimation on
// joints according to the depth of the hierarchy below them.
func (o *Optimizer) Optimize(input *RawAnimation, skel *skeleton.Skeleton) (*RawAnimation, error) {
	if skel == nil {
		return nil, fmt.Errorf("optimizer requires a skeleton")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if len(input.Tracks) != skel.NumJoints() {
		return nil, fmt.Errorf("animation %q has %d tracks for a %d joint skeleton",
			input.Name, len(input.Tracks), skel.NumJoints())
	}

	depths := hierarchyDepths(skel.Parents())

	out := &RawAnimation{
		Name:     input.Name,
		Duration: input.Duration,
		Tracks:   make([]JointTrack, len(input.Tracks)),
	}
	for i := range input.Tracks {
		track := &input.Tracks[i]

		// The deeper the hierarchy below a joint, the more a
		// translation error amplifies; cap it with the hierarchical
		// tolerance spread over that depth.
		translationTolerance := o.TranslationTolerance
		if depths[i] > 0 {
			if h := o.HierarchicalTolerance / float64(depths[i]); h < translationTolerance {
				translationTolerance = h
			}
		}

		out.Tracks[i].Translations = decimate(track.Translations,
			func(k TranslationKey) float32 { return k.Time },
			func(a, b TranslationKey, t float32) TranslationKey {
				return TranslationKey{Value: lerpVec3(a.Value, b.Value, t)}
			},
			func(a, b TranslationKey) float64 { return distVec3(a.Value, b.Value) },
			translationTolerance)
		out.Tracks[i].Rotations = decimate(track.Rotations,
			func(k RotationKey) float32 { return k.Time },
			func(a, b RotationKey, t float32) RotationKey {
				return RotationKey{Value: quatNlerp(a.Value, b.Value, t)}
			},
			func(a, b RotationKey) float64 { return quatAngle(a.Value, b.Value) },
			o.RotationTolerance)
		out.Tracks[i].Scales = decimate(track.Scales,
			func(k ScaleKey) float32 { return k.Time },
			func(a, b ScaleKey, t float32) ScaleKey {
				return ScaleKey{Value: lerpVec3(a.Value, b.Value, t)}
			},
			func(a, b ScaleKey) float64 { return distVec3(a.Value, b.Value) },
			o.ScaleTolerance)
	}
	return out, nil
}

// hierarchyDepths returns, per joint, the length of the longest chain
// below it. Joints are ordered parents-first so one reverse pass is
// enough.
func hierarchyDepths(parents []int16) []int {
	depths := make([]int, len(parents))
	for i := len(parents) - 1; i >= 0; i-- {
		if p := parents[i]; p != skeleton.NoParent {
			if depths[p] < depths[i]+1 {
				depths[p] = depths[i] + 1
			}
		}
	}
	return depths
}

// decimate keeps the first and last keys and drops every middle key
// whose value can be rebuilt, within tolerance, by interpolating the
// previously kept key and its successor.
func decimate[K any](keys []K, time func(K) float32, interp func(a, b K, t float32) K, dist func(a, b K) float64, tolerance float64) []K {
	if len(keys) <= 2 {
		out := make([]K, len(keys))
		copy(out, keys)
		return out
	}
	out := make([]K, 0, len(keys))
	out = append(out, keys[0])
	for i := 1; i < len(keys)-1; i++ {
		prev := out[len(out)-1]
		next := keys[i+1]
		span := time(next) - time(prev)
		alpha := float32(0)
		if span > 0 {
			alpha = (time(keys[i]) - time(prev)) / span
		}
		if dist(keys[i], interp(prev, next, alpha)) > tolerance {
			out = append(out, keys[i])
		}
	}
	return append(out, keys[len(keys)-1])
}
