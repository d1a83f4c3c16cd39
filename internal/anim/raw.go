// Package anim holds the offline animation model and the transforms
// the export pipeline runs on it: additive delta extraction, keyframe
// optimization and runtime compilation.
package anim

import (
	"fmt"

	"golang.org/x/image/math/f32"
)

// TranslationKey is a timed translation sample, in meters.
type TranslationKey struct {
	Time  float32
	Value f32.Vec3
}

// RotationKey is a timed rotation sample, a quaternion (x, y, z, w).
type RotationKey struct {
	Time  float32
	Value f32.Vec4
}

// ScaleKey is a timed per-axis scale sample.
type ScaleKey struct {
	Time  float32
	Value f32.Vec3
}

// JointTrack groups the three keyframe channels of one joint.
type JointTrack struct {
	Translations []TranslationKey
	Rotations    []RotationKey
	Scales       []ScaleKey
}

// RawAnimation is the uncompressed, editable animation form. Tracks are
// indexed like the joints of the skeleton the clip animates.
type RawAnimation struct {
	Name     string
	Duration float32 // seconds
	Tracks   []JointTrack
}

// Validate checks that the clip has a positive duration and that every
// channel's key times are sorted and stay within [0, duration].
func (a *RawAnimation) Validate() error {
	if a.Duration <= 0 {
		return fmt.Errorf("animation %q has non-positive duration %v", a.Name, a.Duration)
	}
	for i := range a.Tracks {
		track := &a.Tracks[i]
		if err := validateTimes(len(track.Translations), func(k int) float32 { return track.Translations[k].Time }, a.Duration); err != nil {
			return fmt.Errorf("animation %q track %d translations: %w", a.Name, i, err)
		}
		if err := validateTimes(len(track.Rotations), func(k int) float32 { return track.Rotations[k].Time }, a.Duration); err != nil {
			return fmt.Errorf("animation %q track %d rotations: %w", a.Name, i, err)
		}
		if err := validateTimes(len(track.Scales), func(k int) float32 { return track.Scales[k].Time }, a.Duration); err != nil {
			return fmt.Errorf("animation %q track %d scales: %w", a.Name, i, err)
		}
	}
	return nil
}

func validateTimes(n int, at func(int) float32, duration float32) error {
	prev := float32(0)
	for k := 0; k < n; k++ {
		t := at(k)
		if t < 0 || t > duration {
			return fmt.Errorf("key %d time %v outside [0, %v]", k, t, duration)
		}
		if k > 0 && t < prev {
			return fmt.Errorf("key %d time %v breaks ordering", k, t)
		}
		prev = t
	}
	return nil
}

// KeyCount sums keyframes per channel across all tracks.
func (a *RawAnimation) KeyCount() (translations, rotations, scales int) {
	for i := range a.Tracks {
		translations += len(a.Tracks[i].Translations)
		rotations += len(a.Tracks[i].Rotations)
		scales += len(a.Tracks[i].Scales)
	}
	return translations, rotations, scales
}
