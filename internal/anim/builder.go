package anim

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/image/math/f32"
)

// Float3Key is a packed vector key: time normalized to a [0, 1] ratio
// of the clip duration, plus the track it belongs to.
type Float3Key struct {
	Ratio float32
	Track uint16
	Value f32.Vec3
}

// QuaternionKey is a packed rotation key.
type QuaternionKey struct {
	Ratio float32
	Track uint16
	Value f32.Vec4
}

// Animation is the compiled runtime form: per-channel key streams
// flattened across tracks and sorted by ratio, ready for sequential
// sampling.
type Animation struct {
	Name            string
	Duration        float32
	NumTracks       int
	TranslationKeys []Float3Key
	RotationKeys    []QuaternionKey
	ScaleKeys       []Float3Key
}

// Builder compiles a valid RawAnimation into its runtime form.
type Builder struct{}

// Build validates the input then packs it. Every track contributes keys
// at ratios 0 and 1 so runtime sampling never extrapolates; empty
// channels are filled with the neutral value.
func (Builder) Build(input *RawAnimation) (*Animation, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if len(input.Tracks) > math.MaxUint16+1 {
		return nil, fmt.Errorf("animation %q has %d tracks, maximum is %d",
			input.Name, len(input.Tracks), math.MaxUint16+1)
	}

	out := &Animation{
		Name:      input.Name,
		Duration:  input.Duration,
		NumTracks: len(input.Tracks),
	}
	for i := range input.Tracks {
		track := &input.Tracks[i]
		ti := uint16(i)

		out.TranslationKeys = append(out.TranslationKeys, packVec3(
			track.Translations,
			func(k TranslationKey) (float32, f32.Vec3) { return k.Time, k.Value },
			f32.Vec3{0, 0, 0}, input.Duration, ti)...)
		out.RotationKeys = append(out.RotationKeys, packQuat(track.Rotations, input.Duration, ti)...)
		out.ScaleKeys = append(out.ScaleKeys, packVec3(
			track.Scales,
			func(k ScaleKey) (float32, f32.Vec3) { return k.Time, k.Value },
			f32.Vec3{1, 1, 1}, input.Duration, ti)...)
	}

	sortFloat3(out.TranslationKeys)
	sortFloat3(out.ScaleKeys)
	sort.SliceStable(out.RotationKeys, func(a, b int) bool {
		if out.RotationKeys[a].Ratio != out.RotationKeys[b].Ratio {
			return out.RotationKeys[a].Ratio < out.RotationKeys[b].Ratio
		}
		return out.RotationKeys[a].Track < out.RotationKeys[b].Track
	})
	return out, nil
}

func sortFloat3(keys []Float3Key) {
	sort.SliceStable(keys, func(a, b int) bool {
		if keys[a].Ratio != keys[b].Ratio {
			return keys[a].Ratio < keys[b].Ratio
		}
		return keys[a].Track < keys[b].Track
	})
}

func packVec3[K any](keys []K, get func(K) (float32, f32.Vec3), neutral f32.Vec3, duration float32, track uint16) []Float3Key {
	if len(keys) == 0 {
		return []Float3Key{
			{Ratio: 0, Track: track, Value: neutral},
			{Ratio: 1, Track: track, Value: neutral},
		}
	}
	out := make([]Float3Key, 0, len(keys)+2)
	firstTime, firstValue := get(keys[0])
	if firstTime > 0 {
		out = append(out, Float3Key{Ratio: 0, Track: track, Value: firstValue})
	}
	for _, k := range keys {
		t, v := get(k)
		out = append(out, Float3Key{Ratio: t / duration, Track: track, Value: v})
	}
	lastTime, lastValue := get(keys[len(keys)-1])
	if lastTime < duration {
		out = append(out, Float3Key{Ratio: 1, Track: track, Value: lastValue})
	}
	return out
}

func packQuat(keys []RotationKey, duration float32, track uint16) []QuaternionKey {
	identity := f32.Vec4{0, 0, 0, 1}
	if len(keys) == 0 {
		return []QuaternionKey{
			{Ratio: 0, Track: track, Value: identity},
			{Ratio: 1, Track: track, Value: identity},
		}
	}
	out := make([]QuaternionKey, 0, len(keys)+2)
	if keys[0].Time > 0 {
		out = append(out, QuaternionKey{Ratio: 0, Track: track, Value: keys[0].Value})
	}
	for _, k := range keys {
		out = append(out, QuaternionKey{Ratio: k.Time / duration, Track: track, Value: k.Value})
	}
	if last := keys[len(keys)-1]; last.Time < duration {
		out = append(out, QuaternionKey{Ratio: 1, Track: track, Value: last.Value})
	}
	return out
}
