package anim

import (
	"fmt"

	"github.com/neonkore/OZZAnimC/internal/skeleton"
)

// AdditiveBuilder rewrites a clip as a delta against a reference pose so
// it can be layered onto another animation at runtime.
type AdditiveBuilder struct{}

// Build returns a new clip whose keys express each joint transform
// relative to reference[i]. Joints past the end of reference fall back
// to the track's first keyframe as reference, which turns the first
// frame into the neutral pose.
func (AdditiveBuilder) Build(input *RawAnimation, reference []skeleton.Transform) (*RawAnimation, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	out := &RawAnimation{
		Name:     input.Name,
		Duration: input.Duration,
		Tracks:   make([]JointTrack, len(input.Tracks)),
	}
	for i := range input.Tracks {
		track := &input.Tracks[i]

		ref := skeleton.Identity()
		if i < len(reference) {
			ref = reference[i]
		} else {
			if len(track.Translations) > 0 {
				ref.Translation = track.Translations[0].Value
			}
			if len(track.Rotations) > 0 {
				ref.Rotation = track.Rotations[0].Value
			}
			if len(track.Scales) > 0 {
				ref.Scale = track.Scales[0].Value
			}
		}
		if ref.Scale[0] == 0 || ref.Scale[1] == 0 || ref.Scale[2] == 0 {
			return nil, fmt.Errorf("joint %d has a zero reference scale component", i)
		}
		refConj := quatConjugate(quatNormalize(ref.Rotation))

		dst := &out.Tracks[i]
		dst.Translations = make([]TranslationKey, len(track.Translations))
		for k, key := range track.Translations {
			dst.Translations[k] = TranslationKey{
				Time: key.Time,
				Value: [3]float32{
					key.Value[0] - ref.Translation[0],
					key.Value[1] - ref.Translation[1],
					key.Value[2] - ref.Translation[2],
				},
			}
		}
		dst.Rotations = make([]RotationKey, len(track.Rotations))
		for k, key := range track.Rotations {
			dst.Rotations[k] = RotationKey{
				Time:  key.Time,
				Value: quatNormalize(quatMul(refConj, key.Value)),
			}
		}
		dst.Scales = make([]ScaleKey, len(track.Scales))
		for k, key := range track.Scales {
			dst.Scales[k] = ScaleKey{
				Time: key.Time,
				Value: [3]float32{
					key.Value[0] / ref.Scale[0],
					key.Value[1] / ref.Scale[1],
					key.Value[2] / ref.Scale[2],
				},
			}
		}
	}
	return out, nil
}
