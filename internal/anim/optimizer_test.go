package anim

import (
	"testing"

	"golang.org/x/image/math/f32"

	"github.com/neonkore/OZZAnimC/internal/skeleton"
)

func singleJointSkeleton(t *testing.T) *skeleton.Skeleton {
	t.Helper()
	skel, err := skeleton.Build(&skeleton.RawSkeleton{
		Roots: []skeleton.RawJoint{{Name: "root", Transform: skeleton.Identity()}},
	})
	if err != nil {
		t.Fatalf("building skeleton: %v", err)
	}
	return skel
}

func TestOptimizeDropsInterpolableKeys(t *testing.T) {
	skel := singleJointSkeleton(t)
	clip := &RawAnimation{
		Name:     "walk",
		Duration: 1,
		Tracks: []JointTrack{{
			// The middle key sits exactly on the segment between its
			// neighbors.
			Translations: []TranslationKey{
				{Time: 0, Value: f32.Vec3{0, 0, 0}},
				{Time: 0.5, Value: f32.Vec3{0.5, 0, 0}},
				{Time: 1, Value: f32.Vec3{1, 0, 0}},
			},
		}},
	}

	opt := NewOptimizer()
	out, err := opt.Optimize(clip, skel)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if got := len(out.Tracks[0].Translations); got != 2 {
		t.Errorf("expected 2 translation keys after optimization, got %d", got)
	}
	// Endpoints survive untouched.
	if out.Tracks[0].Translations[0].Value != (f32.Vec3{0, 0, 0}) ||
		out.Tracks[0].Translations[1].Value != (f32.Vec3{1, 0, 0}) {
		t.Errorf("endpoint keys changed: %v", out.Tracks[0].Translations)
	}
}

func TestOptimizeKeepsSignificantKeys(t *testing.T) {
	skel := singleJointSkeleton(t)
	clip := &RawAnimation{
		Name:     "walk",
		Duration: 1,
		Tracks: []JointTrack{{
			Translations: []TranslationKey{
				{Time: 0, Value: f32.Vec3{0, 0, 0}},
				{Time: 0.5, Value: f32.Vec3{0.5, 1, 0}}, // 1m off the segment
				{Time: 1, Value: f32.Vec3{1, 0, 0}},
			},
		}},
	}

	out, err := NewOptimizer().Optimize(clip, skel)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if got := len(out.Tracks[0].Translations); got != 3 {
		t.Errorf("expected all 3 translation keys kept, got %d", got)
	}
}

func TestOptimizeRequiresSkeleton(t *testing.T) {
	clip := &RawAnimation{Name: "walk", Duration: 1, Tracks: make([]JointTrack, 1)}
	if _, err := NewOptimizer().Optimize(clip, nil); err == nil {
		t.Fatal("expected an error without a skeleton")
	}
}

func TestOptimizeTrackCountMismatch(t *testing.T) {
	skel := singleJointSkeleton(t)
	clip := &RawAnimation{Name: "walk", Duration: 1, Tracks: make([]JointTrack, 3)}
	if _, err := NewOptimizer().Optimize(clip, skel); err == nil {
		t.Fatal("expected an error for a track/joint count mismatch")
	}
}

func TestValidateRejectsBadClips(t *testing.T) {
	cases := []struct {
		name string
		clip RawAnimation
	}{
		{"zero duration", RawAnimation{Name: "x", Duration: 0}},
		{"unsorted keys", RawAnimation{
			Name: "x", Duration: 1,
			Tracks: []JointTrack{{Translations: []TranslationKey{
				{Time: 0.7}, {Time: 0.2},
			}}},
		}},
		{"key outside duration", RawAnimation{
			Name: "x", Duration: 1,
			Tracks: []JointTrack{{Scales: []ScaleKey{{Time: 2}}}},
		}},
	}
	for _, tc := range cases {
		if err := tc.clip.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
		}
	}
}
