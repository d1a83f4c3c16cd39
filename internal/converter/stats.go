package converter

import "github.com/neonkore/OZZAnimC/internal/anim"

// Statistics holds the per-channel keyframe reduction of an
// optimization pass, as percentages.
type Statistics struct {
	TranslationRatio float64
	RotationRatio    float64
	ScaleRatio       float64
}

// OptimizationStatistics compares keyframe counts before and after
// optimization.
func OptimizationStatistics(before, after *anim.RawAnimation) Statistics {
	bt, br, bs := before.KeyCount()
	at, ar, as := after.KeyCount()
	return Statistics{
		TranslationRatio: reduction(bt, at),
		RotationRatio:    reduction(br, ar),
		ScaleRatio:       reduction(bs, as),
	}
}

// reduction is 100*(before-after)/before, 0 when there was nothing to
// optimize.
func reduction(before, after int) float64 {
	if before == 0 {
		return 0
	}
	return 100 * float64(before-after) / float64(before)
}
