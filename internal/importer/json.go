package importer

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/tidwall/gjson"

	"github.com/neonkore/OZZAnimC/internal/anim"
	"github.com/neonkore/OZZAnimC/internal/skeleton"
)

// JSONImporter reads clips from a JSON document, either a single clip
// object or {"animations": [...]}. Clips carry explicit keyframes; a
// positive sampling rate snaps key times onto the 1/rate grid so
// downstream tooling sees frame-aligned keys.
type JSONImporter struct{}

type jsonKey3 struct {
	Time  float64    `json:"time"`
	Value [3]float32 `json:"value"`
}

type jsonKey4 struct {
	Time  float64    `json:"time"`
	Value [4]float32 `json:"value"`
}

type jsonTrack struct {
	Translations []jsonKey3 `json:"translations"`
	Rotations    []jsonKey4 `json:"rotations"`
	Scales       []jsonKey3 `json:"scales"`
}

type jsonClip struct {
	Name     string      `json:"name"`
	Duration float64     `json:"duration"`
	Tracks   []jsonTrack `json:"tracks"`
}

func (JSONImporter) Import(path string, _ *skeleton.Skeleton, samplingRate float64) ([]anim.RawAnimation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading animation source: %w", err)
	}
	doc := string(data)
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("animation source %q is not valid JSON", path)
	}

	var raw []jsonClip
	if list := gjson.Get(doc, "animations"); list.Exists() {
		if err := json.Unmarshal([]byte(list.Raw), &raw); err != nil {
			return nil, fmt.Errorf("decoding animation list: %w", err)
		}
	} else {
		var single jsonClip
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("decoding animation: %w", err)
		}
		raw = []jsonClip{single}
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no animations found in %q", path)
	}

	clips := make([]anim.RawAnimation, len(raw))
	for i := range raw {
		clips[i] = convertClip(&raw[i], samplingRate)
	}
	return clips, nil
}

func convertClip(src *jsonClip, rate float64) anim.RawAnimation {
	out := anim.RawAnimation{
		Name:     src.Name,
		Duration: float32(src.Duration),
		Tracks:   make([]anim.JointTrack, len(src.Tracks)),
	}
	for i := range src.Tracks {
		track := &src.Tracks[i]
		dst := &out.Tracks[i]
		dst.Translations = make([]anim.TranslationKey, len(track.Translations))
		for k, key := range track.Translations {
			dst.Translations[k] = anim.TranslationKey{
				Time:  snapTime(key.Time, rate, src.Duration),
				Value: key.Value,
			}
		}
		dst.Rotations = make([]anim.RotationKey, len(track.Rotations))
		for k, key := range track.Rotations {
			dst.Rotations[k] = anim.RotationKey{
				Time:  snapTime(key.Time, rate, src.Duration),
				Value: key.Value,
			}
		}
		dst.Scales = make([]anim.ScaleKey, len(track.Scales))
		for k, key := range track.Scales {
			dst.Scales[k] = anim.ScaleKey{
				Time:  snapTime(key.Time, rate, src.Duration),
				Value: key.Value,
			}
		}
	}
	return out
}

func snapTime(t, rate, duration float64) float32 {
	if rate > 0 {
		t = math.Round(t*rate) / rate
	}
	if t < 0 {
		t = 0
	}
	if t > duration {
		t = duration
	}
	return float32(t)
}
