package importer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/neonkore/OZZAnimC/internal/anim"
	"github.com/neonkore/OZZAnimC/internal/archive"
	"github.com/neonkore/OZZAnimC/internal/skeleton"
)

// ArchiveImporter reads consecutive raw animation records from a
// tagged binary archive. Clips keep their authored keyframes, so the
// sampling rate does not apply here.
type ArchiveImporter struct{}

func (ArchiveImporter) Import(path string, _ *skeleton.Skeleton, _ float64) ([]anim.RawAnimation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening animation archive: %w", err)
	}
	defer f.Close()

	r, err := archive.NewReader(f)
	if err != nil {
		return nil, err
	}

	var clips []anim.RawAnimation
	for {
		tag, err := r.Tag()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if tag != archive.TagRawAnimation {
			return nil, fmt.Errorf("unexpected record %q in animation archive %q", tag, path)
		}
		clip, err := r.ReadRawAnimation()
		if err != nil {
			return nil, err
		}
		clips = append(clips, *clip)
	}
	if len(clips) == 0 {
		return nil, fmt.Errorf("no animations found in %q", path)
	}
	return clips, nil
}
