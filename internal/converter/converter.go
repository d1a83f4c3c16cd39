// Package converter orchestrates a conversion run: configuration
// sanitization, skeleton and animation import, and the per-clip export
// pipeline.
package converter

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/tidwall/pretty"

	"github.com/neonkore/OZZAnimC/internal/anim"
	"github.com/neonkore/OZZAnimC/internal/archive"
	"github.com/neonkore/OZZAnimC/internal/config"
	"github.com/neonkore/OZZAnimC/internal/importer"
	"github.com/neonkore/OZZAnimC/internal/logger"
	"github.com/neonkore/OZZAnimC/internal/skeleton"
	"github.com/neonkore/OZZAnimC/internal/system"
)

// Converter runs one conversion. All collaborators are injected at
// construction; the run is strictly sequential and every stage
// completes before the next begins.
type Converter struct {
	cfg   *config.Config
	imp   importer.Importer
	log   logger.Logger
	order binary.ByteOrder
}

func New(cfg *config.Config, imp importer.Importer, log logger.Logger) *Converter {
	return &Converter{cfg: cfg, imp: imp, log: log}
}

// Run executes the conversion state machine. Configuration, skeleton
// and animation import failures abort the whole run before any export;
// a failed export aborts only its clip, and the run fails if any export
// failed.
func (c *Converter) Run() error {
	doc, err := c.cfg.Document()
	if err != nil {
		return fmt.Errorf("error while parsing configuration: %w", err)
	}
	c.log.Debug("configuration", "document", doc)

	sanitized, err := config.Sanitize(doc)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	c.log.Debug("sanitized configuration", "document", string(pretty.Pretty([]byte(sanitized))))

	animConfigs, err := config.DecodeAnimations(sanitized)
	if err != nil {
		return err
	}
	if len(animConfigs) == 0 {
		return fmt.Errorf("configuration contains no animation entries")
	}

	// Endianness is resolved once for the whole run.
	c.order, err = archive.ResolveByteOrder(c.cfg.Endian)
	if err != nil {
		return err
	}
	name := "big"
	if c.order == binary.ByteOrder(binary.LittleEndian) {
		name = "little"
	}
	c.log.Info("output binary format selected", "endian", name)

	if _, err := os.Stat(c.cfg.InputPath); err != nil {
		return fmt.Errorf("input file %q doesn't exist: %w", c.cfg.InputPath, err)
	}

	skel, err := c.ImportSkeleton(c.cfg.SkeletonPath)
	if err != nil {
		return err
	}

	c.log.Info("importing input file", "path", c.cfg.InputPath)
	clips, err := c.imp.Import(c.cfg.InputPath, skel, c.cfg.SamplingRate)
	if err != nil {
		return fmt.Errorf("failed to import %q: %w", c.cfg.InputPath, err)
	}

	// The first animation entry drives every imported clip; wildcard
	// output patterns keep multi-clip exports apart.
	animConfig := &animConfigs[0]
	if OutputSingleAnimation(animConfig.Output) && len(clips) > 1 {
		c.log.Warn("multiple animations found, only the first one will be exported",
			"count", len(clips), "kept", clips[0].Name)
		clips = clips[:1]
	}

	failed := 0
	for i := range clips {
		if err := c.Export(&clips[i], skel, animConfig); err != nil {
			c.log.Error("export failed", "clip", clips[i].Name, "err", err)
			failed++
		}
	}
	system.LogProcessStats(c.log)

	if failed > 0 {
		return fmt.Errorf("%d of %d animation exports failed", failed, len(clips))
	}
	return nil
}

// ImportSkeleton loads the run's skeleton from a tagged binary stream.
// The stream holds either a raw skeleton, which is built into the
// runtime form, or a runtime skeleton read directly; any other tag is
// an unrecognized format.
func (c *Converter) ImportSkeleton(path string) (*skeleton.Skeleton, error) {
	c.log.Info("opening input skeleton file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input skeleton file %q: %w", path, err)
	}
	defer f.Close()

	r, err := archive.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("skeleton file %q: %w", path, err)
	}
	tag, err := r.Tag()
	if err != nil {
		return nil, fmt.Errorf("skeleton file %q: %w", path, err)
	}
	switch tag {
	case archive.TagRawSkeleton:
		c.log.Info("reading raw skeleton", "path", path)
		raw, err := r.ReadRawSkeleton()
		if err != nil {
			return nil, err
		}
		c.log.Info("building runtime skeleton")
		skel, err := skeleton.Build(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to build runtime skeleton: %w", err)
		}
		return skel, nil
	case archive.TagSkeleton:
		c.log.Info("reading runtime skeleton", "path", path)
		return r.ReadSkeleton()
	default:
		return nil, fmt.Errorf("unrecognized skeleton format %q in %q", tag, path)
	}
}

// Export runs the per-animation pipeline: additive transform,
// optimization, compilation and serialization, in that order. The
// output file is only opened once every prior stage succeeded, so a
// failed stage never leaves a truncated artifact behind.
func (c *Converter) Export(clip *anim.RawAnimation, skel *skeleton.Skeleton, animConfig *config.Animation) error {
	working := clip

	if animConfig.Additive {
		c.log.Info("making additive animation", "clip", clip.Name)
		delta, err := anim.AdditiveBuilder{}.Build(working, skel.BindPose())
		if err != nil {
			return fmt.Errorf("failed to make additive animation: %w", err)
		}
		working = delta
	}

	if animConfig.Optimize {
		c.log.Info("optimizing animation", "clip", clip.Name)
		opt := anim.NewOptimizer()
		opt.TranslationTolerance = animConfig.Tolerances.Translation
		opt.RotationTolerance = animConfig.Tolerances.Rotation
		opt.ScaleTolerance = animConfig.Tolerances.Scale
		opt.HierarchicalTolerance = animConfig.Tolerances.Hierarchical
		optimized, err := opt.Optimize(working, skel)
		if err != nil {
			return fmt.Errorf("failed to optimize animation: %w", err)
		}
		stats := OptimizationStatistics(working, optimized)
		c.log.Info("optimization stage results",
			"translations_pct", stats.TranslationRatio,
			"rotations_pct", stats.RotationRatio,
			"scales_pct", stats.ScaleRatio)
		working = optimized
	}

	var compiled *anim.Animation
	if !animConfig.Raw {
		c.log.Info("building runtime animation", "clip", clip.Name)
		var err error
		compiled, err = anim.Builder{}.Build(working)
		if err != nil {
			return fmt.Errorf("failed to build runtime animation: %w", err)
		}
	}

	// The filename derives from the original clip name, not any
	// intermediate result.
	filename := BuildFilename(animConfig.Output, clip.Name)
	c.log.Info("opening output file", "path", filename)
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to open output file %q: %w", filename, err)
	}
	defer f.Close()

	w, err := archive.NewWriter(f, c.order)
	if err != nil {
		return err
	}
	if animConfig.Raw {
		c.log.Debug("writing raw animation record", "clip", clip.Name)
		err = w.WriteRawAnimation(working)
	} else {
		c.log.Debug("writing runtime animation record", "clip", clip.Name)
		err = w.WriteAnimation(compiled)
	}
	if err != nil {
		return fmt.Errorf("failed to write output file %q: %w", filename, err)
	}

	c.log.Info("animation binary archive written", "path", filename)
	return nil
}
