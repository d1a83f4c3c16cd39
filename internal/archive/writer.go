package archive

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"golang.org/x/image/math/f32"

	"github.com/neonkore/OZZAnimC/internal/anim"
	"github.com/neonkore/OZZAnimC/internal/skeleton"
)

// Writer serializes tagged records to a stream. The byte order is fixed
// at construction and recorded in the stream header. Write errors are
// sticky: the first one is kept and returned by every later call.
type Writer struct {
	w     io.Writer
	order binary.ByteOrder
	err   error
}

// NewWriter writes the endianness header and returns a record writer.
func NewWriter(w io.Writer, order binary.ByteOrder) (*Writer, error) {
	marker := markerBigEndian
	if order == binary.ByteOrder(binary.LittleEndian) {
		marker = markerLittleEndian
	}
	if _, err := w.Write([]byte{marker}); err != nil {
		return nil, fmt.Errorf("writing archive header: %w", err)
	}
	return &Writer{w: w, order: order}, nil
}

func (w *Writer) put(v any) {
	if w.err != nil {
		return
	}
	w.err = binary.Write(w.w, w.order, v)
}

func (w *Writer) putU16(v uint16)   { w.put(v) }
func (w *Writer) putU32(v uint32)   { w.put(v) }
func (w *Writer) putI16(v int16)    { w.put(v) }
func (w *Writer) putF32(v float32)  { w.put(math.Float32bits(v)) }
func (w *Writer) putVec3(v f32.Vec3) {
	w.putF32(v[0])
	w.putF32(v[1])
	w.putF32(v[2])
}
func (w *Writer) putVec4(v f32.Vec4) {
	w.putF32(v[0])
	w.putF32(v[1])
	w.putF32(v[2])
	w.putF32(v[3])
}

func (w *Writer) putString(s string) {
	if w.err == nil && len(s) > math.MaxUint16 {
		w.err = fmt.Errorf("string of %d bytes exceeds the archive limit of %d", len(s), math.MaxUint16)
		return
	}
	w.putU16(uint16(len(s)))
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *Writer) putTag(tag string) {
	w.putString(tag)
	w.putU32(recordVersion)
}

func (w *Writer) putTransform(t skeleton.Transform) {
	w.putVec3(t.Translation)
	w.putVec4(t.Rotation)
	w.putVec3(t.Scale)
}

// WriteRawAnimation appends a TagRawAnimation record.
func (w *Writer) WriteRawAnimation(a *anim.RawAnimation) error {
	w.putTag(TagRawAnimation)
	w.putString(a.Name)
	w.putF32(a.Duration)
	w.putU32(uint32(len(a.Tracks)))
	for i := range a.Tracks {
		track := &a.Tracks[i]
		w.putU32(uint32(len(track.Translations)))
		for _, k := range track.Translations {
			w.putF32(k.Time)
			w.putVec3(k.Value)
		}
		w.putU32(uint32(len(track.Rotations)))
		for _, k := range track.Rotations {
			w.putF32(k.Time)
			w.putVec4(k.Value)
		}
		w.putU32(uint32(len(track.Scales)))
		for _, k := range track.Scales {
			w.putF32(k.Time)
			w.putVec3(k.Value)
		}
	}
	return w.err
}

// WriteAnimation appends a TagAnimation record.
func (w *Writer) WriteAnimation(a *anim.Animation) error {
	w.putTag(TagAnimation)
	w.putString(a.Name)
	w.putF32(a.Duration)
	w.putU32(uint32(a.NumTracks))
	w.putU32(uint32(len(a.TranslationKeys)))
	for _, k := range a.TranslationKeys {
		w.putF32(k.Ratio)
		w.putU16(k.Track)
		w.putVec3(k.Value)
	}
	w.putU32(uint32(len(a.RotationKeys)))
	for _, k := range a.RotationKeys {
		w.putF32(k.Ratio)
		w.putU16(k.Track)
		w.putVec4(k.Value)
	}
	w.putU32(uint32(len(a.ScaleKeys)))
	for _, k := range a.ScaleKeys {
		w.putF32(k.Ratio)
		w.putU16(k.Track)
		w.putVec3(k.Value)
	}
	return w.err
}

// WriteSkeleton appends a TagSkeleton record.
func (w *Writer) WriteSkeleton(s *skeleton.Skeleton) error {
	w.putTag(TagSkeleton)
	w.putU32(uint32(s.NumJoints()))
	for _, name := range s.JointNames() {
		w.putString(name)
	}
	for _, p := range s.Parents() {
		w.putI16(p)
	}
	for _, t := range s.BindPose() {
		w.putTransform(t)
	}
	return w.err
}

// WriteRawSkeleton appends a TagRawSkeleton record, preserving the
// joint tree shape.
func (w *Writer) WriteRawSkeleton(s *skeleton.RawSkeleton) error {
	w.putTag(TagRawSkeleton)
	w.putJoints(s.Roots)
	return w.err
}

func (w *Writer) putJoints(joints []skeleton.RawJoint) {
	w.putU32(uint32(len(joints)))
	for i := range joints {
		w.putString(joints[i].Name)
		w.putTransform(joints[i].Transform)
		w.putJoints(joints[i].Children)
	}
}
