package archive

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"golang.org/x/image/math/f32"

	"github.com/neonkore/OZZAnimC/internal/anim"
	"github.com/neonkore/OZZAnimC/internal/skeleton"
)

// ErrUnexpectedTag is returned when a typed read meets a record of a
// different tag.
var ErrUnexpectedTag = errors.New("unexpected record tag")

// Reader decodes tagged records from a stream. Tag returns the next
// record's tag without consuming its payload, so callers dispatch on it
// before picking a typed read. Read errors are sticky.
type Reader struct {
	r          io.Reader
	order      binary.ByteOrder
	err        error
	pending    string
	hasPending bool
}

// NewReader consumes the endianness header and returns a record reader.
func NewReader(r io.Reader) (*Reader, error) {
	var marker [1]byte
	if _, err := io.ReadFull(r, marker[:]); err != nil {
		return nil, fmt.Errorf("reading archive header: %w", err)
	}
	var order binary.ByteOrder
	switch marker[0] {
	case markerLittleEndian:
		order = binary.LittleEndian
	case markerBigEndian:
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("invalid archive endianness marker 0x%02x", marker[0])
	}
	return &Reader{r: r, order: order}, nil
}

func (r *Reader) get(v any) {
	if r.err != nil {
		return
	}
	r.err = binary.Read(r.r, r.order, v)
}

func (r *Reader) getU16() uint16 {
	var v uint16
	r.get(&v)
	return v
}

func (r *Reader) getU32() uint32 {
	var v uint32
	r.get(&v)
	return v
}

func (r *Reader) getI16() int16 {
	var v int16
	r.get(&v)
	return v
}

func (r *Reader) getF32() float32 {
	var bits uint32
	r.get(&bits)
	return math.Float32frombits(bits)
}

func (r *Reader) getVec3() f32.Vec3 {
	return f32.Vec3{r.getF32(), r.getF32(), r.getF32()}
}

func (r *Reader) getVec4() f32.Vec4 {
	return f32.Vec4{r.getF32(), r.getF32(), r.getF32(), r.getF32()}
}

func (r *Reader) getString() string {
	n := r.getU16()
	if r.err != nil {
		return ""
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		r.err = err
		return ""
	}
	return string(buf)
}

func (r *Reader) getTransform() skeleton.Transform {
	return skeleton.Transform{
		Translation: r.getVec3(),
		Rotation:    r.getVec4(),
		Scale:       r.getVec3(),
	}
}

// Tag returns the tag of the next record. It returns io.EOF once the
// stream ends cleanly on a record boundary.
func (r *Reader) Tag() (string, error) {
	if r.hasPending {
		return r.pending, nil
	}
	if r.err != nil {
		return "", r.err
	}
	tag := r.getString()
	if r.err != nil {
		if errors.Is(r.err, io.EOF) {
			return "", io.EOF
		}
		return "", fmt.Errorf("reading record tag: %w", r.err)
	}
	if version := r.getU32(); r.err == nil && version != recordVersion {
		r.err = fmt.Errorf("unsupported record version %d for tag %q", version, tag)
	}
	if r.err != nil {
		return "", r.err
	}
	r.pending = tag
	r.hasPending = true
	return tag, nil
}

func (r *Reader) expect(tag string) error {
	found, err := r.Tag()
	if err != nil {
		return err
	}
	if found != tag {
		return fmt.Errorf("%w: found %q, %q expected", ErrUnexpectedTag, found, tag)
	}
	r.hasPending = false
	return nil
}

// ReadRawAnimation decodes a TagRawAnimation record.
func (r *Reader) ReadRawAnimation() (*anim.RawAnimation, error) {
	if err := r.expect(TagRawAnimation); err != nil {
		return nil, err
	}
	out := &anim.RawAnimation{
		Name:     r.getString(),
		Duration: r.getF32(),
	}
	out.Tracks = make([]anim.JointTrack, r.getU32())
	for i := range out.Tracks {
		track := &out.Tracks[i]
		if n := r.getU32(); n > 0 {
			track.Translations = make([]anim.TranslationKey, n)
			for k := range track.Translations {
				track.Translations[k] = anim.TranslationKey{Time: r.getF32(), Value: r.getVec3()}
			}
		}
		if n := r.getU32(); n > 0 {
			track.Rotations = make([]anim.RotationKey, n)
			for k := range track.Rotations {
				track.Rotations[k] = anim.RotationKey{Time: r.getF32(), Value: r.getVec4()}
			}
		}
		if n := r.getU32(); n > 0 {
			track.Scales = make([]anim.ScaleKey, n)
			for k := range track.Scales {
				track.Scales[k] = anim.ScaleKey{Time: r.getF32(), Value: r.getVec3()}
			}
		}
	}
	if r.err != nil {
		return nil, fmt.Errorf("decoding raw animation: %w", r.err)
	}
	return out, nil
}

// ReadAnimation decodes a TagAnimation record.
func (r *Reader) ReadAnimation() (*anim.Animation, error) {
	if err := r.expect(TagAnimation); err != nil {
		return nil, err
	}
	out := &anim.Animation{
		Name:     r.getString(),
		Duration: r.getF32(),
	}
	out.NumTracks = int(r.getU32())
	if n := r.getU32(); n > 0 {
		out.TranslationKeys = make([]anim.Float3Key, n)
		for k := range out.TranslationKeys {
			out.TranslationKeys[k] = anim.Float3Key{Ratio: r.getF32(), Track: r.getU16(), Value: r.getVec3()}
		}
	}
	if n := r.getU32(); n > 0 {
		out.RotationKeys = make([]anim.QuaternionKey, n)
		for k := range out.RotationKeys {
			out.RotationKeys[k] = anim.QuaternionKey{Ratio: r.getF32(), Track: r.getU16(), Value: r.getVec4()}
		}
	}
	if n := r.getU32(); n > 0 {
		out.ScaleKeys = make([]anim.Float3Key, n)
		for k := range out.ScaleKeys {
			out.ScaleKeys[k] = anim.Float3Key{Ratio: r.getF32(), Track: r.getU16(), Value: r.getVec3()}
		}
	}
	if r.err != nil {
		return nil, fmt.Errorf("decoding animation: %w", r.err)
	}
	return out, nil
}

// ReadSkeleton decodes a TagSkeleton record.
func (r *Reader) ReadSkeleton() (*skeleton.Skeleton, error) {
	if err := r.expect(TagSkeleton); err != nil {
		return nil, err
	}
	count := int(r.getU32())
	if r.err != nil {
		return nil, fmt.Errorf("decoding skeleton: %w", r.err)
	}
	names := make([]string, count)
	for i := range names {
		names[i] = r.getString()
	}
	parents := make([]int16, count)
	for i := range parents {
		parents[i] = r.getI16()
	}
	bindPose := make([]skeleton.Transform, count)
	for i := range bindPose {
		bindPose[i] = r.getTransform()
	}
	if r.err != nil {
		return nil, fmt.Errorf("decoding skeleton: %w", r.err)
	}
	return skeleton.New(names, parents, bindPose)
}

// ReadRawSkeleton decodes a TagRawSkeleton record.
func (r *Reader) ReadRawSkeleton() (*skeleton.RawSkeleton, error) {
	if err := r.expect(TagRawSkeleton); err != nil {
		return nil, err
	}
	roots := r.getJoints(0)
	if r.err != nil {
		return nil, fmt.Errorf("decoding raw skeleton: %w", r.err)
	}
	return &skeleton.RawSkeleton{Roots: roots}, nil
}

func (r *Reader) getJoints(depth int) []skeleton.RawJoint {
	if depth > skeleton.MaxJoints {
		r.err = fmt.Errorf("joint tree deeper than %d", skeleton.MaxJoints)
		return nil
	}
	count := int(r.getU32())
	if r.err != nil || count == 0 {
		return nil
	}
	if count > skeleton.MaxJoints {
		r.err = fmt.Errorf("joint list longer than %d", skeleton.MaxJoints)
		return nil
	}
	joints := make([]skeleton.RawJoint, count)
	for i := range joints {
		joints[i].Name = r.getString()
		joints[i].Transform = r.getTransform()
		joints[i].Children = r.getJoints(depth + 1)
	}
	return joints
}
