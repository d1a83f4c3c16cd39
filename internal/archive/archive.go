// Package archive implements the tagged binary container animation and
// skeleton artifacts are stored in. Every file starts with a one-byte
// endianness marker; each record starts with a type tag and a version,
// so readers dispatch on the tag before decoding any payload.
package archive

import (
	"encoding/binary"
	"fmt"
)

// Record tags. The tag set is closed: readers must treat any other
// value as an unrecognized format.
const (
	TagRawSkeleton  = "ozz-raw_skeleton"
	TagSkeleton     = "ozz-skeleton"
	TagRawAnimation = "ozz-raw_animation"
	TagAnimation    = "ozz-animation"
)

// recordVersion is bumped when any payload layout changes.
const recordVersion uint32 = 1

const (
	markerBigEndian    byte = 0
	markerLittleEndian byte = 1
)

// NativeByteOrder reports the byte order of the running platform as a
// concrete little/big order.
func NativeByteOrder() binary.ByteOrder {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 1)
	if probe[0] == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// ResolveByteOrder maps an endianness mode ("native", "little" or
// "big") to a byte order. The mode is resolved once per run.
func ResolveByteOrder(mode string) (binary.ByteOrder, error) {
	switch mode {
	case "native", "":
		return NativeByteOrder(), nil
	case "little":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("invalid endianness mode %q", mode)
	}
}
