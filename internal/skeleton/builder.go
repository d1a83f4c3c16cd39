package skeleton

import "fmt"

// New assembles a runtime skeleton from flattened joint data. The
// slices must have the same length and parents must appear before their
// children.
func New(names []string, parents []int16, bindPose []Transform) (*Skeleton, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("skeleton has no joints")
	}
	if len(parents) != len(names) || len(bindPose) != len(names) {
		return nil, fmt.Errorf("inconsistent joint data: %d names, %d parents, %d bind transforms",
			len(names), len(parents), len(bindPose))
	}
	if len(names) > MaxJoints {
		return nil, fmt.Errorf("skeleton has %d joints, maximum is %d", len(names), MaxJoints)
	}
	for i, p := range parents {
		if p != NoParent && (p < 0 || int(p) >= i) {
			return nil, fmt.Errorf("joint %d has invalid parent index %d", i, p)
		}
	}
	return &Skeleton{names: names, parents: parents, bindPose: bindPose}, nil
}

// Build flattens a raw skeleton tree into the runtime form, depth-first
// with parents before children.
func Build(raw *RawSkeleton) (*Skeleton, error) {
	if raw == nil || len(raw.Roots) == 0 {
		return nil, fmt.Errorf("raw skeleton is empty")
	}
	count := raw.NumJoints()
	if count > MaxJoints {
		return nil, fmt.Errorf("raw skeleton has %d joints, maximum is %d", count, MaxJoints)
	}

	names := make([]string, 0, count)
	parents := make([]int16, 0, count)
	bindPose := make([]Transform, 0, count)

	var walk func(joints []RawJoint, parent int16)
	walk = func(joints []RawJoint, parent int16) {
		for i := range joints {
			index := int16(len(names))
			names = append(names, joints[i].Name)
			parents = append(parents, parent)
			bindPose = append(bindPose, joints[i].Transform)
			walk(joints[i].Children, index)
		}
	}
	walk(raw.Roots, NoParent)

	return New(names, parents, bindPose)
}
