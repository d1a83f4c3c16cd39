package skeleton

// RawJoint is a node of the editable skeleton tree.
type RawJoint struct {
	Name      string
	Transform Transform
	Children  []RawJoint
}

// RawSkeleton is the offline, editable form of a skeleton: a forest of
// joint trees that Build flattens into the runtime form.
type RawSkeleton struct {
	Roots []RawJoint
}

func (r *RawSkeleton) NumJoints() int {
	count := 0
	var walk func(joints []RawJoint)
	walk = func(joints []RawJoint) {
		for i := range joints {
			count++
			walk(joints[i].Children)
		}
	}
	walk(r.Roots)
	return count
}
