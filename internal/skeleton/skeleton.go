package skeleton

import "golang.org/x/image/math/f32"

// NoParent marks root joints in the flattened hierarchy.
const NoParent int16 = -1

// MaxJoints bounds the flattened hierarchy so parent indices fit in
// compiled key streams.
const MaxJoints = 1024

// Transform is an affine joint transform split into its three channels.
type Transform struct {
	Translation f32.Vec3
	Rotation    f32.Vec4 // quaternion x, y, z, w
	Scale       f32.Vec3
}

// Identity returns the neutral joint transform.
func Identity() Transform {
	return Transform{
		Rotation: f32.Vec4{0, 0, 0, 1},
		Scale:    f32.Vec3{1, 1, 1},
	}
}

// Skeleton is the immutable runtime joint hierarchy. Joints are stored
// depth-first with parents before children.
type Skeleton struct {
	names    []string
	parents  []int16
	bindPose []Transform
}

func (s *Skeleton) NumJoints() int {
	return len(s.names)
}

func (s *Skeleton) JointNames() []string {
	return s.names
}

// Parents returns per-joint parent indices, NoParent for roots.
func (s *Skeleton) Parents() []int16 {
	return s.parents
}

func (s *Skeleton) BindPose() []Transform {
	return s.bindPose
}
