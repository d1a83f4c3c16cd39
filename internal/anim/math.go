package anim

import (
	"math"

	"golang.org/x/image/math/f32"
)

func lerpVec3(a, b f32.Vec3, t float32) f32.Vec3 {
	return f32.Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

func distVec3(a, b f32.Vec3) float64 {
	dx := float64(a[0] - b[0])
	dy := float64(a[1] - b[1])
	dz := float64(a[2] - b[2])
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func quatConjugate(q f32.Vec4) f32.Vec4 {
	return f32.Vec4{-q[0], -q[1], -q[2], q[3]}
}

func quatMul(a, b f32.Vec4) f32.Vec4 {
	return f32.Vec4{
		a[3]*b[0] + a[0]*b[3] + a[1]*b[2] - a[2]*b[1],
		a[3]*b[1] + a[1]*b[3] + a[2]*b[0] - a[0]*b[2],
		a[3]*b[2] + a[2]*b[3] + a[0]*b[1] - a[1]*b[0],
		a[3]*b[3] - a[0]*b[0] - a[1]*b[1] - a[2]*b[2],
	}
}

func quatNormalize(q f32.Vec4) f32.Vec4 {
	n := math.Sqrt(float64(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]))
	if n == 0 {
		return f32.Vec4{0, 0, 0, 1}
	}
	inv := float32(1 / n)
	return f32.Vec4{q[0] * inv, q[1] * inv, q[2] * inv, q[3] * inv}
}

func quatDot(a, b f32.Vec4) float64 {
	return float64(a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3])
}

// quatAngle returns the rotation angle in radians between two unit
// quaternions.
func quatAngle(a, b f32.Vec4) float64 {
	d := math.Abs(quatDot(quatNormalize(a), quatNormalize(b)))
	if d > 1 {
		d = 1
	}
	return 2 * math.Acos(d)
}

// quatNlerp interpolates on the shortest arc and renormalizes.
func quatNlerp(a, b f32.Vec4, t float32) f32.Vec4 {
	if quatDot(a, b) < 0 {
		b = f32.Vec4{-b[0], -b[1], -b[2], -b[3]}
	}
	return quatNormalize(f32.Vec4{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
		a[3] + (b[3]-a[3])*t,
	})
}
