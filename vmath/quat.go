package vmath

import "math"

// Quat is a unit rotation quaternion
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the no-rotation quaternion
var QuatIdentity = Quat{0, 0, 0, 1}

// QuatAxisAngle builds a rotation of angle radians around a unit axis
func QuatAxisAngle(axis Vec3, angle float64) Quat {
	s, c := math.Sincos(angle * 0.5)
	return Quat{axis.X * s, axis.Y * s, axis.Z * s, c}
}

// QuatFromEuler composes yaw (around Y), then pitch (around X), then roll (around Z)
// Applied to a vector as yaw * pitch * roll
func QuatFromEuler(roll, yaw, pitch float64) Quat {
	qy := QuatAxisAngle(AxisY, yaw)
	qx := QuatAxisAngle(AxisX, pitch)
	qz := QuatAxisAngle(AxisZ, roll)
	return QuatMul(QuatMul(qy, qx), qz)
}

// QuatMul returns a*b (b applied first)
func QuatMul(a, b Quat) Quat {
	return Quat{
		a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

// QuatConjugate inverts a unit quaternion
func QuatConjugate(q Quat) Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// QuatRotate applies q to v
func QuatRotate(q Quat, v Vec3) Vec3 {
	// t = 2 * cross(q.xyz, v); v' = v + w*t + cross(q.xyz, t)
	qv := Vec3{q.X, q.Y, q.Z}
	t := V3Scale(V3Cross(qv, v), 2)
	return V3Add(V3Add(v, V3Scale(t, q.W)), V3Cross(qv, t))
}

// QuatYaw extracts the rotation angle around Y, assuming q only carries yaw
func QuatYaw(q Quat) float64 {
	fwd := QuatRotate(q, AxisZ)
	return math.Atan2(fwd.X, fwd.Z)
}
