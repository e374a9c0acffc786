package vmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestQuatRotateYaw(t *testing.T) {
	q := QuatFromEuler(0, math.Pi/2, 0)
	v := QuatRotate(q, AxisZ)

	if !approx(v.X, 1) || !approx(v.Y, 0) || !approx(v.Z, 0) {
		t.Errorf("Expected +Z yawed 90deg to be +X, got %+v", v)
	}
	if !approx(QuatYaw(q), math.Pi/2) {
		t.Errorf("Expected yaw pi/2, got %f", QuatYaw(q))
	}
}

func TestQuatRotatePitchLooksDown(t *testing.T) {
	q := QuatFromEuler(0, 0, 0.3)
	v := QuatRotate(q, AxisZ)

	if v.Y >= 0 {
		t.Errorf("Positive pitch should tilt forward downwards, got %+v", v)
	}
	if !approx(V3Mag(v), 1) {
		t.Errorf("Rotation should preserve length, got %f", V3Mag(v))
	}
}

func TestQuatConjugateInverts(t *testing.T) {
	q := QuatFromEuler(0.2, 1.1, -0.4)
	v := Vec3{1, 2, 3}
	back := QuatRotate(QuatConjugate(q), QuatRotate(q, v))

	if !approx(back.X, v.X) || !approx(back.Y, v.Y) || !approx(back.Z, v.Z) {
		t.Errorf("Expected %+v, got %+v", v, back)
	}
}

func TestV3CrossRightHanded(t *testing.T) {
	// forward +Z crossed with up +Y points to -X, the player's right
	r := V3Cross(AxisZ, AxisY)
	if !approx(r.X, -1) || !approx(r.Y, 0) || !approx(r.Z, 0) {
		t.Errorf("Expected (-1,0,0), got %+v", r)
	}
}

func TestV3RotateZ(t *testing.T) {
	v := V3RotateZ(AxisY, Vec3{}, math.Pi/2)
	if !approx(v.X, -1) || !approx(v.Y, 0) {
		t.Errorf("Expected (-1,0,0), got %+v", v)
	}
}

func TestV3NormalizeZero(t *testing.T) {
	if V3Normalize(Vec3{}) != (Vec3{}) {
		t.Error("Zero vector should normalize to zero")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 1) != 1 || Clamp(-5, 0, 1) != 0 || Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp returned unexpected values")
	}
}
