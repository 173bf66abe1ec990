package math

import (
	"math"
	"testing"
)

func approx(a, b Vec3) bool {
	return a.ApproxEqual(b, 0.001)
}

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	got := q.Rotate(Vec3{1, 0, 0})
	if !approx(got, Vec3{0, 0, -1}) {
		t.Errorf("90deg about Y should take +X to -Z, got %v", got)
	}
}

func TestQuatFromEuler(t *testing.T) {
	q := QuatFromEuler(float32(math.Pi/2), 0, 0)
	want := QuatFromAxisAngle(Vec3{1, 0, 0}, float32(math.Pi/2))
	if math.Abs(float64(q.Dot(want))) < 0.9999 {
		t.Errorf("Euler X rotation %v should equal axis-angle %v", q, want)
	}
}

func TestQuatFromTo(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec3
	}{
		{"same", Vec3{0, 1, 0}, Vec3{0, 1, 0}},
		{"quarter", Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"opposite", Vec3{0, -1, 0}, Vec3{0, 1, 0}},
		{"opposite x", Vec3{1, 0, 0}, Vec3{-1, 0, 0}},
		{"oblique", Vec3{1, 1, 1}, Vec3{0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromTo(tt.from, tt.to)
			got := q.Rotate(tt.from.Normalize())
			if !approx(got, tt.to.Normalize()) {
				t.Errorf("QuatFromTo(%v, %v) rotates to %v", tt.from, tt.to, got)
			}
		})
	}
}

func TestQuatConjugate(t *testing.T) {
	q := QuatFromEuler(0.3, 1.1, -0.7)
	v := Vec3{0.2, -1, 3}
	back := q.Conjugate().Rotate(q.Rotate(v))
	if !approx(back, v) {
		t.Errorf("conjugate should undo rotation, got %v want %v", back, v)
	}
}

func TestQuatIntegrate(t *testing.T) {
	// Spin at pi/2 rad/s about Y for one second in small steps.
	q := QuatIdentity()
	omega := Vec3{0, float32(math.Pi / 2), 0}
	for i := 0; i < 1000; i++ {
		q = q.Integrate(omega, 0.001)
	}

	got := q.Rotate(Vec3{1, 0, 0})
	if !got.ApproxEqual(Vec3{0, 0, -1}, 0.01) {
		t.Errorf("integrated rotation should take +X to -Z, got %v", got)
	}
}

func TestQuatToMat4(t *testing.T) {
	// Identity quaternion should produce identity matrix
	q := QuatIdentity()
	m := q.ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}

	// Matrix rotation must agree with quaternion rotation.
	q = QuatFromEuler(0.4, -1.2, 2.0)
	v := Vec3{1, 2, 3}
	if got, want := q.ToMat4().TransformDirection(v), q.Rotate(v); !approx(got, want) {
		t.Errorf("ToMat4 direction = %v, Rotate = %v", got, want)
	}
}
