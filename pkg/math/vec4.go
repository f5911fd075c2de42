package math

import "github.com/chewxy/math32"

// Vec4 is a 4-component vector. Planes are stored as (a, b, c, d) for
// ax + by + cz + d = 0.
type Vec4 [4]float32

// Plane builds a plane from a normal and a signed distance.
func Plane(normal Vec3, d float32) Vec4 {
	return Vec4{normal.X, normal.Y, normal.Z, d}
}

// Point returns v as a homogeneous point (w=1).
func Point(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// Direction returns v as a homogeneous direction (w=0).
func Direction(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 0}
}

// Dot returns the 4D dot product.
func (v Vec4) Dot(other Vec4) float32 {
	return v[0]*other[0] + v[1]*other[1] + v[2]*other[2] + v[3]*other[3]
}

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// NormalizePlane scales the plane so its normal has unit length.
func (v Vec4) NormalizePlane() Vec4 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return Vec4{v[0] / l, v[1] / l, v[2] / l, v[3] / l}
}

// DistanceTo returns the signed distance from p to the plane.
func (v Vec4) DistanceTo(p Vec3) float32 {
	n := v.NormalizePlane()
	return n[0]*p.X + n[1]*p.Y + n[2]*p.Z + n[3]
}
