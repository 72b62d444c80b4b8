package carpenter

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// rayEpsilon guards divisions by near-zero direction components.
const rayEpsilon = 1e-12

// Ray is a half-line Origin + t*Direction, t >= 0.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectBox runs the slab test against the axis-aligned box [min, max]
// and returns the entry parameter. A ray starting inside the box returns
// the exit parameter so the hit is always in front of the origin.
func (r Ray) IntersectBox(min, max mgl64.Vec3) (float64, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)
	for i := 0; i < 3; i++ {
		if math.Abs(r.Direction[i]) < rayEpsilon {
			if r.Origin[i] < min[i] || r.Origin[i] > max[i] {
				return 0, false
			}
			continue
		}
		t1 := (min[i] - r.Origin[i]) / r.Direction[i]
		t2 := (max[i] - r.Origin[i]) / r.Direction[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectPlane returns the parameter where the ray crosses the plane
// through point with the given normal. Parallel rays and planes behind the
// origin miss.
func (r Ray) IntersectPlane(point, normal mgl64.Vec3) (float64, bool) {
	denom := normal.Dot(r.Direction)
	if math.Abs(denom) < rayEpsilon {
		return 0, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Hit is one ray/object intersection.
type Hit struct {
	Object   Object
	Point    mgl64.Vec3
	Distance float64
}

// Plane is an infinite, invisible reference plane. It gives drags a stable
// world coordinate even when the pointer is over empty space.
type Plane struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

// NewPlane creates a plane through point facing normal.
func NewPlane(point, normal mgl64.Vec3) *Plane {
	return &Plane{Point: point, Normal: normal.Normalize()}
}

// Intersect implements Object.
func (p *Plane) Intersect(ray Ray) (Hit, bool) {
	t, ok := ray.IntersectPlane(p.Point, p.Normal)
	if !ok {
		return Hit{}, false
	}
	point := ray.At(t)
	return Hit{Object: p, Point: point, Distance: point.Sub(ray.Origin).Len()}, true
}
