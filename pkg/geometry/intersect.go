package geometry

import "math"

// RayCircleIntersection returns where the ray starting at origin and passing
// through p leaves the circle inscribed in r.
//
// When the ray misses the circle the point of the ray closest to the centre
// is returned together with ok=false.
func RayCircleIntersection(origin, p Point, r Rect) (pt Point, ok bool) {
	d := p.Sub(origin)
	a := d.X*d.X + d.Y*d.Y
	if a == 0 {
		return origin, false
	}
	oc := origin.Sub(r.Center())
	rad := Radius(r)
	b := 2 * (d.X*oc.X + d.Y*oc.Y)
	c := oc.X*oc.X + oc.Y*oc.Y - rad*rad

	disc := b*b - 4*a*c
	if disc < 0 {
		t := -b / (2 * a)
		return origin.Add(d.Scale(t)), false
	}
	t := (-b + math.Sqrt(disc)) / (2 * a)
	return origin.Add(d.Scale(t)), true
}
