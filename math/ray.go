package math

// Ray is a half-line in world space. Direction is not required to be
// unit-length (camera rays, for instance, run from the origin to the
// viewport sample point); hit routines compensate by solving against the
// raw direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point origin + t*direction.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
